package market

import (
	"context"

	"github.com/ternarybob/consilium/internal/eodhd"
	"github.com/ternarybob/consilium/internal/services/cache"
)

// DataSource is the upstream market data dependency. *eodhd.Client
// satisfies it directly.
type DataSource interface {
	GetEOD(ctx context.Context, symbol string, opts ...eodhd.QueryOption) (eodhd.EODResponse, error)
	GetFundamentals(ctx context.Context, symbol string) (*eodhd.FundamentalsResponse, error)
	GetRealTimeQuote(ctx context.Context, symbol string) (*eodhd.RealTimeQuote, error)
}

// CachedSource wraps a DataSource with a TTL cache so that concurrent
// agents analyzing the same ticker hit the upstream API once per window.
type CachedSource struct {
	source DataSource
	cache  *cache.Service
}

// NewCachedSource creates a caching wrapper around source.
func NewCachedSource(source DataSource, cacheSvc *cache.Service) *CachedSource {
	return &CachedSource{
		source: source,
		cache:  cacheSvc,
	}
}

// GetEOD returns cached end-of-day candles for a symbol. The key carries
// the resolved query so different windows never share an entry.
func (c *CachedSource) GetEOD(ctx context.Context, symbol string, opts ...eodhd.QueryOption) (eodhd.EODResponse, error) {
	key := "eod:" + symbol + "?" + eodhd.QueryKey(opts...)
	if cached, ok := c.cache.Get(key); ok {
		return cached.(eodhd.EODResponse), nil
	}
	result, err := c.source.GetEOD(ctx, symbol, opts...)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, result)
	return result, nil
}

// GetFundamentals returns cached fundamentals for a symbol.
func (c *CachedSource) GetFundamentals(ctx context.Context, symbol string) (*eodhd.FundamentalsResponse, error) {
	key := "fundamentals:" + symbol
	if cached, ok := c.cache.Get(key); ok {
		return cached.(*eodhd.FundamentalsResponse), nil
	}
	result, err := c.source.GetFundamentals(ctx, symbol)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, result)
	return result, nil
}

// GetRealTimeQuote returns a cached quote for a symbol.
func (c *CachedSource) GetRealTimeQuote(ctx context.Context, symbol string) (*eodhd.RealTimeQuote, error) {
	key := "quote:" + symbol
	if cached, ok := c.cache.Get(key); ok {
		return cached.(*eodhd.RealTimeQuote), nil
	}
	result, err := c.source.GetRealTimeQuote(ctx, symbol)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, result)
	return result, nil
}
