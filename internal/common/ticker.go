// Package common provides shared utilities across the application.
package common

import (
	"fmt"
	"strings"
)

// Ticker represents a parsed exchange-qualified ticker.
// Format: EXCHANGE:CODE (e.g., "NSE:RELIANCE", "NYSE:AAPL")
type Ticker struct {
	// Exchange is the exchange code (e.g., "NSE", "BSE", "NYSE")
	Exchange string
	// Code is the stock code (e.g., "RELIANCE", "AAPL")
	Code string
	// Raw is the original ticker string
	Raw string
}

// ExchangeToSuffix maps exchange codes to EODHD API suffixes.
var ExchangeToSuffix = map[string]string{
	"NSE":    ".NSE",
	"BSE":    ".BO",
	"NYSE":   ".US",
	"NASDAQ": ".US",
	"ASX":    ".AU",
	"LSE":    ".LSE",
}

// suffixToExchange maps EODHD-style suffixes back to exchange codes,
// used when parsing tickers written as CODE.SUFFIX (e.g., "RELIANCE.NSE").
var suffixToExchange = map[string]string{
	"NSE": "NSE",
	"BO":  "BSE",
	"US":  "NYSE",
	"AU":  "ASX",
	"LSE": "LSE",
}

// DefaultExchange is the exchange assumed when a ticker carries no prefix.
// Overridable via [markets] default_exchange in the TOML config.
var DefaultExchange = "NSE"

// SetDefaultExchange sets the default exchange for parsing tickers.
// Called during app initialization from config.
func SetDefaultExchange(exchange string) {
	if exchange != "" {
		DefaultExchange = strings.ToUpper(exchange)
	}
}

// ParseTicker parses an exchange-qualified ticker string.
// Supports formats:
//   - "NSE:RELIANCE" -> Exchange="NSE", Code="RELIANCE" (colon separator)
//   - "RELIANCE.NSE" -> Exchange="NSE", Code="RELIANCE" (EODHD-style suffix)
//   - "RELIANCE"     -> Exchange=DefaultExchange, Code="RELIANCE"
//   - "reliance"     -> normalized to uppercase
func ParseTicker(ticker string) Ticker {
	ticker = strings.TrimSpace(ticker)
	if ticker == "" {
		return Ticker{}
	}

	// Exchange prefix with colon separator (EXCHANGE:CODE)
	if idx := strings.Index(ticker, ":"); idx > 0 {
		return Ticker{
			Exchange: strings.ToUpper(ticker[:idx]),
			Code:     strings.ToUpper(ticker[idx+1:]),
			Raw:      ticker,
		}
	}

	// EODHD-style suffix (CODE.SUFFIX). Use the last dot because codes can
	// contain dots (e.g., "BRK.B.US").
	if idx := strings.LastIndex(ticker, "."); idx > 0 && idx < len(ticker)-1 {
		suffix := strings.ToUpper(ticker[idx+1:])
		if exchange, ok := suffixToExchange[suffix]; ok {
			return Ticker{
				Exchange: exchange,
				Code:     strings.ToUpper(ticker[:idx]),
				Raw:      ticker,
			}
		}
	}

	// No exchange qualifier - use default exchange
	return Ticker{
		Exchange: DefaultExchange,
		Code:     strings.ToUpper(ticker),
		Raw:      ticker,
	}
}

// String returns the full exchange-qualified ticker string.
func (t Ticker) String() string {
	if t.Exchange == "" || t.Code == "" {
		return t.Code
	}
	return t.Exchange + ":" + t.Code
}

// EODHDSymbol returns the EODHD API symbol format.
// Example: "NSE:RELIANCE" -> "RELIANCE.NSE"
func (t Ticker) EODHDSymbol() string {
	if t.Code == "" {
		return ""
	}
	suffix, ok := ExchangeToSuffix[t.Exchange]
	if !ok {
		suffix = ExchangeToSuffix[DefaultExchange]
	}
	return t.Code + suffix
}

// ValidateTicker reports whether a raw ticker string is acceptable as input.
// The code must be alphanumeric after stripping any recognized exchange
// qualifier, with length between 1 and 20.
func ValidateTicker(ticker string) bool {
	parsed := ParseTicker(ticker)
	if parsed.Code == "" || len(parsed.Code) > 20 {
		return false
	}
	for _, r := range parsed.Code {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}

// Comparison request bounds.
const (
	MinCompareTickers = 2
	MaxCompareTickers = 5
)

// ParseTickerList parses a comma-separated ticker list for comparison
// requests. Between MinCompareTickers and MaxCompareTickers valid tickers
// are required.
func ParseTickerList(list string) ([]Ticker, error) {
	parts := strings.Split(list, ",")
	tickers := make([]Ticker, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !ValidateTicker(p) {
			return nil, fmt.Errorf("invalid ticker format: %s", p)
		}
		tickers = append(tickers, ParseTicker(p))
	}
	if len(tickers) < MinCompareTickers {
		return nil, fmt.Errorf("at least %d tickers are required for comparison", MinCompareTickers)
	}
	if len(tickers) > MaxCompareTickers {
		return nil, fmt.Errorf("at most %d tickers can be compared at once", MaxCompareTickers)
	}
	return tickers, nil
}
