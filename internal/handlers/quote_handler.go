package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/consilium/internal/common"
	"github.com/ternarybob/consilium/internal/eodhd"
	"github.com/ternarybob/consilium/internal/models"
)

// QuoteService provides delayed quotes for a ticker.
type QuoteService interface {
	Quote(ctx context.Context, ticker common.Ticker) (*models.Quote, error)
}

type QuoteHandler struct {
	quotes QuoteService
	logger arbor.ILogger
}

func NewQuoteHandler(quotes QuoteService) *QuoteHandler {
	return &QuoteHandler{
		quotes: quotes,
		logger: common.GetLogger(),
	}
}

// GetQuoteHandler serves GET /api/quote/{ticker}
func (h *QuoteHandler) GetQuoteHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	raw := PathTicker(r, "/api/quote")
	if !common.ValidateTicker(raw) {
		WriteError(w, http.StatusBadRequest, "invalid ticker format: "+raw)
		return
	}
	ticker := common.ParseTicker(raw)

	quote, err := h.quotes.Quote(r.Context(), ticker)
	if err != nil {
		h.logger.Warn().Err(err).Str("ticker", ticker.String()).Msg("Quote fetch failed")
		WriteError(w, upstreamStatus(err), err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, quote)
}

// upstreamStatus maps data provider errors onto response codes.
func upstreamStatus(err error) int {
	var apiErr *eodhd.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
		return http.StatusNotFound
	}
	var rateErr *eodhd.RateLimitError
	if errors.As(err, &rateErr) {
		return http.StatusTooManyRequests
	}
	return http.StatusBadGateway
}
