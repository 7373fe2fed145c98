package handlers

import (
	"context"
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/consilium/internal/common"
	"github.com/ternarybob/consilium/internal/models"
)

// AnalysisRunner runs the full agent pipeline for one or more tickers.
type AnalysisRunner interface {
	Run(ctx context.Context, ticker common.Ticker) *models.AnalysisResult
	Compare(ctx context.Context, tickers []common.Ticker) (*models.ComparisonResult, error)
}

type AnalysisHandler struct {
	pipeline AnalysisRunner
	logger   arbor.ILogger
}

func NewAnalysisHandler(pipeline AnalysisRunner) *AnalysisHandler {
	return &AnalysisHandler{
		pipeline: pipeline,
		logger:   common.GetLogger(),
	}
}

// AnalyzeHandler serves GET /api/analyze/{ticker}
func (h *AnalysisHandler) AnalyzeHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	raw := PathTicker(r, "/api/analyze")
	if !common.ValidateTicker(raw) {
		WriteError(w, http.StatusBadRequest, "invalid ticker format: "+raw)
		return
	}
	ticker := common.ParseTicker(raw)

	result := h.pipeline.Run(r.Context(), ticker)
	status := http.StatusOK
	if result.Status == models.PipelineFailed {
		status = http.StatusBadGateway
	}
	WriteJSON(w, status, result)
}

// CompareHandler serves GET /api/compare?tickers=A,B,C
func (h *AnalysisHandler) CompareHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	tickers, err := common.ParseTickerList(r.URL.Query().Get("tickers"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.pipeline.Compare(r.Context(), tickers)
	if err != nil {
		h.logger.Warn().Err(err).Msg("Comparison failed")
		WriteError(w, http.StatusBadGateway, err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, result)
}
