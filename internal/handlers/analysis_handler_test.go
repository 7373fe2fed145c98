package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/consilium/internal/common"
	"github.com/ternarybob/consilium/internal/models"
)

type fakeRunner struct {
	result  *models.AnalysisResult
	compare *models.ComparisonResult
	err     error
	tickers []common.Ticker
}

func (f *fakeRunner) Run(_ context.Context, ticker common.Ticker) *models.AnalysisResult {
	f.tickers = append(f.tickers, ticker)
	return f.result
}

func (f *fakeRunner) Compare(_ context.Context, tickers []common.Ticker) (*models.ComparisonResult, error) {
	f.tickers = tickers
	return f.compare, f.err
}

func TestAnalyzeHandler(t *testing.T) {
	runner := &fakeRunner{result: &models.AnalysisResult{
		RunID:  "run_test",
		Ticker: "NSE:RELIANCE",
		Status: models.PipelineCompleted,
	}}
	h := NewAnalysisHandler(runner)

	req := httptest.NewRequest("GET", "/api/analyze/RELIANCE.NSE", nil)
	rec := httptest.NewRecorder()
	h.AnalyzeHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var result models.AnalysisResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "NSE:RELIANCE", result.Ticker)
	assert.Equal(t, models.PipelineCompleted, result.Status)

	require.Len(t, runner.tickers, 1)
	assert.Equal(t, "NSE:RELIANCE", runner.tickers[0].String())
}

func TestAnalyzeHandlerFailedPipeline(t *testing.T) {
	runner := &fakeRunner{result: &models.AnalysisResult{
		Ticker: "NSE:BAD",
		Status: models.PipelineFailed,
		Error:  "no price data",
	}}
	h := NewAnalysisHandler(runner)

	req := httptest.NewRequest("GET", "/api/analyze/BAD", nil)
	rec := httptest.NewRecorder()
	h.AnalyzeHandler(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestAnalyzeHandlerInvalidTicker(t *testing.T) {
	h := NewAnalysisHandler(&fakeRunner{})

	req := httptest.NewRequest("GET", "/api/analyze/not%20a%20ticker!", nil)
	rec := httptest.NewRecorder()
	h.AnalyzeHandler(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyzeHandlerMethodNotAllowed(t *testing.T) {
	h := NewAnalysisHandler(&fakeRunner{})

	req := httptest.NewRequest("POST", "/api/analyze/RELIANCE", nil)
	rec := httptest.NewRecorder()
	h.AnalyzeHandler(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestCompareHandler(t *testing.T) {
	runner := &fakeRunner{compare: &models.ComparisonResult{
		Rankings: []models.RankingEntry{
			{Ticker: "NSE:RELIANCE", OverallScore: 82, Action: "Strong Buy"},
			{Ticker: "NSE:TCS", OverallScore: 64, Action: "Buy"},
		},
	}}
	h := NewAnalysisHandler(runner)

	req := httptest.NewRequest("GET", "/api/compare?tickers=RELIANCE.NSE,TCS.NSE", nil)
	rec := httptest.NewRecorder()
	h.CompareHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, runner.tickers, 2)

	var result models.ComparisonResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.Len(t, result.Rankings, 2)
	assert.Equal(t, "NSE:RELIANCE", result.Rankings[0].Ticker)
}

func TestCompareHandlerTooFewTickers(t *testing.T) {
	h := NewAnalysisHandler(&fakeRunner{})

	req := httptest.NewRequest("GET", "/api/compare?tickers=RELIANCE", nil)
	rec := httptest.NewRecorder()
	h.CompareHandler(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCompareHandlerAllFailed(t *testing.T) {
	runner := &fakeRunner{err: errors.New("analysis failed for all 2 tickers")}
	h := NewAnalysisHandler(runner)

	req := httptest.NewRequest("GET", "/api/compare?tickers=A,B", nil)
	rec := httptest.NewRecorder()
	h.CompareHandler(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
