package server

import (
	"net/http"
	"strings"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// API routes - Analysis
	mux.HandleFunc("/api/analyze/", s.app.AnalysisHandler.AnalyzeHandler) // GET /api/analyze/{ticker}
	mux.HandleFunc("/api/compare", s.app.AnalysisHandler.CompareHandler)  // GET ?tickers=A,B,C

	// API routes - Market data
	mux.HandleFunc("/api/quote/", s.app.QuoteHandler.GetQuoteHandler) // GET /api/quote/{ticker}

	// API routes - System
	mux.HandleFunc("/api/version", s.app.APIHandler.VersionHandler)
	mux.HandleFunc("/api/health", s.app.APIHandler.HealthHandler)

	// Root serves a service descriptor; anything else under / is a 404
	mux.HandleFunc("/", s.rootHandler)

	return mux
}

// rootHandler serves the service descriptor at / and JSON 404s elsewhere.
func (s *Server) rootHandler(w http.ResponseWriter, r *http.Request) {
	if strings.TrimSuffix(r.URL.Path, "/") != "" {
		s.app.APIHandler.NotFoundHandler(w, r)
		return
	}
	s.app.APIHandler.ServiceInfoHandler(w, r)
}
