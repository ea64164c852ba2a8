package http

import (
	"net/http"

	"go.uber.org/zap"
)

// NewRouter registers the KPI endpoints behind CORS. Everything under
// /kpi/ goes through the rate limiter; the banner and health probe do not.
func NewRouter(kpiHandler *KpiHandler, limiter *RateLimiter, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	limited := func(h http.HandlerFunc) http.Handler {
		return RateLimitMiddleware(limiter, logger, h)
	}

	mux := http.NewServeMux()
	mux.Handle("/kpi/growth", limited(kpiHandler.CalculateGrowth))
	mux.Handle("/kpi/history", limited(kpiHandler.History))
	mux.Handle("/kpi/sample", limited(kpiHandler.Sample))
	mux.HandleFunc("/healthz", Health)
	mux.HandleFunc("/", Root)
	return CORSMiddleware(mux)
}
