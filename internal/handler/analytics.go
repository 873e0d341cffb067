package handler

import (
	"net/http"
	"strconv"

	"tradesim/internal/analytics"
	"tradesim/pkg/logger"
)

// AnalyticsHandler serves the read-only aggregate endpoints.
type AnalyticsHandler struct {
	service *analytics.Service
	logger  logger.Logger
}

func NewAnalyticsHandler(service *analytics.Service, log logger.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		service: service,
		logger:  log,
	}
}

func (h *AnalyticsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	respondJSON(h.logger, w, http.StatusOK, h.service.Summarize(r.Context()))
}

func (h *AnalyticsHandler) TopExporters(w http.ResponseWriter, r *http.Request) {
	respondJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"exporters": h.service.TopExporters(r.Context(), topN(r)),
	})
}

func (h *AnalyticsHandler) TopImporters(w http.ResponseWriter, r *http.Request) {
	respondJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"importers": h.service.TopImporters(r.Context(), topN(r)),
	})
}

func (h *AnalyticsHandler) Categories(w http.ResponseWriter, r *http.Request) {
	respondJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"categories": h.service.ProductsByCategory(r.Context()),
	})
}

func (h *AnalyticsHandler) SanctionCounts(w http.ResponseWriter, r *http.Request) {
	respondJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"sanction_counts": h.service.SanctionCounts(r.Context()),
	})
}

func topN(r *http.Request) int {
	if v := r.URL.Query().Get("n"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return analytics.DefaultTopN
}
