package handler

import (
	"net/http"

	"tradesim/internal/notification"
	"tradesim/internal/settings"
	"tradesim/pkg/logger"
)

// SettingsHandler manages settings and the notification feed.
type SettingsHandler struct {
	service  *settings.Service
	notifier notification.Service
	logger   logger.Logger
}

func NewSettingsHandler(service *settings.Service, notifier notification.Service, log logger.Logger) *SettingsHandler {
	return &SettingsHandler{
		service:  service,
		notifier: notifier,
		logger:   log,
	}
}

func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	respondJSON(h.logger, w, http.StatusOK, h.service.Get(r.Context()))
}

func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req settings.UpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(h.logger, w, http.StatusBadRequest, "Invalid request body")
		return
	}
	respondJSON(h.logger, w, http.StatusOK, h.service.Update(r.Context(), &req))
}

// Clear wipes all persisted data. There is no undo.
func (h *SettingsHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.service.Clear(r.Context())
	respondJSON(h.logger, w, http.StatusOK, map[string]string{"status": "cleared"})
}

func (h *SettingsHandler) Notifications(w http.ResponseWriter, r *http.Request) {
	respondJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"notifications": h.notifier.Recent(50),
	})
}
