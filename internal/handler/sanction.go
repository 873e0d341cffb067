package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"tradesim/internal/sanctions"
	"tradesim/pkg/logger"
	"tradesim/pkg/validator"
)

// SanctionHandler manages sanction endpoints.
type SanctionHandler struct {
	service   *sanctions.Service
	validator *validator.Validator
	logger    logger.Logger
}

func NewSanctionHandler(service *sanctions.Service, val *validator.Validator, log logger.Logger) *SanctionHandler {
	return &SanctionHandler{
		service:   service,
		validator: val,
		logger:    log,
	}
}

func (h *SanctionHandler) Impose(w http.ResponseWriter, r *http.Request) {
	var req sanctions.ImposeSanctionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(h.logger, w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if valErrs := h.validator.ValidateStructured(&req); valErrs != nil {
		respondValidationErrors(h.logger, w, valErrs)
		return
	}

	created, err := h.service.Impose(r.Context(), &req)
	if err != nil {
		respondDomainError(h.logger, w, err)
		return
	}
	respondJSON(h.logger, w, http.StatusCreated, created)
}

func (h *SanctionHandler) List(w http.ResponseWriter, r *http.Request) {
	respondJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"sanctions": h.service.List(r.Context()),
	})
}

func (h *SanctionHandler) Lift(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondError(h.logger, w, http.StatusBadRequest, "Invalid sanction id")
		return
	}

	if err := h.service.Lift(r.Context(), id); err != nil {
		respondDomainError(h.logger, w, err)
		return
	}
	respondJSON(h.logger, w, http.StatusOK, map[string]string{"status": "lifted"})
}
