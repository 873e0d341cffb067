package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"tradesim/internal/country"
	"tradesim/pkg/logger"
	"tradesim/pkg/validator"
)

// CountryHandler manages country endpoints.
type CountryHandler struct {
	service   *country.Service
	validator *validator.Validator
	logger    logger.Logger
}

func NewCountryHandler(service *country.Service, val *validator.Validator, log logger.Logger) *CountryHandler {
	return &CountryHandler{
		service:   service,
		validator: val,
		logger:    log,
	}
}

func (h *CountryHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req country.RegisterCountryRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(h.logger, w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if valErrs := h.validator.ValidateStructured(&req); valErrs != nil {
		respondValidationErrors(h.logger, w, valErrs)
		return
	}

	created, err := h.service.Register(r.Context(), &req)
	if err != nil {
		respondDomainError(h.logger, w, err)
		return
	}
	respondJSON(h.logger, w, http.StatusCreated, created)
}

func (h *CountryHandler) List(w http.ResponseWriter, r *http.Request) {
	respondJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"countries": h.service.List(r.Context()),
	})
}

func (h *CountryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondError(h.logger, w, http.StatusBadRequest, "Invalid country id")
		return
	}

	found, err := h.service.Get(r.Context(), id)
	if err != nil {
		respondDomainError(h.logger, w, err)
		return
	}
	respondJSON(h.logger, w, http.StatusOK, found)
}

func (h *CountryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondError(h.logger, w, http.StatusBadRequest, "Invalid country id")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		respondDomainError(h.logger, w, err)
		return
	}
	respondJSON(h.logger, w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *CountryHandler) UpdateTradeItems(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondError(h.logger, w, http.StatusBadRequest, "Invalid country id")
		return
	}

	var req country.UpdateTradeItemsRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(h.logger, w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if valErrs := h.validator.ValidateStructured(&req); valErrs != nil {
		respondValidationErrors(h.logger, w, valErrs)
		return
	}

	updated, err := h.service.UpdateTradeItems(r.Context(), id, &req)
	if err != nil {
		respondDomainError(h.logger, w, err)
		return
	}
	respondJSON(h.logger, w, http.StatusOK, updated)
}

func (h *CountryHandler) Summary(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondError(h.logger, w, http.StatusBadRequest, "Invalid country id")
		return
	}

	summary, err := h.service.Summarize(r.Context(), id)
	if err != nil {
		respondDomainError(h.logger, w, err)
		return
	}
	respondJSON(h.logger, w, http.StatusOK, summary)
}
