package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"tradesim/internal/market"
	"tradesim/pkg/logger"
	"tradesim/pkg/validator"
)

// ProductHandler manages market listing endpoints.
type ProductHandler struct {
	service   *market.Service
	validator *validator.Validator
	logger    logger.Logger
}

func NewProductHandler(service *market.Service, val *validator.Validator, log logger.Logger) *ProductHandler {
	return &ProductHandler{
		service:   service,
		validator: val,
		logger:    log,
	}
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req market.ListProductRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(h.logger, w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if valErrs := h.validator.ValidateStructured(&req); valErrs != nil {
		respondValidationErrors(h.logger, w, valErrs)
		return
	}

	created, err := h.service.ListProduct(r.Context(), &req)
	if err != nil {
		respondDomainError(h.logger, w, err)
		return
	}
	respondJSON(h.logger, w, http.StatusCreated, created)
}

// List supports ?type=, ?country= (country id), ?q= (name search) and
// ?sort=price|quantity|name with an optional ?order=desc.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	f := market.Filter{
		Type:     q.Get("type"),
		Query:    q.Get("q"),
		SortBy:   q.Get("sort"),
		SortDesc: q.Get("order") == "desc",
	}
	if raw := q.Get("country"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			respondError(h.logger, w, http.StatusBadRequest, "Invalid country filter")
			return
		}
		f.CountryID = id
	}

	respondJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"products": h.service.List(r.Context(), f),
	})
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondError(h.logger, w, http.StatusBadRequest, "Invalid product id")
		return
	}

	found, err := h.service.Get(r.Context(), id)
	if err != nil {
		respondDomainError(h.logger, w, err)
		return
	}
	respondJSON(h.logger, w, http.StatusOK, found)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondError(h.logger, w, http.StatusBadRequest, "Invalid product id")
		return
	}

	if err := h.service.Delist(r.Context(), id); err != nil {
		respondDomainError(h.logger, w, err)
		return
	}
	respondJSON(h.logger, w, http.StatusOK, map[string]string{"status": "deleted"})
}
