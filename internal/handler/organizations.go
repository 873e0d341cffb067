package handler

import (
	"net/http"

	"tradesim/internal/organizations"
	"tradesim/pkg/logger"
	"tradesim/pkg/validator"
)

// OrganizationsHandler manages IMF loan and World Bank project endpoints.
type OrganizationsHandler struct {
	service   *organizations.Service
	validator *validator.Validator
	logger    logger.Logger
}

func NewOrganizationsHandler(service *organizations.Service, val *validator.Validator, log logger.Logger) *OrganizationsHandler {
	return &OrganizationsHandler{
		service:   service,
		validator: val,
		logger:    log,
	}
}

func (h *OrganizationsHandler) IssueLoan(w http.ResponseWriter, r *http.Request) {
	var req organizations.IssueLoanRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(h.logger, w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if valErrs := h.validator.ValidateStructured(&req); valErrs != nil {
		respondValidationErrors(h.logger, w, valErrs)
		return
	}

	loan, err := h.service.IssueLoan(r.Context(), &req)
	if err != nil {
		respondDomainError(h.logger, w, err)
		return
	}
	respondJSON(h.logger, w, http.StatusCreated, loan)
}

func (h *OrganizationsHandler) Loans(w http.ResponseWriter, r *http.Request) {
	respondJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"loans": h.service.Loans(r.Context()),
	})
}

func (h *OrganizationsHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req organizations.CreateProjectRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(h.logger, w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if valErrs := h.validator.ValidateStructured(&req); valErrs != nil {
		respondValidationErrors(h.logger, w, valErrs)
		return
	}

	project, err := h.service.CreateProject(r.Context(), &req)
	if err != nil {
		respondDomainError(h.logger, w, err)
		return
	}
	respondJSON(h.logger, w, http.StatusCreated, project)
}

func (h *OrganizationsHandler) Projects(w http.ResponseWriter, r *http.Request) {
	respondJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"projects": h.service.Projects(r.Context()),
	})
}

func (h *OrganizationsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	respondJSON(h.logger, w, http.StatusOK, h.service.Summarize(r.Context()))
}
