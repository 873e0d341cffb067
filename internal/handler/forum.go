package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"tradesim/internal/forum"
	"tradesim/pkg/logger"
	"tradesim/pkg/validator"
)

// ForumHandler manages forum endpoints.
type ForumHandler struct {
	service   *forum.Service
	validator *validator.Validator
	logger    logger.Logger
}

func NewForumHandler(service *forum.Service, val *validator.Validator, log logger.Logger) *ForumHandler {
	return &ForumHandler{
		service:   service,
		validator: val,
		logger:    log,
	}
}

func (h *ForumHandler) Publish(w http.ResponseWriter, r *http.Request) {
	var req forum.CreatePostRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(h.logger, w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Title = validator.Sanitize(req.Title)
	req.Content = validator.Sanitize(req.Content)
	req.Author = validator.Sanitize(req.Author)

	if valErrs := h.validator.ValidateStructured(&req); valErrs != nil {
		respondValidationErrors(h.logger, w, valErrs)
		return
	}

	created, err := h.service.Publish(r.Context(), &req)
	if err != nil {
		respondDomainError(h.logger, w, err)
		return
	}
	respondJSON(h.logger, w, http.StatusCreated, created)
}

func (h *ForumHandler) List(w http.ResponseWriter, r *http.Request) {
	respondJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"posts": h.service.List(r.Context(), r.URL.Query().Get("category")),
	})
}

func (h *ForumHandler) Like(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondError(h.logger, w, http.StatusBadRequest, "Invalid post id")
		return
	}

	likes, err := h.service.Like(r.Context(), id)
	if err != nil {
		respondDomainError(h.logger, w, err)
		return
	}
	respondJSON(h.logger, w, http.StatusOK, map[string]interface{}{"likes": likes})
}
