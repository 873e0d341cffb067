package handler

import (
	"net/http"

	"tradesim/internal/trade"
	"tradesim/pkg/logger"
	"tradesim/pkg/validator"
)

// TradeHandler exposes the transaction processor.
type TradeHandler struct {
	service   *trade.Service
	validator *validator.Validator
	logger    logger.Logger
}

func NewTradeHandler(service *trade.Service, val *validator.Validator, log logger.Logger) *TradeHandler {
	return &TradeHandler{
		service:   service,
		validator: val,
		logger:    log,
	}
}

func (h *TradeHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	var req trade.PurchaseRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(h.logger, w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if valErrs := h.validator.ValidateStructured(&req); valErrs != nil {
		respondValidationErrors(h.logger, w, valErrs)
		return
	}

	receipt, err := h.service.Purchase(r.Context(), &req)
	if err != nil {
		respondDomainError(h.logger, w, err)
		return
	}
	respondJSON(h.logger, w, http.StatusOK, receipt)
}
