// Package handler provides the HTTP handlers for the trade simulator API.
package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"tradesim/pkg/errors"
	"tradesim/pkg/logger"
)

func respondJSON(log logger.Logger, w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error("json encode failed", map[string]interface{}{"error": err.Error()})
		_, _ = w.Write([]byte(`{"error":"response encoding failed"}`))
	}
}

func respondError(log logger.Logger, w http.ResponseWriter, status int, message string) {
	respondJSON(log, w, status, map[string]string{"error": message})
}

func respondValidationErrors(log logger.Logger, w http.ResponseWriter, errs map[string]string) {
	respondJSON(log, w, http.StatusBadRequest, map[string]interface{}{
		"error":             "Validation failed",
		"validation_errors": errs,
	})
}

// decodeJSON reads a request body into dest, rejecting unknown fields.
func decodeJSON(r *http.Request, dest interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		if err == io.EOF {
			return errors.Wrap(err, "request body is required")
		}
		return err
	}
	return nil
}

// failure maps a domain error to an HTTP status and a stable machine code.
type failure struct {
	status int
	code   string
}

var failures = map[error]failure{
	errors.ErrCountryNotFound:   {http.StatusNotFound, "COUNTRY_NOT_FOUND"},
	errors.ErrCountryExists:     {http.StatusConflict, "COUNTRY_EXISTS"},
	errors.ErrCountryInUse:      {http.StatusConflict, "COUNTRY_IN_USE"},
	errors.ErrProductNotFound:   {http.StatusNotFound, "PRODUCT_NOT_FOUND"},
	errors.ErrBuyerNotFound:     {http.StatusNotFound, "BUYER_NOT_FOUND"},
	errors.ErrSellerNotFound:    {http.StatusNotFound, "SELLER_NOT_FOUND"},
	errors.ErrSelfTrade:         {http.StatusUnprocessableEntity, "SELF_TRADE"},
	errors.ErrInsufficientStock: {http.StatusUnprocessableEntity, "INSUFFICIENT_STOCK"},
	errors.ErrInsufficientFunds: {http.StatusUnprocessableEntity, "INSUFFICIENT_FUNDS"},
	errors.ErrTradeEmbargoed:    {http.StatusUnprocessableEntity, "TRADE_EMBARGOED"},
	errors.ErrSanctionNotFound:  {http.StatusNotFound, "SANCTION_NOT_FOUND"},
	errors.ErrPostNotFound:      {http.StatusNotFound, "POST_NOT_FOUND"},
	errors.ErrLoanNotFound:      {http.StatusNotFound, "LOAN_NOT_FOUND"},
	errors.ErrProjectNotFound:   {http.StatusNotFound, "PROJECT_NOT_FOUND"},
	errors.ErrQuoteNotFound:     {http.StatusNotFound, "QUOTE_NOT_FOUND"},
}

// respondDomainError writes a coded error payload for known domain errors
// and a generic 500 for anything else.
func respondDomainError(log logger.Logger, w http.ResponseWriter, err error) {
	if f, ok := failures[err]; ok {
		respondJSON(log, w, f.status, map[string]string{
			"error": err.Error(),
			"code":  f.code,
		})
		return
	}
	log.Error("unexpected error", map[string]interface{}{"error": err.Error()})
	respondError(log, w, http.StatusInternalServerError, "Internal server error")
}
