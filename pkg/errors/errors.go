// Package errors provides common, reusable error values and helpers.
package errors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// Country errors
	ErrCountryNotFound = errors.New("country not found")
	ErrCountryExists   = errors.New("country name already registered")
	ErrCountryInUse    = errors.New("country is referenced by existing records")

	// Product errors
	ErrProductNotFound = errors.New("product not found")

	// Trade errors
	ErrBuyerNotFound     = errors.New("buyer country not found")
	ErrSelfTrade         = errors.New("a country cannot purchase its own product")
	ErrInsufficientStock = errors.New("insufficient product stock")
	ErrSellerNotFound    = errors.New("seller country not found")
	ErrInsufficientFunds = errors.New("insufficient buyer funds")
	ErrTradeEmbargoed    = errors.New("trade blocked by an active embargo")

	// Sanction errors
	ErrSanctionNotFound = errors.New("sanction not found")

	// Forum errors
	ErrPostNotFound = errors.New("forum post not found")

	// Organization errors
	ErrLoanNotFound    = errors.New("imf loan not found")
	ErrProjectNotFound = errors.New("world bank project not found")

	// Quote errors
	ErrQuoteNotFound = errors.New("quote not found")
)

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
