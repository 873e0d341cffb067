package trade

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"tradesim/internal/domain"
	"tradesim/internal/notification"
	"tradesim/pkg/errors"
	"tradesim/pkg/logger"
)

// Ledger is the slice of the store the transaction processor needs.
type Ledger interface {
	CountryByID(id uuid.UUID) (domain.Country, bool)
	ProductByID(id uuid.UUID) (domain.Product, bool)
	Sanctions() []domain.Sanction
	ApplyPurchase(ctx context.Context, buyerID, sellerID, productID uuid.UUID, quantity int64, cost decimal.Decimal) error
}

type Service struct {
	ledger   Ledger
	notifier notification.Service
	logger   logger.Logger
}

func NewService(ledger Ledger, notifier notification.Service, log logger.Logger) *Service {
	return &Service{
		ledger:   ledger,
		notifier: notifier,
		logger:   log,
	}
}

type PurchaseRequest struct {
	BuyerCountryID uuid.UUID `json:"buyer_country_id" validate:"required"`
	ProductID      uuid.UUID `json:"product_id" validate:"required"`
	Quantity       int64     `json:"quantity" validate:"required,gt=0"`
}

type PurchaseReceipt struct {
	BuyerID   uuid.UUID       `json:"buyer_id"`
	SellerID  uuid.UUID       `json:"seller_id"`
	ProductID uuid.UUID       `json:"product_id"`
	Product   string          `json:"product"`
	Quantity  int64           `json:"quantity"`
	Cost      decimal.Decimal `json:"cost"`
	ExecutedAt time.Time      `json:"executed_at"`
}

// Purchase executes one trade. Preconditions are checked in a fixed order
// so a request failing several of them reports a deterministic reason:
// buyer, product, self-trade, stock, seller, embargo, funds. The settlement
// itself re-guards stock and funds under the store lock, so a concurrent
// purchase that slipped between check and apply fails cleanly instead of
// driving a balance negative.
func (s *Service) Purchase(ctx context.Context, req *PurchaseRequest) (*PurchaseReceipt, error) {
	buyer, ok := s.ledger.CountryByID(req.BuyerCountryID)
	if !ok {
		return nil, errors.ErrBuyerNotFound
	}

	product, ok := s.ledger.ProductByID(req.ProductID)
	if !ok {
		return nil, errors.ErrProductNotFound
	}

	if product.CountryID == buyer.ID {
		return nil, errors.ErrSelfTrade
	}

	if req.Quantity > product.Quantity {
		return nil, errors.ErrInsufficientStock
	}

	seller, ok := s.ledger.CountryByID(product.CountryID)
	if !ok {
		return nil, errors.ErrSellerNotFound
	}

	if s.embargoed(seller.ID, buyer.ID) {
		return nil, errors.ErrTradeEmbargoed
	}

	cost := product.Price.Mul(decimal.NewFromInt(req.Quantity))
	if buyer.Balance.LessThan(cost) {
		return nil, errors.ErrInsufficientFunds
	}

	if err := s.ledger.ApplyPurchase(ctx, buyer.ID, seller.ID, product.ID, req.Quantity, cost); err != nil {
		return nil, err
	}

	s.logger.Info("Trade executed", map[string]interface{}{
		"buyer":    buyer.Name,
		"seller":   seller.Name,
		"product":  product.Name,
		"quantity": req.Quantity,
		"cost":     cost.String(),
	})

	if s.notifier != nil {
		s.notifier.Notify(ctx, "TRADE_COMPLETED", map[string]interface{}{
			"buyer":    buyer.Name,
			"seller":   seller.Name,
			"product":  product.Name,
			"quantity": req.Quantity,
			"cost":     cost.String(),
		})
	}

	return &PurchaseReceipt{
		BuyerID:    buyer.ID,
		SellerID:   seller.ID,
		ProductID:  product.ID,
		Product:    product.Name,
		Quantity:   req.Quantity,
		Cost:       cost,
		ExecutedAt: time.Now(),
	}, nil
}

// embargoed reports whether an active embargo sanction exists between the
// two countries, in either direction.
func (s *Service) embargoed(a, b uuid.UUID) bool {
	for _, sn := range s.ledger.Sanctions() {
		if sn.Type != domain.SanctionTypeEmbargo {
			continue
		}
		if (sn.FromCountryID == a && sn.ToCountryID == b) || (sn.FromCountryID == b && sn.ToCountryID == a) {
			return true
		}
	}
	return false
}
