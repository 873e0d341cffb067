package country

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"tradesim/internal/analytics"
	"tradesim/internal/domain"
	"tradesim/pkg/errors"
	"tradesim/pkg/logger"
)

// Registry is the slice of the store the country service needs.
type Registry interface {
	Countries() []domain.Country
	CountryByID(id uuid.UUID) (domain.Country, bool)
	CountryByName(name string) (domain.Country, bool)
	AddCountry(ctx context.Context, country domain.Country) error
	RemoveCountry(ctx context.Context, id uuid.UUID) error
	SetTradeItems(ctx context.Context, id uuid.UUID, exports, imports []domain.TradeItem) error
	Products() []domain.Product
	Sanctions() []domain.Sanction
}

type Service struct {
	registry Registry
	logger   logger.Logger
}

func NewService(registry Registry, log logger.Logger) *Service {
	return &Service{
		registry: registry,
		logger:   log,
	}
}

type RegisterCountryRequest struct {
	Name     string             `json:"name" validate:"required,min=2,max=100"`
	Currency string             `json:"currency" validate:"required,currency_code"`
	Partners string             `json:"partners" validate:"max=500"`
	Notes    string             `json:"notes" validate:"max=2000"`
	Exports  []TradeItemRequest `json:"exports" validate:"dive"`
	Imports  []TradeItemRequest `json:"imports" validate:"dive"`
}

type TradeItemRequest struct {
	Name     string          `json:"name" validate:"required,max=100"`
	Quantity int64           `json:"quantity" validate:"gte=0"`
	Price    decimal.Decimal `json:"price" validate:"gte=0"`
	Partner  string          `json:"partner" validate:"max=100"`
}

// Register creates a country with the standard starting balance. Country
// names are unique; a duplicate is rejected.
func (s *Service) Register(ctx context.Context, req *RegisterCountryRequest) (*domain.Country, error) {
	country := domain.Country{
		ID:            uuid.New(),
		Name:          req.Name,
		Currency:      req.Currency,
		Balance:       domain.StartingBalance,
		TotalExported: decimal.Zero,
		TotalImported: decimal.Zero,
		Partners:      req.Partners,
		Notes:         req.Notes,
		Exports:       toTradeItems(req.Exports),
		Imports:       toTradeItems(req.Imports),
		CreatedAt:     time.Now(),
	}

	if err := s.registry.AddCountry(ctx, country); err != nil {
		return nil, err
	}

	s.logger.Info("Country registered", map[string]interface{}{
		"country_id": country.ID,
		"name":       country.Name,
		"currency":   country.Currency,
	})
	return &country, nil
}

func (s *Service) List(ctx context.Context) []domain.Country {
	return s.registry.Countries()
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Country, error) {
	country, ok := s.registry.CountryByID(id)
	if !ok {
		return nil, errors.ErrCountryNotFound
	}
	return &country, nil
}

// Delete removes a country. The store rejects the delete while products,
// sanctions or posts still reference it.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.registry.RemoveCountry(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Country deleted", map[string]interface{}{"country_id": id})
	return nil
}

type UpdateTradeItemsRequest struct {
	Exports []TradeItemRequest `json:"exports" validate:"dive"`
	Imports []TradeItemRequest `json:"imports" validate:"dive"`
}

// UpdateTradeItems replaces the country's declared export and import lines.
func (s *Service) UpdateTradeItems(ctx context.Context, id uuid.UUID, req *UpdateTradeItemsRequest) (*domain.Country, error) {
	if err := s.registry.SetTradeItems(ctx, id, toTradeItems(req.Exports), toTradeItems(req.Imports)); err != nil {
		return nil, err
	}
	country, _ := s.registry.CountryByID(id)
	return &country, nil
}

type Summary struct {
	Country           *domain.Country `json:"country"`
	TradeBalance      decimal.Decimal `json:"trade_balance"`
	RealizedBalance   decimal.Decimal `json:"realized_balance"`
	ProductsCount     int             `json:"products_count"`
	ExportValue       decimal.Decimal `json:"export_value"`
	ImportValue       decimal.Decimal `json:"import_value"`
	SanctionsImposed  int             `json:"sanctions_imposed"`
	SanctionsReceived int             `json:"sanctions_received"`
}

// Summarize reports a country's trade position. TradeBalance is derived
// from the declared trade line items; RealizedBalance is the delta of the
// running exported/imported counters from executed purchases.
func (s *Service) Summarize(ctx context.Context, id uuid.UUID) (*Summary, error) {
	country, ok := s.registry.CountryByID(id)
	if !ok {
		return nil, errors.ErrCountryNotFound
	}

	exportValue := decimal.Zero
	for _, item := range country.Exports {
		exportValue = exportValue.Add(item.Total())
	}
	importValue := decimal.Zero
	for _, item := range country.Imports {
		importValue = importValue.Add(item.Total())
	}

	count := 0
	for _, p := range s.registry.Products() {
		if p.CountryID == id {
			count++
		}
	}

	imposed, received := 0, 0
	for _, sa := range s.registry.Sanctions() {
		if sa.FromCountryID == id {
			imposed++
		}
		if sa.ToCountryID == id {
			received++
		}
	}

	return &Summary{
		Country:           &country,
		TradeBalance:      analytics.TradeBalance(country),
		RealizedBalance:   country.TotalExported.Sub(country.TotalImported),
		ProductsCount:     count,
		ExportValue:       exportValue,
		ImportValue:       importValue,
		SanctionsImposed:  imposed,
		SanctionsReceived: received,
	}, nil
}

func toTradeItems(reqs []TradeItemRequest) []domain.TradeItem {
	if len(reqs) == 0 {
		return nil
	}
	items := make([]domain.TradeItem, 0, len(reqs))
	for _, r := range reqs {
		items = append(items, domain.TradeItem{
			ID:       uuid.New(),
			Name:     r.Name,
			Quantity: r.Quantity,
			Price:    r.Price,
			Partner:  r.Partner,
		})
	}
	return items
}
