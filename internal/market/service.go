package market

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"tradesim/internal/domain"
	"tradesim/pkg/errors"
	"tradesim/pkg/logger"
)

// Catalog is the slice of the store the market service needs.
type Catalog interface {
	Products() []domain.Product
	ProductByID(id uuid.UUID) (domain.Product, bool)
	AddProduct(ctx context.Context, product domain.Product) error
	RemoveProduct(ctx context.Context, id uuid.UUID) error
	CountryByID(id uuid.UUID) (domain.Country, bool)
}

type Service struct {
	catalog Catalog
	logger  logger.Logger
}

func NewService(catalog Catalog, log logger.Logger) *Service {
	return &Service{
		catalog: catalog,
		logger:  log,
	}
}

type ListProductRequest struct {
	Name        string             `json:"name" validate:"required,min=2,max=100"`
	CountryID   uuid.UUID          `json:"country_id" validate:"required"`
	Type        domain.ProductType `json:"type" validate:"required,oneof=raw goods services tech"`
	Price       decimal.Decimal    `json:"price" validate:"gte=0"`
	Quantity    int64              `json:"quantity" validate:"required,gt=0"`
	Unit        string             `json:"unit" validate:"max=30"`
	Description string             `json:"description" validate:"max=2000"`
}

// ListProduct puts a product up for sale on behalf of a country.
func (s *Service) ListProduct(ctx context.Context, req *ListProductRequest) (*domain.Product, error) {
	product := domain.Product{
		ID:          uuid.New(),
		Name:        req.Name,
		CountryID:   req.CountryID,
		Type:        req.Type,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Unit:        req.Unit,
		Description: req.Description,
		CreatedAt:   time.Now(),
	}
	if product.Unit == "" {
		product.Unit = "units"
	}

	if err := s.catalog.AddProduct(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("Product listed", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
		"country_id": product.CountryID,
	})
	return &product, nil
}

// Filter narrows and orders a product listing. Sorting is stable so
// equal-keyed products keep their listing order.
type Filter struct {
	Type      string
	CountryID uuid.UUID
	Query     string
	SortBy    string // "price", "quantity", "name"
	SortDesc  bool
}

func (s *Service) List(ctx context.Context, f Filter) []domain.Product {
	products := s.catalog.Products()

	filtered := products[:0]
	for _, p := range products {
		if f.Type != "" && string(p.Type) != f.Type {
			continue
		}
		if f.CountryID != uuid.Nil && p.CountryID != f.CountryID {
			continue
		}
		if f.Query != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.Query)) {
			continue
		}
		filtered = append(filtered, p)
	}

	switch f.SortBy {
	case "price":
		sort.SliceStable(filtered, func(i, j int) bool {
			if f.SortDesc {
				return filtered[i].Price.GreaterThan(filtered[j].Price)
			}
			return filtered[i].Price.LessThan(filtered[j].Price)
		})
	case "quantity":
		sort.SliceStable(filtered, func(i, j int) bool {
			if f.SortDesc {
				return filtered[i].Quantity > filtered[j].Quantity
			}
			return filtered[i].Quantity < filtered[j].Quantity
		})
	case "name":
		sort.SliceStable(filtered, func(i, j int) bool {
			if f.SortDesc {
				return filtered[i].Name > filtered[j].Name
			}
			return filtered[i].Name < filtered[j].Name
		})
	}

	return filtered
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	product, ok := s.catalog.ProductByID(id)
	if !ok {
		return nil, errors.ErrProductNotFound
	}
	return &product, nil
}

// Delist removes a product from sale.
func (s *Service) Delist(ctx context.Context, id uuid.UUID) error {
	if err := s.catalog.RemoveProduct(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Product delisted", map[string]interface{}{"product_id": id})
	return nil
}
