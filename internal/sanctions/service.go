package sanctions

import (
	"context"
	"time"

	"github.com/google/uuid"

	"tradesim/internal/domain"
	"tradesim/internal/notification"
	"tradesim/pkg/logger"
)

// Registry is the slice of the store the sanctions service needs.
type Registry interface {
	Sanctions() []domain.Sanction
	AddSanction(ctx context.Context, sanction domain.Sanction) error
	RemoveSanction(ctx context.Context, id uuid.UUID) error
	CountryByID(id uuid.UUID) (domain.Country, bool)
}

type Service struct {
	registry Registry
	notifier notification.Service
	logger   logger.Logger
}

func NewService(registry Registry, notifier notification.Service, log logger.Logger) *Service {
	return &Service{
		registry: registry,
		notifier: notifier,
		logger:   log,
	}
}

type ImposeSanctionRequest struct {
	FromCountryID uuid.UUID               `json:"from_country_id" validate:"required"`
	ToCountryID   uuid.UUID               `json:"to_country_id" validate:"required,nefield=FromCountryID"`
	Type          domain.SanctionType     `json:"type" validate:"required,oneof=embargo tariff financial"`
	Severity      domain.SanctionSeverity `json:"severity" validate:"required,oneof=low medium high"`
	Description   string                  `json:"description" validate:"max=2000"`
}

// Impose records a sanction. An embargo immediately blocks trade between
// the two countries in both directions.
func (s *Service) Impose(ctx context.Context, req *ImposeSanctionRequest) (*domain.Sanction, error) {
	sanction := domain.Sanction{
		ID:            uuid.New(),
		FromCountryID: req.FromCountryID,
		ToCountryID:   req.ToCountryID,
		Type:          req.Type,
		Severity:      req.Severity,
		Description:   req.Description,
		Date:          time.Now(),
	}

	if err := s.registry.AddSanction(ctx, sanction); err != nil {
		return nil, err
	}

	s.logger.Info("Sanction imposed", map[string]interface{}{
		"sanction_id": sanction.ID,
		"from":        sanction.FromCountryID,
		"to":          sanction.ToCountryID,
		"type":        sanction.Type,
		"severity":    sanction.Severity,
	})

	if s.notifier != nil {
		from, _ := s.registry.CountryByID(sanction.FromCountryID)
		to, _ := s.registry.CountryByID(sanction.ToCountryID)
		s.notifier.Notify(ctx, "SANCTION_IMPOSED", map[string]interface{}{
			"from":          from.Name,
			"to":            to.Name,
			"sanction_type": string(sanction.Type),
		})
	}

	return &sanction, nil
}

func (s *Service) List(ctx context.Context) []domain.Sanction {
	return s.registry.Sanctions()
}

// Lift removes a sanction.
func (s *Service) Lift(ctx context.Context, id uuid.UUID) error {
	if err := s.registry.RemoveSanction(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Sanction lifted", map[string]interface{}{"sanction_id": id})
	return nil
}
