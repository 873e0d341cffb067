// Package organizations records IMF loans and World Bank projects. These
// are financing events only: nothing in scope advances a loan's status or
// a project's progress after creation.
package organizations

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"tradesim/internal/domain"
	"tradesim/internal/notification"
	"tradesim/pkg/logger"
)

// Registry is the slice of the store the organizations service needs.
type Registry interface {
	Loans() []domain.IMFLoan
	AddLoan(ctx context.Context, loan domain.IMFLoan) error
	Projects() []domain.WBProject
	AddProject(ctx context.Context, project domain.WBProject) error
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

type IssueLoanRequest struct {
	CountryID    uuid.UUID       `json:"country_id" validate:"required"`
	Amount       decimal.Decimal `json:"amount" validate:"required"`
	InterestRate decimal.Decimal `json:"interest_rate" validate:"gte=0"`
	Purpose      string          `json:"purpose" validate:"max=500"`
}

func (s *Service) IssueLoan(ctx context.Context, req *IssueLoanRequest) (*domain.IMFLoan, error) {
	loan := domain.IMFLoan{
		ID:           uuid.New(),
		CountryID:    req.CountryID,
		Amount:       req.Amount,
		InterestRate: req.InterestRate,
		Purpose:      req.Purpose,
		Status:       domain.LoanStatusPending,
		CreatedAt:    time.Now(),
	}

	if err := s.registry.AddLoan(ctx, loan); err != nil {
		return nil, err
	}

	s.logger.Info("IMF loan issued", map[string]interface{}{
		"loan_id":    loan.ID,
		"country_id": loan.CountryID,
		"amount":     loan.Amount.String(),
	})

	if s.notifier != nil {
		country, _ := s.registry.CountryByID(loan.CountryID)
		s.notifier.Notify(ctx, "LOAN_ISSUED", map[string]interface{}{
			"country": country.Name,
			"amount":  loan.Amount.String(),
		})
	}

	return &loan, nil
}

func (s *Service) Loans(ctx context.Context) []domain.IMFLoan {
	return s.registry.Loans()
}

type CreateProjectRequest struct {
	CountryID uuid.UUID       `json:"country_id" validate:"required"`
	Name      string          `json:"name" validate:"required,min=3,max=200"`
	Amount    decimal.Decimal `json:"amount" validate:"required"`
	Sector    string          `json:"sector" validate:"required,max=100"`
}

func (s *Service) CreateProject(ctx context.Context, req *CreateProjectRequest) (*domain.WBProject, error) {
	project := domain.WBProject{
		ID:        uuid.New(),
		CountryID: req.CountryID,
		Name:      req.Name,
		Amount:    req.Amount,
		Sector:    req.Sector,
		Progress:  0,
		CreatedAt: time.Now(),
	}

	if err := s.registry.AddProject(ctx, project); err != nil {
		return nil, err
	}

	s.logger.Info("World Bank project created", map[string]interface{}{
		"project_id": project.ID,
		"country_id": project.CountryID,
		"sector":     project.Sector,
	})
	return &project, nil
}

func (s *Service) Projects(ctx context.Context) []domain.WBProject {
	return s.registry.Projects()
}

// Summary aggregates both programmes for the organizations dashboard.
type Summary struct {
	LoanCount      int             `json:"loan_count"`
	TotalLoaned    decimal.Decimal `json:"total_loaned"`
	ProjectCount   int             `json:"project_count"`
	TotalInvested  decimal.Decimal `json:"total_invested"`
}

func (s *Service) Summarize(ctx context.Context) Summary {
	loans := s.registry.Loans()
	projects := s.registry.Projects()

	loaned := decimal.Zero
	for _, l := range loans {
		loaned = loaned.Add(l.Amount)
	}
	invested := decimal.Zero
	for _, p := range projects {
		invested = invested.Add(p.Amount)
	}

	return Summary{
		LoanCount:     len(loans),
		TotalLoaned:   loaned,
		ProjectCount:  len(projects),
		TotalInvested: invested,
	}
}
