package settings

import (
	"context"

	"tradesim/internal/domain"
	"tradesim/pkg/logger"
)

// Store is the slice of the snapshot store the settings service needs.
type Store interface {
	Settings() domain.Settings
	SaveSettings(ctx context.Context, settings domain.Settings)
	ClearAll(ctx context.Context)
}

// QuoteControl lets the settings service start and stop the quote
// simulator when the auto-refresh toggle changes.
type QuoteControl interface {
	Start()
	Stop()
}

type Service struct {
	store  Store
	quotes QuoteControl
	logger logger.Logger
}

func NewService(store Store, quotes QuoteControl, log logger.Logger) *Service {
	return &Service{
		store:  store,
		quotes: quotes,
		logger: log,
	}
}

func (s *Service) Get(ctx context.Context) domain.Settings {
	return s.store.Settings()
}

type UpdateRequest struct {
	DarkMode      bool `json:"dark_mode"`
	Notifications bool `json:"notifications"`
	AutoRefresh   bool `json:"auto_refresh"`
}

// Update replaces the settings and applies the auto-refresh toggle to the
// quote simulator.
func (s *Service) Update(ctx context.Context, req *UpdateRequest) domain.Settings {
	next := domain.Settings{
		DarkMode:      req.DarkMode,
		Notifications: req.Notifications,
		AutoRefresh:   req.AutoRefresh,
	}
	s.store.SaveSettings(ctx, next)

	if s.quotes != nil {
		if next.AutoRefresh {
			s.quotes.Start()
		} else {
			s.quotes.Stop()
		}
	}

	s.logger.Info("Settings updated", map[string]interface{}{
		"dark_mode":     next.DarkMode,
		"notifications": next.Notifications,
		"auto_refresh":  next.AutoRefresh,
	})
	return next
}

// Clear wipes the entire snapshot store and resets settings to defaults.
// Irreversible; the quote simulator keeps running.
func (s *Service) Clear(ctx context.Context) {
	s.store.ClearAll(ctx)
	s.logger.Warn("All data cleared", nil)
}
