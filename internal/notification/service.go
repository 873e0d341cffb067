// Package notification implements the in-process event feed shown on the
// dashboard. Delivery is simulated: events are logged and kept in a bounded
// in-memory ring, newest first.
package notification

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"tradesim/internal/domain"
	"tradesim/pkg/logger"
)

// Priority represents the urgency of the notification.
type Priority int

const (
	PriorityLow    Priority = 0
	PriorityNormal Priority = 1
	PriorityHigh   Priority = 2
)

// Notification represents one feed entry.
type Notification struct {
	ID        uuid.UUID              `json:"id"`
	Type      string                 `json:"type"` // e.g. "TRADE_COMPLETED"
	Priority  Priority               `json:"priority"`
	Subject   string                 `json:"subject"`
	Body      string                 `json:"body"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

// SettingsSource exposes the notifications on/off toggle.
type SettingsSource interface {
	Settings() domain.Settings
}

// Service defines the notification service interface.
type Service interface {
	Notify(ctx context.Context, eventType string, data map[string]interface{})
	Recent(limit int) []Notification
}

const ringSize = 100

// DefaultService is the concrete implementation.
type DefaultService struct {
	logger   logger.Logger
	settings SettingsSource

	mu     sync.Mutex
	recent []Notification
}

func NewService(log logger.Logger, settings SettingsSource) *DefaultService {
	return &DefaultService{
		logger:   log,
		settings: settings,
	}
}

// Notify builds a feed entry from an event type. Events raised while the
// notifications toggle is off are dropped silently.
func (s *DefaultService) Notify(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.settings != nil && !s.settings.Settings().Notifications {
		return
	}

	var subject, body string
	priority := PriorityNormal

	switch eventType {
	case "TRADE_COMPLETED":
		subject = "Trade completed"
		body = fmt.Sprintf("%v bought %v x %v from %v for %v.",
			data["buyer"], data["quantity"], data["product"], data["seller"], data["cost"])
		priority = PriorityHigh

	case "COUNTRY_REGISTERED":
		subject = "Country registered"
		body = fmt.Sprintf("%v joined the market with currency %v.", data["name"], data["currency"])

	case "SANCTION_IMPOSED":
		subject = "Sanction imposed"
		body = fmt.Sprintf("%v imposed a %v sanction on %v.", data["from"], data["sanction_type"], data["to"])
		priority = PriorityHigh

	case "LOAN_ISSUED":
		subject = "IMF loan issued"
		body = fmt.Sprintf("Loan of %v issued to %v.", data["amount"], data["country"])

	default:
		subject = "Notification"
		body = fmt.Sprintf("Event: %s", eventType)
	}

	n := Notification{
		ID:        uuid.New(),
		Type:      eventType,
		Priority:  priority,
		Subject:   subject,
		Body:      body,
		Metadata:  data,
		CreatedAt: time.Now(),
	}

	s.mu.Lock()
	s.recent = append([]Notification{n}, s.recent...)
	if len(s.recent) > ringSize {
		s.recent = s.recent[:ringSize]
	}
	s.mu.Unlock()

	s.logger.Info("Notification raised", map[string]interface{}{
		"notification_id": n.ID,
		"type":            n.Type,
		"subject":         n.Subject,
		"priority":        n.Priority,
	})
}

// Recent returns up to limit entries, newest first.
func (s *DefaultService) Recent(limit int) []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	if limit <= 0 || limit > len(s.recent) {
		limit = len(s.recent)
	}
	out := make([]Notification, limit)
	copy(out, s.recent[:limit])
	return out
}
