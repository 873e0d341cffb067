package notification

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradesim/internal/domain"
	"tradesim/pkg/logger"
)

type fakeSettings struct {
	enabled bool
}

func (f *fakeSettings) Settings() domain.Settings {
	return domain.Settings{Notifications: f.enabled}
}

func TestNotifyRespectsToggle(t *testing.T) {
	ctx := context.Background()
	settings := &fakeSettings{enabled: false}
	svc := NewService(logger.NewNop(), settings)

	svc.Notify(ctx, "TRADE_COMPLETED", map[string]interface{}{"buyer": "Borealis"})
	assert.Empty(t, svc.Recent(10))

	settings.enabled = true
	svc.Notify(ctx, "TRADE_COMPLETED", map[string]interface{}{"buyer": "Borealis"})
	assert.Len(t, svc.Recent(10), 1)
}

func TestRecentNewestFirstAndBounded(t *testing.T) {
	ctx := context.Background()
	svc := NewService(logger.NewNop(), &fakeSettings{enabled: true})

	svc.Notify(ctx, "COUNTRY_REGISTERED", map[string]interface{}{"name": "Arcadia", "currency": "AUR"})
	svc.Notify(ctx, "SANCTION_IMPOSED", map[string]interface{}{"from": "Arcadia", "to": "Borealis", "sanction_type": "embargo"})

	recent := svc.Recent(10)
	require.Len(t, recent, 2)
	assert.Equal(t, "SANCTION_IMPOSED", recent[0].Type)
	assert.Equal(t, "COUNTRY_REGISTERED", recent[1].Type)

	one := svc.Recent(1)
	require.Len(t, one, 1)
	assert.Equal(t, "SANCTION_IMPOSED", one[0].Type)
}

func TestNotifyTemplates(t *testing.T) {
	ctx := context.Background()
	svc := NewService(logger.NewNop(), &fakeSettings{enabled: true})

	svc.Notify(ctx, "TRADE_COMPLETED", map[string]interface{}{
		"buyer": "Borealis", "seller": "Arcadia", "product": "Steel", "quantity": int64(20), "cost": "200",
	})

	recent := svc.Recent(1)
	require.Len(t, recent, 1)
	assert.Equal(t, "Trade completed", recent[0].Subject)
	assert.Contains(t, recent[0].Body, "Borealis")
	assert.Contains(t, recent[0].Body, "Steel")
	assert.Equal(t, PriorityHigh, recent[0].Priority)
}
