package market

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradesim/internal/country"
	"tradesim/internal/store"
	"tradesim/pkg/errors"
	"tradesim/pkg/logger"
)

func setup(t *testing.T) (*Service, uuid.UUID, uuid.UUID) {
	t.Helper()
	ctx := context.Background()
	log := logger.NewNop()
	st := store.New(store.NewMemoryBackend(), log)
	st.Hydrate(ctx)

	countries := country.NewService(st, log)
	arcadia, err := countries.Register(ctx, &country.RegisterCountryRequest{Name: "Arcadia", Currency: "AUR"})
	require.NoError(t, err)
	borealis, err := countries.Register(ctx, &country.RegisterCountryRequest{Name: "Borealis", Currency: "BOR"})
	require.NoError(t, err)

	return NewService(st, log), arcadia.ID, borealis.ID
}

func TestListProductRequiresCountry(t *testing.T) {
	svc, _, _ := setup(t)

	_, err := svc.ListProduct(context.Background(), &ListProductRequest{
		Name:      "Steel",
		CountryID: uuid.New(),
		Type:      "raw",
		Price:     decimal.NewFromInt(10),
		Quantity:  100,
	})
	assert.ErrorIs(t, err, errors.ErrCountryNotFound)
}

func TestListProductDefaultsUnit(t *testing.T) {
	svc, arcadia, _ := setup(t)

	p, err := svc.ListProduct(context.Background(), &ListProductRequest{
		Name:      "Steel",
		CountryID: arcadia,
		Type:      "raw",
		Price:     decimal.NewFromInt(10),
		Quantity:  100,
	})
	require.NoError(t, err)
	assert.Equal(t, "units", p.Unit)
}

func TestFilterAndSort(t *testing.T) {
	svc, arcadia, borealis := setup(t)
	ctx := context.Background()

	seed := []ListProductRequest{
		{Name: "Steel", CountryID: arcadia, Type: "raw", Price: decimal.NewFromInt(10), Quantity: 100},
		{Name: "Stainless Steel", CountryID: arcadia, Type: "goods", Price: decimal.NewFromInt(25), Quantity: 40},
		{Name: "Timber", CountryID: borealis, Type: "raw", Price: decimal.NewFromInt(25), Quantity: 500},
		{Name: "Microchips", CountryID: borealis, Type: "tech", Price: decimal.NewFromInt(85), Quantity: 10},
	}
	for i := range seed {
		_, err := svc.ListProduct(ctx, &seed[i])
		require.NoError(t, err)
	}

	t.Run("by type", func(t *testing.T) {
		raw := svc.List(ctx, Filter{Type: "raw"})
		require.Len(t, raw, 2)
	})

	t.Run("by country", func(t *testing.T) {
		got := svc.List(ctx, Filter{CountryID: borealis})
		require.Len(t, got, 2)
		for _, p := range got {
			assert.Equal(t, borealis, p.CountryID)
		}
	})

	t.Run("name search is case-insensitive", func(t *testing.T) {
		got := svc.List(ctx, Filter{Query: "steel"})
		require.Len(t, got, 2)
	})

	t.Run("sort by price ascending, stable on ties", func(t *testing.T) {
		got := svc.List(ctx, Filter{SortBy: "price"})
		require.Len(t, got, 4)
		assert.Equal(t, "Steel", got[0].Name)
		// Stainless Steel listed before Timber at the same price.
		assert.Equal(t, "Stainless Steel", got[1].Name)
		assert.Equal(t, "Timber", got[2].Name)
		assert.Equal(t, "Microchips", got[3].Name)
	})

	t.Run("sort by quantity descending", func(t *testing.T) {
		got := svc.List(ctx, Filter{SortBy: "quantity", SortDesc: true})
		require.Len(t, got, 4)
		assert.Equal(t, "Timber", got[0].Name)
		assert.Equal(t, "Microchips", got[3].Name)
	})
}

func TestDelist(t *testing.T) {
	svc, arcadia, _ := setup(t)
	ctx := context.Background()

	p, err := svc.ListProduct(ctx, &ListProductRequest{
		Name:      "Steel",
		CountryID: arcadia,
		Type:      "raw",
		Price:     decimal.NewFromInt(10),
		Quantity:  100,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delist(ctx, p.ID))
	assert.Empty(t, svc.List(ctx, Filter{}))
	assert.ErrorIs(t, svc.Delist(ctx, p.ID), errors.ErrProductNotFound)
}
