package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradesim/internal/domain"
	"tradesim/pkg/errors"
	"tradesim/pkg/logger"
)

func newCountry(name string) domain.Country {
	return domain.Country{
		ID:            uuid.New(),
		Name:          name,
		Currency:      "USD",
		Balance:       domain.StartingBalance,
		TotalExported: decimal.Zero,
		TotalImported: decimal.Zero,
		CreatedAt:     time.Now(),
	}
}

func TestHydrateRoundTrip(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()

	first := New(backend, logger.NewNop())
	first.Hydrate(ctx)

	c := newCountry("Arcadia")
	require.NoError(t, first.AddCountry(ctx, c))
	require.NoError(t, first.AddProduct(ctx, domain.Product{
		ID:        uuid.New(),
		Name:      "Steel",
		CountryID: c.ID,
		Type:      domain.ProductTypeRaw,
		Price:     decimal.NewFromInt(10),
		Quantity:  100,
	}))

	// A fresh store over the same backend sees the same state.
	second := New(backend, logger.NewNop())
	second.Hydrate(ctx)

	countries := second.Countries()
	require.Len(t, countries, 1)
	assert.Equal(t, "Arcadia", countries[0].Name)
	assert.True(t, countries[0].Balance.Equal(domain.StartingBalance))

	products := second.Products()
	require.Len(t, products, 1)
	assert.Equal(t, "Steel", products[0].Name)
}

func TestHydrateMalformedSnapshotIsEmpty(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()
	backend.Put(KeyCountries, []byte(`{not json`))
	backend.Put(KeySettings, []byte(`"nope"`))

	s := New(backend, logger.NewNop())
	s.Hydrate(ctx)

	assert.Empty(t, s.Countries())
	assert.Equal(t, domain.DefaultSettings(), s.Settings())
}

func TestAddCountryDuplicateName(t *testing.T) {
	ctx := context.Background()
	s := New(NewMemoryBackend(), logger.NewNop())

	require.NoError(t, s.AddCountry(ctx, newCountry("Arcadia")))
	err := s.AddCountry(ctx, newCountry("Arcadia"))
	assert.ErrorIs(t, err, errors.ErrCountryExists)
	assert.Len(t, s.Countries(), 1)
}

func TestRemoveCountryReferentialIntegrity(t *testing.T) {
	ctx := context.Background()
	s := New(NewMemoryBackend(), logger.NewNop())

	c := newCountry("Arcadia")
	require.NoError(t, s.AddCountry(ctx, c))
	require.NoError(t, s.AddProduct(ctx, domain.Product{
		ID:        uuid.New(),
		Name:      "Steel",
		CountryID: c.ID,
		Type:      domain.ProductTypeRaw,
		Price:     decimal.NewFromInt(10),
		Quantity:  100,
	}))

	err := s.RemoveCountry(ctx, c.ID)
	assert.ErrorIs(t, err, errors.ErrCountryInUse)
	assert.Len(t, s.Countries(), 1)

	products := s.Products()
	require.Len(t, products, 1)
	require.NoError(t, s.RemoveProduct(ctx, products[0].ID))
	assert.NoError(t, s.RemoveCountry(ctx, c.ID))
	assert.Empty(t, s.Countries())
}

func TestApplyPurchaseGuards(t *testing.T) {
	ctx := context.Background()
	s := New(NewMemoryBackend(), logger.NewNop())

	buyer := newCountry("Borealis")
	seller := newCountry("Arcadia")
	require.NoError(t, s.AddCountry(ctx, buyer))
	require.NoError(t, s.AddCountry(ctx, seller))

	productID := uuid.New()
	require.NoError(t, s.AddProduct(ctx, domain.Product{
		ID:        productID,
		Name:      "Steel",
		CountryID: seller.ID,
		Type:      domain.ProductTypeRaw,
		Price:     decimal.NewFromInt(10),
		Quantity:  100,
	}))

	t.Run("insufficient stock", func(t *testing.T) {
		err := s.ApplyPurchase(ctx, buyer.ID, seller.ID, productID, 200, decimal.NewFromInt(2000))
		assert.ErrorIs(t, err, errors.ErrInsufficientStock)
	})

	t.Run("insufficient funds", func(t *testing.T) {
		err := s.ApplyPurchase(ctx, buyer.ID, seller.ID, productID, 50, decimal.NewFromInt(2_000_000))
		assert.ErrorIs(t, err, errors.ErrInsufficientFunds)
	})

	t.Run("unknown buyer", func(t *testing.T) {
		err := s.ApplyPurchase(ctx, uuid.New(), seller.ID, productID, 10, decimal.NewFromInt(100))
		assert.ErrorIs(t, err, errors.ErrBuyerNotFound)
	})

	t.Run("transfer applies atomically", func(t *testing.T) {
		require.NoError(t, s.ApplyPurchase(ctx, buyer.ID, seller.ID, productID, 20, decimal.NewFromInt(200)))

		b, _ := s.CountryByID(buyer.ID)
		sl, _ := s.CountryByID(seller.ID)
		assert.True(t, b.Balance.Equal(decimal.NewFromInt(999_800)), b.Balance.String())
		assert.True(t, b.TotalImported.Equal(decimal.NewFromInt(200)))
		assert.True(t, sl.Balance.Equal(decimal.NewFromInt(1_000_200)), sl.Balance.String())
		assert.True(t, sl.TotalExported.Equal(decimal.NewFromInt(200)))

		p, ok := s.ProductByID(productID)
		require.True(t, ok)
		assert.Equal(t, int64(80), p.Quantity)
	})

	t.Run("product removed at zero quantity", func(t *testing.T) {
		require.NoError(t, s.ApplyPurchase(ctx, buyer.ID, seller.ID, productID, 80, decimal.NewFromInt(800)))
		_, ok := s.ProductByID(productID)
		assert.False(t, ok)
	})
}

func TestClearAllResetsEverything(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()
	s := New(backend, logger.NewNop())

	c := newCountry("Arcadia")
	require.NoError(t, s.AddCountry(ctx, c))
	s.SaveSettings(ctx, domain.Settings{DarkMode: true, Notifications: false, AutoRefresh: false})

	s.ClearAll(ctx)

	assert.Empty(t, s.Countries())
	assert.Equal(t, domain.DefaultSettings(), s.Settings())

	// Snapshots are gone too: a fresh store hydrates empty.
	fresh := New(backend, logger.NewNop())
	fresh.Hydrate(ctx)
	assert.Empty(t, fresh.Countries())
}

func TestLikePostIncrements(t *testing.T) {
	ctx := context.Background()
	s := New(NewMemoryBackend(), logger.NewNop())

	c := newCountry("Arcadia")
	require.NoError(t, s.AddCountry(ctx, c))

	post := domain.ForumPost{
		ID:        uuid.New(),
		Author:    "minister",
		CountryID: c.ID,
		Title:     "Steel prices",
		Content:   "Looking for buyers.",
		Category:  domain.PostCategoryDeals,
		Date:      time.Now(),
	}
	require.NoError(t, s.AddPost(ctx, post))

	likes, err := s.LikePost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, likes)

	likes, err = s.LikePost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, likes)

	_, err = s.LikePost(ctx, uuid.New())
	assert.ErrorIs(t, err, errors.ErrPostNotFound)
}
