package trade

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradesim/internal/country"
	"tradesim/internal/market"
	"tradesim/internal/sanctions"
	"tradesim/internal/store"
	"tradesim/pkg/errors"
	"tradesim/pkg/logger"
)

type world struct {
	store    *store.Store
	trade    *Service
	arcadia  uuid.UUID
	borealis uuid.UUID
	steel    uuid.UUID
}

// setupWorld registers Arcadia and Borealis and lists Arcadia's Steel at
// price 10, quantity 100.
func setupWorld(t *testing.T) *world {
	t.Helper()
	ctx := context.Background()
	log := logger.NewNop()

	st := store.New(store.NewMemoryBackend(), log)
	st.Hydrate(ctx)

	countries := country.NewService(st, log)
	products := market.NewService(st, log)

	arcadia, err := countries.Register(ctx, &country.RegisterCountryRequest{Name: "Arcadia", Currency: "AUR"})
	require.NoError(t, err)
	borealis, err := countries.Register(ctx, &country.RegisterCountryRequest{Name: "Borealis", Currency: "BOR"})
	require.NoError(t, err)

	steel, err := products.ListProduct(ctx, &market.ListProductRequest{
		Name:      "Steel",
		CountryID: arcadia.ID,
		Type:      "raw",
		Price:     decimal.NewFromInt(10),
		Quantity:  100,
		Unit:      "tons",
	})
	require.NoError(t, err)

	return &world{
		store:    st,
		trade:    NewService(st, nil, log),
		arcadia:  arcadia.ID,
		borealis: borealis.ID,
		steel:    steel.ID,
	}
}

func TestPurchaseTransfersBalanceAndStock(t *testing.T) {
	ctx := context.Background()
	w := setupWorld(t)

	receipt, err := w.trade.Purchase(ctx, &PurchaseRequest{
		BuyerCountryID: w.borealis,
		ProductID:      w.steel,
		Quantity:       20,
	})
	require.NoError(t, err)
	assert.True(t, receipt.Cost.Equal(decimal.NewFromInt(200)))

	arcadia, _ := w.store.CountryByID(w.arcadia)
	borealis, _ := w.store.CountryByID(w.borealis)

	assert.True(t, arcadia.Balance.Equal(decimal.NewFromInt(1_000_200)), arcadia.Balance.String())
	assert.True(t, arcadia.TotalExported.Equal(decimal.NewFromInt(200)))
	assert.True(t, borealis.Balance.Equal(decimal.NewFromInt(999_800)), borealis.Balance.String())
	assert.True(t, borealis.TotalImported.Equal(decimal.NewFromInt(200)))

	steel, ok := w.store.ProductByID(w.steel)
	require.True(t, ok)
	assert.Equal(t, int64(80), steel.Quantity)
}

func TestPurchaseConservesMoney(t *testing.T) {
	ctx := context.Background()
	w := setupWorld(t)

	before := func() decimal.Decimal {
		a, _ := w.store.CountryByID(w.arcadia)
		b, _ := w.store.CountryByID(w.borealis)
		return a.Balance.Add(b.Balance)
	}()

	_, err := w.trade.Purchase(ctx, &PurchaseRequest{
		BuyerCountryID: w.borealis,
		ProductID:      w.steel,
		Quantity:       37,
	})
	require.NoError(t, err)

	after := func() decimal.Decimal {
		a, _ := w.store.CountryByID(w.arcadia)
		b, _ := w.store.CountryByID(w.borealis)
		return a.Balance.Add(b.Balance)
	}()

	assert.True(t, before.Equal(after), "combined balance changed: %s -> %s", before, after)
}

func TestPurchaseInsufficientStock(t *testing.T) {
	ctx := context.Background()
	w := setupWorld(t)

	_, err := w.trade.Purchase(ctx, &PurchaseRequest{
		BuyerCountryID: w.borealis,
		ProductID:      w.steel,
		Quantity:       200,
	})
	assert.ErrorIs(t, err, errors.ErrInsufficientStock)
	assertUnchanged(t, w)
}

func TestPurchaseSelfTrade(t *testing.T) {
	ctx := context.Background()
	w := setupWorld(t)

	_, err := w.trade.Purchase(ctx, &PurchaseRequest{
		BuyerCountryID: w.arcadia,
		ProductID:      w.steel,
		Quantity:       5,
	})
	assert.ErrorIs(t, err, errors.ErrSelfTrade)
	assertUnchanged(t, w)
}

func TestPurchaseInsufficientFunds(t *testing.T) {
	ctx := context.Background()
	w := setupWorld(t)

	// Drain Borealis with a listing priced above its balance.
	log := logger.NewNop()
	products := market.NewService(w.store, log)
	gold, err := products.ListProduct(ctx, &market.ListProductRequest{
		Name:      "Gold",
		CountryID: w.arcadia,
		Type:      "raw",
		Price:     decimal.NewFromInt(2_000_000),
		Quantity:  10,
	})
	require.NoError(t, err)

	_, err = w.trade.Purchase(ctx, &PurchaseRequest{
		BuyerCountryID: w.borealis,
		ProductID:      gold.ID,
		Quantity:       1,
	})
	assert.ErrorIs(t, err, errors.ErrInsufficientFunds)
	assertUnchanged(t, w)
}

func TestPurchaseUnknownBuyer(t *testing.T) {
	ctx := context.Background()
	w := setupWorld(t)

	_, err := w.trade.Purchase(ctx, &PurchaseRequest{
		BuyerCountryID: uuid.New(),
		ProductID:      w.steel,
		Quantity:       5,
	})
	assert.ErrorIs(t, err, errors.ErrBuyerNotFound)
}

func TestPurchaseUnknownProduct(t *testing.T) {
	ctx := context.Background()
	w := setupWorld(t)

	_, err := w.trade.Purchase(ctx, &PurchaseRequest{
		BuyerCountryID: w.borealis,
		ProductID:      uuid.New(),
		Quantity:       5,
	})
	assert.ErrorIs(t, err, errors.ErrProductNotFound)
}

func TestPurchaseRemovesExhaustedProduct(t *testing.T) {
	ctx := context.Background()
	w := setupWorld(t)

	_, err := w.trade.Purchase(ctx, &PurchaseRequest{
		BuyerCountryID: w.borealis,
		ProductID:      w.steel,
		Quantity:       100,
	})
	require.NoError(t, err)

	_, ok := w.store.ProductByID(w.steel)
	assert.False(t, ok, "product should be removed once quantity reaches zero")
}

func TestPurchaseBlockedByEmbargo(t *testing.T) {
	ctx := context.Background()
	w := setupWorld(t)
	log := logger.NewNop()

	sanctionSvc := sanctions.NewService(w.store, nil, log)
	_, err := sanctionSvc.Impose(ctx, &sanctions.ImposeSanctionRequest{
		FromCountryID: w.arcadia,
		ToCountryID:   w.borealis,
		Type:          "embargo",
		Severity:      "high",
	})
	require.NoError(t, err)

	_, err = w.trade.Purchase(ctx, &PurchaseRequest{
		BuyerCountryID: w.borealis,
		ProductID:      w.steel,
		Quantity:       5,
	})
	assert.ErrorIs(t, err, errors.ErrTradeEmbargoed)
	assertUnchanged(t, w)
}

func TestTariffDoesNotBlockTrade(t *testing.T) {
	ctx := context.Background()
	w := setupWorld(t)
	log := logger.NewNop()

	sanctionSvc := sanctions.NewService(w.store, nil, log)
	_, err := sanctionSvc.Impose(ctx, &sanctions.ImposeSanctionRequest{
		FromCountryID: w.arcadia,
		ToCountryID:   w.borealis,
		Type:          "tariff",
		Severity:      "high",
	})
	require.NoError(t, err)

	_, err = w.trade.Purchase(ctx, &PurchaseRequest{
		BuyerCountryID: w.borealis,
		ProductID:      w.steel,
		Quantity:       5,
	})
	assert.NoError(t, err)
}

// assertUnchanged verifies the initial world state survived a failed trade.
func assertUnchanged(t *testing.T, w *world) {
	t.Helper()
	arcadia, _ := w.store.CountryByID(w.arcadia)
	borealis, _ := w.store.CountryByID(w.borealis)
	assert.True(t, arcadia.Balance.Equal(decimal.NewFromInt(1_000_000)))
	assert.True(t, arcadia.TotalExported.Equal(decimal.Zero))
	assert.True(t, borealis.Balance.Equal(decimal.NewFromInt(1_000_000)))
	assert.True(t, borealis.TotalImported.Equal(decimal.Zero))

	steel, ok := w.store.ProductByID(w.steel)
	require.True(t, ok)
	assert.Equal(t, int64(100), steel.Quantity)
}
