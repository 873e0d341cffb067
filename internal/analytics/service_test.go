package analytics

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradesim/internal/domain"
)

type fakeSource struct {
	countries []domain.Country
	products  []domain.Product
	sanctions []domain.Sanction
}

func (f *fakeSource) Countries() []domain.Country  { return f.countries }
func (f *fakeSource) Products() []domain.Product   { return f.products }
func (f *fakeSource) Sanctions() []domain.Sanction { return f.sanctions }

func exporter(name string, total int64) domain.Country {
	return domain.Country{
		ID:   uuid.New(),
		Name: name,
		Exports: []domain.TradeItem{
			{Name: "bulk", Quantity: total, Price: decimal.NewFromInt(1)},
		},
	}
}

func TestTradeBalance(t *testing.T) {
	c := domain.Country{
		Exports: []domain.TradeItem{
			{Quantity: 10, Price: decimal.NewFromInt(5)},  // 50
			{Quantity: 2, Price: decimal.NewFromInt(25)},  // 50
		},
		Imports: []domain.TradeItem{
			{Quantity: 3, Price: decimal.NewFromInt(10)}, // 30
		},
	}
	assert.True(t, TradeBalance(c).Equal(decimal.NewFromInt(70)))
}

func TestTotalTradeVolume(t *testing.T) {
	products := []domain.Product{
		{Price: decimal.NewFromInt(10), Quantity: 100}, // 1000
		{Price: decimal.NewFromInt(3), Quantity: 5},    // 15
	}
	assert.True(t, TotalTradeVolume(products).Equal(decimal.NewFromInt(1015)))
	assert.True(t, TotalTradeVolume(nil).Equal(decimal.Zero))
}

func TestTopExportersOrderAndCap(t *testing.T) {
	src := &fakeSource{countries: []domain.Country{
		exporter("A", 10),
		exporter("B", 50),
		exporter("C", 30),
		exporter("D", 50), // ties with B; B registered first, stays ahead
		exporter("E", 5),
		exporter("F", 40),
	}}
	svc := NewService(src)

	top := svc.TopExporters(context.Background(), 0)
	require.Len(t, top, DefaultTopN)
	names := make([]string, 0, len(top))
	for _, r := range top {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"B", "D", "F", "C", "A"}, names)

	top3 := svc.TopExporters(context.Background(), 3)
	assert.Len(t, top3, 3)
}

func TestTopImportersSymmetry(t *testing.T) {
	a := domain.Country{ID: uuid.New(), Name: "A", Imports: []domain.TradeItem{{Quantity: 2, Price: decimal.NewFromInt(100)}}}
	b := domain.Country{ID: uuid.New(), Name: "B", Imports: []domain.TradeItem{{Quantity: 1, Price: decimal.NewFromInt(50)}}}
	svc := NewService(&fakeSource{countries: []domain.Country{b, a}})

	top := svc.TopImporters(context.Background(), 5)
	require.Len(t, top, 2)
	assert.Equal(t, "A", top[0].Name)
	assert.True(t, top[0].Total.Equal(decimal.NewFromInt(200)))
}

func TestSanctionCounts(t *testing.T) {
	a := domain.Country{ID: uuid.New(), Name: "A"}
	b := domain.Country{ID: uuid.New(), Name: "B"}
	src := &fakeSource{
		countries: []domain.Country{a, b},
		sanctions: []domain.Sanction{
			{FromCountryID: a.ID, ToCountryID: b.ID},
			{FromCountryID: a.ID, ToCountryID: b.ID},
			{FromCountryID: b.ID, ToCountryID: a.ID},
		},
	}
	counts := NewService(src).SanctionCounts(context.Background())
	require.Len(t, counts, 2)

	assert.Equal(t, 2, counts[0].Outgoing)
	assert.Equal(t, 1, counts[0].Incoming)
	assert.Equal(t, 3, counts[0].Total)
	assert.Equal(t, 1, counts[1].Outgoing)
	assert.Equal(t, 2, counts[1].Incoming)
}

func TestProductsByCategory(t *testing.T) {
	src := &fakeSource{products: []domain.Product{
		{Type: domain.ProductTypeRaw},
		{Type: domain.ProductTypeRaw},
		{Type: domain.ProductTypeTech},
	}}
	counts := NewService(src).ProductsByCategory(context.Background())
	assert.Equal(t, 2, counts[domain.ProductTypeRaw])
	assert.Equal(t, 1, counts[domain.ProductTypeTech])
	assert.Equal(t, 0, counts[domain.ProductTypeServices])
}

func TestSummarize(t *testing.T) {
	a := exporter("A", 10)
	a.TotalExported = decimal.NewFromInt(500)
	a.TotalImported = decimal.NewFromInt(200)
	src := &fakeSource{
		countries: []domain.Country{a},
		products:  []domain.Product{{Price: decimal.NewFromInt(10), Quantity: 3}},
		sanctions: []domain.Sanction{{}},
	}
	summary := NewService(src).Summarize(context.Background())
	assert.Equal(t, 1, summary.Countries)
	assert.Equal(t, 1, summary.Products)
	assert.Equal(t, 1, summary.Sanctions)
	assert.True(t, summary.TotalTradeVolume.Equal(decimal.NewFromInt(30)))
	assert.True(t, summary.TotalExported.Equal(decimal.NewFromInt(500)))
	assert.True(t, summary.TotalImported.Equal(decimal.NewFromInt(200)))
}
