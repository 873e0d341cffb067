// Package analytics computes read-only aggregates over the current
// collections. Everything is recomputed per request; the collections are
// small enough that caching would buy nothing.
package analytics

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"tradesim/internal/domain"
)

// DefaultTopN is how many entries the top-exporter/importer rankings
// return when the caller does not say otherwise.
const DefaultTopN = 5

// Source is the read-only slice of the store analytics works from.
type Source interface {
	Countries() []domain.Country
	Products() []domain.Product
	Sanctions() []domain.Sanction
}

type Service struct {
	source Source
}

func NewService(source Source) *Service {
	return &Service{source: source}
}

// TradeBalance is a country's declared export value minus its declared
// import value, computed from its trade line items.
func TradeBalance(country domain.Country) decimal.Decimal {
	balance := decimal.Zero
	for _, item := range country.Exports {
		balance = balance.Add(item.Total())
	}
	for _, item := range country.Imports {
		balance = balance.Sub(item.Total())
	}
	return balance
}

// TotalTradeVolume is the combined value of every active listing.
func TotalTradeVolume(products []domain.Product) decimal.Decimal {
	total := decimal.Zero
	for _, p := range products {
		total = total.Add(p.TotalValue())
	}
	return total
}

// RankedCountry is one row of a top-exporters or top-importers ranking.
type RankedCountry struct {
	CountryID uuid.UUID       `json:"country_id"`
	Name      string          `json:"name"`
	Total     decimal.Decimal `json:"total"`
}

// TopExporters ranks countries descending by declared export value and
// keeps the first n. The sort is stable: ties keep registration order.
func (s *Service) TopExporters(ctx context.Context, n int) []RankedCountry {
	return rank(s.source.Countries(), n, func(c domain.Country) decimal.Decimal {
		total := decimal.Zero
		for _, item := range c.Exports {
			total = total.Add(item.Total())
		}
		return total
	})
}

// TopImporters is symmetric to TopExporters over declared imports.
func (s *Service) TopImporters(ctx context.Context, n int) []RankedCountry {
	return rank(s.source.Countries(), n, func(c domain.Country) decimal.Decimal {
		total := decimal.Zero
		for _, item := range c.Imports {
			total = total.Add(item.Total())
		}
		return total
	})
}

func rank(countries []domain.Country, n int, total func(domain.Country) decimal.Decimal) []RankedCountry {
	if n <= 0 {
		n = DefaultTopN
	}
	ranked := make([]RankedCountry, 0, len(countries))
	for _, c := range countries {
		ranked = append(ranked, RankedCountry{CountryID: c.ID, Name: c.Name, Total: total(c)})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Total.GreaterThan(ranked[j].Total)
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// SanctionCount splits a country's sanctions into those it imposed and
// those imposed on it.
type SanctionCount struct {
	CountryID uuid.UUID `json:"country_id"`
	Name      string    `json:"name"`
	Incoming  int       `json:"incoming"`
	Outgoing  int       `json:"outgoing"`
	Total     int       `json:"total"`
}

func (s *Service) SanctionCounts(ctx context.Context) []SanctionCount {
	sanctions := s.source.Sanctions()
	countries := s.source.Countries()

	out := make([]SanctionCount, 0, len(countries))
	for _, c := range countries {
		count := SanctionCount{CountryID: c.ID, Name: c.Name}
		for _, sn := range sanctions {
			if sn.ToCountryID == c.ID {
				count.Incoming++
			}
			if sn.FromCountryID == c.ID {
				count.Outgoing++
			}
		}
		count.Total = count.Incoming + count.Outgoing
		out = append(out, count)
	}
	return out
}

// ProductsByCategory group-counts active listings by product type.
func (s *Service) ProductsByCategory(ctx context.Context) map[domain.ProductType]int {
	counts := make(map[domain.ProductType]int)
	for _, p := range s.source.Products() {
		counts[p.Type]++
	}
	return counts
}

// Summary is the dashboard headline block.
type Summary struct {
	Countries        int             `json:"countries"`
	Products         int             `json:"products"`
	Sanctions        int             `json:"sanctions"`
	TotalTradeVolume decimal.Decimal `json:"total_trade_volume"`
	TotalExported    decimal.Decimal `json:"total_exported"`
	TotalImported    decimal.Decimal `json:"total_imported"`
}

func (s *Service) Summarize(ctx context.Context) Summary {
	countries := s.source.Countries()
	products := s.source.Products()

	exported := decimal.Zero
	imported := decimal.Zero
	for _, c := range countries {
		exported = exported.Add(c.TotalExported)
		imported = imported.Add(c.TotalImported)
	}

	return Summary{
		Countries:        len(countries),
		Products:         len(products),
		Sanctions:        len(s.source.Sanctions()),
		TotalTradeVolume: TotalTradeVolume(products),
		TotalExported:    exported,
		TotalImported:    imported,
	}
}
