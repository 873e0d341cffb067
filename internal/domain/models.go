// Package domain holds the trade simulator's core model types.
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StartingBalance is credited to every country on registration.
var StartingBalance = decimal.NewFromInt(1_000_000)

// Country is a registered trade participant. Balance and the running
// export/import counters are mutated only by the trade processor; the
// export/import line items are edited directly by the owner.
type Country struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	Currency      string          `json:"currency"`
	Balance       decimal.Decimal `json:"balance"`
	TotalExported decimal.Decimal `json:"total_exported"`
	TotalImported decimal.Decimal `json:"total_imported"`
	Partners      string          `json:"partners"`
	Notes         string          `json:"notes"`
	Exports       []TradeItem     `json:"exports"`
	Imports       []TradeItem     `json:"imports"`
	CreatedAt     time.Time       `json:"created_at"`
}

// TradeItem is one export or import line on a country's trade sheet.
type TradeItem struct {
	ID       uuid.UUID       `json:"id"`
	Name     string          `json:"name"`
	Quantity int64           `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Partner  string          `json:"partner"`
}

// Total returns quantity * price for the line.
func (t TradeItem) Total() decimal.Decimal {
	return t.Price.Mul(decimal.NewFromInt(t.Quantity))
}

// ProductType classifies a market listing.
type ProductType string

const (
	ProductTypeRaw      ProductType = "raw"
	ProductTypeGoods    ProductType = "goods"
	ProductTypeServices ProductType = "services"
	ProductTypeTech     ProductType = "tech"
)

// Product is a market listing owned by the producing country. A listing is
// removed, not left at zero, once its stock is exhausted.
type Product struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	CountryID   uuid.UUID       `json:"country_id"`
	Type        ProductType     `json:"type"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int64           `json:"quantity"`
	Unit        string          `json:"unit"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
}

// TotalValue returns price * quantity for the listing.
func (p Product) TotalValue() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(p.Quantity))
}

type SanctionType string

const (
	SanctionTypeEmbargo   SanctionType = "embargo"
	SanctionTypeTariff    SanctionType = "tariff"
	SanctionTypeFinancial SanctionType = "financial"
)

type SanctionSeverity string

const (
	SanctionSeverityLow    SanctionSeverity = "low"
	SanctionSeverityMedium SanctionSeverity = "medium"
	SanctionSeverityHigh   SanctionSeverity = "high"
)

// Sanction is a restriction imposed by one country on another. Sanctions
// never expire; they are lifted by explicit deletion.
type Sanction struct {
	ID            uuid.UUID        `json:"id"`
	FromCountryID uuid.UUID        `json:"from_country_id"`
	ToCountryID   uuid.UUID        `json:"to_country_id"`
	Type          SanctionType     `json:"type"`
	Severity      SanctionSeverity `json:"severity"`
	Description   string           `json:"description"`
	Date          time.Time        `json:"date"`
}

type PostCategory string

const (
	PostCategoryGeneral  PostCategory = "general"
	PostCategoryDeals    PostCategory = "deals"
	PostCategoryAnalysis PostCategory = "analysis"
	PostCategoryNews     PostCategory = "news"
)

// ForumPost is append-only; likes and replies are counters.
type ForumPost struct {
	ID        uuid.UUID    `json:"id"`
	Author    string       `json:"author"`
	CountryID uuid.UUID    `json:"country_id"`
	Title     string       `json:"title"`
	Content   string       `json:"content"`
	Category  PostCategory `json:"category"`
	Date      time.Time    `json:"date"`
	Likes     int          `json:"likes"`
	Replies   int          `json:"replies"`
}

// CryptoCurrency is a simulated exchange quote. PriceHistory holds the
// trailing samples used for charting, newest last.
type CryptoCurrency struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Symbol       string            `json:"symbol"`
	Price        decimal.Decimal   `json:"price"`
	Change24h    float64           `json:"change_24h"`
	MarketCap    decimal.Decimal   `json:"market_cap"`
	Volume24h    decimal.Decimal   `json:"volume_24h"`
	PriceHistory []decimal.Decimal `json:"price_history"`
}

// FiatCurrency is a simulated exchange rate against USD. The USD row itself
// is the anchor: its rate stays at 1.0 across all simulator ticks.
type FiatCurrency struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Code      string          `json:"code"`
	Rate      decimal.Decimal `json:"rate"`
	Change24h float64         `json:"change_24h"`
}

type LoanStatus string

const (
	LoanStatusPending  LoanStatus = "pending"
	LoanStatusApproved LoanStatus = "approved"
	LoanStatusRepaid   LoanStatus = "repaid"
)

// IMFLoan records a financing event. Status is recorded at creation and not
// advanced by any in-scope process.
type IMFLoan struct {
	ID           uuid.UUID       `json:"id"`
	CountryID    uuid.UUID       `json:"country_id"`
	Amount       decimal.Decimal `json:"amount"`
	InterestRate decimal.Decimal `json:"interest_rate"`
	Purpose      string          `json:"purpose"`
	Status       LoanStatus      `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
}

// WBProject records a development financing project.
type WBProject struct {
	ID        uuid.UUID       `json:"id"`
	CountryID uuid.UUID       `json:"country_id"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
	Sector    string          `json:"sector"`
	Progress  int             `json:"progress"`
	CreatedAt time.Time       `json:"created_at"`
}

// Settings are the persisted UI preferences. AutoRefresh gates the quote
// simulator's periodic ticks.
type Settings struct {
	DarkMode      bool `json:"dark_mode"`
	Notifications bool `json:"notifications"`
	AutoRefresh   bool `json:"auto_refresh"`
}

// DefaultSettings returns the settings applied when no snapshot exists.
func DefaultSettings() Settings {
	return Settings{DarkMode: false, Notifications: true, AutoRefresh: true}
}
