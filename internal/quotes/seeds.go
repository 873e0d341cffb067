package quotes

import (
	"github.com/shopspring/decimal"

	"tradesim/internal/domain"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func history(values ...string) []decimal.Decimal {
	out := make([]decimal.Decimal, 0, len(values))
	for _, v := range values {
		out = append(out, dec(v))
	}
	return out
}

// SeedCryptos returns the initial crypto quote board. Quotes are not
// snapshotted, so every process start begins from these values.
func SeedCryptos() []domain.CryptoCurrency {
	return []domain.CryptoCurrency{
		{ID: "1", Name: "DigiCoin", Symbol: "DGC", Price: dec("42500"), Change24h: 2.5, MarketCap: dec("800000000000"), Volume24h: dec("35000000000"), PriceHistory: history("40000", "41000", "42000", "41500", "42500")},
		{ID: "2", Name: "StateChain", Symbol: "STC", Price: dec("2800"), Change24h: -1.2, MarketCap: dec("320000000000"), Volume24h: dec("18000000000"), PriceHistory: history("2900", "2850", "2820", "2800", "2800")},
		{ID: "3", Name: "TradeToken", Symbol: "TRT", Price: dec("1.05"), Change24h: 0.8, MarketCap: dec("45000000000"), Volume24h: dec("3000000000"), PriceHistory: history("1.02", "1.03", "1.04", "1.05", "1.05")},
		{ID: "4", Name: "GlobalPay", Symbol: "GPY", Price: dec("0.52"), Change24h: 5.2, MarketCap: dec("23000000000"), Volume24h: dec("1200000000"), PriceHistory: history("0.48", "0.49", "0.50", "0.51", "0.52")},
		{ID: "5", Name: "FederalCoin", Symbol: "FDC", Price: dec("125"), Change24h: -3.1, MarketCap: dec("95000000000"), Volume24h: dec("7500000000"), PriceHistory: history("130", "128", "126", "125", "125")},
	}
}

// SeedFiats returns the initial fiat board. USD is the anchor row with a
// fixed rate of 1.0; the simulator never touches it.
func SeedFiats() []domain.FiatCurrency {
	return []domain.FiatCurrency{
		{ID: "1", Name: "US Dollar", Code: "USD", Rate: dec("1.0"), Change24h: 0.0},
		{ID: "2", Name: "Euro", Code: "EUR", Rate: dec("0.92"), Change24h: -0.15},
		{ID: "3", Name: "Russian Ruble", Code: "RUB", Rate: dec("92.5"), Change24h: 0.8},
		{ID: "4", Name: "Chinese Yuan", Code: "CNY", Rate: dec("7.24"), Change24h: -0.3},
		{ID: "5", Name: "British Pound", Code: "GBP", Rate: dec("0.79"), Change24h: 0.2},
		{ID: "6", Name: "Japanese Yen", Code: "JPY", Rate: dec("149.8"), Change24h: 0.5},
	}
}
