package handler

import (
	"github.com/gorilla/mux"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Country       *CountryHandler
	Product       *ProductHandler
	Trade         *TradeHandler
	Analytics     *AnalyticsHandler
	Sanction      *SanctionHandler
	Forum         *ForumHandler
	Organizations *OrganizationsHandler
	Quotes        *QuotesHandler
	Settings      *SettingsHandler
}

// Mount registers every API route under /api/v1 plus the quote stream.
func Mount(r *mux.Router, h Handlers) {
	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/countries", h.Country.Register).Methods("POST")
	api.HandleFunc("/countries", h.Country.List).Methods("GET")
	api.HandleFunc("/countries/{id}", h.Country.Get).Methods("GET")
	api.HandleFunc("/countries/{id}", h.Country.Delete).Methods("DELETE")
	api.HandleFunc("/countries/{id}/trade-items", h.Country.UpdateTradeItems).Methods("PUT")
	api.HandleFunc("/countries/{id}/summary", h.Country.Summary).Methods("GET")

	api.HandleFunc("/products", h.Product.Create).Methods("POST")
	api.HandleFunc("/products", h.Product.List).Methods("GET")
	api.HandleFunc("/products/{id}", h.Product.Get).Methods("GET")
	api.HandleFunc("/products/{id}", h.Product.Delete).Methods("DELETE")

	api.HandleFunc("/trades", h.Trade.Purchase).Methods("POST")

	api.HandleFunc("/analytics/summary", h.Analytics.Summary).Methods("GET")
	api.HandleFunc("/analytics/top-exporters", h.Analytics.TopExporters).Methods("GET")
	api.HandleFunc("/analytics/top-importers", h.Analytics.TopImporters).Methods("GET")
	api.HandleFunc("/analytics/categories", h.Analytics.Categories).Methods("GET")
	api.HandleFunc("/analytics/sanctions", h.Analytics.SanctionCounts).Methods("GET")

	api.HandleFunc("/sanctions", h.Sanction.Impose).Methods("POST")
	api.HandleFunc("/sanctions", h.Sanction.List).Methods("GET")
	api.HandleFunc("/sanctions/{id}", h.Sanction.Lift).Methods("DELETE")

	api.HandleFunc("/forum/posts", h.Forum.Publish).Methods("POST")
	api.HandleFunc("/forum/posts", h.Forum.List).Methods("GET")
	api.HandleFunc("/forum/posts/{id}/like", h.Forum.Like).Methods("POST")

	api.HandleFunc("/organizations/imf-loans", h.Organizations.IssueLoan).Methods("POST")
	api.HandleFunc("/organizations/imf-loans", h.Organizations.Loans).Methods("GET")
	api.HandleFunc("/organizations/wb-projects", h.Organizations.CreateProject).Methods("POST")
	api.HandleFunc("/organizations/wb-projects", h.Organizations.Projects).Methods("GET")
	api.HandleFunc("/organizations/summary", h.Organizations.Summary).Methods("GET")

	api.HandleFunc("/quotes/crypto", h.Quotes.Cryptos).Methods("GET")
	api.HandleFunc("/quotes/crypto/{id}", h.Quotes.Crypto).Methods("GET")
	api.HandleFunc("/quotes/fiat", h.Quotes.Fiats).Methods("GET")

	api.HandleFunc("/settings", h.Settings.Get).Methods("GET")
	api.HandleFunc("/settings", h.Settings.Update).Methods("PUT")
	api.HandleFunc("/settings/clear", h.Settings.Clear).Methods("POST")
	api.HandleFunc("/notifications", h.Settings.Notifications).Methods("GET")

	r.HandleFunc("/ws/quotes", h.Quotes.Stream)
}
