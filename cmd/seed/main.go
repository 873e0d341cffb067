// Seeding tool: loads a small demo world (two countries, a few listings,
// one sanction) into the snapshot store so the API has data to serve.
// Reads REDIS_URL and friends via tradesim/pkg/config.
package main

import (
	"context"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"tradesim/internal/country"
	"tradesim/internal/domain"
	"tradesim/internal/market"
	"tradesim/internal/sanctions"
	"tradesim/internal/store"
	"tradesim/pkg/config"
	"tradesim/pkg/errors"
	"tradesim/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	log := logger.New("seed")
	cfg := config.Load()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.URL,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	ctx := context.Background()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal("Failed to connect to Redis", map[string]interface{}{"error": err.Error()})
	}

	st := store.New(store.NewRedisBackend(redisClient, ""), log)
	st.Hydrate(ctx)

	countryService := country.NewService(st, log)
	marketService := market.NewService(st, log)
	sanctionService := sanctions.NewService(st, nil, log)

	arcadia := ensureCountry(ctx, st, countryService, log, &country.RegisterCountryRequest{
		Name:     "Arcadia",
		Currency: "AUR",
		Partners: "Borealis, Meridia",
		Notes:    "Industrial exporter, steel and machinery.",
	})
	borealis := ensureCountry(ctx, st, countryService, log, &country.RegisterCountryRequest{
		Name:     "Borealis",
		Currency: "BOR",
		Partners: "Arcadia",
		Notes:    "Resource-rich importer of finished goods.",
	})
	meridia := ensureCountry(ctx, st, countryService, log, &country.RegisterCountryRequest{
		Name:     "Meridia",
		Currency: "MER",
		Notes:    "Services and technology hub.",
	})

	if len(st.Products()) > 0 || len(st.Sanctions()) > 0 {
		log.Info("Store already seeded, leaving listings untouched", nil)
		return
	}

	listings := []market.ListProductRequest{
		{Name: "Steel", CountryID: arcadia.ID, Type: "raw", Price: decimal.NewFromInt(10), Quantity: 100, Unit: "tons"},
		{Name: "Machinery", CountryID: arcadia.ID, Type: "goods", Price: decimal.NewFromInt(2500), Quantity: 20, Unit: "units"},
		{Name: "Timber", CountryID: borealis.ID, Type: "raw", Price: decimal.NewFromInt(45), Quantity: 500, Unit: "tons"},
		{Name: "Cloud Hosting", CountryID: meridia.ID, Type: "services", Price: decimal.NewFromInt(120), Quantity: 1000, Unit: "instances"},
		{Name: "Microchips", CountryID: meridia.ID, Type: "tech", Price: decimal.NewFromInt(85), Quantity: 3000, Unit: "units"},
	}
	for i := range listings {
		if _, err := marketService.ListProduct(ctx, &listings[i]); err != nil {
			log.Fatal("Failed to seed product", map[string]interface{}{
				"name":  listings[i].Name,
				"error": err.Error(),
			})
		}
	}

	if _, err := sanctionService.Impose(ctx, &sanctions.ImposeSanctionRequest{
		FromCountryID: arcadia.ID,
		ToCountryID:   meridia.ID,
		Type:          "tariff",
		Severity:      "low",
		Description:   "Import tariff on technology goods.",
	}); err != nil {
		log.Fatal("Failed to seed sanction", map[string]interface{}{"error": err.Error()})
	}

	log.Info("Seed complete", map[string]interface{}{
		"countries": 3,
		"products":  len(listings),
		"sanctions": 1,
	})
}

// ensureCountry registers the country, falling back to the existing record
// so re-running the seeder is harmless.
func ensureCountry(ctx context.Context, st *store.Store, svc *country.Service, log logger.Logger, req *country.RegisterCountryRequest) *domain.Country {
	created, err := svc.Register(ctx, req)
	if err == nil {
		return created
	}
	if err == errors.ErrCountryExists {
		existing, _ := st.CountryByName(req.Name)
		return &existing
	}
	log.Fatal("Failed to seed country", map[string]interface{}{
		"name":  req.Name,
		"error": err.Error(),
	})
	return nil
}
