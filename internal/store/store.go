package store

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"tradesim/internal/domain"
	"tradesim/pkg/errors"
	"tradesim/pkg/logger"
)

// Store owns the canonical collections. Every mutation happens under the
// write lock and is followed by a synchronous snapshot save of the affected
// collection. Save failures are logged and swallowed: persistence is
// best-effort, the in-memory state stays authoritative for the session.
//
// Crypto and fiat quote tables live here too but are never snapshotted;
// quotes reset to their seed values on restart by design.
type Store struct {
	mu      sync.RWMutex
	backend Backend
	logger  logger.Logger

	countries []*domain.Country
	products  []*domain.Product
	sanctions []*domain.Sanction
	posts     []*domain.ForumPost
	loans     []*domain.IMFLoan
	projects  []*domain.WBProject
	cryptos   []*domain.CryptoCurrency
	fiats     []*domain.FiatCurrency
	settings  domain.Settings
}

func New(backend Backend, log logger.Logger) *Store {
	return &Store{
		backend:  backend,
		logger:   log,
		settings: domain.DefaultSettings(),
	}
}

// Hydrate loads every collection from the snapshot backend. A missing or
// malformed snapshot hydrates as an empty collection; malformed documents
// are logged so corruption is at least visible.
func (s *Store) Hydrate(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	hydrate(s, ctx, KeyCountries, &s.countries)
	hydrate(s, ctx, KeyProducts, &s.products)
	hydrate(s, ctx, KeySanctions, &s.sanctions)
	hydrate(s, ctx, KeyPosts, &s.posts)
	hydrate(s, ctx, KeyLoans, &s.loans)
	hydrate(s, ctx, KeyProjects, &s.projects)

	settings := domain.DefaultSettings()
	if err := s.backend.Load(ctx, KeySettings, &settings); err != nil && err != ErrNoSnapshot {
		s.logger.Warn("Discarding malformed snapshot", map[string]interface{}{
			"key":   KeySettings,
			"error": err.Error(),
		})
		settings = domain.DefaultSettings()
	}
	s.settings = settings
}

func hydrate[T any](s *Store, ctx context.Context, key string, dest *[]*T) {
	var loaded []*T
	if err := s.backend.Load(ctx, key, &loaded); err != nil {
		if err != ErrNoSnapshot {
			s.logger.Warn("Discarding malformed snapshot", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
		*dest = nil
		return
	}
	*dest = loaded
}

// persist saves one collection, swallowing failures after logging them.
func (s *Store) persist(ctx context.Context, key string, value interface{}) {
	if err := s.backend.Save(ctx, key, value); err != nil {
		s.logger.Warn("Snapshot save failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}

// --- Countries ---

func (s *Store) Countries() []domain.Country {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Country, 0, len(s.countries))
	for _, c := range s.countries {
		out = append(out, cloneCountry(c))
	}
	return out
}

func (s *Store) CountryByID(id uuid.UUID) (domain.Country, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if c := s.findCountry(id); c != nil {
		return cloneCountry(c), true
	}
	return domain.Country{}, false
}

func (s *Store) CountryByName(name string) (domain.Country, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.countries {
		if c.Name == name {
			return cloneCountry(c), true
		}
	}
	return domain.Country{}, false
}

// AddCountry registers a country. The uniqueness check runs under the write
// lock so two concurrent registrations cannot both succeed.
func (s *Store) AddCountry(ctx context.Context, country domain.Country) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.countries {
		if c.Name == country.Name {
			return errors.ErrCountryExists
		}
	}
	c := cloneCountry(&country)
	s.countries = append(s.countries, &c)
	s.persist(ctx, KeyCountries, s.countries)
	return nil
}

// RemoveCountry deletes a country. It refuses while products, sanctions or
// forum posts still reference the country, so no dangling references can be
// created.
func (s *Store) RemoveCountry(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := -1
	for i, c := range s.countries {
		if c.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return errors.ErrCountryNotFound
	}
	for _, p := range s.products {
		if p.CountryID == id {
			return errors.ErrCountryInUse
		}
	}
	for _, sn := range s.sanctions {
		if sn.FromCountryID == id || sn.ToCountryID == id {
			return errors.ErrCountryInUse
		}
	}
	for _, post := range s.posts {
		if post.CountryID == id {
			return errors.ErrCountryInUse
		}
	}
	s.countries = append(s.countries[:idx], s.countries[idx+1:]...)
	s.persist(ctx, KeyCountries, s.countries)
	return nil
}

// SetTradeItems replaces a country's export and import line items.
func (s *Store) SetTradeItems(ctx context.Context, id uuid.UUID, exports, imports []domain.TradeItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.findCountry(id)
	if c == nil {
		return errors.ErrCountryNotFound
	}
	c.Exports = append([]domain.TradeItem(nil), exports...)
	c.Imports = append([]domain.TradeItem(nil), imports...)
	s.persist(ctx, KeyCountries, s.countries)
	return nil
}

func (s *Store) findCountry(id uuid.UUID) *domain.Country {
	for _, c := range s.countries {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// --- Products ---

func (s *Store) Products() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, *p)
	}
	return out
}

func (s *Store) ProductByID(id uuid.UUID) (domain.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.ID == id {
			return *p, true
		}
	}
	return domain.Product{}, false
}

func (s *Store) AddProduct(ctx context.Context, product domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findCountry(product.CountryID) == nil {
		return errors.ErrCountryNotFound
	}
	p := product
	s.products = append(s.products, &p)
	s.persist(ctx, KeyProducts, s.products)
	return nil
}

func (s *Store) RemoveProduct(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.products {
		if p.ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			s.persist(ctx, KeyProducts, s.products)
			return nil
		}
	}
	return errors.ErrProductNotFound
}

// ApplyPurchase performs the settlement of a validated purchase as one
// atomic step: debit the buyer, credit the seller, advance both running
// counters and decrement stock, removing the listing once exhausted. Stock
// and funds are re-checked under the lock so concurrent purchases cannot
// drive a balance or a quantity negative, mirroring a guarded debit.
func (s *Store) ApplyPurchase(ctx context.Context, buyerID, sellerID, productID uuid.UUID, quantity int64, cost decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	buyer := s.findCountry(buyerID)
	if buyer == nil {
		return errors.ErrBuyerNotFound
	}
	seller := s.findCountry(sellerID)
	if seller == nil {
		return errors.ErrSellerNotFound
	}

	idx := -1
	for i, p := range s.products {
		if p.ID == productID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return errors.ErrProductNotFound
	}
	product := s.products[idx]

	if quantity > product.Quantity {
		return errors.ErrInsufficientStock
	}
	if buyer.Balance.LessThan(cost) {
		return errors.ErrInsufficientFunds
	}

	buyer.Balance = buyer.Balance.Sub(cost)
	buyer.TotalImported = buyer.TotalImported.Add(cost)
	seller.Balance = seller.Balance.Add(cost)
	seller.TotalExported = seller.TotalExported.Add(cost)
	product.Quantity -= quantity
	if product.Quantity <= 0 {
		s.products = append(s.products[:idx], s.products[idx+1:]...)
	}

	s.persist(ctx, KeyCountries, s.countries)
	s.persist(ctx, KeyProducts, s.products)
	return nil
}

// --- Sanctions ---

func (s *Store) Sanctions() []domain.Sanction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Sanction, 0, len(s.sanctions))
	for _, sn := range s.sanctions {
		out = append(out, *sn)
	}
	return out
}

func (s *Store) AddSanction(ctx context.Context, sanction domain.Sanction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findCountry(sanction.FromCountryID) == nil || s.findCountry(sanction.ToCountryID) == nil {
		return errors.ErrCountryNotFound
	}
	sn := sanction
	s.sanctions = append(s.sanctions, &sn)
	s.persist(ctx, KeySanctions, s.sanctions)
	return nil
}

func (s *Store) RemoveSanction(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, sn := range s.sanctions {
		if sn.ID == id {
			s.sanctions = append(s.sanctions[:i], s.sanctions[i+1:]...)
			s.persist(ctx, KeySanctions, s.sanctions)
			return nil
		}
	}
	return errors.ErrSanctionNotFound
}

// --- Forum ---

func (s *Store) Posts() []domain.ForumPost {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.ForumPost, 0, len(s.posts))
	for _, p := range s.posts {
		out = append(out, *p)
	}
	return out
}

func (s *Store) AddPost(ctx context.Context, post domain.ForumPost) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := post
	s.posts = append(s.posts, &p)
	s.persist(ctx, KeyPosts, s.posts)
	return nil
}

func (s *Store) LikePost(ctx context.Context, id uuid.UUID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.posts {
		if p.ID == id {
			p.Likes++
			s.persist(ctx, KeyPosts, s.posts)
			return p.Likes, nil
		}
	}
	return 0, errors.ErrPostNotFound
}

// --- Organizations ---

func (s *Store) Loans() []domain.IMFLoan {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.IMFLoan, 0, len(s.loans))
	for _, l := range s.loans {
		out = append(out, *l)
	}
	return out
}

func (s *Store) AddLoan(ctx context.Context, loan domain.IMFLoan) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findCountry(loan.CountryID) == nil {
		return errors.ErrCountryNotFound
	}
	l := loan
	s.loans = append(s.loans, &l)
	s.persist(ctx, KeyLoans, s.loans)
	return nil
}

func (s *Store) Projects() []domain.WBProject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.WBProject, 0, len(s.projects))
	for _, p := range s.projects {
		out = append(out, *p)
	}
	return out
}

func (s *Store) AddProject(ctx context.Context, project domain.WBProject) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findCountry(project.CountryID) == nil {
		return errors.ErrCountryNotFound
	}
	p := project
	s.projects = append(s.projects, &p)
	s.persist(ctx, KeyProjects, s.projects)
	return nil
}

// --- Quotes (not snapshotted) ---

func (s *Store) Cryptos() []domain.CryptoCurrency {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.CryptoCurrency, 0, len(s.cryptos))
	for _, c := range s.cryptos {
		cc := *c
		cc.PriceHistory = append([]decimal.Decimal(nil), c.PriceHistory...)
		out = append(out, cc)
	}
	return out
}

func (s *Store) Fiats() []domain.FiatCurrency {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.FiatCurrency, 0, len(s.fiats))
	for _, f := range s.fiats {
		out = append(out, *f)
	}
	return out
}

func (s *Store) ReplaceCryptos(cryptos []domain.CryptoCurrency) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cryptos = s.cryptos[:0]
	for i := range cryptos {
		c := cryptos[i]
		c.PriceHistory = append([]decimal.Decimal(nil), cryptos[i].PriceHistory...)
		s.cryptos = append(s.cryptos, &c)
	}
}

func (s *Store) ReplaceFiats(fiats []domain.FiatCurrency) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fiats = s.fiats[:0]
	for i := range fiats {
		f := fiats[i]
		s.fiats = append(s.fiats, &f)
	}
}

// --- Settings ---

func (s *Store) Settings() domain.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

func (s *Store) SaveSettings(ctx context.Context, settings domain.Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
	s.persist(ctx, KeySettings, s.settings)
}

// ClearAll wipes every snapshot and resets the collections. Quotes are left
// alone; the simulator reseeds them independently. Irreversible.
func (s *Store) ClearAll(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range AllKeys {
		if err := s.backend.Delete(ctx, key); err != nil {
			s.logger.Warn("Failed to delete snapshot", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
	}
	s.countries = nil
	s.products = nil
	s.sanctions = nil
	s.posts = nil
	s.loans = nil
	s.projects = nil
	s.settings = domain.DefaultSettings()
}

func cloneCountry(c *domain.Country) domain.Country {
	out := *c
	out.Exports = append([]domain.TradeItem(nil), c.Exports...)
	out.Imports = append([]domain.TradeItem(nil), c.Imports...)
	return out
}
