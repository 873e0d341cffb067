package quotes

import (
	"math/rand"
	"sync"

	"github.com/shopspring/decimal"

	"tradesim/internal/domain"
	"tradesim/internal/scheduler"
	"tradesim/pkg/config"
	"tradesim/pkg/errors"
	"tradesim/pkg/logger"
)

// priceFloor is the lowest value any quote can reach. A tick can never
// drive a price to zero or below.
var priceFloor = decimal.RequireFromString("0.01")

// anchorCode is the fiat row whose rate is pinned at 1.0 and never
// perturbed.
const anchorCode = "USD"

// Board holds quote state for the simulator.
type Board interface {
	Cryptos() []domain.CryptoCurrency
	Fiats() []domain.FiatCurrency
	ReplaceCryptos([]domain.CryptoCurrency)
	ReplaceFiats([]domain.FiatCurrency)
}

// Service seeds the quote boards and runs the two drift tasks on the
// scheduler: crypto every CryptoInterval with CryptoDriftPct, fiat every
// FiatInterval with FiatDriftPct.
type Service struct {
	board     Board
	scheduler *scheduler.Scheduler
	cfg       config.QuotesConfig
	logger    logger.Logger
	rng       *rand.Rand

	mu           sync.Mutex
	cryptoTaskID string
	fiatTaskID   string
	running      bool
}

func NewService(board Board, sched *scheduler.Scheduler, cfg config.QuotesConfig, log logger.Logger, seed int64) *Service {
	s := &Service{
		board:     board,
		scheduler: sched,
		cfg:       cfg,
		logger:    log,
		rng:       rand.New(rand.NewSource(seed)),
	}
	board.ReplaceCryptos(SeedCryptos())
	board.ReplaceFiats(SeedFiats())
	return s
}

func (s *Service) Cryptos() []domain.CryptoCurrency {
	return s.board.Cryptos()
}

func (s *Service) Fiats() []domain.FiatCurrency {
	return s.board.Fiats()
}

func (s *Service) CryptoByID(id string) (domain.CryptoCurrency, error) {
	for _, c := range s.board.Cryptos() {
		if c.ID == id {
			return c, nil
		}
	}
	return domain.CryptoCurrency{}, errors.ErrQuoteNotFound
}

// Start registers the drift tasks. Calling Start while running is a no-op.
func (s *Service) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	if s.cryptoTaskID == "" {
		crypto := &scheduler.Task{Name: "crypto-drift", Interval: s.cfg.CryptoInterval, Run: s.TickCrypto}
		fiat := &scheduler.Task{Name: "fiat-drift", Interval: s.cfg.FiatInterval, Run: s.TickFiat}
		s.scheduler.Schedule(crypto)
		s.scheduler.Schedule(fiat)
		s.cryptoTaskID = crypto.ID
		s.fiatTaskID = fiat.ID
	} else {
		s.scheduler.Resume(s.cryptoTaskID)
		s.scheduler.Resume(s.fiatTaskID)
	}
	s.running = true
	s.logger.Info("Quote simulator started", map[string]interface{}{
		"crypto_interval": s.cfg.CryptoInterval.String(),
		"fiat_interval":   s.cfg.FiatInterval.String(),
	})
}

// Stop pauses the drift tasks. Prices hold their last value until Start
// is called again.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.scheduler.Pause(s.cryptoTaskID)
	s.scheduler.Pause(s.fiatTaskID)
	s.running = false
	s.logger.Info("Quote simulator stopped", nil)
}

func (s *Service) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// TickCrypto applies one drift step to every crypto quote and rolls the
// trailing price history forward.
func (s *Service) TickCrypto() {
	cryptos := s.board.Cryptos()
	for i := range cryptos {
		drift := s.drift(s.cfg.CryptoDriftPct)
		cryptos[i].Price = perturb(cryptos[i].Price, drift)
		cryptos[i].Change24h = drift
		cryptos[i].PriceHistory = append(cryptos[i].PriceHistory, cryptos[i].Price)
		if n := len(cryptos[i].PriceHistory); n > s.cfg.HistoryLength {
			cryptos[i].PriceHistory = cryptos[i].PriceHistory[n-s.cfg.HistoryLength:]
		}
	}
	s.board.ReplaceCryptos(cryptos)
}

// TickFiat applies one drift step to every fiat rate except the USD anchor.
func (s *Service) TickFiat() {
	fiats := s.board.Fiats()
	for i := range fiats {
		if fiats[i].Code == anchorCode {
			continue
		}
		drift := s.drift(s.cfg.FiatDriftPct)
		fiats[i].Rate = perturb(fiats[i].Rate, drift)
		fiats[i].Change24h = drift
	}
	s.board.ReplaceFiats(fiats)
}

// drift draws a percentage uniformly from [-k, k].
func (s *Service) drift(k float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (s.rng.Float64()*2 - 1) * k
}

// perturb applies a percentage drift to a price, clamping at the floor.
func perturb(price decimal.Decimal, driftPct float64) decimal.Decimal {
	factor := decimal.NewFromFloat(1 + driftPct/100)
	next := price.Mul(factor)
	if next.LessThan(priceFloor) {
		return priceFloor
	}
	return next
}
