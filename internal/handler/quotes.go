package handler

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"tradesim/internal/quotes"
	"tradesim/pkg/logger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // CORS is enforced at the middleware layer
	},
}

// QuotesHandler serves the simulated crypto and fiat quote boards.
type QuotesHandler struct {
	service  *quotes.Service
	logger   logger.Logger
	interval time.Duration
}

func NewQuotesHandler(service *quotes.Service, log logger.Logger, streamInterval time.Duration) *QuotesHandler {
	return &QuotesHandler{
		service:  service,
		logger:   log,
		interval: streamInterval,
	}
}

func (h *QuotesHandler) Cryptos(w http.ResponseWriter, r *http.Request) {
	respondJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"cryptos": h.service.Cryptos(),
	})
}

func (h *QuotesHandler) Crypto(w http.ResponseWriter, r *http.Request) {
	crypto, err := h.service.CryptoByID(mux.Vars(r)["id"])
	if err != nil {
		respondDomainError(h.logger, w, err)
		return
	}
	respondJSON(h.logger, w, http.StatusOK, crypto)
}

func (h *QuotesHandler) Fiats(w http.ResponseWriter, r *http.Request) {
	respondJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"fiats": h.service.Fiats(),
	})
}

// Stream pushes both quote boards over a websocket: one message on
// connect, then one per stream interval until the client goes away.
func (h *QuotesHandler) Stream(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("WebSocket upgrade failed", map[string]interface{}{"error": err.Error()})
		return
	}
	defer conn.Close()

	h.logger.Info("WebSocket client connected", nil)

	if err := h.sendBoards(conn); err != nil {
		return
	}

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := h.sendBoards(conn); err != nil {
				h.logger.Error("Failed to send quotes", map[string]interface{}{"error": err.Error()})
				return
			}
		case <-r.Context().Done():
			return
		}
	}
}

func (h *QuotesHandler) sendBoards(conn *websocket.Conn) error {
	return conn.WriteJSON(map[string]interface{}{
		"type":      "quotes_update",
		"timestamp": time.Now(),
		"cryptos":   h.service.Cryptos(),
		"fiats":     h.service.Fiats(),
	})
}
