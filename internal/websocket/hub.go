package websocket

import (
	"encoding/json"
	"sync"

	"github.com/krzysztofwos/toy-payments-engine/internal/ledger"
)

// BalanceUpdate is pushed to subscribers after every accepted operation that
// touches their account. Monetary fields are pre-formatted strings at the
// output precision.
type BalanceUpdate struct {
	Client    uint16 `json:"client"`
	Available string `json:"available"`
	Held      string `json:"held"`
	Total     string `json:"total"`
	Locked    bool   `json:"locked"`
}

type Hub struct {
	mu      sync.RWMutex
	clients map[ledger.ClientID]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[ledger.ClientID]map[*Client]struct{}),
	}
}

func (h *Hub) Register(client ledger.ClientID, conn *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[client] == nil {
		h.clients[client] = make(map[*Client]struct{})
	}
	h.clients[client][conn] = struct{}{}
}

func (h *Hub) Unregister(client ledger.ClientID, conn *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[client] == nil {
		return
	}
	delete(h.clients[client], conn)
	if len(h.clients[client]) == 0 {
		delete(h.clients, client)
	}
}

// BroadcastBalance delivers an update to every subscriber of the account.
// Slow subscribers are skipped rather than blocking the engine.
func (h *Hub) BroadcastBalance(client ledger.ClientID, update BalanceUpdate) {
	payload, _ := json.Marshal(update)
	h.mu.RLock()
	defer h.mu.RUnlock()
	for conn := range h.clients[client] {
		select {
		case conn.send <- payload:
		default:
		}
	}
}
