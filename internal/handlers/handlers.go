package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/krzysztofwos/toy-payments-engine/internal/config"
	"github.com/krzysztofwos/toy-payments-engine/internal/ledger"
	"github.com/krzysztofwos/toy-payments-engine/internal/money"
	"github.com/krzysztofwos/toy-payments-engine/internal/websocket"
)

// LedgerReader is the read-only view the API needs from the ledger.
type LedgerReader interface {
	Snapshot() []ledger.AccountView
	Account(ledger.ClientID) (ledger.AccountView, bool)
}

type Handler struct {
	cfg    config.Config
	ledger LedgerReader
	hub    *websocket.Hub
	runID  string
}

func New(cfg config.Config, reader LedgerReader, hub *websocket.Hub, runID string) *Handler {
	return &Handler{
		cfg:    cfg,
		ledger: reader,
		hub:    hub,
		runID:  runID,
	}
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func accountPayload(view ledger.AccountView) map[string]any {
	return map[string]any{
		"client":    view.Client,
		"available": money.FormatMinor(view.Available),
		"held":      money.FormatMinor(view.Held),
		"total":     money.FormatMinor(view.Total),
		"locked":    view.Locked,
	}
}
