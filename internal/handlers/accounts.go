package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/krzysztofwos/toy-payments-engine/internal/ledger"
	"github.com/krzysztofwos/toy-payments-engine/internal/websocket"
)

func (h *Handler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	views := h.ledger.Snapshot()
	payload := make([]map[string]any, 0, len(views))
	for _, view := range views {
		payload = append(payload, accountPayload(view))
	}
	respondJSON(w, http.StatusOK, payload)
}

func (h *Handler) GetBalance(w http.ResponseWriter, r *http.Request) {
	client, err := parseClientID(chi.URLParam(r, "client"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid client id")
		return
	}
	view, ok := h.ledger.Account(client)
	if !ok {
		respondError(w, http.StatusNotFound, "account not found")
		return
	}
	respondJSON(w, http.StatusOK, accountPayload(view))
}

func (h *Handler) WSBalances(w http.ResponseWriter, r *http.Request) {
	client, err := parseClientID(r.URL.Query().Get("client"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid client id")
		return
	}
	websocket.ServeWS(w, r, h.hub, client)
}

func parseClientID(raw string) (ledger.ClientID, error) {
	parsed, err := strconv.ParseUint(raw, 10, 16)
	if err != nil {
		return 0, err
	}
	return ledger.ClientID(parsed), nil
}
