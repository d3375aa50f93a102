package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/krzysztofwos/toy-payments-engine/internal/config"
	"github.com/krzysztofwos/toy-payments-engine/internal/ledger"
	"github.com/krzysztofwos/toy-payments-engine/internal/websocket"
)

type stubLedger struct {
	views []ledger.AccountView
}

func (s stubLedger) Snapshot() []ledger.AccountView {
	return s.views
}

func (s stubLedger) Account(client ledger.ClientID) (ledger.AccountView, bool) {
	for _, view := range s.views {
		if view.Client == client {
			return view, true
		}
	}
	return ledger.AccountView{}, false
}

func newTestHandler(views ...ledger.AccountView) *Handler {
	return New(config.Load(), stubLedger{views: views}, websocket.NewHub(), "run-1")
}

func TestListAccounts(t *testing.T) {
	handler := newTestHandler(
		ledger.AccountView{Client: 1, Available: 15000, Held: 0, Total: 15000},
		ledger.AccountView{Client: 2, Available: 0, Held: 0, Total: 0, Locked: true},
	)
	req := httptest.NewRequest(http.MethodGet, "/accounts", nil)
	rr := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var payload []map[string]any
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(payload) != 2 {
		t.Fatalf("unexpected payload: %#v", payload)
	}
	if payload[0]["available"] != "1.5000" || payload[1]["locked"] != true {
		t.Fatalf("unexpected payload: %#v", payload)
	}
}

func TestGetBalance(t *testing.T) {
	handler := newTestHandler(
		ledger.AccountView{Client: 1, Available: -30000, Held: 50000, Total: 20000},
	)
	req := httptest.NewRequest(http.MethodGet, "/accounts/1/balance", nil)
	rr := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var payload map[string]any
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload["available"] != "-3.0000" || payload["held"] != "5.0000" || payload["total"] != "2.0000" {
		t.Fatalf("unexpected payload: %#v", payload)
	}
}

func TestGetBalanceNotFound(t *testing.T) {
	handler := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/accounts/9/balance", nil)
	rr := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestGetBalanceInvalidClient(t *testing.T) {
	handler := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/accounts/not-a-number/balance", nil)
	rr := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestHealth(t *testing.T) {
	handler := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var payload map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload["status"] != "ok" || payload["run_id"] != "run-1" {
		t.Fatalf("unexpected payload: %#v", payload)
	}
}
