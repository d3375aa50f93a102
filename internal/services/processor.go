package services

import (
	"errors"
	"io"
	"log"

	"github.com/google/uuid"

	"github.com/krzysztofwos/toy-payments-engine/internal/csvio"
	"github.com/krzysztofwos/toy-payments-engine/internal/ledger"
	"github.com/krzysztofwos/toy-payments-engine/internal/money"
	"github.com/krzysztofwos/toy-payments-engine/internal/websocket"
)

// Source yields validated operations in input order. It returns io.EOF when
// the log is exhausted and errors wrapping csvio.ErrBadRecord for records
// that should be skipped.
type Source interface {
	Next() (ledger.Operation, error)
}

// Sink receives the final snapshot once the whole log has been applied.
type Sink interface {
	WriteSnapshot([]ledger.AccountView) error
}

type Ledger interface {
	Apply(ledger.Operation) error
	Account(ledger.ClientID) (ledger.AccountView, bool)
	Snapshot() []ledger.AccountView
}

type BalanceHub interface {
	BroadcastBalance(client ledger.ClientID, update websocket.BalanceUpdate)
}

// Stats summarizes one run. Rejected counts operations the ledger refused;
// Malformed counts records that never reached it.
type Stats struct {
	Applied   int
	Rejected  int
	Malformed int
}

// Processor drives the operation stream through the ledger and hands the
// snapshot to the sink. Rejections are diagnostics, never failures: the run
// only errors out on I/O.
type Processor struct {
	ledger Ledger
	hub    BalanceHub
	runID  string
}

func NewProcessor(l Ledger, hub BalanceHub) *Processor {
	return &Processor{
		ledger: l,
		hub:    hub,
		runID:  uuid.NewString(),
	}
}

func (p *Processor) RunID() string {
	return p.runID
}

func (p *Processor) Run(src Source, sink Sink) (Stats, error) {
	var stats Stats
	for {
		op, err := src.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			if errors.Is(err, csvio.ErrBadRecord) {
				log.Printf("run %s: warning: %v", p.runID, err)
				stats.Malformed++
				continue
			}
			return stats, err
		}
		if err := p.ledger.Apply(op); err != nil {
			log.Printf("run %s: warning: %s client=%d tx=%d rejected: %v", p.runID, op.Kind, op.Client, op.Tx, err)
			stats.Rejected++
			continue
		}
		stats.Applied++
		p.broadcast(op.Client)
	}

	views := p.ledger.Snapshot()
	if err := sink.WriteSnapshot(views); err != nil {
		return stats, err
	}
	log.Printf("run %s: %d applied, %d rejected, %d malformed, %d accounts", p.runID, stats.Applied, stats.Rejected, stats.Malformed, len(views))
	return stats, nil
}

func (p *Processor) broadcast(client ledger.ClientID) {
	if p.hub == nil {
		return
	}
	view, ok := p.ledger.Account(client)
	if !ok {
		return
	}
	p.hub.BroadcastBalance(client, websocket.BalanceUpdate{
		Client:    uint16(view.Client),
		Available: money.FormatMinor(view.Available),
		Held:      money.FormatMinor(view.Held),
		Total:     money.FormatMinor(view.Total),
		Locked:    view.Locked,
	})
}
