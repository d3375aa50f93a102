package ledger

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	ErrAccountLocked        = errors.New("account locked")
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrDuplicateTransaction = errors.New("transaction id already used")
	ErrUnknownTransaction   = errors.New("transaction not found")
	ErrInvalidState         = errors.New("transaction not in a disputable state")
)

type account struct {
	available int64
	held      int64
	locked    bool
}

// depositRecord remembers a successfully applied deposit so that later
// dispute-lifecycle operations can reference it by tx id alone. Records are
// never deleted; after a chargeback they keep rejecting duplicates through
// the account-locked check.
type depositRecord struct {
	client   ClientID
	amount   int64
	disputed bool
}

// AccountView is the snapshot projection of one account. Total is always
// recomputed from available and held.
type AccountView struct {
	Client    ClientID
	Available int64
	Held      int64
	Total     int64
	Locked    bool
}

// Ledger owns the account registry and the disputable-deposit registry and
// applies operations in arrival order. All rejections are local: they leave
// every balance untouched and never stop a run.
type Ledger struct {
	mu       sync.RWMutex
	accounts map[ClientID]*account
	deposits map[TxID]*depositRecord
}

func New() *Ledger {
	return &Ledger{
		accounts: make(map[ClientID]*account),
		deposits: make(map[TxID]*depositRecord),
	}
}

// Apply mutates the ledger according to one operation. It returns one of the
// sentinel errors above when the operation is rejected.
func (l *Ledger) Apply(op Operation) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	switch op.Kind {
	case Deposit:
		return l.deposit(op)
	case Withdrawal:
		return l.withdraw(op)
	case Dispute:
		return l.dispute(op)
	case Resolve:
		return l.resolve(op)
	case Chargeback:
		return l.chargeback(op)
	default:
		return fmt.Errorf("unknown operation kind %q", op.Kind)
	}
}

func (l *Ledger) deposit(op Operation) error {
	acct := l.account(op.Client)
	if acct.locked {
		return ErrAccountLocked
	}
	if _, exists := l.deposits[op.Tx]; exists {
		return ErrDuplicateTransaction
	}
	acct.available += op.Amount
	l.deposits[op.Tx] = &depositRecord{client: op.Client, amount: op.Amount}
	return nil
}

func (l *Ledger) withdraw(op Operation) error {
	acct := l.account(op.Client)
	if acct.locked {
		return ErrAccountLocked
	}
	if acct.available < op.Amount {
		return ErrInsufficientFunds
	}
	acct.available -= op.Amount
	// Withdrawal tx ids are not tracked: withdrawals are not disputable.
	return nil
}

func (l *Ledger) dispute(op Operation) error {
	record, acct, err := l.lookup(op)
	if err != nil {
		return err
	}
	if record.disputed {
		return ErrInvalidState
	}
	// This may drive available negative when the deposited funds were
	// withdrawn before the dispute arrived. The claim still holds.
	acct.available -= record.amount
	acct.held += record.amount
	record.disputed = true
	return nil
}

func (l *Ledger) resolve(op Operation) error {
	record, acct, err := l.lookup(op)
	if err != nil {
		return err
	}
	if !record.disputed {
		return ErrInvalidState
	}
	acct.held -= record.amount
	acct.available += record.amount
	record.disputed = false
	return nil
}

func (l *Ledger) chargeback(op Operation) error {
	record, acct, err := l.lookup(op)
	if err != nil {
		return err
	}
	if !record.disputed {
		return ErrInvalidState
	}
	acct.held -= record.amount
	acct.locked = true
	return nil
}

// lookup resolves the deposit a dispute-lifecycle operation refers to. The
// existence and ownership checks run before anything else so that an unknown
// reference never creates an account as a side effect.
func (l *Ledger) lookup(op Operation) (*depositRecord, *account, error) {
	record, exists := l.deposits[op.Tx]
	if !exists || record.client != op.Client {
		return nil, nil, ErrUnknownTransaction
	}
	acct := l.accounts[record.client]
	if acct.locked {
		return nil, nil, ErrAccountLocked
	}
	return record, acct, nil
}

func (l *Ledger) account(client ClientID) *account {
	acct, exists := l.accounts[client]
	if !exists {
		acct = &account{}
		l.accounts[client] = acct
	}
	return acct
}

// Account returns the current view of one account.
func (l *Ledger) Account(client ClientID) (AccountView, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	acct, exists := l.accounts[client]
	if !exists {
		return AccountView{}, false
	}
	return view(client, acct), true
}

// Snapshot returns one view per known client, ordered by client id.
func (l *Ledger) Snapshot() []AccountView {
	l.mu.RLock()
	defer l.mu.RUnlock()
	views := make([]AccountView, 0, len(l.accounts))
	for client, acct := range l.accounts {
		views = append(views, view(client, acct))
	}
	sort.Slice(views, func(i, j int) bool {
		return views[i].Client < views[j].Client
	})
	return views
}

func view(client ClientID, acct *account) AccountView {
	return AccountView{
		Client:    client,
		Available: acct.available,
		Held:      acct.held,
		Total:     acct.available + acct.held,
		Locked:    acct.locked,
	}
}
