package ledger

// ClientID identifies an account.
type ClientID uint16

// TxID identifies a deposit or withdrawal; dispute-lifecycle operations refer
// back to the deposit that carries the id.
type TxID uint32

type Kind string

const (
	Deposit    Kind = "deposit"
	Withdrawal Kind = "withdrawal"
	Dispute    Kind = "dispute"
	Resolve    Kind = "resolve"
	Chargeback Kind = "chargeback"
)

// Operation is one validated input record. Amount is minor units and is
// meaningful only for Deposit and Withdrawal; the reader guarantees it is
// present and non-negative for those kinds, and the ledger never reads it
// for the dispute-lifecycle kinds.
type Operation struct {
	Kind   Kind
	Client ClientID
	Tx     TxID
	Amount int64
}

func NewDeposit(client ClientID, tx TxID, amount int64) Operation {
	return Operation{Kind: Deposit, Client: client, Tx: tx, Amount: amount}
}

func NewWithdrawal(client ClientID, tx TxID, amount int64) Operation {
	return Operation{Kind: Withdrawal, Client: client, Tx: tx, Amount: amount}
}

func NewDispute(client ClientID, tx TxID) Operation {
	return Operation{Kind: Dispute, Client: client, Tx: tx}
}

func NewResolve(client ClientID, tx TxID) Operation {
	return Operation{Kind: Resolve, Client: client, Tx: tx}
}

func NewChargeback(client ClientID, tx TxID) Operation {
	return Operation{Kind: Chargeback, Client: client, Tx: tx}
}
