// Package csvio maps the CSV transaction log onto ledger operations and the
// final snapshot back onto CSV rows.
package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/krzysztofwos/toy-payments-engine/internal/ledger"
	"github.com/krzysztofwos/toy-payments-engine/internal/money"
)

// ErrBadRecord marks a malformed input record. Callers skip these and keep
// reading; any other error from Next is an I/O failure and ends the run.
var ErrBadRecord = errors.New("bad record")

// Reader decodes transaction records of the shape
//
//	type,client,tx,amount
//	deposit,1,1,1.5
//	dispute,1,1
//
// The first row is a header and is discarded. Field counts are flexible and
// fields are trimmed, matching the tolerant input format.
type Reader struct {
	csv        *csv.Reader
	line       int
	skipHeader bool
}

func NewReader(r io.Reader) *Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	return &Reader{csv: cr, skipHeader: true}
}

// Next returns the next well-formed operation. It returns io.EOF once the
// input is exhausted and errors wrapping ErrBadRecord for rows that must be
// skipped.
func (r *Reader) Next() (ledger.Operation, error) {
	for {
		record, err := r.csv.Read()
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				return ledger.Operation{}, fmt.Errorf("%w: %v", ErrBadRecord, err)
			}
			return ledger.Operation{}, err
		}
		r.line++
		if r.skipHeader {
			r.skipHeader = false
			continue
		}
		return r.parse(record)
	}
}

func (r *Reader) parse(record []string) (ledger.Operation, error) {
	if len(record) < 3 {
		return ledger.Operation{}, r.badRecord("expected at least type, client and tx fields")
	}
	for i, field := range record {
		record[i] = strings.TrimSpace(field)
	}

	kind := ledger.Kind(strings.ToLower(record[0]))
	client, err := strconv.ParseUint(record[1], 10, 16)
	if err != nil {
		return ledger.Operation{}, r.badRecord("invalid client id %q", record[1])
	}
	tx, err := strconv.ParseUint(record[2], 10, 32)
	if err != nil {
		return ledger.Operation{}, r.badRecord("invalid transaction id %q", record[2])
	}

	switch kind {
	case ledger.Deposit, ledger.Withdrawal:
		if len(record) < 4 || record[3] == "" {
			return ledger.Operation{}, r.badRecord("%s requires an amount", kind)
		}
		amount, err := money.ParseAmount(record[3])
		if err != nil {
			return ledger.Operation{}, r.badRecord("invalid amount %q: %v", record[3], err)
		}
		if kind == ledger.Deposit {
			return ledger.NewDeposit(ledger.ClientID(client), ledger.TxID(tx), amount), nil
		}
		return ledger.NewWithdrawal(ledger.ClientID(client), ledger.TxID(tx), amount), nil
	case ledger.Dispute:
		// A stray amount on a dispute-lifecycle record is ignored: the
		// referenced deposit already carries the authoritative amount.
		return ledger.NewDispute(ledger.ClientID(client), ledger.TxID(tx)), nil
	case ledger.Resolve:
		return ledger.NewResolve(ledger.ClientID(client), ledger.TxID(tx)), nil
	case ledger.Chargeback:
		return ledger.NewChargeback(ledger.ClientID(client), ledger.TxID(tx)), nil
	default:
		return ledger.Operation{}, r.badRecord("unknown operation type %q", record[0])
	}
}

func (r *Reader) badRecord(format string, args ...any) error {
	detail := fmt.Sprintf(format, args...)
	return fmt.Errorf("%w: line %d: %s", ErrBadRecord, r.line, detail)
}
