package csvio

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/krzysztofwos/toy-payments-engine/internal/ledger"
	"github.com/krzysztofwos/toy-payments-engine/internal/money"
)

// Writer renders account views as the output CSV, one row per client with
// all monetary fields at fixed four-place precision.
type Writer struct {
	csv *csv.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

func (w *Writer) WriteSnapshot(views []ledger.AccountView) error {
	if err := w.csv.Write([]string{"client", "available", "held", "total", "locked"}); err != nil {
		return err
	}
	for _, view := range views {
		row := []string{
			strconv.FormatUint(uint64(view.Client), 10),
			money.FormatMinor(view.Available),
			money.FormatMinor(view.Held),
			money.FormatMinor(view.Total),
			strconv.FormatBool(view.Locked),
		}
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}
	w.csv.Flush()
	return w.csv.Error()
}
