// Package rejectlog writes the records a replay ignored, with the reason, so
// an operator can review them.
package rejectlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/transakt-dev/transakt/internal/ledger"
)

// Header is the CSV header of the report.
const Header = "type,client,tx,amount,reason"

const (
	numFields = 5
	colType   = 0
	colClient = 1
	colTx     = 2
	colAmount = 3
	colReason = 4
)

// MarshalRejection converts a Rejection to a report row.
func MarshalRejection(r ledger.Rejection) []string {
	tx := r.Transaction
	row := make([]string, numFields)
	row[colType] = string(tx.Kind)
	row[colClient] = strconv.FormatUint(uint64(tx.Client), 10)
	row[colTx] = strconv.FormatUint(uint64(tx.Tx), 10)
	if tx.Kind.CarriesAmount() {
		row[colAmount] = tx.Amount.String()
	}
	row[colReason] = string(r.Reason)
	return row
}

// Writer streams rejections as CSV. Write errors are sticky and reported by
// Flush and Close.
type Writer struct {
	cw     *csv.Writer
	closer io.Closer
	count  int
	err    error
}

// NewWriter writes the header to w and returns a Writer.
func NewWriter(w io.Writer) *Writer {
	rw := &Writer{cw: csv.NewWriter(w)}
	rw.setErr(rw.cw.Write(strings.Split(Header, ",")))
	return rw
}

// Create opens path for writing, truncating it, and returns a Writer that
// closes the file on Close.
func Create(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating skipped records report: %w", err)
	}
	rw := NewWriter(f)
	rw.closer = f
	return rw, nil
}

// Record appends one rejection. Its signature matches ledger.WithRejectHandler.
func (w *Writer) Record(r ledger.Rejection) {
	if w.err != nil {
		return
	}
	w.setErr(w.cw.Write(MarshalRejection(r)))
	w.count++
}

// Count returns the number of rejections recorded.
func (w *Writer) Count() int {
	return w.count
}

// Flush writes buffered rows and returns the first error seen.
func (w *Writer) Flush() error {
	w.cw.Flush()
	w.setErr(w.cw.Error())
	if w.err != nil {
		return fmt.Errorf("writing skipped records report: %w", w.err)
	}
	return nil
}

// Close flushes and closes the underlying file, if any.
func (w *Writer) Close() error {
	err := w.Flush()
	if w.closer != nil {
		if cerr := w.closer.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing skipped records report: %w", cerr)
		}
	}
	return err
}

func (w *Writer) setErr(err error) {
	if w.err == nil {
		w.err = err
	}
}
