// Package importer reads transaction history CSV files.
//
// Rows are parsed lazily, one at a time, so arbitrarily long histories can be
// replayed without loading the whole file.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"iter"
	"strconv"
	"strings"

	"github.com/transakt-dev/transakt/internal/model"
	"github.com/transakt-dev/transakt/internal/money"
)

// Header is the expected header of a transaction CSV. The amount column may
// be omitted from the header.
const Header = "type,client,tx,amount"

// ErrMalformedRecord marks input that cannot be parsed into a transaction.
var ErrMalformedRecord = errors.New("malformed record")

const (
	minFields = 3
	colType   = 0
	colClient = 1
	colTx     = 2
	colAmount = 3
)

// Reader streams transactions from CSV input.
type Reader struct {
	cr         *csv.Reader
	line       int
	headerRead bool
}

// NewReader creates a Reader. The header is validated on the first call to Next.
func NewReader(r io.Reader) *Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true
	return &Reader{cr: cr}
}

// Line returns the input line number of the last record read.
func (r *Reader) Line() int {
	return r.line
}

// Next returns the next transaction, or io.EOF when the input is exhausted.
func (r *Reader) Next() (model.Transaction, error) {
	if !r.headerRead {
		rec, err := r.read()
		if err == io.EOF {
			return model.Transaction{}, io.EOF
		}
		if err != nil {
			return model.Transaction{}, err
		}
		if err := checkHeader(rec); err != nil {
			return model.Transaction{}, fmt.Errorf("line %d: %w", r.line, err)
		}
		r.headerRead = true
	}

	rec, err := r.read()
	if err != nil {
		return model.Transaction{}, err
	}
	tx, err := UnmarshalTransaction(rec)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("line %d: %w", r.line, err)
	}
	return tx, nil
}

// All yields every remaining transaction. Iteration stops after the first
// error, which is yielded with a zero transaction.
func (r *Reader) All() iter.Seq2[model.Transaction, error] {
	return func(yield func(model.Transaction, error) bool) {
		for {
			tx, err := r.Next()
			if err == io.EOF {
				return
			}
			if err != nil {
				yield(model.Transaction{}, err)
				return
			}
			if !yield(tx, nil) {
				return
			}
		}
	}
}

func (r *Reader) read() ([]string, error) {
	rec, err := r.cr.Read()
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			return nil, fmt.Errorf("line %d: %w: %w", perr.StartLine, ErrMalformedRecord, err)
		}
		return nil, fmt.Errorf("reading transactions CSV: %w", err)
	}
	r.line, _ = r.cr.FieldPos(0)
	return rec, nil
}

func checkHeader(rec []string) error {
	want := strings.Split(Header, ",")
	fields := trimTrailingEmpty(rec)
	if len(fields) < minFields || len(fields) > len(want) {
		return fmt.Errorf("%w: header %q, want %q", ErrMalformedRecord, strings.Join(rec, ","), Header)
	}
	for i, f := range fields {
		if !strings.EqualFold(strings.TrimSpace(f), want[i]) {
			return fmt.Errorf("%w: header column %d is %q, want %q", ErrMalformedRecord, i+1, f, want[i])
		}
	}
	return nil
}

// UnmarshalTransaction converts one CSV record to a Transaction. Fields are
// trimmed; empty trailing fields are ignored.
func UnmarshalTransaction(record []string) (model.Transaction, error) {
	fields := trimTrailingEmpty(record)
	if len(fields) < minFields {
		return model.Transaction{}, fmt.Errorf("%w: expected at least %d fields, got %d", ErrMalformedRecord, minFields, len(fields))
	}
	if len(fields) > colAmount+1 {
		return model.Transaction{}, fmt.Errorf("%w: unexpected field %q", ErrMalformedRecord, fields[colAmount+1])
	}

	kind, err := model.ParseKind(fields[colType])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("%w: %w", ErrMalformedRecord, err)
	}

	client, err := parseID(fields[colClient])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("%w: parsing client %q: %w", ErrMalformedRecord, fields[colClient], err)
	}

	tx, err := parseID(fields[colTx])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("%w: parsing tx %q: %w", ErrMalformedRecord, fields[colTx], err)
	}

	var rawAmount string
	if len(fields) > colAmount {
		rawAmount = strings.TrimSpace(fields[colAmount])
	}

	t := model.Transaction{
		Kind:   kind,
		Client: model.ClientID(client),
		Tx:     model.TxID(tx),
	}

	if !kind.CarriesAmount() {
		if rawAmount != "" {
			return model.Transaction{}, fmt.Errorf("%w: %s must not carry an amount, got %q", ErrMalformedRecord, kind, rawAmount)
		}
		return t, nil
	}

	if rawAmount == "" {
		return model.Transaction{}, fmt.Errorf("%w: %s requires an amount", ErrMalformedRecord, kind)
	}
	amount, err := money.Parse(rawAmount)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("%w: parsing amount %q: %w", ErrMalformedRecord, rawAmount, err)
	}
	if !amount.IsPositive() {
		return model.Transaction{}, fmt.Errorf("%w: %s amount must be positive, got %s", ErrMalformedRecord, kind, amount)
	}
	t.Amount = amount
	return t, nil
}

func parseID(s string) (uint32, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}

func trimTrailingEmpty(record []string) []string {
	n := len(record)
	for n > 0 && strings.TrimSpace(record[n-1]) == "" {
		n--
	}
	return record[:n]
}
