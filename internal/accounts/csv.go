package accounts

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/transakt-dev/transakt/internal/model"
)

// Header is the CSV header of the account snapshot.
const Header = "client,available,held,total,locked"

const (
	numFields    = 5
	colClient    = 0
	colAvailable = 1
	colHeld      = 2
	colTotal     = 3
	colLocked    = 4
)

// WriteAccounts writes the snapshot table (including header). Rows are
// written in the order given; use Store.All for client id order.
//
// All rows are marshaled before anything is written so a failing row leaves
// w untouched.
func WriteAccounts(w io.Writer, accounts []model.Account) error {
	rows := make([][]string, 0, len(accounts)+1)
	rows = append(rows, strings.Split(Header, ","))
	for _, acct := range accounts {
		row, err := MarshalAccount(acct)
		if err != nil {
			return fmt.Errorf("client %d: %w", acct.Client, err)
		}
		rows = append(rows, row)
	}

	cw := csv.NewWriter(w)
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("writing accounts CSV: %w", err)
	}
	return nil
}

// MarshalAccount converts an Account to a snapshot row.
func MarshalAccount(acct model.Account) ([]string, error) {
	total, err := acct.Total()
	if err != nil {
		return nil, fmt.Errorf("computing total: %w", err)
	}

	row := make([]string, numFields)
	row[colClient] = strconv.FormatUint(uint64(acct.Client), 10)
	row[colAvailable] = acct.Available.String()
	row[colHeld] = acct.Held.String()
	row[colTotal] = total.String()
	row[colLocked] = strconv.FormatBool(acct.Locked)
	return row, nil
}
