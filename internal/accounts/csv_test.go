package accounts

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transakt-dev/transakt/internal/model"
	"github.com/transakt-dev/transakt/internal/money"
)

func TestWriteAccounts(t *testing.T) {
	accts := []model.Account{
		{Client: 1, Available: 15000, Held: 0},
		{Client: 2, Available: -10000, Held: 0, Locked: true},
		{Client: 3, Available: 0, Held: 50000},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteAccounts(&buf, accts))

	want := "client,available,held,total,locked\n" +
		"1,1.5000,0.0000,1.5000,false\n" +
		"2,-1.0000,0.0000,-1.0000,true\n" +
		"3,0.0000,5.0000,5.0000,false\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteAccounts_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteAccounts(&buf, nil))
	assert.Equal(t, Header+"\n", buf.String())
}

func TestMarshalAccount(t *testing.T) {
	row, err := MarshalAccount(model.Account{Client: 4294967295, Available: 1, Held: 2})
	require.NoError(t, err)
	assert.Equal(t, "4294967295", row[colClient])
	assert.Equal(t, "0.0001", row[colAvailable])
	assert.Equal(t, "0.0002", row[colHeld])
	assert.Equal(t, "0.0003", row[colTotal])
	assert.Equal(t, "false", row[colLocked])
}

func TestWriteAccounts_TotalOverflow(t *testing.T) {
	accts := []model.Account{
		{Client: 1, Available: 10000},
		{Client: 2, Available: money.Money(math.MaxInt64), Held: 1},
	}

	var buf bytes.Buffer
	err := WriteAccounts(&buf, accts)
	require.Error(t, err)
	assert.ErrorIs(t, err, money.ErrOverflow)
	assert.Empty(t, buf.String(), "no partial output on failure")
}
