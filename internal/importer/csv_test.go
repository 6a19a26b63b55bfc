package importer

import (
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transakt-dev/transakt/internal/model"
	"github.com/transakt-dev/transakt/internal/money"
)

func readAll(t *testing.T, input string) ([]model.Transaction, error) {
	t.Helper()
	var txs []model.Transaction
	for tx, err := range NewReader(strings.NewReader(input)).All() {
		if err != nil {
			return txs, err
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

func TestReader_Basic(t *testing.T) {
	input := "type,client,tx,amount\n" +
		"deposit,1,1,1.0\n" +
		"withdraw,2,2,0.5\n" +
		"dispute,1,1,\n" +
		"resolve,1,1,\n" +
		"chargeback,1,1,\n"

	txs, err := readAll(t, input)
	require.NoError(t, err)
	require.Len(t, txs, 5)

	assert.Equal(t, model.Transaction{Kind: model.KindDeposit, Client: 1, Tx: 1, Amount: money.Money(10000)}, txs[0])
	assert.Equal(t, model.Transaction{Kind: model.KindWithdraw, Client: 2, Tx: 2, Amount: money.Money(5000)}, txs[1])
	assert.Equal(t, model.KindDispute, txs[2].Kind)
	assert.Equal(t, model.KindResolve, txs[3].Kind)
	assert.Equal(t, model.KindChargeback, txs[4].Kind)
	assert.True(t, txs[4].Amount.IsZero())
}

func TestReader_WhitespaceAndCase(t *testing.T) {
	input := "Type, Client, Tx, Amount\n" +
		"  DEPOSIT ,  3 ,  10 ,  2.5  \n" +
		"Dispute, 3, 10\n"

	txs, err := readAll(t, input)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, model.KindDeposit, txs[0].Kind)
	assert.Equal(t, model.ClientID(3), txs[0].Client)
	assert.Equal(t, model.TxID(10), txs[0].Tx)
	assert.Equal(t, "2.5000", txs[0].Amount.String())
	assert.Equal(t, model.KindDispute, txs[1].Kind)
}

func TestReader_TrailingCommas(t *testing.T) {
	input := "type,client,tx,amount,,\n" +
		"deposit,1,1,1.0,,\n" +
		"dispute,1,1,,,\n"

	txs, err := readAll(t, input)
	require.NoError(t, err)
	assert.Len(t, txs, 2)
}

func TestReader_HeaderWithoutAmount(t *testing.T) {
	txs, err := readAll(t, "type,client,tx\ndispute,1,1\n")
	require.NoError(t, err)
	require.Len(t, txs, 1)
}

func TestReader_Empty(t *testing.T) {
	txs, err := readAll(t, "")
	require.NoError(t, err)
	assert.Empty(t, txs)

	txs, err = readAll(t, "type,client,tx,amount\n")
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestReader_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"bad header", "kind,client,tx,amount\ndeposit,1,1,1.0\n"},
		{"missing header", "deposit,1,1,1.0\n"},
		{"unknown type", "type,client,tx,amount\nrefund,1,1,1.0\n"},
		{"negative client", "type,client,tx,amount\ndeposit,-1,1,1.0\n"},
		{"client too large", "type,client,tx,amount\ndeposit,4294967296,1,1.0\n"},
		{"non-numeric tx", "type,client,tx,amount\ndeposit,1,abc,1.0\n"},
		{"missing amount", "type,client,tx,amount\ndeposit,1,1,\n"},
		{"non-numeric amount", "type,client,tx,amount\nwithdraw,1,1,ten\n"},
		{"zero deposit", "type,client,tx,amount\ndeposit,1,1,0\n"},
		{"negative deposit", "type,client,tx,amount\ndeposit,1,1,-1.0\n"},
		{"too many decimals", "type,client,tx,amount\ndeposit,1,1,1.00001\n"},
		{"amount on dispute", "type,client,tx,amount\ndispute,1,1,1.0\n"},
		{"too few fields", "type,client,tx,amount\ndispute,1\n"},
		{"extra field", "type,client,tx,amount\ndeposit,1,1,1.0,x\n"},
		{"bare quote", "type,client,tx,amount\ndeposit,1,1,\"1.0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := readAll(t, tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedRecord)
		})
	}
}

func TestReader_ErrorCarriesLine(t *testing.T) {
	input := "type,client,tx,amount\n" +
		"deposit,1,1,1.0\n" +
		"\n" +
		"deposit,1,2,oops\n"

	txs, err := readAll(t, input)
	require.Error(t, err)
	assert.Len(t, txs, 1, "rows before the bad one are yielded")
	assert.Contains(t, err.Error(), "line 4")
	assert.Contains(t, err.Error(), `"oops"`)
}

func TestReader_StopsAfterFirstError(t *testing.T) {
	input := "type,client,tx,amount\n" +
		"refund,1,1,1.0\n" +
		"deposit,1,2,1.0\n"

	var errs, ok int
	for _, err := range NewReader(strings.NewReader(input)).All() {
		if err != nil {
			errs++
			continue
		}
		ok++
	}
	assert.Equal(t, 1, errs)
	assert.Equal(t, 0, ok)
}

func TestReader_Next(t *testing.T) {
	r := NewReader(strings.NewReader("type,client,tx,amount\ndeposit,1,1,1\n"))

	tx, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, model.TxID(1), tx.Tx)
	assert.Equal(t, 2, r.Line())

	_, err = r.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestUnmarshalTransaction(t *testing.T) {
	tx, err := UnmarshalTransaction([]string{"withdraw", "9", "12", "0.0001"})
	require.NoError(t, err)
	assert.Equal(t, model.Transaction{Kind: model.KindWithdraw, Client: 9, Tx: 12, Amount: 1}, tx)

	tx, err = UnmarshalTransaction([]string{"chargeback", "4294967295", "4294967295", ""})
	require.NoError(t, err)
	assert.Equal(t, model.ClientID(4294967295), tx.Client)
	assert.Equal(t, model.TxID(4294967295), tx.Tx)
}

func TestReadTestdata(t *testing.T) {
	f, err := os.Open("../../testdata/chargeback.csv")
	require.NoError(t, err)
	defer f.Close()

	var txs []model.Transaction
	for tx, err := range NewReader(f).All() {
		require.NoError(t, err)
		txs = append(txs, tx)
	}
	require.Len(t, txs, 6)
	assert.Equal(t, model.KindWithdraw, txs[1].Kind)
	assert.Equal(t, "1.0000", txs[1].Amount.String())
	assert.Equal(t, model.KindChargeback, txs[3].Kind)
}
