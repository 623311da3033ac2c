package models

import (
	"encoding/json"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyTransaction(t *testing.T) {
	tests := []struct {
		name    string
		total   int32
		limit   uint32
		signed  int64
		want    int32
		wantErr error
	}{
		{name: "deposit", total: 0, limit: 1000, signed: 500, want: 500},
		{name: "withdraw down to limit", total: 0, limit: 1000, signed: -1000, want: -1000},
		{name: "withdraw past limit", total: -1000, limit: 1000, signed: -1, want: -1000, wantErr: ErrLimitExceeded},
		{name: "deposit from the floor", total: -1000, limit: 1000, signed: 1, want: -999},
		{name: "zero limit", total: 0, limit: 0, signed: -1, want: 0, wantErr: ErrLimitExceeded},
		{name: "overflow", total: math.MaxInt32, limit: 0, signed: 1, want: math.MaxInt32, wantErr: ErrBalanceOverflow},
		{name: "underflow within a huge limit", total: math.MinInt32, limit: math.MaxUint32, signed: -1, want: math.MinInt32, wantErr: ErrBalanceOverflow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ApplyTransaction(tt.total, tt.limit, tt.signed)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBalanceOverflow_IsLimitRejection(t *testing.T) {
	_, err := ApplyTransaction(math.MaxInt32, 0, 1)
	assert.ErrorIs(t, err, ErrLimitExceeded)
	assert.NotErrorIs(t, ErrLimitExceeded, ErrBalanceOverflow)
}

func TestApplyTransaction_HoldsInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	const limit = uint32(5000)
	total := int32(0)

	for i := 0; i < 10000; i++ {
		signed := int64(rng.Intn(2000)) - 1000
		next, err := ApplyTransaction(total, limit, signed)
		if err != nil {
			assert.Equal(t, total, next)
		}
		total = next
		require.GreaterOrEqual(t, int64(total), -int64(limit))
	}
}

func TestTransaction_Signed(t *testing.T) {
	assert.Equal(t, int64(250), NewTransaction(250, TransactionKindDeposit, "pix").Signed())
	assert.Equal(t, int64(-250), NewTransaction(250, TransactionKindWithdraw, "pix").Signed())
	assert.Equal(t, int64(-math.MaxUint32), NewTransaction(math.MaxUint32, TransactionKindWithdraw, "big").Signed())
}

func TestTransactionKind_Valid(t *testing.T) {
	assert.True(t, TransactionKindDeposit.Valid())
	assert.True(t, TransactionKindWithdraw.Valid())
	assert.False(t, TransactionKind("x").Valid())
	assert.False(t, TransactionKind("").Valid())
}

func TestStatement_WireFormat(t *testing.T) {
	at := time.Date(2024, 1, 17, 2, 34, 41, 0, time.UTC)
	stmt := Statement{
		Balance: Balance{Total: -9098, Limit: 100000, StatementDate: at},
		LastTransactions: []Transaction{
			{ID: 9, WalletID: 1, Value: 10, Kind: TransactionKindDeposit, Description: "descricao", CreatedAt: at},
		},
	}

	data, err := json.Marshal(stmt)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"saldo": {"total": -9098, "data_extrato": "2024-01-17T02:34:41Z", "limite": 100000},
		"ultimas_transacoes": [
			{"valor": 10, "tipo": "c", "descricao": "descricao", "realizada_em": "2024-01-17T02:34:41Z"}
		]
	}`, string(data))
}

func TestWallet_Balance(t *testing.T) {
	at := time.Now().UTC()
	b := Wallet{ID: 1, Limit: 1000, Total: -10}.Balance(at)
	assert.Equal(t, Balance{Total: -10, Limit: 1000, StatementDate: at}, b)
	assert.Len(t, SeedWallets(), 5)
}
