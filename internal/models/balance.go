package models

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// StatementSize is the number of transactions a statement carries.
const StatementSize = 10

var ErrLimitExceeded = errors.New("transaction would exceed limit")

// ErrBalanceOverflow is a limit rejection for a total that would leave
// the 32-bit range; errors.Is(err, ErrLimitExceeded) holds for it.
var ErrBalanceOverflow = fmt.Errorf("%w: balance would overflow", ErrLimitExceeded)

// Balance is a point-in-time view of a wallet.
type Balance struct {
	Total         int32     `json:"total" bson:"total"`
	StatementDate time.Time `json:"data_extrato" bson:"-"`
	Limit         uint32    `json:"limite" bson:"limite"`
}

// Statement is the balance plus the most recent transactions, newest first.
type Statement struct {
	Balance          Balance       `json:"saldo"`
	LastTransactions []Transaction `json:"ultimas_transacoes"`
}

// ApplyTransaction adds signed to total and checks the result against the
// credit limit. On rejection the returned total is the unchanged input.
func ApplyTransaction(total int32, limit uint32, signed int64) (int32, error) {
	next := int64(total) + signed
	if next < -int64(limit) {
		return total, ErrLimitExceeded
	}
	if next > math.MaxInt32 || next < math.MinInt32 {
		return total, ErrBalanceOverflow
	}
	return int32(next), nil
}
