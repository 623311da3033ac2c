package models

import (
	"time"
)

// TransactionKind tells whether a transaction credits or debits the wallet.
type TransactionKind string

// Transaction kinds, as they appear on the wire and in storage.
const (
	TransactionKindDeposit  TransactionKind = "c"
	TransactionKindWithdraw TransactionKind = "d"
)

// Valid reports whether k is a known kind.
func (k TransactionKind) Valid() bool {
	return k == TransactionKindDeposit || k == TransactionKindWithdraw
}

// Transaction is an immutable entry of a wallet's history.
// The same struct is the relational log row, the embedded document
// entry and the statement item.
type Transaction struct {
	ID          uint64          `gorm:"primarykey" json:"-" bson:"-"`
	WalletID    uint32          `gorm:"not null;index:idx_transactions_wallet_created,priority:1" json:"-" bson:"-"`
	Value       uint32          `gorm:"column:amount;not null" json:"valor" bson:"valor"`
	Kind        TransactionKind `gorm:"column:type;type:char(1);not null" json:"tipo" bson:"tipo"`
	Description string          `gorm:"size:10;not null" json:"descricao" bson:"descricao"`
	CreatedAt   time.Time       `gorm:"not null;index:idx_transactions_wallet_created,priority:2,sort:desc" json:"realizada_em" bson:"realizada_em"`
}

// NewTransaction stamps a transaction with the current UTC time.
func NewTransaction(value uint32, kind TransactionKind, description string) Transaction {
	return Transaction{
		Value:       value,
		Kind:        kind,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}
}

// Signed returns the value with the sign of its kind: positive for
// deposits, negative for withdrawals.
func (t Transaction) Signed() int64 {
	if t.Kind == TransactionKindWithdraw {
		return -int64(t.Value)
	}
	return int64(t.Value)
}
