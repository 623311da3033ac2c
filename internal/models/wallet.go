package models

import "time"

// Wallet is an account with a fixed credit limit and a running total.
// The check constraint keeps total >= -limit at the storage layer too.
type Wallet struct {
	ID    uint32 `gorm:"primarykey;autoIncrement:false"`
	Limit uint32 `gorm:"column:credit_limit;not null"`
	Total int32  `gorm:"not null;default:0;check:wallet_total_within_limit,total >= -credit_limit"`
}

// Balance snapshots the wallet at the given time.
func (w Wallet) Balance(at time.Time) Balance {
	return Balance{
		Total:         w.Total,
		Limit:         w.Limit,
		StatementDate: at,
	}
}

// SeedWallets returns the wallets every store is provisioned with.
func SeedWallets() []Wallet {
	return []Wallet{
		{ID: 1, Limit: 100000},
		{ID: 2, Limit: 80000},
		{ID: 3, Limit: 1000000},
		{ID: 4, Limit: 10000000},
		{ID: 5, Limit: 500000},
	}
}
