package wallet

import (
	"context"

	"ledger/internal/models"
)

// Service defines the wallet operations exposed to handlers
type Service interface {
	Transact(ctx context.Context, walletID uint32, req TransactionRequest) (models.Balance, error)
	Statement(ctx context.Context, walletID uint32) (models.Statement, error)
}
