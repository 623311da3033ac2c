package repositories

import (
	"context"
	"sync"
	"time"

	"ledger/internal/models"
)

// MemoryRepository keeps wallets in process. The wallet set is fixed at
// construction; each wallet has its own lock, so writers on different
// wallets never wait on each other.
type MemoryRepository struct {
	wallets map[uint32]*memoryWallet
}

type memoryWallet struct {
	mu    sync.Mutex
	total int32
	limit uint32
	// newest first, capped at models.StatementSize
	recent []models.Transaction
}

func NewMemoryRepository(wallets ...models.Wallet) *MemoryRepository {
	r := &MemoryRepository{wallets: make(map[uint32]*memoryWallet, len(wallets))}
	for _, w := range wallets {
		r.wallets[w.ID] = &memoryWallet{
			total:  w.Total,
			limit:  w.Limit,
			recent: make([]models.Transaction, 0, models.StatementSize),
		}
	}
	return r
}

func (r *MemoryRepository) AddTransaction(ctx context.Context, id uint32, txn models.Transaction) (models.Balance, error) {
	if err := ctx.Err(); err != nil {
		return models.Balance{}, transient("add transaction", err)
	}
	w, ok := r.wallets[id]
	if !ok {
		return models.Balance{}, notFound(id)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	total, err := models.ApplyTransaction(w.total, w.limit, txn.Signed())
	if err != nil {
		return models.Balance{}, err
	}
	w.total = total

	txn.WalletID = id
	if len(w.recent) < models.StatementSize {
		w.recent = append(w.recent, models.Transaction{})
	}
	copy(w.recent[1:], w.recent[:len(w.recent)-1])
	w.recent[0] = txn

	return models.Balance{Total: w.total, Limit: w.limit, StatementDate: time.Now().UTC()}, nil
}

func (r *MemoryRepository) GetStatement(ctx context.Context, id uint32) (models.Statement, error) {
	if err := ctx.Err(); err != nil {
		return models.Statement{}, transient("get statement", err)
	}
	w, ok := r.wallets[id]
	if !ok {
		return models.Statement{}, notFound(id)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	recent := make([]models.Transaction, len(w.recent))
	copy(recent, w.recent)
	return models.Statement{
		Balance:          models.Balance{Total: w.total, Limit: w.limit, StatementDate: time.Now().UTC()},
		LastTransactions: recent,
	}, nil
}
