package repositories

import (
	"context"
	"errors"
	"log/slog"

	"ledger/internal/models"
	"ledger/internal/repositories/cache"
)

// BalanceCache is the fast store the cache-aside backend mirrors
// wallet totals and limits into.
type BalanceCache interface {
	Get(ctx context.Context, id uint32) (cache.Entry, error)
	SetLimit(ctx context.Context, id uint32, limit uint32) error
	SetTotal(ctx context.Context, id uint32, total int32) error
	IncrTotal(ctx context.Context, id uint32, delta int64) error
	Invalidate(ctx context.Context, id uint32) error
}

// CachedRepository puts a balance cache in front of an authoritative
// repository. The cache only ever rejects early; every accepted
// transaction goes through the store, and reads never touch the cache.
type CachedRepository struct {
	cache  BalanceCache
	store  TransactionRepository
	logger *slog.Logger
}

func NewCachedRepository(c BalanceCache, store TransactionRepository, logger *slog.Logger) *CachedRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedRepository{
		cache:  c,
		store:  store,
		logger: logger.With("component", "balance_cache"),
	}
}

func (r *CachedRepository) AddTransaction(ctx context.Context, id uint32, txn models.Transaction) (models.Balance, error) {
	signed := txn.Signed()
	cached := r.lookup(ctx, id)

	// A stale cache can reject a transaction the store would accept.
	if cached.HasTotal && cached.HasLimit && cached.Total+signed < -cached.Limit {
		r.logger.Debug("rejected from cache", "wallet", id, "total", cached.Total, "value", signed)
		return models.Balance{}, ErrLimitExceeded
	}

	balance, err := r.store.AddTransaction(ctx, id, txn)
	if err != nil {
		return models.Balance{}, err
	}

	r.reconcile(ctx, id, planReconcile(cached, signed, balance), signed, balance)
	return balance, nil
}

func (r *CachedRepository) GetStatement(ctx context.Context, id uint32) (models.Statement, error) {
	return r.store.GetStatement(ctx, id)
}

// lookup treats any cache failure as a full miss. Corrupt entries are
// dropped; an unreachable cache is left alone.
func (r *CachedRepository) lookup(ctx context.Context, id uint32) cache.Entry {
	entry, err := r.cache.Get(ctx, id)
	if err == nil {
		return entry
	}

	r.logger.Warn("cache read failed, using store only", "wallet", id, "error", err)
	if errors.Is(err, cache.ErrCorruptEntry) {
		if err := r.cache.Invalidate(ctx, id); err != nil {
			r.logger.Debug("cache invalidate failed", "wallet", id, "error", err)
		}
	}
	return cache.Entry{}
}

type totalAction int

const (
	// totalIncrement moves the cached total by the transaction value.
	totalIncrement totalAction = iota
	// totalOverwrite replaces the cached total with the store's.
	totalOverwrite
)

// reconcilePlan says how to bring the cache in line after a write.
type reconcilePlan struct {
	setLimit bool
	total    totalAction
}

// planReconcile compares what the cache held before the write with what
// the store returned. If the cached total plus the transaction value
// lands on the store's total, nobody else moved it and an increment is
// enough; any mismatch is drift and the total is rewritten. A missing
// total is written too, since incrementing a missing key starts from zero.
func planReconcile(cached cache.Entry, signed int64, balance models.Balance) reconcilePlan {
	plan := reconcilePlan{setLimit: !cached.HasLimit}
	switch {
	case !cached.HasTotal:
		plan.total = totalOverwrite
	case cached.Total+signed != int64(balance.Total):
		plan.total = totalOverwrite
	default:
		plan.total = totalIncrement
	}
	return plan
}

// reconcile applies plan. Failures are logged and left for the next
// write's drift check to repair.
func (r *CachedRepository) reconcile(ctx context.Context, id uint32, plan reconcilePlan, signed int64, balance models.Balance) {
	if plan.setLimit {
		if err := r.cache.SetLimit(ctx, id, balance.Limit); err != nil {
			r.logger.Warn("cache limit update failed", "wallet", id, "error", err)
		}
	}

	switch plan.total {
	case totalOverwrite:
		r.logger.Debug("cache out of sync, overwriting total", "wallet", id, "total", balance.Total)
		if err := r.cache.SetTotal(ctx, id, balance.Total); err != nil {
			r.logger.Warn("cache total overwrite failed", "wallet", id, "error", err)
		}
	case totalIncrement:
		if err := r.cache.IncrTotal(ctx, id, signed); err != nil {
			r.logger.Warn("cache total increment failed", "wallet", id, "error", err)
		}
	}
}
