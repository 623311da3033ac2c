package repositories

import (
	"context"
	"errors"
	"time"

	"ledger/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SQLSTATE codes the relational backend translates.
const (
	pgCheckViolation    = "23514"
	pgNumericOutOfRange = "22003"
)

// PostgresRepository is the relational backend. The wallets table carries
// a check constraint on total, so the database itself rejects updates
// that would cross the credit limit.
type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgresRepository(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) AddTransaction(ctx context.Context, id uint32, txn models.Transaction) (models.Balance, error) {
	var wallet models.Wallet
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The row lock taken here is held until commit, which serialises
		// writers on the same wallet across the update and the log insert.
		result := tx.Model(&wallet).
			Clauses(clause.Returning{}).
			Where("id = ?", id).
			Update("total", gorm.Expr("total + ?", txn.Signed()))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return notFound(id)
		}

		entry := txn
		entry.ID = 0
		entry.WalletID = id
		return tx.Create(&entry).Error
	})
	if err != nil {
		return models.Balance{}, translatePostgresError("add transaction", err)
	}
	return wallet.Balance(time.Now().UTC()), nil
}

func (r *PostgresRepository) GetStatement(ctx context.Context, id uint32) (models.Statement, error) {
	var wallet models.Wallet
	if err := r.db.WithContext(ctx).First(&wallet, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Statement{}, notFound(id)
		}
		return models.Statement{}, translatePostgresError("get wallet", err)
	}
	balance := wallet.Balance(time.Now().UTC())

	transactions := make([]models.Transaction, 0, models.StatementSize)
	err := r.db.WithContext(ctx).
		Where("wallet_id = ?", id).
		Order("created_at DESC").
		Order("id DESC").
		Limit(models.StatementSize).
		Find(&transactions).Error
	if err != nil {
		return models.Statement{}, translatePostgresError("get transactions", err)
	}

	return models.Statement{
		Balance:          balance,
		LastTransactions: transactions,
	}, nil
}

func translatePostgresError(op string, err error) error {
	if errors.Is(err, ErrAccountNotFound) {
		return err
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgCheckViolation:
			return ErrLimitExceeded
		case pgNumericOutOfRange:
			return ErrBalanceOverflow
		}
	}
	return transient(op, err)
}
