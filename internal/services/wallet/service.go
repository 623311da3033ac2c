package wallet

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"ledger/internal/models"
	"ledger/internal/repositories"
	"ledger/internal/validation"
)

type service struct {
	repo   repositories.TransactionRepository
	logger *slog.Logger
}

// NewService creates a new wallet service
func NewService(repo repositories.TransactionRepository, logger *slog.Logger) Service {
	if repo == nil {
		panic("repo is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &service{
		repo:   repo,
		logger: logger.With("component", "wallet"),
	}
}

func (s *service) Transact(ctx context.Context, walletID uint32, req TransactionRequest) (models.Balance, error) {
	if err := validation.Struct(req); err != nil {
		return models.Balance{}, fmt.Errorf("%w: %v", ErrInvalidTransaction, err)
	}

	txn := models.NewTransaction(req.Value, req.Kind, req.Description)
	balance, err := s.repo.AddTransaction(ctx, walletID, txn)
	if err != nil {
		s.logFailure("transaction failed", walletID, err)
		return models.Balance{}, err
	}

	s.logger.Debug("transaction applied",
		"wallet", walletID,
		"kind", txn.Kind,
		"value", txn.Value,
		"total", balance.Total,
	)
	return balance, nil
}

func (s *service) Statement(ctx context.Context, walletID uint32) (models.Statement, error) {
	stmt, err := s.repo.GetStatement(ctx, walletID)
	if err != nil {
		s.logFailure("statement failed", walletID, err)
		return models.Statement{}, err
	}
	if stmt.LastTransactions == nil {
		stmt.LastTransactions = []models.Transaction{}
	}
	return stmt, nil
}

// logFailure keeps expected rejections at debug level.
func (s *service) logFailure(msg string, walletID uint32, err error) {
	switch {
	case errors.Is(err, repositories.ErrAccountNotFound),
		errors.Is(err, repositories.ErrLimitExceeded):
		s.logger.Debug(msg, "wallet", walletID, "error", err)
	default:
		s.logger.Error(msg, "wallet", walletID, "error", err)
	}
}
