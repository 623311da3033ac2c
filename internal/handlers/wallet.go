package handlers

import (
	"errors"
	"strconv"

	apperrors "ledger/internal/errors"
	"ledger/internal/repositories"
	"ledger/internal/services/wallet"
	"ledger/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type WalletHandler struct {
	walletService wallet.Service
}

func NewWalletHandler(walletService wallet.Service) *WalletHandler {
	return &WalletHandler{
		walletService: walletService,
	}
}

// walletID parses the :id route param. Anything that is not a wallet id
// is reported as a missing wallet.
func walletID(c *fiber.Ctx) (uint32, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint32(id), true
}

// PostTransaction handles POST /clientes/:id/transacoes.
func (h *WalletHandler) PostTransaction(c *fiber.Ctx) error {
	id, ok := walletID(c)
	if !ok {
		return utils.NotFound(c, apperrors.ErrWalletNotFound)
	}

	var req wallet.TransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.UnprocessableEntity(c, apperrors.ErrInvalidTransaction)
	}

	balance, err := h.walletService.Transact(c.UserContext(), id, req)
	if err != nil {
		return respondError(c, err)
	}

	return utils.Success(c, wallet.NewTransactionResponse(balance))
}

// GetStatement handles GET /clientes/:id/extrato.
func (h *WalletHandler) GetStatement(c *fiber.Ctx) error {
	id, ok := walletID(c)
	if !ok {
		return utils.NotFound(c, apperrors.ErrWalletNotFound)
	}

	stmt, err := h.walletService.Statement(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}

	return utils.Success(c, stmt)
}

func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, wallet.ErrInvalidTransaction):
		return utils.UnprocessableEntity(c, apperrors.ErrInvalidTransaction)
	case errors.Is(err, repositories.ErrAccountNotFound):
		return utils.NotFound(c, apperrors.ErrWalletNotFound)
	case errors.Is(err, repositories.ErrLimitExceeded):
		return utils.UnprocessableEntity(c, apperrors.ErrLimitExceeded)
	default:
		return utils.InternalError(c, apperrors.ErrUnavailable)
	}
}
