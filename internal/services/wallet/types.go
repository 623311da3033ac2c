package wallet

import "ledger/internal/models"

// TransactionRequest is the body of a transaction post.
type TransactionRequest struct {
	Value       uint32                 `json:"valor" validate:"required"`
	Kind        models.TransactionKind `json:"tipo" validate:"required,transaction_kind"`
	Description string                 `json:"descricao" validate:"required,min=1,max=10"`
}

// TransactionResponse is what a successful post returns.
type TransactionResponse struct {
	Limit uint32 `json:"limite"`
	Total int32  `json:"saldo"`
}

func NewTransactionResponse(b models.Balance) TransactionResponse {
	return TransactionResponse{Limit: b.Limit, Total: b.Total}
}
