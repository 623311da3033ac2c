package errors

var (
	ErrLimitExceeded = &DomainError{
		Code:    "LIMIT_EXCEEDED",
		Message: "transaction would exceed limit",
	}
	ErrInvalidTransaction = &DomainError{
		Code:    "INVALID_TRANSACTION",
		Message: "invalid transaction",
	}
	ErrWalletNotFound = &DomainError{
		Code:    "WALLET_NOT_FOUND",
		Message: "wallet not found",
	}
	ErrUnavailable = &DomainError{
		Code:    "UNAVAILABLE",
		Message: "storage unavailable, try again",
	}
)
