package wallet

import "errors"

var ErrInvalidTransaction = errors.New("invalid transaction")
