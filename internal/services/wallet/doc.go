/*
Package wallet turns client requests into ledger transactions.

The service validates a request, stamps it with the current time and
hands it to whichever repository backend the process was started with.
It never checks the credit limit itself: the backends own that rule.

Usage:

	svc := wallet.NewService(db, logger)

	balance, err := svc.Transact(ctx, walletID, wallet.TransactionRequest{
	    Value:       1000,
	    Kind:        models.TransactionKindWithdraw,
	    Description: "rent",
	})

	statement, err := svc.Statement(ctx, walletID)

Error Handling:

  - ErrInvalidTransaction: the request failed validation
  - repositories.ErrAccountNotFound: no such wallet
  - repositories.ErrLimitExceeded: the transaction would cross the limit
  - *repositories.TransientError: storage failure, safe to retry
*/
package wallet
