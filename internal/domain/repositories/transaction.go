package repositories

import "context"

// TxFn is a function that runs within a transaction
type TxFn func(ctx context.Context) error

// TransactionManager groups repository operations into one atomic unit.
// Every repository call made with the context passed to fn participates in
// the same transaction; if fn returns an error the whole scope is rolled
// back and no partial effect survives.
type TransactionManager interface {
	// ExecTx executes a function within a transaction
	ExecTx(ctx context.Context, fn TxFn) error
}
