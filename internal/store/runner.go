package store

import (
	"context"
	"database/sql"
)

// TransactionRunner abstracts transaction execution so services can be tested
// without a real database. The production implementation delegates to
// RunInTransaction; test fakes invoke the function with a nil transaction and
// rely on WithTx fakes ignoring it.
type TransactionRunner interface {
	RunInTransaction(ctx context.Context, fn TxFn) error
}

// dbTransactionRunner runs transactions against a *sql.DB.
type dbTransactionRunner struct {
	db *sql.DB
}

// NewTransactionRunner creates a TransactionRunner backed by the given database.
func NewTransactionRunner(db *sql.DB) TransactionRunner {
	if db == nil {
		panic("db cannot be nil") // ALLOW-PANIC: constructor enforces non-nil dependency
	}
	return &dbTransactionRunner{db: db}
}

func (r *dbTransactionRunner) RunInTransaction(ctx context.Context, fn TxFn) error {
	return RunInTransaction(ctx, r.db, fn)
}
