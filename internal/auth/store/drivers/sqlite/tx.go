package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/propcheck/inspections/internal/auth/store"
)

// txStore scopes the repositories to an open *sql.Tx. It satisfies store.Tx
// so services can run multi-step mutations atomically.
type txStore struct {
	tx *sql.Tx
}

func (t *txStore) Accounts() store.Accounts { return &accountsRepo{q: t.tx} }
func (t *txStore) Settings() store.Settings { return &settingsRepo{q: t.tx} }

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

// ApplyMigrations is not valid inside a transaction.
func (t *txStore) ApplyMigrations() error {
	return errors.New("sqlite: cannot apply migrations inside a transaction")
}

// Tx returns the transaction itself; sqlite does not support nesting.
func (t *txStore) Tx(_ context.Context) (store.Tx, error) {
	return t, nil
}

// WithTx runs fn against the already-open transaction. Commit/rollback stay
// with the outermost caller.
func (t *txStore) WithTx(_ context.Context, fn func(tx store.Tx) error) error {
	return fn(t)
}

func (t *txStore) Close() error { return nil }

func (t *txStore) Ping(_ context.Context) error { return nil }
