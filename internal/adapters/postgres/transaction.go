package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/NaMinhyeok/order-practice/internal/core/port"
)

type TransactionManager struct {
	router *Router
}

func NewTransactionManager(router *Router) port.TransactionManager {
	return &TransactionManager{router: router}
}

// WithTransaction runs fn in a transaction on the pool chosen by intent.
// Query transactions are read-only. A call made while a transaction is already
// bound to ctx joins it. There is no failover if the chosen pool is down.
func (tm *TransactionManager) WithTransaction(ctx context.Context, intent port.Intent, fn func(ctx context.Context) error) error {
	if _, ok := txFromContext(ctx); ok {
		return fn(ctx)
	}

	opts := pgx.TxOptions{}
	if intent == port.IntentQuery {
		opts.AccessMode = pgx.ReadOnly
	}

	tx, err := tm.router.Route(intent).BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("begin %s transaction: %w", intent, err)
	}
	defer func() {
		_ = tx.Rollback(context.WithoutCancel(ctx))
	}()

	if err := fn(withTx(ctx, tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return ParseError(fmt.Errorf("commit %s transaction: %w", intent, err))
	}
	return nil
}
