package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/NaMinhyeok/order-practice/internal/core/port"
)

// Router picks the database for a unit of work: query intent goes to the
// replica, everything else to the primary.
type Router struct {
	command Pool
	query   Pool
}

// NewRouter routes query intent to the command pool when query is nil.
func NewRouter(command, query Pool) *Router {
	if query == nil {
		query = command
	}
	return &Router{command: command, query: query}
}

func (r *Router) Route(intent port.Intent) Pool {
	if intent == port.IntentQuery {
		return r.query
	}
	return r.command
}

func (r *Router) HasReplica() bool {
	return r.query != r.command
}

type txKey struct{}

func withTx(ctx context.Context, tx pgx.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

func txFromContext(ctx context.Context) (pgx.Tx, bool) {
	tx, ok := ctx.Value(txKey{}).(pgx.Tx)
	return tx, ok
}

// Querier returns the transaction bound to ctx, or the command pool when
// there is none.
func (r *Router) Querier(ctx context.Context) Querier {
	if tx, ok := txFromContext(ctx); ok {
		return tx
	}
	return r.command
}

func (r *Router) Ping(ctx context.Context) error {
	var errs []error
	if err := r.command.Ping(ctx); err != nil {
		errs = append(errs, fmt.Errorf("command: %w", err))
	}
	if r.HasReplica() {
		if err := r.query.Ping(ctx); err != nil {
			errs = append(errs, fmt.Errorf("query: %w", err))
		}
	}
	return errors.Join(errs...)
}

func (r *Router) Close() {
	if r.HasReplica() {
		r.query.Close()
	}
	r.command.Close()
}
