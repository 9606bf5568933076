package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/NaMinhyeok/order-practice/internal/core/serviceerrors"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

func ParseError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return serviceerrors.NewNotFoundError("entity not found")
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			return serviceerrors.Wrap(serviceerrors.KindConflict, err, "duplicate key error")
		case foreignKeyViolation:
			return serviceerrors.Wrap(serviceerrors.KindConflict, err, "resource is referenced by another record")
		}
	}
	return err
}
