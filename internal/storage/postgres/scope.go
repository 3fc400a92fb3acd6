package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stagepass/stagepass/internal/domain"
)

// scopeKey carries the open transaction in the context so that a nested
// WithTx joins the enclosing scope instead of contending for its row locks.
type scopeKey struct{}

// Sales and reconciliation lock the rows they touch with FOR UPDATE inside
// the scope, so read committed is sufficient.
var scopeOpts = pgx.TxOptions{IsoLevel: pgx.ReadCommitted}

func withTx(ctx context.Context, pool *pgxpool.Pool, fn func(ctx context.Context) error) error {
	if scopeTx(ctx) != nil {
		return fn(ctx)
	}

	tx, err := pool.BeginTx(ctx, scopeOpts)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	// Rollback after a successful commit returns ErrTxClosed, which we
	// can ignore.
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(context.WithValue(ctx, scopeKey{}, tx)); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func scopeTx(ctx context.Context) pgx.Tx {
	tx, _ := ctx.Value(scopeKey{}).(pgx.Tx)
	return tx
}

// SQLSTATE codes this store maps to domain errors.
const (
	stateInvalidTextRepr = "22P02"
	stateUniqueViolation = "23505"
)

func sqlstate(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// lookupErr folds driver failures on an id lookup into domain terms:
// malformed uuid text is ErrInvalidID, an empty result is the caller's
// not-found sentinel, anything else is wrapped with op.
func lookupErr(err, notFound error, op string) error {
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return notFound
	case sqlstate(err) == stateInvalidTextRepr:
		return domain.ErrInvalidID
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

// writeErr is lookupErr for statements that cannot yield pgx.ErrNoRows.
func writeErr(err error, op string) error {
	if sqlstate(err) == stateInvalidTextRepr {
		return domain.ErrInvalidID
	}
	return fmt.Errorf("%s: %w", op, err)
}
