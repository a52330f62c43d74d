package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-commerce-store/dbconn"
	"github.com/goliatone/go-commerce-store/storeerr"
)

// mutate runs fn inside a transaction on a fresh connection. On success the
// transaction is committed and every namespace of the store is evicted. On
// failure the transaction is rolled back and the error is reported as an
// OperationError for op, unless fn already returned one.
func (b *base) mutate(ctx context.Context, op storeerr.Op, identifier string, fn func(ctx context.Context, tx bun.IDB) error) error {
	conn, err := b.provider.Acquire(ctx)
	if err != nil {
		return storeerr.Connection(err)
	}
	defer b.release(conn)

	tx, err := conn.BeginTx(ctx)
	if err != nil {
		return storeerr.Connection(err)
	}

	done := false
	defer func() {
		if !done {
			b.rollback(tx, op, identifier)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		done = true
		b.rollback(tx, op, identifier)
		var typed *storeerr.OperationError
		if errors.As(err, &typed) {
			return err
		}
		return storeerr.Operation(b.entity, op, identifier, err)
	}

	done = true
	if err := tx.Commit(); err != nil {
		return storeerr.Connection(err)
	}

	b.evict(ctx, op)
	return nil
}

// evict drops every namespace the store owns. The write is already committed
// at this point, so an eviction failure is logged rather than returned.
func (b *base) evict(ctx context.Context, op storeerr.Op) {
	if err := b.cache.Evict(ctx, b.namespaces...); err != nil {
		b.logger.WithFields(logrus.Fields{
			"op":         string(op),
			"namespaces": b.namespaces,
		}).WithError(err).Error("cache eviction failed after commit")
	}
}

// rollback is best effort: a failure is logged and the caller's original
// outcome is kept.
func (b *base) rollback(tx dbconn.Tx, op storeerr.Op, identifier string) {
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		b.logger.WithFields(logrus.Fields{
			"op":         string(op),
			"identifier": identifier,
		}).WithError(err).Warn("rollback failed")
	}
}
