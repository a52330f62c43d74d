// Package accessor implements the record accessors (DAOs) the entity stores
// delegate to. Every method runs on the bun.IDB it is handed, which is either
// an open transaction or a plain pooled connection, and reports any query
// failure as a *storeerr.StorageError.
//
// Simple inserts, listings and counts go through go-repository-bun generic
// repositories; statements that need full-row replacement or joins are built
// with bun directly.
package accessor

import (
	"context"
	"math"
	"strings"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-commerce-store/storeerr"
)

// table wraps a generic repository with the storage error mapping shared by
// all accessors.
type table[T any] struct {
	name string
	repo repository.Repository[T]
}

func newTable[T any](db *bun.DB, name string, h repository.ModelHandlers[T]) table[T] {
	return table[T]{
		name: name,
		repo: repository.NewRepository[T](db, h),
	}
}

// handlers builds ModelHandlers for a model keyed by a uuid primary key.
// idOf must return a pointer to the model's ID field.
func handlers[M any](idOf func(*M) *uuid.UUID, identifier string) repository.ModelHandlers[*M] {
	return repository.ModelHandlers[*M]{
		NewRecord: func() *M { return new(M) },
		GetID: func(record *M) uuid.UUID {
			if record == nil {
				return uuid.Nil
			}
			return *idOf(record)
		},
		SetID:         func(record *M, id uuid.UUID) { *idOf(record) = id },
		GetIdentifier: func() string { return identifier },
	}
}

func (t table[T]) insert(ctx context.Context, db bun.IDB, record T) error {
	_, err := t.repo.CreateTx(ctx, db, record)
	return storeerr.Storage(t.name, "insert", err)
}

// list returns every matching record. ListTx pages by default, so the page is
// cleared first and only an explicit paginate criterion bounds the result.
func (t table[T]) list(ctx context.Context, db bun.IDB, criteria ...repository.SelectCriteria) ([]T, error) {
	criteria = append([]repository.SelectCriteria{paginate(0, 0)}, criteria...)
	records, _, err := t.repo.ListTx(ctx, db, criteria...)
	if err != nil {
		return nil, storeerr.Storage(t.name, "select", err)
	}
	return records, nil
}

// first returns the first matching record and whether one was found.
func (t table[T]) first(ctx context.Context, db bun.IDB, criteria ...repository.SelectCriteria) (T, bool, error) {
	var zero T
	records, err := t.list(ctx, db, append(criteria, paginate(1, 0))...)
	if err != nil {
		return zero, false, err
	}
	if len(records) == 0 {
		return zero, false, nil
	}
	return records[0], true, nil
}

func (t table[T]) count(ctx context.Context, db bun.IDB, criteria ...repository.SelectCriteria) (int, error) {
	total, err := t.repo.CountTx(ctx, db, criteria...)
	if err != nil {
		return 0, storeerr.Storage(t.name, "count", err)
	}
	return total, nil
}

func (t table[T]) deleteWhere(ctx context.Context, db bun.IDB, criteria ...repository.DeleteCriteria) error {
	err := t.repo.DeleteWhereTx(ctx, db, criteria...)
	return storeerr.Storage(t.name, "delete", err)
}

// update replaces every column of record, matched by primary key.
func (t table[T]) update(ctx context.Context, db bun.IDB, record T) error {
	_, err := db.NewUpdate().Model(record).WherePK().Exec(ctx)
	return storeerr.Storage(t.name, "update", err)
}

func whereEq(column string, value any) repository.SelectCriteria {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("? = ?", bun.Ident(column), value)
	}
}

func deleteEq(column string, value any) repository.DeleteCriteria {
	return func(q *bun.DeleteQuery) *bun.DeleteQuery {
		return q.Where("? = ?", bun.Ident(column), value)
	}
}

// likeEscaper escapes LIKE wildcards with '!' so search text matches
// literally.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// whereContains matches a case-insensitive substring on any of columns.
func whereContains(query string, columns ...string) repository.SelectCriteria {
	pattern := "%" + likeEscaper.Replace(strings.ToLower(query)) + "%"
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			for _, column := range columns {
				q = q.WhereOr("LOWER(?) LIKE ? ESCAPE '!'", bun.Ident(column), pattern)
			}
			return q
		})
	}
}

func orderBy(columns ...string) repository.SelectCriteria {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		for _, column := range columns {
			q = q.OrderExpr("? ASC", bun.Ident(column))
		}
		return q
	}
}

// paginate applies limit and offset. A non-positive limit leaves the result
// unbounded and a negative offset reads from the start.
func paginate(limit, offset int) repository.SelectCriteria {
	if offset < 0 {
		offset = 0
	}
	switch {
	case limit > 0:
	case offset > 0:
		// SQLite has no OFFSET without LIMIT
		limit = math.MaxInt32
	default:
		limit = 0
	}
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Limit(limit).Offset(offset)
	}
}

func values[T any](records []*T) []T {
	out := make([]T, 0, len(records))
	for _, record := range records {
		if record != nil {
			out = append(out, *record)
		}
	}
	return out
}
