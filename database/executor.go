package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

func (q *QueryBuilder[T]) applyClauses(query *bun.SelectQuery) *bun.SelectQuery {
	if q.tableName != "" {
		query = query.ModelTableExpr(q.tableName)
	}
	for _, col := range q.selectCols {
		query = query.Column(col)
	}
	for _, w := range q.wheres {
		switch {
		case w.IsRaw:
			query = query.Where(w.RawSQL, w.RawArgs...)
		case w.Operator == "IN":
			query = query.Where(fmt.Sprintf("%s IN (?)", w.Column), bun.In(w.Value))
		case w.HasValue:
			query = query.Where(fmt.Sprintf("%s %s ?", w.Column, w.Operator), w.Value)
		default:
			query = query.Where(fmt.Sprintf("%s %s", w.Column, w.Operator))
		}
	}
	for _, o := range q.orders {
		query = query.OrderExpr(fmt.Sprintf("%s %s", o.Column, o.Direction))
	}
	for _, rel := range q.relations {
		query = query.Relation(rel)
	}
	if q.limitVal != nil {
		query = query.Limit(*q.limitVal)
	}
	if q.offsetVal != nil {
		query = query.Offset(*q.offsetVal)
	}
	if q.forUpdate {
		query = query.For("UPDATE")
	}
	return query
}

func (q *QueryBuilder[T]) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if q.timeout > 0 {
		return context.WithTimeout(ctx, q.timeout)
	}
	return ctx, func() {}
}

// All executes the query and returns all matching records with automatic retry.
func (q *QueryBuilder[T]) All(ctx context.Context) ([]T, error) {
	start := time.Now()
	var data []T

	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	err := WithRetry(ctx, func() error {
		data = nil // Reset on retry
		query := q.applyClauses(q.db.NewSelect().Model(&data))
		return query.Scan(ctx)
	})

	if err != nil {
		return nil, fmt.Errorf("failed to execute select query: %w (took %v)", err, time.Since(start))
	}

	return data, nil
}

// First executes the query and returns the first matching record, or nil when
// no row matches.
func (q *QueryBuilder[T]) First(ctx context.Context) (*T, error) {
	start := time.Now()
	var data T

	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	err := WithRetry(ctx, func() error {
		query := q.applyClauses(q.db.NewSelect().Model(&data)).Limit(1)
		return query.Scan(ctx)
	})

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to execute first query: %w (took %v)", err, time.Since(start))
	}

	return &data, nil
}

// Count executes the query and returns the count of matching records.
func (q *QueryBuilder[T]) Count(ctx context.Context) (int, error) {
	start := time.Now()
	var count int

	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	err := WithRetry(ctx, func() error {
		var model T
		query := q.applyClauses(q.db.NewSelect().Model(&model))
		var err error
		count, err = query.Count(ctx)
		return err
	})

	if err != nil {
		return 0, fmt.Errorf("failed to execute count query: %w (took %v)", err, time.Since(start))
	}

	return count, nil
}

// Exists checks if any records match the query.
func (q *QueryBuilder[T]) Exists(ctx context.Context) (bool, error) {
	count, err := q.Count(ctx)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Insert inserts a new record and returns it.
func (q *QueryBuilder[T]) Insert(ctx context.Context, data *T) (*T, error) {
	start := time.Now()

	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	err := WithRetry(ctx, func() error {
		_, err := q.db.NewInsert().Model(data).Exec(ctx)
		return err
	})

	if err != nil {
		return nil, fmt.Errorf("failed to execute insert: %w (took %v)", err, time.Since(start))
	}

	return data, nil
}

// Update applies the given column assignments to every row matching the WHERE
// clauses and returns the affected row count.
func (q *QueryBuilder[T]) Update(ctx context.Context, sets map[string]any) (int64, error) {
	start := time.Now()
	var affected int64

	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	err := WithRetry(ctx, func() error {
		var model T
		query := q.db.NewUpdate().Model(&model)
		for col, val := range sets {
			query = query.Set(fmt.Sprintf("%s = ?", col), val)
		}
		for _, w := range q.wheres {
			switch {
			case w.IsRaw:
				query = query.Where(w.RawSQL, w.RawArgs...)
			case w.Operator == "IN":
				query = query.Where(fmt.Sprintf("%s IN (?)", w.Column), bun.In(w.Value))
			case w.HasValue:
				query = query.Where(fmt.Sprintf("%s %s ?", w.Column, w.Operator), w.Value)
			default:
				query = query.Where(fmt.Sprintf("%s %s", w.Column, w.Operator))
			}
		}
		res, err := query.Exec(ctx)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})

	if err != nil {
		return 0, fmt.Errorf("failed to execute update: %w (took %v)", err, time.Since(start))
	}

	return affected, nil
}

// Delete removes every row matching the WHERE clauses.
func (q *QueryBuilder[T]) Delete(ctx context.Context) (int64, error) {
	start := time.Now()
	var affected int64

	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	err := WithRetry(ctx, func() error {
		var model T
		query := q.db.NewDelete().Model(&model)
		for _, w := range q.wheres {
			switch {
			case w.IsRaw:
				query = query.Where(w.RawSQL, w.RawArgs...)
			case w.Operator == "IN":
				query = query.Where(fmt.Sprintf("%s IN (?)", w.Column), bun.In(w.Value))
			case w.HasValue:
				query = query.Where(fmt.Sprintf("%s %s ?", w.Column, w.Operator), w.Value)
			default:
				query = query.Where(fmt.Sprintf("%s %s", w.Column, w.Operator))
			}
		}
		res, err := query.Exec(ctx)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})

	if err != nil {
		return 0, fmt.Errorf("failed to execute delete: %w (took %v)", err, time.Since(start))
	}

	return affected, nil
}
