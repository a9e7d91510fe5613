package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

const stateTable = "client_state"

// kvRepo is a string key/value table, the durable stand-in for browser
// storage.
type kvRepo struct {
	conn dialect.ExecQuerier
}

// Get returns the value for key and whether it was present.
func (r *kvRepo) Get(ctx context.Context, key string) (string, bool, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("value").
		From(entsql.Table(stateTable)).
		Where(entsql.EQ("key", key)).
		Query()

	var rows entsql.Rows
	if err := r.conn.Query(ctx, query, args, &rows); err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	defer rows.Close()

	if !rows.Next() {
		return "", false, rows.Err()
	}
	var value string
	if err := rows.Scan(&value); err != nil {
		return "", false, fmt.Errorf("scan %s: %w", key, err)
	}
	return value, true, nil
}

// Set inserts or replaces the value for key.
func (r *kvRepo) Set(ctx context.Context, key, value string) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Insert(stateTable).
		Columns("key", "value", "updated_at").
		Values(key, value, time.Now().UTC().Format(time.RFC3339Nano)).
		OnConflict(
			entsql.ConflictColumns("key"),
			entsql.ResolveWithNewValues(),
		).
		Query()
	if err := r.conn.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// Delete removes the given keys. Missing keys are ignored.
func (r *kvRepo) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	vals := make([]any, len(keys))
	for i, k := range keys {
		vals[i] = k
	}
	query, args := entsql.Dialect(dialect.SQLite).
		Delete(stateTable).
		Where(entsql.In("key", vals...)).
		Query()
	if err := r.conn.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("delete %v: %w", keys, err)
	}
	return nil
}
