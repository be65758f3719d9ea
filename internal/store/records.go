package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// records is the key-value layer every repo is built on. A record is a JSON
// document addressed by (collection, id) and owned by a user.
type records struct {
	db *sql.DB
}

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

func (r *records) get(ctx context.Context, collection, id string, v any) error {
	query, args := builder().
		Select("data").
		From(entsql.Table(recordsTable.Name)).
		Where(entsql.And(entsql.EQ("collection", collection), entsql.EQ("id", id))).
		Query()

	var data []byte
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s/%s: %w", collection, id, err)
	}
	return nil
}

// put inserts or replaces the record at (collection, id).
func (r *records) put(ctx context.Context, collection, id, userID string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", collection, id, err)
	}

	query, args := builder().
		Insert(recordsTable.Name).
		Columns("collection", "id", "user_id", "data", "updated_at").
		Values(collection, id, userID, string(data), time.Now().UnixNano()).
		OnConflict(
			entsql.ConflictColumns("collection", "id"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("put %s/%s: %w", collection, id, err)
	}
	return nil
}

// list returns the raw documents of a collection owned by userID, oldest
// write first.
func (r *records) list(ctx context.Context, collection, userID string) ([][]byte, error) {
	query, args := builder().
		Select("data").
		From(entsql.Table(recordsTable.Name)).
		Where(entsql.And(entsql.EQ("collection", collection), entsql.EQ("user_id", userID))).
		OrderBy("updated_at", "id").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}
	defer rows.Close()

	var out [][]byte
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scan %s: %w", collection, err)
		}
		out = append(out, data)
	}
	return out, rows.Err()
}

func (r *records) deleteUser(ctx context.Context, userID string) (int64, error) {
	query, args := builder().
		Delete(recordsTable.Name).
		Where(entsql.EQ("user_id", userID)).
		Query()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete records of %s: %w", userID, err)
	}
	return res.RowsAffected()
}

// listDecoded decodes every document of a collection into T.
func listDecoded[T any](ctx context.Context, r *records, collection, userID string) ([]T, error) {
	raw, err := r.list(ctx, collection, userID)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(raw))
	for _, data := range raw {
		var v T
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("decode %s: %w", collection, err)
		}
		out = append(out, v)
	}
	return out, nil
}
