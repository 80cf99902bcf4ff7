package repository

import (
	"context"
	"database/sql"
	"errors"

	app_errors "chat-animation/pkg/errors"
)

const createKeyValueTable = `
    CREATE TABLE IF NOT EXISTS animation_settings_kv (
        key        TEXT PRIMARY KEY,
        value      BYTEA NOT NULL,
        updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
    )`

type postgresKeyValueStore struct {
	db DBTX
}

func NewPostgresKeyValueStore(db DBTX) KeyValueStore {
	return &postgresKeyValueStore{db: db}
}

// EnsureKeyValueSchema creates the backing table when it does not exist yet.
func EnsureKeyValueSchema(ctx context.Context, db DBTX) error {
	_, err := db.ExecContext(ctx, createKeyValueTable)
	return err
}

func (r *postgresKeyValueStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, `
        SELECT value FROM animation_settings_kv WHERE key = $1
    `, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isUndefinedTable(err) {
			return nil, app_errors.ErrStorageMiss
		}
		return nil, err
	}
	return value, nil
}

func (r *postgresKeyValueStore) Set(ctx context.Context, key string, value []byte) error {
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO animation_settings_kv (key, value, updated_at)
        VALUES ($1, $2, now())
        ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()
    `, key, value)
	return err
}

// DropKeyValueSchema removes the backing table and every stored slot.
func DropKeyValueSchema(ctx context.Context, db DBTX) error {
	_, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS animation_settings_kv`)
	return err
}

// TruncateKeyValues deletes every stored slot, keeping the table.
func TruncateKeyValues(ctx context.Context, db DBTX) error {
	_, err := db.ExecContext(ctx, `TRUNCATE animation_settings_kv`)
	return err
}

// KeyValueStats reports whether the table exists and how many keys it holds.
func KeyValueStats(ctx context.Context, db DBTX) (bool, int, error) {
	var exists bool
	err := db.QueryRowContext(ctx, `
        SELECT EXISTS (
            SELECT 1 FROM information_schema.tables
            WHERE table_schema = current_schema() AND table_name = 'animation_settings_kv'
        )
    `).Scan(&exists)
	if err != nil || !exists {
		return false, 0, err
	}

	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM animation_settings_kv`).Scan(&count); err != nil {
		return true, 0, err
	}
	return true, count, nil
}
