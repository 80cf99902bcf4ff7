package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	app_errors "chat-animation/pkg/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T) (KeyValueStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresKeyValueStore(db), mock
}

func TestPostgresKeyValueStore_Get(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery("SELECT value FROM animation_settings_kv").
		WithArgs("ChatAnimationSettingsForSmallType").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow([]byte(`{"type":"Small"}`)))

	got, err := store.Get(context.Background(), "ChatAnimationSettingsForSmallType")
	require.NoError(t, err)
	assert.Equal(t, `{"type":"Small"}`, string(got))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresKeyValueStore_GetMiss(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery("SELECT value FROM animation_settings_kv").
		WithArgs("k").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("SELECT value FROM animation_settings_kv").
		WithArgs("k").
		WillReturnError(&pgconn.PgError{Code: "42P01"})

	_, err := store.Get(context.Background(), "k")
	assert.ErrorIs(t, err, app_errors.ErrStorageMiss)
	_, err = store.Get(context.Background(), "k")
	assert.ErrorIs(t, err, app_errors.ErrStorageMiss)
}

func TestPostgresKeyValueStore_GetError(t *testing.T) {
	store, mock := newMockStore(t)
	boom := errors.New("connection reset")
	mock.ExpectQuery("SELECT value FROM animation_settings_kv").WillReturnError(boom)

	_, err := store.Get(context.Background(), "k")
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, app_errors.ErrStorageMiss)
}

func TestPostgresKeyValueStore_SetUpserts(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectExec("INSERT INTO animation_settings_kv").
		WithArgs("k", []byte("v")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.Set(context.Background(), "k", []byte("v")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureKeyValueSchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS animation_settings_kv").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, EnsureKeyValueSchema(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestKeyValueStats(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mock.ExpectQuery("SELECT EXISTS").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	exists, count, err := KeyValueStats(context.Background(), db)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, 7, count)

	mock.ExpectQuery("SELECT EXISTS").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	exists, count, err = KeyValueStats(context.Background(), db)
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Zero(t, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSchemaStatements(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS animation_settings_kv").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("TRUNCATE animation_settings_kv").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DROP TABLE IF EXISTS animation_settings_kv").WillReturnResult(sqlmock.NewResult(0, 0))

	ctx := context.Background()
	require.NoError(t, EnsureKeyValueSchema(ctx, db))
	require.NoError(t, TruncateKeyValues(ctx, db))
	require.NoError(t, DropKeyValueSchema(ctx, db))
	assert.NoError(t, mock.ExpectationsWereMet())
}
