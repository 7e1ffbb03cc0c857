package storage

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMockStore(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresStoreFromDB(db), mock
}

func TestPostgresStore_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		store, mock := setupMockStore(t)
		mock.ExpectQuery(`SELECT value FROM kv_store WHERE key = \$1`).
			WithArgs(KeyUsername).
			WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("octocat"))

		v, err := store.Get(ctx, KeyUsername)
		require.NoError(t, err)
		assert.Equal(t, "octocat", v)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing", func(t *testing.T) {
		store, mock := setupMockStore(t)
		mock.ExpectQuery(`SELECT value FROM kv_store`).
			WithArgs(KeyProfile).
			WillReturnError(sql.ErrNoRows)

		_, err := store.Get(ctx, KeyProfile)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("driver error", func(t *testing.T) {
		store, mock := setupMockStore(t)
		mock.ExpectQuery(`SELECT value FROM kv_store`).
			WithArgs(KeyProfile).
			WillReturnError(errors.New("connection reset"))

		_, err := store.Get(ctx, KeyProfile)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrNotFound)
	})
}

func TestPostgresStore_SetAndRemove(t *testing.T) {
	ctx := context.Background()
	store, mock := setupMockStore(t)

	mock.ExpectExec(`INSERT INTO kv_store`).
		WithArgs(KeyHistory, `[]`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM kv_store WHERE key = \$1`).
		WithArgs(KeyHistory).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.Set(ctx, KeyHistory, `[]`))
	require.NoError(t, store.Remove(ctx, KeyHistory))
	assert.NoError(t, mock.ExpectationsWereMet())
}
