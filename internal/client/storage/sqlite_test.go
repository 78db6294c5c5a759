package storage

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:storage_tests?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE IF NOT EXISTS state (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);
DELETE FROM state;
`)
	require.NoError(t, err)
	return db
}

func TestSQLiteRepository_GetMissingKeyReturnsNil(t *testing.T) {
	repo := NewSQLiteRepository(setupDB(t))

	v, err := repo.Get(context.Background(), "token")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestSQLiteRepository_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteRepository(setupDB(t))

	require.NoError(t, repo.Set(ctx, "token", []byte("abc")))

	v, err := repo.Get(ctx, "token")
	require.NoError(t, err)
	require.Equal(t, []byte("abc"), v)

	// overwrite via upsert
	require.NoError(t, repo.Set(ctx, "token", []byte("def")))
	v, err = repo.Get(ctx, "token")
	require.NoError(t, err)
	require.Equal(t, []byte("def"), v)

	require.NoError(t, repo.Delete(ctx, "token"))
	v, err = repo.Get(ctx, "token")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestSQLiteRepository_InTxCommitsAllWrites(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteRepository(setupDB(t))

	err := repo.InTx(ctx, func(r Repository) error {
		if err := r.Set(ctx, "token", []byte("a")); err != nil {
			return err
		}
		return r.Set(ctx, "refresh_token", []byte("b"))
	})
	require.NoError(t, err)

	v, err := repo.Get(ctx, "token")
	require.NoError(t, err)
	require.Equal(t, []byte("a"), v)
	v, err = repo.Get(ctx, "refresh_token")
	require.NoError(t, err)
	require.Equal(t, []byte("b"), v)
}

func TestSQLiteRepository_InTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteRepository(setupDB(t))

	err := repo.InTx(ctx, func(r Repository) error {
		if err := r.Set(ctx, "token", []byte("a")); err != nil {
			return err
		}
		return errors.New("boom")
	})
	require.Error(t, err)

	v, err := repo.Get(ctx, "token")
	require.NoError(t, err)
	require.Nil(t, v, "a failed transaction must leave no writes behind")
}

func TestSQLiteRepository_DeleteMissingKeyIsNoop(t *testing.T) {
	repo := NewSQLiteRepository(setupDB(t))
	require.NoError(t, repo.Delete(context.Background(), "nothing"))
}

func TestInitDatabase_MigratesAndReturnsRepo(t *testing.T) {
	ctx := context.Background()

	db, repo, err := InitDatabase(ctx, "file:storage_init?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, repo.Set(ctx, "currentPet", []byte(`{"id":1}`)))
	v, err := repo.Get(ctx, "currentPet")
	require.NoError(t, err)
	require.JSONEq(t, `{"id":1}`, string(v))
}
