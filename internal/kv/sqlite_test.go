package kv_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripstore/internal/kv"
)

func TestSQLite(t *testing.T) {
	s, err := kv.OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "db", "tripstore.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	exerciseStore(t, s)
}

func TestSQLite_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tripstore.db")
	ctx := context.Background()

	first, err := kv.OpenSQLite(ctx, path)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, "trips", `[{"id":"a"}]`))
	require.NoError(t, first.Close())

	second, err := kv.OpenSQLite(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.Close() })

	got, ok, err := second.Get(ctx, "trips")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"a"}]`, got)
}

func newMockSQLite(t *testing.T) (*kv.SQLite, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS state").WillReturnResult(sqlmock.NewResult(0, 0))
	s, err := kv.NewSQLite(context.Background(), db)
	require.NoError(t, err)
	return s, mock
}

func TestSQLite_GetError(t *testing.T) {
	s, mock := newMockSQLite(t)
	mock.ExpectQuery("SELECT value FROM state").
		WithArgs("trips").
		WillReturnError(errors.New("disk I/O error"))

	_, ok, err := s.Get(context.Background(), "trips")

	require.Error(t, err)
	assert.False(t, ok)
	assert.Contains(t, err.Error(), "kv.SQLite.Get")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLite_SetUpserts(t *testing.T) {
	s, mock := newMockSQLite(t)
	mock.ExpectExec("INSERT INTO state").
		WithArgs("bookings", "[]", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, s.Set(context.Background(), "bookings", "[]"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLite_SetError(t *testing.T) {
	s, mock := newMockSQLite(t)
	mock.ExpectExec("INSERT INTO state").WillReturnError(errors.New("readonly database"))

	err := s.Set(context.Background(), "bookings", "[]")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "readonly database")
}

func TestNewSQLite_SchemaError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS state").WillReturnError(errors.New("boom"))

	_, err = kv.NewSQLite(context.Background(), db)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "create state table")
}
