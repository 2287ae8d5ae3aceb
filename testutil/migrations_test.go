package testutil_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripstore/migrations"
	"github.com/pkordes/tripstore/testutil"
)

// TestMigrations applies the embedded migrations to a real Postgres database,
// checks the kv_store table the postgres driver writes to, and rolls
// everything back again. Skipped when TEST_DATABASE_URL is not set.
func TestMigrations(t *testing.T) {
	db := testutil.NewSQLDB(t)
	ctx := context.Background()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	require.NoError(t, err, "create goose provider")

	// The kv package's TestMain may already have migrated this database.
	_, err = provider.DownTo(ctx, 0)
	require.NoError(t, err, "initial reset")

	results, err := provider.Up(ctx)
	require.NoError(t, err, "goose up")
	assert.NotEmpty(t, results)

	assert.Equal(t, []string{"key", "updated_at", "value"}, kvColumns(t, db))

	// key is the primary key, so a second write of the same key upserts.
	const upsert = `
		INSERT INTO kv_store (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`
	_, err = db.ExecContext(ctx, upsert, "trips", "[]")
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, upsert, "trips", `[{"id":"t1"}]`)
	require.NoError(t, err)

	var value string
	require.NoError(t, db.QueryRowContext(ctx, `SELECT value FROM kv_store WHERE key = $1`, "trips").Scan(&value))
	assert.Equal(t, `[{"id":"t1"}]`, value)

	_, err = provider.DownTo(ctx, 0)
	require.NoError(t, err, "goose down-to 0")
	assert.Empty(t, kvColumns(t, db), "kv_store should be dropped")
}

// kvColumns returns the sorted column names of public.kv_store, or nothing
// when the table does not exist.
func kvColumns(t *testing.T, db *sql.DB) []string {
	t.Helper()

	rows, err := db.QueryContext(context.Background(), `
		SELECT column_name FROM information_schema.columns
		WHERE table_schema = 'public' AND table_name = 'kv_store'
		ORDER BY column_name`)
	require.NoError(t, err)
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var c string
		require.NoError(t, rows.Scan(&c))
		cols = append(cols, c)
	}
	require.NoError(t, rows.Err())
	return cols
}
