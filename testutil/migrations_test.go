package testutil_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/migrations"
	"github.com/pkordes/trip-planner/testutil"
)

// TestMigrations applies the session migrations twice through migrations.Up,
// checks the client_sessions columns and rolls everything back. It needs
// TEST_DATABASE_URL.
func TestMigrations(t *testing.T) {
	db := testutil.NewSQLDB(t)
	ctx := context.Background()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	require.NoError(t, err)

	// The session store tests share this database and may have migrated it.
	_, err = provider.DownTo(ctx, 0)
	require.NoError(t, err, "reset")

	require.NoError(t, migrations.Up(ctx, db))
	require.NoError(t, migrations.Up(ctx, db), "a second run applies nothing")

	version, err := provider.GetDBVersion(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, version)

	assert.Equal(t, map[string]string{
		"client_id":  "uuid",
		"credential": "text",
		"created_at": "timestamp with time zone",
		"updated_at": "timestamp with time zone",
	}, sessionColumns(t, db))

	_, err = provider.DownTo(ctx, 0)
	require.NoError(t, err, "roll back")
	assert.Empty(t, sessionColumns(t, db), "client_sessions is dropped")

	// Leave the schema in place for packages that run after this one.
	require.NoError(t, migrations.Up(ctx, db))
}

// sessionColumns maps each client_sessions column to its data type. It is
// empty when the table does not exist.
func sessionColumns(t *testing.T, db *sql.DB) map[string]string {
	t.Helper()

	const q = `
		SELECT column_name, data_type
		FROM information_schema.columns
		WHERE table_schema = 'public' AND table_name = 'client_sessions'`
	rows, err := db.QueryContext(context.Background(), q)
	require.NoError(t, err)
	defer rows.Close()

	cols := map[string]string{}
	for rows.Next() {
		var name, typ string
		require.NoError(t, rows.Scan(&name, &typ))
		cols[name] = typ
	}
	require.NoError(t, rows.Err())
	return cols
}
