package session_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/internal/session"
	"github.com/pkordes/trip-planner/testutil"
)

// TestPostgresStore runs the shared Store behaviour inside a transaction that
// is rolled back when the test finishes. Skipped without TEST_DATABASE_URL.
func TestPostgresStore(t *testing.T) {
	pool := testutil.NewPool(t)

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err, "begin transaction")
	t.Cleanup(func() {
		_ = tx.Rollback(context.Background())
	})

	exerciseStore(t, session.NewPostgresStore(tx))
}
