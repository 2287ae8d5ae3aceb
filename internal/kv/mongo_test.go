package kv_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripstore/internal/kv"
	"github.com/pkordes/tripstore/testutil"
)

// Requires TEST_MONGO_URI; skipped otherwise.
func TestMongo(t *testing.T) {
	uri := testutil.MongoURI(t)
	ctx := context.Background()

	database := "tripstore_test_" + uuid.NewString()[:8]
	s, client, err := kv.OpenMongo(ctx, uri, database)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = client.Database(database).Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})

	exerciseStore(t, s)
}
