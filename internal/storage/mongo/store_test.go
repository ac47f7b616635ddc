package mongo_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hongminglow/jobboard-be/internal/storage"
	"github.com/hongminglow/jobboard-be/internal/storage/mongo"
	"github.com/hongminglow/jobboard-be/internal/storage/storagetest"
)

// TestConformance runs the backend suite against a throwaway database on the
// server named by MONGO_URI.
func TestConformance(t *testing.T) {
	uri := os.Getenv("MONGO_URI")
	if os.Getenv("RUN_STORE_INTEGRATION") != "true" || uri == "" {
		t.Skip("set RUN_STORE_INTEGRATION=true and MONGO_URI to run this integration test")
	}

	ctx := context.Background()
	store, err := mongo.New(ctx, uri, fmt.Sprintf("jobboard_test_%d", time.Now().UnixNano()))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Drop(context.Background())
		store.Close()
	})

	storagetest.Run(t, func(t *testing.T) storage.Store {
		require.NoError(t, store.Truncate(ctx))
		return store
	})
}
