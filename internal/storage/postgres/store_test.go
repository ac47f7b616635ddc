package postgres_test

import (
	"context"
	"os"
	"testing"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/jobboard-be/internal/storage"
	"github.com/hongminglow/jobboard-be/internal/storage/postgres"
	"github.com/hongminglow/jobboard-be/internal/storage/storagetest"
)

// TestConformance runs the backend suite against a live database. Every
// subtest starts from truncated tables, so never point it at real data.
func TestConformance(t *testing.T) {
	if os.Getenv("RUN_STORE_INTEGRATION") != "true" {
		t.Skip("set RUN_STORE_INTEGRATION=true to run this integration test")
	}
	for _, path := range []string{".env", "../.env", "../../.env", "../../../.env"} {
		_ = godotenv.Overload(path)
	}
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Fatal("DATABASE_URL is required")
	}

	ctx := context.Background()
	store, err := postgres.New(ctx, dbURL)
	require.NoError(t, err)
	t.Cleanup(store.Close)

	storagetest.Run(t, func(t *testing.T) storage.Store {
		require.NoError(t, store.Truncate(ctx))
		return store
	})
}
