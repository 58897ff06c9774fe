package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/mmynk/daojo/internal/storage/storagetest"
)

// TestPostgresStore needs a disposable database; point DAOJO_TEST_POSTGRES_URL at one.
func TestPostgresStore(t *testing.T) {
	url := os.Getenv("DAOJO_TEST_POSTGRES_URL")
	if url == "" {
		t.Skip("DAOJO_TEST_POSTGRES_URL not set")
	}
	ctx := context.Background()

	store, err := New(ctx, url)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer store.Close()

	if _, err := store.pool.Exec(ctx,
		`TRUNCATE users, transfers, accounts, funding_requests, circles`); err != nil {
		t.Fatalf("truncate failed: %v", err)
	}

	storagetest.Run(t, store)
}

func TestNewRejectsEmptyConnString(t *testing.T) {
	if _, err := New(context.Background(), ""); err == nil {
		t.Error("expected error for empty connection string")
	}
}
