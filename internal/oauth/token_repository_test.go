package oauth

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nerrad567/gray-cloud-bridge/internal/infrastructure/database"
)

// openTokenDB opens a temporary database with the token tables created.
func openTokenDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.Open(database.Config{
		Path:        filepath.Join(t.TempDir(), "tokens.db"),
		WALMode:     true,
		BusyTimeout: 5,
	})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { db.Close() }) //nolint:errcheck // Test cleanup

	schema := `
		CREATE TABLE oauth_access_tokens (
			id TEXT PRIMARY KEY,
			token TEXT NOT NULL UNIQUE,
			client_id TEXT NOT NULL,
			created_at TEXT NOT NULL
		);
		CREATE TABLE oauth_refresh_tokens (
			id TEXT PRIMARY KEY,
			token TEXT NOT NULL UNIQUE,
			client_id TEXT NOT NULL,
			created_at TEXT NOT NULL
		);
	`
	if _, err := db.ExecContext(context.Background(), schema); err != nil {
		t.Fatalf("creating token tables: %v", err)
	}
	return db
}

func TestSQLiteTokenRepository_SaveAndList(t *testing.T) {
	db := openTokenDB(t)
	repo := NewTokenRepository(db.DB)
	ctx := context.Background()

	access := &StoredToken{Token: "access-1", ClientID: "google-home"}
	if err := repo.SaveAccess(ctx, access); err != nil {
		t.Fatalf("SaveAccess() error = %v", err)
	}
	if !strings.HasPrefix(access.ID, "at-") {
		t.Errorf("access ID = %q, want at- prefix", access.ID)
	}
	if access.CreatedAt.IsZero() {
		t.Error("access CreatedAt not set")
	}

	refresh := &StoredToken{Token: "refresh-1", ClientID: "google-home"}
	if err := repo.SaveRefresh(ctx, refresh); err != nil {
		t.Fatalf("SaveRefresh() error = %v", err)
	}
	if !strings.HasPrefix(refresh.ID, "rt-") {
		t.Errorf("refresh ID = %q, want rt- prefix", refresh.ID)
	}

	gotAccess, err := repo.ListAccess(ctx)
	if err != nil {
		t.Fatalf("ListAccess() error = %v", err)
	}
	if len(gotAccess) != 1 || gotAccess[0].Token != "access-1" || gotAccess[0].ClientID != "google-home" {
		t.Errorf("ListAccess() = %+v, want one access-1 row", gotAccess)
	}

	gotRefresh, err := repo.ListRefresh(ctx)
	if err != nil {
		t.Fatalf("ListRefresh() error = %v", err)
	}
	if len(gotRefresh) != 1 || gotRefresh[0].Token != "refresh-1" {
		t.Errorf("ListRefresh() = %+v, want one refresh-1 row", gotRefresh)
	}
}

func TestSQLiteTokenRepository_DuplicateToken(t *testing.T) {
	db := openTokenDB(t)
	repo := NewTokenRepository(db.DB)
	ctx := context.Background()

	if err := repo.SaveAccess(ctx, &StoredToken{Token: "dup", ClientID: "a"}); err != nil {
		t.Fatalf("SaveAccess() error = %v", err)
	}
	if err := repo.SaveAccess(ctx, &StoredToken{Token: "dup", ClientID: "b"}); err == nil {
		t.Error("SaveAccess() with duplicate token = nil, want unique constraint error")
	}
}

// TestTokenStore_RoundTrip exercises the store against the real repository:
// mint, restart (new store), verify the snapshot was reloaded.
func TestTokenStore_RoundTrip(t *testing.T) {
	db := openTokenDB(t)
	repo := NewTokenRepository(db.DB)
	ctx := context.Background()

	store := NewTokenStore(repo)
	if err := store.PutAccess(ctx, "access-1", "google-home"); err != nil {
		t.Fatalf("PutAccess() error = %v", err)
	}
	if err := store.PutRefresh(ctx, "refresh-1", "google-home"); err != nil {
		t.Fatalf("PutRefresh() error = %v", err)
	}

	// Simulate a restart: fresh store, same repository
	restarted := NewTokenStore(repo)
	if err := restarted.Load(ctx); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if !restarted.HasAccess("access-1") {
		t.Error("access token lost across restart")
	}
	if owner, ok := restarted.RefreshOwner("refresh-1"); !ok || owner != "google-home" {
		t.Errorf("RefreshOwner after restart = %q, %v; want google-home, true", owner, ok)
	}
}
