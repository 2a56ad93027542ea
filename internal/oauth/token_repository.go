package oauth

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TokenRepository defines the interface for token persistence.
//
// The repository is a write-through snapshot: every mint is saved
// synchronously before the token response is returned, and the full set is
// loaded back at startup.
type TokenRepository interface {
	SaveAccess(ctx context.Context, token *StoredToken) error
	SaveRefresh(ctx context.Context, token *StoredToken) error
	ListAccess(ctx context.Context) ([]StoredToken, error)
	ListRefresh(ctx context.Context) ([]StoredToken, error)
}

// SQLiteTokenRepository implements TokenRepository using SQLite.
type SQLiteTokenRepository struct {
	db *sql.DB
}

// NewTokenRepository creates a new SQLite-backed token repository.
func NewTokenRepository(db *sql.DB) *SQLiteTokenRepository {
	return &SQLiteTokenRepository{db: db}
}

// SaveAccess inserts a new access token row. The ID is generated if empty.
func (r *SQLiteTokenRepository) SaveAccess(ctx context.Context, token *StoredToken) error {
	if token.ID == "" {
		token.ID = "at-" + uuid.NewString()[:16]
	}
	return r.save(ctx, "oauth_access_tokens", token)
}

// SaveRefresh inserts a new refresh token row. The ID is generated if empty.
func (r *SQLiteTokenRepository) SaveRefresh(ctx context.Context, token *StoredToken) error {
	if token.ID == "" {
		token.ID = "rt-" + uuid.NewString()[:16]
	}
	return r.save(ctx, "oauth_refresh_tokens", token)
}

// save inserts a token row into the named table.
func (r *SQLiteTokenRepository) save(ctx context.Context, table string, token *StoredToken) error {
	if token.CreatedAt.IsZero() {
		token.CreatedAt = time.Now().UTC()
	}

	//nolint:gosec // table name is one of two compile-time constants
	query := fmt.Sprintf(
		"INSERT INTO %s (id, token, client_id, created_at) VALUES (?, ?, ?, ?)", table)

	_, err := r.db.ExecContext(ctx, query,
		token.ID, token.Token, token.ClientID,
		token.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("saving token to %s: %w", table, err)
	}
	return nil
}

// ListAccess returns all persisted access tokens.
func (r *SQLiteTokenRepository) ListAccess(ctx context.Context) ([]StoredToken, error) {
	return r.list(ctx, "oauth_access_tokens")
}

// ListRefresh returns all persisted refresh tokens.
func (r *SQLiteTokenRepository) ListRefresh(ctx context.Context) ([]StoredToken, error) {
	return r.list(ctx, "oauth_refresh_tokens")
}

// list returns all token rows from the named table.
func (r *SQLiteTokenRepository) list(ctx context.Context, table string) ([]StoredToken, error) {
	//nolint:gosec // table name is one of two compile-time constants
	query := fmt.Sprintf("SELECT id, token, client_id, created_at FROM %s", table)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing tokens from %s: %w", table, err)
	}
	defer rows.Close()

	var tokens []StoredToken
	for rows.Next() {
		var t StoredToken
		var createdAt string
		if err := rows.Scan(&t.ID, &t.Token, &t.ClientID, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning token row: %w", err)
		}
		t.CreatedAt, _ = time.Parse(time.RFC3339, createdAt) //nolint:errcheck // format is controlled
		tokens = append(tokens, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating token rows: %w", err)
	}
	return tokens, nil
}
