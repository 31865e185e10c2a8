package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pkordes/trip-planner/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Integration tests pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// pgStore is the Postgres implementation of Store, backed by the
// client_sessions table.
type pgStore struct {
	db db
}

// NewPostgresStore constructs a Store backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewPostgresStore(db db) Store {
	return &pgStore{db: db}
}

func (s *pgStore) Get(ctx context.Context, clientID uuid.UUID) (string, error) {
	const q = `SELECT credential FROM client_sessions WHERE client_id = @client_id`

	var cred string
	err := s.db.QueryRow(ctx, q, pgx.NamedArgs{"client_id": clientID}).Scan(&cred)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("session.pgStore.Get: %w", domain.ErrNotFound)
		}
		return "", fmt.Errorf("session.pgStore.Get: %w", err)
	}
	return cred, nil
}

func (s *pgStore) Save(ctx context.Context, clientID uuid.UUID, credential string) error {
	const q = `
		INSERT INTO client_sessions (client_id, credential)
		VALUES (@client_id, @credential)
		ON CONFLICT (client_id) DO UPDATE
		SET credential = EXCLUDED.credential,
		    updated_at = now()`

	args := pgx.NamedArgs{"client_id": clientID, "credential": credential}
	if _, err := s.db.Exec(ctx, q, args); err != nil {
		return fmt.Errorf("session.pgStore.Save: %w", err)
	}
	return nil
}

func (s *pgStore) Remove(ctx context.Context, clientID uuid.UUID) error {
	const q = `DELETE FROM client_sessions WHERE client_id = @client_id`

	if _, err := s.db.Exec(ctx, q, pgx.NamedArgs{"client_id": clientID}); err != nil {
		return fmt.Errorf("session.pgStore.Remove: %w", err)
	}
	return nil
}
