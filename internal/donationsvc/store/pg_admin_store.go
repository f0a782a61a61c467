package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/satsangkankpul/donation-services/internal/donationsvc/models"
)

type PgAdminStore struct {
	db *pgxpool.Pool
}

func NewPgAdminStore(db *pgxpool.Pool) *PgAdminStore {
	return &PgAdminStore{db: db}
}

func (s *PgAdminStore) CreateAdmin(ctx context.Context, a *models.Admin) (string, error) {
	var id string

	query := `
		INSERT INTO admins (id, username, password_hash, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id;
	`

	err := s.db.QueryRow(ctx, query, uuid.NewString(), a.Username, a.PasswordHash, a.CreatedAt).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("could not create admin: %w", err)
	}

	return id, nil
}

func (s *PgAdminStore) GetByUsername(ctx context.Context, username string) (*models.Admin, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, username, password_hash, created_at
		FROM admins
		WHERE username = $1
		ORDER BY created_at ASC
		LIMIT 1
	`, username)

	a := &models.Admin{}
	err := row.Scan(
		&a.ID,
		&a.Username,
		&a.PasswordHash,
		&a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}

	return a, nil
}
