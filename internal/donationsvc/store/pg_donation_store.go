package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/satsangkankpul/donation-services/internal/donationsvc/models"
)

// uniqueViolation is the Postgres SQLSTATE for a unique index conflict.
const uniqueViolation = "23505"

const donationColumns = `id, full_name, address, mobile, email, amount_inr, comment,
		payment_method, order_id, payment_id, created_at`

type PgDonationStore struct {
	db *pgxpool.Pool
}

func NewPgDonationStore(db *pgxpool.Pool) *PgDonationStore {
	return &PgDonationStore{db: db}
}

func (s *PgDonationStore) CreateDonation(ctx context.Context, d *models.Donation) (string, error) {
	var id string

	query := `
		INSERT INTO donations (` + donationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id;
	`

	err := s.db.QueryRow(ctx, query,
		uuid.NewString(),
		d.FullName,
		d.Address,
		d.Mobile,
		d.Email,
		d.AmountINR,
		d.Comment,
		string(d.PaymentMethod),
		nullIfEmpty(d.OrderID),
		nullIfEmpty(d.PaymentID),
		d.Date,
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return "", fmt.Errorf("could not create donation: %w", models.ErrDuplicatePayment)
		}
		return "", fmt.Errorf("could not create donation: %w", err)
	}

	return id, nil
}

func (s *PgDonationStore) ListDonations(ctx context.Context) ([]*models.Donation, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+donationColumns+`
		FROM donations
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list donations: %w", err)
	}
	defer rows.Close()

	var donations []*models.Donation
	for rows.Next() {
		d, err := scanDonation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan donation: %w", err)
		}
		donations = append(donations, d)
	}

	return donations, rows.Err()
}

func (s *PgDonationStore) GetDonationByID(ctx context.Context, id string) (*models.Donation, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	return s.getOne(ctx, "id", id)
}

func (s *PgDonationStore) GetDonationByPaymentID(ctx context.Context, paymentID string) (*models.Donation, error) {
	return s.getOne(ctx, "payment_id", paymentID)
}

func (s *PgDonationStore) getOne(ctx context.Context, column, value string) (*models.Donation, error) {
	row := s.db.QueryRow(ctx, `
		SELECT `+donationColumns+`
		FROM donations
		WHERE `+column+` = $1
		LIMIT 1
	`, value)

	d, err := scanDonation(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Donation not found
		}
		return nil, fmt.Errorf("failed to get donation by %s: %w", column, err)
	}
	return d, nil
}

func scanDonation(row pgx.Row) (*models.Donation, error) {
	d := &models.Donation{}
	var method string
	var orderID, paymentID *string

	err := row.Scan(
		&d.ID,
		&d.FullName,
		&d.Address,
		&d.Mobile,
		&d.Email,
		&d.AmountINR,
		&d.Comment,
		&method,
		&orderID,
		&paymentID,
		&d.Date,
	)
	if err != nil {
		return nil, err
	}

	d.PaymentMethod = models.PaymentMethod(method)
	if orderID != nil {
		d.OrderID = *orderID
	}
	if paymentID != nil {
		d.PaymentID = *paymentID
	}
	return d, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
