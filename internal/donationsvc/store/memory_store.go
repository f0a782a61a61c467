package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/satsangkankpul/donation-services/internal/donationsvc/models"
)

// MemoryStore keeps donations and admins in process memory. It backs
// DATABASE_DRIVER=memory for local runs and the handler tests.
type MemoryStore struct {
	mu        sync.RWMutex
	donations []models.Donation
	admins    []models.Admin
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) CreateDonation(ctx context.Context, d *models.Donation) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if d.PaymentID != "" {
		for _, existing := range s.donations {
			if existing.PaymentID == d.PaymentID {
				return "", fmt.Errorf("could not create donation: %w", models.ErrDuplicatePayment)
			}
		}
	}

	rec := *d
	rec.ID = uuid.NewString()
	s.donations = append(s.donations, rec)
	return rec.ID, nil
}

func (s *MemoryStore) ListDonations(ctx context.Context) ([]*models.Donation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Donation, 0, len(s.donations))
	for i := range s.donations {
		d := s.donations[i]
		out = append(out, &d)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out, nil
}

func (s *MemoryStore) GetDonationByID(ctx context.Context, id string) (*models.Donation, error) {
	return s.findDonation(func(d models.Donation) bool { return d.ID == id }), nil
}

func (s *MemoryStore) GetDonationByPaymentID(ctx context.Context, paymentID string) (*models.Donation, error) {
	if paymentID == "" {
		return nil, nil
	}
	return s.findDonation(func(d models.Donation) bool { return d.PaymentID == paymentID }), nil
}

func (s *MemoryStore) findDonation(match func(models.Donation) bool) *models.Donation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, d := range s.donations {
		if match(d) {
			found := d
			return &found
		}
	}
	return nil
}

func (s *MemoryStore) CreateAdmin(ctx context.Context, a *models.Admin) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := *a
	rec.ID = uuid.NewString()
	s.admins = append(s.admins, rec)
	return rec.ID, nil
}

// GetByUsername returns the first account created with username.
func (s *MemoryStore) GetByUsername(ctx context.Context, username string) (*models.Admin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, a := range s.admins {
		if a.Username == username {
			found := a
			return &found, nil
		}
	}
	return nil, nil
}

// AdminCount is used by tests to assert nothing was written.
func (s *MemoryStore) AdminCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.admins)
}
