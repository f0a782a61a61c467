package service

import (
	"context"
	"sync"

	"github.com/satsangkankpul/donation-services/internal/donationsvc/models"
	"github.com/satsangkankpul/donation-services/internal/donationsvc/payment"
	"github.com/stretchr/testify/mock"
)

type MockDonationStore struct {
	mock.Mock
}

func (m *MockDonationStore) CreateDonation(ctx context.Context, d *models.Donation) (string, error) {
	args := m.Called(ctx, d)
	return args.String(0), args.Error(1)
}

func (m *MockDonationStore) ListDonations(ctx context.Context) ([]*models.Donation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Donation), args.Error(1)
}

func (m *MockDonationStore) GetDonationByID(ctx context.Context, id string) (*models.Donation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Donation), args.Error(1)
}

func (m *MockDonationStore) GetDonationByPaymentID(ctx context.Context, paymentID string) (*models.Donation, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Donation), args.Error(1)
}

type MockAdminStore struct {
	mock.Mock
}

func (m *MockAdminStore) CreateAdmin(ctx context.Context, a *models.Admin) (string, error) {
	args := m.Called(ctx, a)
	return args.String(0), args.Error(1)
}

func (m *MockAdminStore) GetByUsername(ctx context.Context, username string) (*models.Admin, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Admin), args.Error(1)
}

type MockOrderCreator struct {
	mock.Mock
}

func (m *MockOrderCreator) CreateOrder(ctx context.Context, req payment.OrderRequest) (*payment.Order, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Order), args.Error(1)
}

func (m *MockOrderCreator) KeyID() string {
	return "rzp_test_key"
}

type recordingNotifier struct {
	mu   sync.Mutex
	seen []*models.Donation
}

func (n *recordingNotifier) DonationCreated(d *models.Donation) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.seen = append(n.seen, d)
}
