package service

import (
	"context"

	"github.com/satsangkankpul/donation-services/internal/donationsvc/models"
	"github.com/satsangkankpul/donation-services/internal/donationsvc/payment"
)

// DonationStore is implemented by the mongo and postgres stores. Getters
// return nil, nil when nothing matches.
type DonationStore interface {
	CreateDonation(ctx context.Context, d *models.Donation) (string, error)
	ListDonations(ctx context.Context) ([]*models.Donation, error)
	GetDonationByID(ctx context.Context, id string) (*models.Donation, error)
	GetDonationByPaymentID(ctx context.Context, paymentID string) (*models.Donation, error)
}

type AdminStore interface {
	CreateAdmin(ctx context.Context, a *models.Admin) (string, error)
	GetByUsername(ctx context.Context, username string) (*models.Admin, error)
}

// OrderCreator is the payment provider's order API.
type OrderCreator interface {
	CreateOrder(ctx context.Context, req payment.OrderRequest) (*payment.Order, error)
	KeyID() string
}

// Notifier is told about every donation after it is persisted.
type Notifier interface {
	DonationCreated(d *models.Donation)
}
