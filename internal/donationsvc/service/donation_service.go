package service

import (
	"context"
	"fmt"
	"time"

	"github.com/satsangkankpul/donation-services/internal/donationsvc/metrics"
	"github.com/satsangkankpul/donation-services/internal/donationsvc/models"
	log "github.com/sirupsen/logrus"
)

type DonationService struct {
	donationStore DonationStore
	notifiers     []Notifier
	now           func() time.Time
}

func NewDonationService(donationStore DonationStore, notifiers ...Notifier) *DonationService {
	return &DonationService{
		donationStore: donationStore,
		notifiers:     notifiers,
		now:           time.Now,
	}
}

// CreateOffline records a manual donation straight away.
func (s *DonationService) CreateOffline(ctx context.Context, form DonorForm) (*models.Donation, error) {
	donor, err := form.Donor()
	if err != nil {
		return nil, err
	}

	d := donor.Donation(models.PaymentOffline, s.now().UTC())
	return s.create(ctx, &d)
}

// create is the only write path. Online donations reach it exclusively
// through PaymentService.Confirm after the signature matched.
func (s *DonationService) create(ctx context.Context, d *models.Donation) (*models.Donation, error) {
	id, err := s.donationStore.CreateDonation(ctx, d)
	if err != nil {
		return nil, fmt.Errorf("failed to save donation: %w", err)
	}
	d.ID = id

	metrics.DonationsCreated.WithLabelValues(string(d.PaymentMethod)).Inc()
	log.Infof("donation %s recorded: method=%s amount=%s", d.ID, d.PaymentMethod, d.AmountINR.StringFixed(2))

	for _, n := range s.notifiers {
		n.DonationCreated(d)
	}
	return d, nil
}

// ListDonations returns the ledger, newest first.
func (s *DonationService) ListDonations(ctx context.Context) ([]*models.Donation, error) {
	return s.donationStore.ListDonations(ctx)
}

// GetDonation returns nil, nil for unknown ids.
func (s *DonationService) GetDonation(ctx context.Context, id string) (*models.Donation, error) {
	if id == "" {
		return nil, nil
	}
	return s.donationStore.GetDonationByID(ctx, id)
}
