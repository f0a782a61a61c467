package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/satsangkankpul/donation-services/internal/donationsvc/metrics"
	"github.com/satsangkankpul/donation-services/internal/donationsvc/models"
	"github.com/satsangkankpul/donation-services/internal/donationsvc/payment"
	log "github.com/sirupsen/logrus"
)

var ErrSignatureMismatch = errors.New("payment verification failed")

// Checkout is what the checkout page needs to open the provider widget.
type Checkout struct {
	KeyID    string
	OrderID  string
	Amount   int64 // paise
	Currency string
	Form     DonorForm
}

// Confirmation is the provider's signed completion payload plus the donor
// fields the browser re-submits. The donor fields are not covered by the
// signature.
type Confirmation struct {
	OrderID   string
	PaymentID string
	Signature string
	Form      DonorForm
}

type PaymentService struct {
	orders    OrderCreator
	secret    string
	currency  string
	donations *DonationService
	now       func() time.Time
}

func NewPaymentService(orders OrderCreator, secret, currency string, donations *DonationService) *PaymentService {
	if currency == "" {
		currency = "INR"
	}
	return &PaymentService{
		orders:    orders,
		secret:    secret,
		currency:  currency,
		donations: donations,
		now:       time.Now,
	}
}

// CreateOrder asks the provider for an order covering the donor's amount.
// Nothing is persisted here.
func (s *PaymentService) CreateOrder(ctx context.Context, form DonorForm) (*Checkout, error) {
	donor, err := form.Donor()
	if err != nil {
		return nil, err
	}

	paise, err := payment.ToPaise(donor.AmountINR)
	if err != nil || paise <= 0 {
		return nil, ErrInvalidAmount
	}

	order, err := s.orders.CreateOrder(ctx, payment.OrderRequest{
		Amount:   paise,
		Currency: s.currency,
		Receipt:  payment.Receipt(s.now()),
	})
	if err != nil {
		metrics.PaymentOrders.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	metrics.PaymentOrders.WithLabelValues("created").Inc()

	return &Checkout{
		KeyID:    s.orders.KeyID(),
		OrderID:  order.ID,
		Amount:   paise,
		Currency: s.currency,
		Form:     form,
	}, nil
}

// Confirm verifies the provider signature and, only on an exact match,
// records the online donation. A payment id that was already recorded
// returns the existing donation.
func (s *PaymentService) Confirm(ctx context.Context, c Confirmation) (*models.Donation, error) {
	if !payment.VerifySignature(s.secret, c.OrderID, c.PaymentID, c.Signature) {
		metrics.PaymentVerifications.WithLabelValues("mismatch").Inc()
		log.Warnf("payment verification failed: order=%q payment=%q", c.OrderID, c.PaymentID)
		return nil, ErrSignatureMismatch
	}
	metrics.PaymentVerifications.WithLabelValues("verified").Inc()

	existing, err := s.donations.donationStore.GetDonationByPaymentID(ctx, c.PaymentID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		log.Infof("payment %s already recorded as donation %s", c.PaymentID, existing.ID)
		return existing, nil
	}

	donor, err := c.Form.Donor()
	if err == nil {
		if paise, perr := payment.ToPaise(donor.AmountINR); perr != nil || paise <= 0 {
			err = ErrInvalidAmount
		}
	}
	if err != nil {
		// the provider has captured money at this point, keep enough to reconcile
		log.Errorf("verified payment %s (order %s) carried an invalid amount %q", c.PaymentID, c.OrderID, c.Form.AmountINR)
		return nil, err
	}

	d := donor.Donation(models.PaymentOnline, s.now().UTC())
	d.OrderID = c.OrderID
	d.PaymentID = c.PaymentID

	created, err := s.donations.create(ctx, &d)
	if errors.Is(err, models.ErrDuplicatePayment) {
		// a concurrent confirmation of the same payment won the insert
		existing, lookupErr := s.donations.donationStore.GetDonationByPaymentID(ctx, c.PaymentID)
		if lookupErr != nil {
			return nil, lookupErr
		}
		if existing != nil {
			log.Infof("payment %s already recorded as donation %s", c.PaymentID, existing.ID)
			return existing, nil
		}
	}
	return created, err
}
