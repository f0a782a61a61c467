package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/satsangkankpul/donation-services/internal/donationsvc/models"
	"github.com/satsangkankpul/donation-services/internal/donationsvc/payment"
	"github.com/satsangkankpul/donation-services/internal/donationsvc/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSecret = "s3cr3t"

func newPaymentService(orders OrderCreator, st DonationStore, notifiers ...Notifier) *PaymentService {
	svc := NewPaymentService(orders, testSecret, "INR", NewDonationService(st, notifiers...))
	svc.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return svc
}

func TestPaymentService_CreateOrder(t *testing.T) {
	t.Run("converts rupees to paise", func(t *testing.T) {
		orders := new(MockOrderCreator)
		st := new(MockDonationStore)
		svc := newPaymentService(orders, st)

		orders.On("CreateOrder", mock.Anything, payment.OrderRequest{
			Amount:   50050,
			Currency: "INR",
			Receipt:  "receipt_order_1700000000000",
		}).Return(&payment.Order{ID: "order_abc"}, nil)

		form := offlineForm()
		form.AmountINR = "500.50"

		co, err := svc.CreateOrder(context.Background(), form)
		require.NoError(t, err)
		assert.Equal(t, "order_abc", co.OrderID)
		assert.Equal(t, "rzp_test_key", co.KeyID)
		assert.Equal(t, int64(50050), co.Amount)
		assert.Equal(t, form, co.Form)

		orders.AssertExpectations(t)
		st.AssertNotCalled(t, "CreateDonation", mock.Anything, mock.Anything)
	})

	t.Run("rejects non positive amounts", func(t *testing.T) {
		orders := new(MockOrderCreator)
		svc := newPaymentService(orders, new(MockDonationStore))

		for _, raw := range []string{"0", "-5", "0.001", "abc"} {
			form := offlineForm()
			form.AmountINR = raw
			_, err := svc.CreateOrder(context.Background(), form)
			assert.ErrorIs(t, err, ErrInvalidAmount, raw)
		}
		orders.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
	})

	t.Run("rejects amounts beyond int64 paise", func(t *testing.T) {
		orders := new(MockOrderCreator)
		svc := newPaymentService(orders, new(MockDonationStore))

		for _, raw := range []string{"184467440737095516.17", "92233720368547758.08"} {
			form := offlineForm()
			form.AmountINR = raw
			_, err := svc.CreateOrder(context.Background(), form)
			assert.ErrorIs(t, err, ErrInvalidAmount, raw)
		}
		orders.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
	})

		t.Run("provider failure", func(t *testing.T) {
		orders := new(MockOrderCreator)
		svc := newPaymentService(orders, new(MockDonationStore))
		orders.On("CreateOrder", mock.Anything, mock.Anything).Return(nil, errors.New("503"))

		_, err := svc.CreateOrder(context.Background(), offlineForm())
		assert.Error(t, err)
	})
}

func confirmation(signature string) Confirmation {
	form := offlineForm()
	form.AmountINR = "1000"
	return Confirmation{
		OrderID:   "order_abc",
		PaymentID: "pay_123",
		Signature: signature,
		Form:      form,
	}
}

func TestPaymentService_Confirm(t *testing.T) {
	validSig := payment.ExpectedSignature(testSecret, "order_abc", "pay_123")

	t.Run("verified payment is recorded online", func(t *testing.T) {
		st := new(MockDonationStore)
		notifier := &recordingNotifier{}
		svc := newPaymentService(new(MockOrderCreator), st, notifier)

		st.On("GetDonationByPaymentID", mock.Anything, "pay_123").Return(nil, nil)
		st.On("CreateDonation", mock.Anything, mock.MatchedBy(func(d *models.Donation) bool {
			return d.PaymentMethod == models.PaymentOnline &&
				d.OrderID == "order_abc" &&
				d.PaymentID == "pay_123" &&
				d.AmountINR.Equal(decimal.NewFromInt(1000))
		})).Return("don-1", nil)

		d, err := svc.Confirm(context.Background(), confirmation(validSig))
		require.NoError(t, err)
		assert.Equal(t, "don-1", d.ID)
		assert.Len(t, notifier.seen, 1)
		st.AssertExpectations(t)
	})

	t.Run("mismatch persists nothing", func(t *testing.T) {
		st := new(MockDonationStore)
		svc := newPaymentService(new(MockOrderCreator), st)

		forged := []byte(validSig)
		forged[0] ^= 1

		for _, sig := range []string{string(forged), "", "deadbeef"} {
			_, err := svc.Confirm(context.Background(), confirmation(sig))
			assert.ErrorIs(t, err, ErrSignatureMismatch)
		}

		missing := confirmation(validSig)
		missing.PaymentID = ""
		_, err := svc.Confirm(context.Background(), missing)
		assert.ErrorIs(t, err, ErrSignatureMismatch)

		st.AssertNotCalled(t, "CreateDonation", mock.Anything, mock.Anything)
		st.AssertNotCalled(t, "GetDonationByPaymentID", mock.Anything, mock.Anything)
	})

	t.Run("empty secret never verifies", func(t *testing.T) {
		st := new(MockDonationStore)
		svc := NewPaymentService(new(MockOrderCreator), "", "INR", NewDonationService(st))

		c := confirmation(payment.ExpectedSignature("", "order_abc", "pay_123"))
		_, err := svc.Confirm(context.Background(), c)
		assert.ErrorIs(t, err, ErrSignatureMismatch)
	})

	t.Run("replayed payment returns existing donation", func(t *testing.T) {
		st := new(MockDonationStore)
		svc := newPaymentService(new(MockOrderCreator), st)

		existing := &models.Donation{ID: "don-1", PaymentID: "pay_123", PaymentMethod: models.PaymentOnline}
		st.On("GetDonationByPaymentID", mock.Anything, "pay_123").Return(existing, nil)

		d, err := svc.Confirm(context.Background(), confirmation(validSig))
		require.NoError(t, err)
		assert.Same(t, existing, d)
		st.AssertNotCalled(t, "CreateDonation", mock.Anything, mock.Anything)
	})

	t.Run("verified payment with bad amount", func(t *testing.T) {
		st := new(MockDonationStore)
		svc := newPaymentService(new(MockOrderCreator), st)
		st.On("GetDonationByPaymentID", mock.Anything, "pay_123").Return(nil, nil)

		c := confirmation(validSig)
		c.Form.AmountINR = ""

		_, err := svc.Confirm(context.Background(), c)
		assert.ErrorIs(t, err, ErrInvalidAmount)

		c.Form.AmountINR = "184467440737095516.17"
		_, err = svc.Confirm(context.Background(), c)
		assert.ErrorIs(t, err, ErrInvalidAmount)

		st.AssertNotCalled(t, "CreateDonation", mock.Anything, mock.Anything)
	})

	t.Run("insert conflict returns the stored donation", func(t *testing.T) {
		st := new(MockDonationStore)
		svc := newPaymentService(new(MockOrderCreator), st)

		winner := &models.Donation{ID: "don-1", PaymentID: "pay_123", PaymentMethod: models.PaymentOnline}
		st.On("GetDonationByPaymentID", mock.Anything, "pay_123").Return(nil, nil).Once()
		st.On("CreateDonation", mock.Anything, mock.Anything).
			Return("", fmt.Errorf("could not create donation: %w", models.ErrDuplicatePayment))
		st.On("GetDonationByPaymentID", mock.Anything, "pay_123").Return(winner, nil).Once()

		d, err := svc.Confirm(context.Background(), confirmation(validSig))
		require.NoError(t, err)
		assert.Same(t, winner, d)
		st.AssertExpectations(t)
	})
}

// slowLookupStore widens the gap between the replay check and the insert.
type slowLookupStore struct {
	*store.MemoryStore
	delay time.Duration
}

func (s *slowLookupStore) GetDonationByPaymentID(ctx context.Context, paymentID string) (*models.Donation, error) {
	time.Sleep(s.delay)
	return s.MemoryStore.GetDonationByPaymentID(ctx, paymentID)
}

func TestPaymentService_ConcurrentConfirm(t *testing.T) {
	mem := store.NewMemoryStore()
	notifier := &recordingNotifier{}
	svc := newPaymentService(new(MockOrderCreator), &slowLookupStore{MemoryStore: mem, delay: 5 * time.Millisecond}, notifier)
	c := confirmation(payment.ExpectedSignature(testSecret, "order_abc", "pay_123"))

	const workers = 5
	var wg sync.WaitGroup
	ids := make([]string, workers)
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			d, err := svc.Confirm(context.Background(), c)
			errs[i] = err
			if d != nil {
				ids[i] = d.ID
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, ids[0], ids[i])
	}

	list, err := mem.ListDonations(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Len(t, notifier.seen, 1)
}
