package handlers

import (
	"errors"
	"net/http"

	"github.com/satsangkankpul/donation-services/internal/donationsvc/service"
	log "github.com/sirupsen/logrus"
)

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	values, err := parseForm(w, r)
	if err != nil {
		text(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	checkout, err := h.payments.CreateOrder(r.Context(), values.donorForm())
	if err != nil {
		if errors.Is(err, service.ErrInvalidAmount) {
			text(w, http.StatusBadRequest, "Invalid amount")
			return
		}
		log.Errorf("create order: %v", err)
		text(w, http.StatusInternalServerError, "Error creating Razorpay order")
		return
	}

	h.render(w, "checkout", checkout)
}

func (h *Handler) PaymentSuccess(w http.ResponseWriter, r *http.Request) {
	values, err := parseForm(w, r)
	if err != nil {
		text(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	d, err := h.payments.Confirm(r.Context(), service.Confirmation{
		OrderID:   values["razorpay_order_id"],
		PaymentID: values["razorpay_payment_id"],
		Signature: values["razorpay_signature"],
		Form:      values.donorForm(),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSignatureMismatch):
			text(w, http.StatusBadRequest, "Payment verification failed")
		case errors.Is(err, service.ErrInvalidAmount):
			text(w, http.StatusBadRequest, "Invalid amount")
		default:
			log.Errorf("save online donation: %v", err)
			text(w, http.StatusInternalServerError, "Error saving data")
		}
		return
	}

	http.Redirect(w, r, successURL(d.ID), http.StatusFound)
}
