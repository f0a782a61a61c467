package handlers

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi"
	"github.com/satsangkankpul/donation-services/internal/donationsvc/models"
	"github.com/satsangkankpul/donation-services/internal/donationsvc/service"
	"github.com/satsangkankpul/donation-services/internal/donationsvc/session"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type adminPage struct {
	Username  string
	Donations []*models.Donation
	Total     decimal.Decimal
}

type successPage struct {
	Donation *models.Donation
}

func successURL(id string) string {
	return "/success?id=" + url.QueryEscape(id)
}

func (h *Handler) CreateOfflineDonation(w http.ResponseWriter, r *http.Request) {
	values, err := parseForm(w, r)
	if err != nil {
		text(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	d, err := h.donations.CreateOffline(r.Context(), values.donorForm())
	if err != nil {
		if errors.Is(err, service.ErrInvalidAmount) {
			text(w, http.StatusBadRequest, "Invalid amount")
			return
		}
		log.Errorf("save offline donation: %v", err)
		text(w, http.StatusInternalServerError, "Error saving data")
		return
	}

	http.Redirect(w, r, successURL(d.ID), http.StatusFound)
}

func (h *Handler) Admin(w http.ResponseWriter, r *http.Request) {
	donations, err := h.donations.ListDonations(r.Context())
	if err != nil {
		log.Errorf("list donations: %v", err)
		text(w, http.StatusInternalServerError, "Error fetching data")
		return
	}

	data := adminPage{Donations: donations, Total: decimal.Zero}
	if s := session.FromContext(r.Context()); s != nil {
		data.Username = s.Username
	}
	for _, d := range donations {
		data.Total = data.Total.Add(d.AmountINR)
	}

	h.render(w, "admin", data)
}

func (h *Handler) Receipt(w http.ResponseWriter, r *http.Request) {
	d, err := h.donations.GetDonation(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		log.Errorf("load receipt: %v", err)
		text(w, http.StatusInternalServerError, "Error generating receipt")
		return
	}
	if d == nil {
		text(w, http.StatusNotFound, "Donation not found")
		return
	}

	h.render(w, "receipt", d)
}

// Success renders with a nil donation when the id is missing or unknown.
func (h *Handler) Success(w http.ResponseWriter, r *http.Request) {
	d, err := h.donations.GetDonation(r.Context(), r.URL.Query().Get("id"))
	if err != nil {
		log.Errorf("load success page: %v", err)
		text(w, http.StatusInternalServerError, "Error loading success page")
		return
	}

	h.render(w, "success", successPage{Donation: d})
}
