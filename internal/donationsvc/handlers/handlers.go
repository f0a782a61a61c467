package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/satsangkankpul/donation-services/internal/donationsvc/models"
	"github.com/satsangkankpul/donation-services/internal/donationsvc/service"
	"github.com/satsangkankpul/donation-services/internal/donationsvc/session"
	"github.com/satsangkankpul/donation-services/web"
	log "github.com/sirupsen/logrus"
)

type DonationService interface {
	CreateOffline(ctx context.Context, form service.DonorForm) (*models.Donation, error)
	ListDonations(ctx context.Context) ([]*models.Donation, error)
	GetDonation(ctx context.Context, id string) (*models.Donation, error)
}

type PaymentService interface {
	CreateOrder(ctx context.Context, form service.DonorForm) (*service.Checkout, error)
	Confirm(ctx context.Context, c service.Confirmation) (*models.Donation, error)
}

type AdminService interface {
	Signup(ctx context.Context, username, password, confirmPassword string) (*models.Admin, error)
	Authenticate(ctx context.Context, username, password string) (*models.Admin, error)
}

type Services struct {
	Donations DonationService
	Payments  PaymentService
	Admins    AdminService
}

type Handler struct {
	donations DonationService
	payments  PaymentService
	admins    AdminService
	sessions  *session.Manager
	views     *web.Renderer
	port      string
}

type Response struct {
	Message string      `json:"message"`
	Code    int         `json:"code"`
	Data    interface{} `json:"data"`
	Error   string      `json:"error"`
}

func NewHandler(svc Services, sessions *session.Manager, views *web.Renderer, port string) *Handler {
	return &Handler{
		donations: svc.Donations,
		payments:  svc.Payments,
		admins:    svc.Admins,
		sessions:  sessions,
		views:     views,
		port:      port,
	}
}

func (h *Handler) CreateResponse(w http.ResponseWriter, rsp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(rsp.Code)
	if err := json.NewEncoder(w).Encode(rsp); err != nil {
		log.Errorf("Failed to encode response: %v", err)
	}
}

func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	h.CreateResponse(w, Response{
		Message: "donation service is running at port " + h.port,
		Code:    http.StatusOK,
	})
}

// text writes a plain message, the way the browser forms expect errors.
func text(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(code)
	io.WriteString(w, msg)
}

func (h *Handler) render(w http.ResponseWriter, page string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.views.Render(w, page, data); err != nil {
		log.Errorf("render %s: %v", page, err)
	}
}

func (h *Handler) page(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.render(w, name, nil)
	}
}
