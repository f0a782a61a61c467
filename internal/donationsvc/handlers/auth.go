package handlers

import (
	"errors"
	"net/http"

	"github.com/satsangkankpul/donation-services/internal/donationsvc/service"
	log "github.com/sirupsen/logrus"
)

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	values, err := parseForm(w, r)
	if err != nil {
		text(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	_, err = h.admins.Signup(r.Context(), values["username"], values["password"], values["confirmPassword"])
	if err != nil {
		if errors.Is(err, service.ErrPasswordMismatch) {
			text(w, http.StatusOK, "Passwords do not match")
			return
		}
		log.Errorf("signup: %v", err)
		text(w, http.StatusInternalServerError, "Error creating user")
		return
	}

	http.Redirect(w, r, loginPath, http.StatusFound)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	values, err := parseForm(w, r)
	if err != nil {
		text(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	admin, err := h.admins.Authenticate(r.Context(), values["username"], values["password"])
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAdminNotFound):
			text(w, http.StatusOK, "User not found")
		case errors.Is(err, service.ErrInvalidCredentials):
			text(w, http.StatusOK, "Invalid credentials")
		default:
			log.Errorf("login: %v", err)
			text(w, http.StatusInternalServerError, "Error logging in")
		}
		return
	}

	if _, err := h.sessions.Create(r.Context(), w, admin); err != nil {
		log.Errorf("create session for %s: %v", admin.Username, err)
		text(w, http.StatusInternalServerError, "Error logging in")
		return
	}
	log.Infof("admin %s logged in", admin.Username)

	http.Redirect(w, r, "/admin", http.StatusFound)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Destroy(r.Context(), w, r)
	http.Redirect(w, r, loginPath, http.StatusFound)
}
