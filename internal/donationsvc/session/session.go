package session

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/jwtauth"
	"github.com/google/uuid"
	"github.com/satsangkankpul/donation-services/internal/donationsvc/models"
	log "github.com/sirupsen/logrus"
)

// CookieName is the cookie jwtauth.TokenFromCookie reads.
const CookieName = "jwt"

type ctxKey struct{}

// Store keeps sessions server side. Get returns nil, nil for unknown or
// expired sessions.
type Store interface {
	Save(ctx context.Context, s *models.Session, ttl time.Duration) error
	Get(ctx context.Context, id string) (*models.Session, error)
	Delete(ctx context.Context, id string) error
}

// Manager issues a signed cookie that names a server side session. The
// token alone grants nothing: the session must still exist in the store.
type Manager struct {
	tokenAuth *jwtauth.JWTAuth
	store     Store
	ttl       time.Duration
	secure    bool
	now       func() time.Time
}

func NewManager(secret string, store Store, ttl time.Duration, secure bool) *Manager {
	return &Manager{
		tokenAuth: jwtauth.New("HS256", []byte(secret), nil),
		store:     store,
		ttl:       ttl,
		secure:    secure,
		now:       time.Now,
	}
}

// Create starts a session for admin and sets the session cookie.
func (m *Manager) Create(ctx context.Context, w http.ResponseWriter, admin *models.Admin) (*models.Session, error) {
	s := &models.Session{
		ID:        uuid.NewString(),
		AdminID:   admin.ID,
		Username:  admin.Username,
		ExpiresAt: m.now().Add(m.ttl),
	}

	if err := m.store.Save(ctx, s, m.ttl); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	_, tokenString, err := m.tokenAuth.Encode(map[string]interface{}{
		"sid":      s.ID,
		"sub":      admin.ID,
		"username": admin.Username,
		"exp":      s.ExpiresAt.Unix(),
	})
	if err != nil {
		return nil, fmt.Errorf("encode session token: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    tokenString,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return s, nil
}

// Destroy removes the session named by the request cookie, if any, and
// always clears the cookie.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	if tokenString := jwtauth.TokenFromCookie(r); tokenString != "" {
		// Decode checks the signature but not expiry, so stale sessions are cleaned too
		if token, err := m.tokenAuth.Decode(tokenString); err == nil && token != nil {
			if sid, ok := token.PrivateClaims()["sid"].(string); ok {
				if err := m.store.Delete(ctx, sid); err != nil {
					log.Errorf("delete session %s: %v", sid, err)
				}
			}
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Require gates next behind a live session, redirecting to loginPath
// otherwise.
func (m *Manager) Require(loginPath string) func(http.Handler) http.Handler {
	verify := jwtauth.Verify(m.tokenAuth, jwtauth.TokenFromCookie)

	return func(next http.Handler) http.Handler {
		authenticate := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil || token == nil {
				http.Redirect(w, r, loginPath, http.StatusFound)
				return
			}

			sid, _ := claims["sid"].(string)
			if sid == "" {
				http.Redirect(w, r, loginPath, http.StatusFound)
				return
			}

			s, err := m.store.Get(r.Context(), sid)
			if err != nil {
				log.Errorf("load session %s: %v", sid, err)
				http.Error(w, "Error loading session", http.StatusInternalServerError)
				return
			}
			if s == nil || s.Expired(m.now()) {
				http.Redirect(w, r, loginPath, http.StatusFound)
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, s)))
		})
		return verify(authenticate)
	}
}

// FromContext returns the session attached by Require.
func FromContext(ctx context.Context) *models.Session {
	s, _ := ctx.Value(ctxKey{}).(*models.Session)
	return s
}
