package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/satsangkankpul/donation-services/internal/donationsvc/models"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrAdminNotFound      = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

const DefaultBcryptCost = 10

type AdminService struct {
	adminStore AdminStore
	cost       int
	now        func() time.Time
}

func NewAdminService(adminStore AdminStore, cost int) *AdminService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return &AdminService{
		adminStore: adminStore,
		cost:       cost,
		now:        time.Now,
	}
}

// Signup creates an admin account. Duplicate usernames are accepted; login
// resolves to the oldest account with that name.
func (s *AdminService) Signup(ctx context.Context, username, password, confirmPassword string) (*models.Admin, error) {
	if password != confirmPassword {
		return nil, ErrPasswordMismatch
	}

	existing, err := s.adminStore.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		log.Warnf("signup: username %q already exists, creating a duplicate account", username)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	admin := &models.Admin{
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    s.now().UTC(),
	}

	id, err := s.adminStore.CreateAdmin(ctx, admin)
	if err != nil {
		return nil, err
	}
	admin.ID = id

	return admin, nil
}

func (s *AdminService) Authenticate(ctx context.Context, username, password string) (*models.Admin, error) {
	admin, err := s.adminStore.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, ErrAdminNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return admin, nil
}
