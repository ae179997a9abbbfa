package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventregistration/internal/domain"
)

const minPasswordLen = 6

type authService struct {
	adminRepo   domain.AdminRepository
	hasher      domain.PasswordHasher
	tokenIssuer domain.TokenIssuer
	tokenExpiry time.Duration
	now         func() time.Time
}

// NewAuthService creates an AuthService with the given repository and auth ports.
func NewAuthService(adminRepo domain.AdminRepository, hasher domain.PasswordHasher, tokenIssuer domain.TokenIssuer, tokenExpiry time.Duration) domain.AuthService {
	return &authService{
		adminRepo:   adminRepo,
		hasher:      hasher,
		tokenIssuer: tokenIssuer,
		tokenExpiry: tokenExpiry,
		now:         time.Now,
	}
}

func (s *authService) Register(ctx context.Context, in *domain.AdminSignUp) (*domain.Admin, error) {
	admin := domain.NewAdmin(in.Name, in.Username, in.Email, s.now().UTC())

	var problems []string
	if admin.Name == "" {
		problems = append(problems, "name is required")
	}
	if admin.Username == "" {
		problems = append(problems, "username is required")
	}
	if !domain.IsValidEmail(admin.Email) {
		problems = append(problems, "invalid email format")
	}
	if len(in.Password) < minPasswordLen {
		problems = append(problems, fmt.Sprintf("password must be at least %d characters", minPasswordLen))
	}
	if err := domain.NewValidationError(problems); err != nil {
		return nil, err
	}

	exists, err := s.adminRepo.ExistsByUsernameOrEmail(ctx, admin.Username, admin.Email)
	if err != nil {
		return nil, fmt.Errorf("check admin: %w", err)
	}
	if exists {
		return nil, domain.ErrDuplicate
	}

	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	hash, err := s.hasher.Hash(salt, in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	admin.Salt = salt
	admin.PasswordHash = hash

	if err := s.adminRepo.Create(ctx, admin); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}
	return admin, nil
}

func (s *authService) Login(ctx context.Context, username, password string) (string, *domain.Admin, error) {
	admin, err := s.adminRepo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("get admin: %w", err)
	}
	if err := s.hasher.Compare(admin.PasswordHash, admin.Salt, password); err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}
	token, err := s.tokenIssuer.Issue(domain.AdminClaims{
		AdminID:  admin.ID,
		Name:     admin.Name,
		Username: admin.Username,
	}, s.tokenExpiry)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return token, admin, nil
}

func (s *authService) HasAdmins(ctx context.Context) (bool, error) {
	n, err := s.adminRepo.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("count admins: %w", err)
	}
	return n > 0, nil
}
