package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventregistration/internal/domain"
	"eventregistration/internal/repository/memory"
)

// fakePasswordHasher implements domain.PasswordHasher for tests.
type fakePasswordHasher struct {
	salt string
}

func (f *fakePasswordHasher) GenerateSalt() (string, error) { return f.salt, nil }
func (f *fakePasswordHasher) Hash(salt, password string) (string, error) {
	return "hash-" + salt + password, nil
}
func (f *fakePasswordHasher) Compare(hash, salt, password string) error {
	if hash != "hash-"+salt+password {
		return errors.New("mismatch")
	}
	return nil
}

// fakeTokenIssuer implements domain.TokenIssuer for tests.
type fakeTokenIssuer struct {
	claims domain.AdminClaims
	expiry time.Duration
	err    error
}

func (f *fakeTokenIssuer) Issue(claims domain.AdminClaims, expiry time.Duration) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.claims, f.expiry = claims, expiry
	return "token-" + claims.AdminID, nil
}

func newAuth(t *testing.T) (domain.AuthService, *fakeTokenIssuer) {
	t.Helper()
	issuer := &fakeTokenIssuer{}
	return NewAuthService(memory.NewStore().Admins(), &fakePasswordHasher{salt: "s"}, issuer, 24*time.Hour), issuer
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc, issuer := newAuth(t)

	has, err := svc.HasAdmins(ctx)
	require.NoError(t, err)
	assert.False(t, has)

	admin, err := svc.Register(ctx, &domain.AdminSignUp{Name: "Root", Username: "root", Email: "Root@Example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, admin.ID)
	assert.Equal(t, "root@example.com", admin.Email)
	assert.Equal(t, "hash-ssecret123", admin.PasswordHash)

	has, err = svc.HasAdmins(ctx)
	require.NoError(t, err)
	assert.True(t, has)

	token, got, err := svc.Login(ctx, "root", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "token-"+admin.ID, token)
	assert.Equal(t, "Root", got.Name)
	assert.Equal(t, domain.AdminClaims{AdminID: admin.ID, Name: "Root", Username: "root"}, issuer.claims)
	assert.Equal(t, 24*time.Hour, issuer.expiry)
}

func TestAuthService_Register_Errors(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuth(t)
	_, err := svc.Register(ctx, &domain.AdminSignUp{Name: "Root", Username: "root", Email: "root@example.com", Password: "secret123"})
	require.NoError(t, err)

	tests := []struct {
		name  string
		in    *domain.AdminSignUp
		errIs error
	}{
		{name: "duplicate username", in: &domain.AdminSignUp{Name: "X", Username: "root", Email: "x@example.com", Password: "secret123"}, errIs: domain.ErrDuplicate},
		{name: "duplicate email", in: &domain.AdminSignUp{Name: "X", Username: "x", Email: "ROOT@example.com", Password: "secret123"}, errIs: domain.ErrDuplicate},
		{name: "short password", in: &domain.AdminSignUp{Name: "X", Username: "x", Email: "x@example.com", Password: "123"}, errIs: domain.ErrInvalidInput},
		{name: "bad email", in: &domain.AdminSignUp{Name: "X", Username: "x", Email: "nope", Password: "secret123"}, errIs: domain.ErrInvalidInput},
		{name: "missing name", in: &domain.AdminSignUp{Username: "x", Email: "x@example.com", Password: "secret123"}, errIs: domain.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.in)
			require.ErrorIs(t, err, tt.errIs)
		})
	}
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuth(t)
	_, err := svc.Register(ctx, &domain.AdminSignUp{Name: "Root", Username: "root", Email: "root@example.com", Password: "secret123"})
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "root", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, _, err = svc.Login(ctx, "nobody", "secret123")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_Login_IssuerError(t *testing.T) {
	ctx := context.Background()
	issuer := &fakeTokenIssuer{err: errors.New("no key")}
	svc := NewAuthService(memory.NewStore().Admins(), &fakePasswordHasher{salt: "s"}, issuer, time.Hour)
	_, err := svc.Register(ctx, &domain.AdminSignUp{Name: "Root", Username: "root", Email: "root@example.com", Password: "secret123"})
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "root", "secret123")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrInvalidCredentials)
}
