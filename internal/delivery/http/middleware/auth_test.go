package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"eventregistration/internal/delivery/http/helpers"
	"eventregistration/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTokenVerifier implements domain.TokenVerifier for tests.
type fakeTokenVerifier struct {
	adminID string
	err     error
}

func (f *fakeTokenVerifier) Verify(_ string) (*domain.AdminClaims, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.AdminClaims{AdminID: f.adminID, Username: "root"}, nil
}

func TestRequireAdmin(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	tests := []struct {
		name          string
		authHeader    string
		verifier      domain.TokenVerifier
		wantStatus    int
		wantMessage   string
		nextCalled    bool
		wantContextID string
	}{
		{
			name:          "valid token sets context and calls next",
			authHeader:    "Bearer valid-token",
			verifier:      &fakeTokenVerifier{adminID: "admin-123"},
			wantStatus:    http.StatusOK,
			nextCalled:    true,
			wantContextID: "admin-123",
		},
		{
			name:        "missing authorization header",
			authHeader:  "",
			verifier:    &fakeTokenVerifier{adminID: "admin-123"},
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "No token provided",
		},
		{
			name:        "invalid authorization format no Bearer prefix",
			authHeader:  "Basic abc",
			verifier:    &fakeTokenVerifier{adminID: "admin-123"},
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Invalid authorization format",
		},
		{
			name:        "empty token after Bearer",
			authHeader:  "Bearer ",
			verifier:    &fakeTokenVerifier{adminID: "admin-123"},
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "No token provided",
		},
		{
			name:        "verifier returns error",
			authHeader:  "Bearer bad-token",
			verifier:    &fakeTokenVerifier{err: errors.New("token is expired")},
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Invalid or expired token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextCalled := false
			var capturedID string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				if claims, ok := AdminFromContext(r.Context()); ok {
					capturedID = claims.AdminID
				}
				w.WriteHeader(http.StatusOK)
			})
			handler := RequireAdmin(tt.verifier, logger)(next)

			req := httptest.NewRequest(http.MethodGet, "http://test/api/registrations", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rr := httptest.NewRecorder()

			handler(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			assert.Equal(t, tt.nextCalled, nextCalled, "next handler called")
			if tt.nextCalled {
				assert.Equal(t, tt.wantContextID, capturedID, "admin ID in context")
			}
			if tt.wantMessage != "" {
				var body helpers.ErrorResponse
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
				assert.Equal(t, tt.wantMessage, body.Message)
			}
		})
	}
}

func TestRequireAdminOnceBootstrapped(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	verifier := &fakeTokenVerifier{adminID: "admin-1"}

	tests := []struct {
		name       string
		hasAdmins  func(context.Context) (bool, error)
		authHeader string
		wantStatus int
	}{
		{name: "no admins yet allows anonymous", hasAdmins: func(context.Context) (bool, error) { return false, nil }, wantStatus: http.StatusCreated},
		{name: "admins exist requires token", hasAdmins: func(context.Context) (bool, error) { return true, nil }, wantStatus: http.StatusUnauthorized},
		{name: "admins exist with token", hasAdmins: func(context.Context) (bool, error) { return true, nil }, authHeader: "Bearer t", wantStatus: http.StatusCreated},
		{name: "lookup failure", hasAdmins: func(context.Context) (bool, error) { return false, errors.New("db down") }, wantStatus: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusCreated) }
			handler := RequireAdminOnceBootstrapped(verifier, tt.hasAdmins, logger)(next)

			req := httptest.NewRequest(http.MethodPost, "http://test/api/admin/register", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rr := httptest.NewRecorder()
			handler(rr, req)
			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}
