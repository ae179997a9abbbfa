package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"eventregistration/internal/adapters/auth"
	"eventregistration/internal/adapters/storage"
	"eventregistration/internal/delivery/http/helpers"
	"eventregistration/internal/domain"
	"eventregistration/internal/repository/memory"
	"eventregistration/internal/services"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// pngHeader is enough for content sniffing to report image/png.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

// harness wires controllers to the in-memory store and real services.
type harness struct {
	store         *memory.Store
	banners       domain.BannerStore
	events        *EventController
	registrations *RegistrationController
	auth          *AuthController
	contact       *ContactController
	feedback      *FeedbackController
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	store := memory.NewStore()
	banners, err := storage.NewLocalStore(t.TempDir(), "http://test/uploads")
	require.NoError(t, err)
	timeout := 5 * time.Second
	return &harness{
		store:   store,
		banners: banners,
		events: NewEventController(testLogger,
			services.NewEventService(store, store.Events(), store.Registrations(), banners, testLogger, timeout)),
		registrations: NewRegistrationController(testLogger,
			services.NewRegistrationService(store, store.Events(), store.Registrations(), nil, nil, testLogger, timeout)),
		auth: NewAuthController(testLogger,
			services.NewAuthService(store.Admins(), auth.NewBcryptHasher(4), auth.NewJWT("test-secret"), time.Hour)),
		contact:  NewContactController(testLogger, services.NewContactService(store.Contacts())),
		feedback: NewFeedbackController(testLogger, services.NewFeedbackService(store.Feedback())),
	}
}

// seedEvent creates an event through the service layer.
func (h *harness) seedEvent(t *testing.T, seats int) *domain.Event {
	t.Helper()
	e, err := h.events.Service.CreateEvent(context.Background(), &domain.EventInput{
		Title: "Tech Summit", Date: "2025-08-01", Time: "10:00 AM", Location: "Patna", TotalSeats: seats,
	})
	require.NoError(t, err)
	return e
}

func (h *harness) seedRegistration(t *testing.T, eventID, name string) *domain.Registration {
	t.Helper()
	reg, err := h.registrations.Service.Register(context.Background(), &domain.RegistrationInput{
		Name: name, Email: name + "@example.com", Mobile: "9999999999", EventID: eventID,
	})
	require.NoError(t, err)
	return reg
}

func (h *harness) leftSeats(t *testing.T, eventID string) int {
	t.Helper()
	e, err := h.store.Events().GetByID(context.Background(), eventID)
	require.NoError(t, err)
	return e.LeftSeats
}

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if s, ok := body.(string); ok {
		buf.WriteString(s)
	} else {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// multipartRequest builds a form request; a non-nil banner is attached as the banner file.
func multipartRequest(t *testing.T, method, target string, fields map[string]string, banner []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if banner != nil {
		fw, err := mw.CreateFormFile("banner", "Summit Banner.png")
		require.NoError(t, err)
		_, err = fw.Write(banner)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) helpers.ErrorResponse {
	t.Helper()
	var body helpers.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func decodeInto(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(strings.NewReader(rec.Body.String())).Decode(v))
}
