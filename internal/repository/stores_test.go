package repository

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventregistration/internal/domain"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestOpen_Memory(t *testing.T) {
	s, err := Open(context.Background(), "memory", "", testLogger)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Ping(context.Background()))
	ctx := context.Background()
	e := domain.NewEvent("Tech Summit", "2025-08-01", "10:00 AM", "Patna", 3, testTime())
	require.NoError(t, s.Events.Create(ctx, e))
	got, err := s.Events.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.LeftSeats)
}

func TestOpen_Unknown(t *testing.T) {
	_, err := Open(context.Background(), "sqlite", "", testLogger)
	assert.ErrorContains(t, err, "unknown datastore")
}

func testTime() time.Time { return time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC) }
