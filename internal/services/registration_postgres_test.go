package services

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventregistration/internal/domain"
	"eventregistration/internal/repository/postgres"
)

func newPostgresRegistrationService(t *testing.T) (domain.RegistrationService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	svc := NewRegistrationService(postgres.NewTransactor(db), postgres.NewEventRepository(db),
		postgres.NewRegistrationRepository(db), nil, nil, testLogger, time.Second)
	return svc, mock
}

func TestRegistrationService_PostgresMalformedEventID(t *testing.T) {
	t.Run("delete all commits without statements", func(t *testing.T) {
		svc, mock := newPostgresRegistrationService(t)
		mock.ExpectBegin()
		mock.ExpectCommit()

		removed, err := svc.DeleteAllForEvent(context.Background(), "bad-id")
		require.NoError(t, err)
		assert.Zero(t, removed)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("register is not found", func(t *testing.T) {
		svc, mock := newPostgresRegistrationService(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		_, err := svc.Register(context.Background(), &domain.RegistrationInput{
			Name: "Ada", Email: "ada@example.com", Mobile: "9999999999", EventID: "bad-id",
		})
		require.ErrorIs(t, err, domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
