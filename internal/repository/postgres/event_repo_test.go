package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"eventregistration/internal/domain"
)

var eventRowColumns = []string{"id", "title", "event_date", "event_time", "location", "total_seats", "left_seats",
	"tags", "description", "highlights", "organizer", "banner_path", "created_at"}

var created = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

const (
	evID       = "3f0a8c52-6d1e-4b7a-9c2f-1e5d7a9b0c01"
	evID2      = "3f0a8c52-6d1e-4b7a-9c2f-1e5d7a9b0c02"
	evGone     = "3f0a8c52-6d1e-4b7a-9c2f-1e5d7a9b0c0e"
	evMissing  = "3f0a8c52-6d1e-4b7a-9c2f-1e5d7a9b0c0f"
	regID      = "8b4e2d17-0c9a-4f3b-a6d5-2c7e9f1a3b01"
	regID2     = "8b4e2d17-0c9a-4f3b-a6d5-2c7e9f1a3b02"
	regMissing = "8b4e2d17-0c9a-4f3b-a6d5-2c7e9f1a3b0f"
	msgID      = "c5d7e9f1-2a4b-4c6d-8e0f-3a5b7c9d1e01"
	fbID       = "d1e3f5a7-9b0c-4d2e-8f4a-6b8c0d2e4f01"
	fbMissing  = "d1e3f5a7-9b0c-4d2e-8f4a-6b8c0d2e4f0f"
)

func eventRow(id string, total, left int) *sqlmock.Rows {
	return sqlmock.NewRows(eventRowColumns).
		AddRow(id, "Tech Summit", "2025-08-01", "10:00 AM", "Patna", total, left, "tech", "desc", "talks", "GDG", "", created)
}

func TestEventRepository_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantID  string
		wantErr bool
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events \(title, event_date, event_time, location, total_seats, left_seats,`).
					WithArgs("Tech Summit", "2025-08-01", "10:00 AM", "Patna", 50, 50, "", "", "", "", "", created).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("ev-uuid-1"))
			},
			wantID: "ev-uuid-1",
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			e := domain.NewEvent("Tech Summit", "2025-08-01", "10:00 AM", "Patna", 50, created)
			err = NewEventRepository(db).Create(ctx, e)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantID, e.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_GetByID(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		id      string
		mock    func(mock sqlmock.Sqlmock)
		want    *domain.Event
		errIs   error
		wantErr bool
	}{
		{
			name: "success",
			id:   evID,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, title, event_date, event_time, location, total_seats, left_seats,`).
					WithArgs(evID).
					WillReturnRows(eventRow(evID, 50, 48))
			},
			want: &domain.Event{
				ID: evID, Title: "Tech Summit", Date: "2025-08-01", Time: "10:00 AM", Location: "Patna",
				TotalSeats: 50, LeftSeats: 48, Tags: "tech", Description: "desc", Highlights: "talks",
				Organizer: "GDG", CreatedAt: created,
			},
		},
		{
			name: "not found",
			id:   evMissing,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, title`).
					WithArgs(evMissing).
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: true,
			errIs:   domain.ErrNotFound,
		},
		{
			name: "malformed id is not found",
			id:   "not-a-uuid",
			mock: func(mock sqlmock.Sqlmock) {},
			wantErr: true,
			errIs:   domain.ErrNotFound,
		},
		{
			name: "db error",
			id:   evID,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, title`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
			errIs:   sql.ErrConnDone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			got, err := NewEventRepository(db).GetByID(ctx, tt.id)
			if tt.wantErr {
				require.Error(t, err)
				require.ErrorIs(t, err, tt.errIs)
				require.NoError(t, mock.ExpectationsWereMet())
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_GetForUpdateJoinsTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id, title, .* FROM events WHERE id = \$1 FOR UPDATE`).
		WithArgs(evID).
		WillReturnRows(eventRow(evID, 10, 10))
	mock.ExpectExec(`UPDATE events`).
		WithArgs("Tech Summit", "2025-08-01", "10:00 AM", "Patna", 10, 9, "tech", "desc", "talks", "GDG", "", evID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := NewEventRepository(db)
	err = NewTransactor(db).WithTx(context.Background(), func(ctx context.Context) error {
		e, err := repo.GetForUpdate(ctx, evID)
		if err != nil {
			return err
		}
		e.LeftSeats--
		return repo.Save(ctx, e)
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := eventRow(evID2, 5, 5).
		AddRow(evID, "Old", "2024-01-01", "9:00 AM", "Delhi", 3, 0, "", "", "", "", "banners/a.png", created)
	mock.ExpectQuery(`SELECT id, title, .* FROM events ORDER BY created_at DESC`).WillReturnRows(rows)

	events, err := NewEventRepository(db).List(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, evID2, events[0].ID)
	require.Equal(t, "banners/a.png", events[1].BannerPath)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepository_List_Empty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, title`).WillReturnRows(sqlmock.NewRows(eventRowColumns))

	events, err := NewEventRepository(db).List(context.Background())
	require.NoError(t, err)
	require.NotNil(t, events)
	require.Empty(t, events)
}

func TestEventRepository_SaveAndDeleteNotFound(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`UPDATE events`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM events WHERE id = \$1`).WithArgs(evMissing).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM events WHERE id = \$1`).WithArgs(evID).WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewEventRepository(db)
	require.ErrorIs(t, repo.Save(ctx, &domain.Event{ID: evMissing}), domain.ErrNotFound)
	require.ErrorIs(t, repo.Delete(ctx, evMissing), domain.ErrNotFound)
	require.NoError(t, repo.Delete(ctx, evID))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositories_MalformedIDNeverReachesTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// Any statement here would fail the expectations; Postgres would abort the
	// transaction on the failed uuid cast and the following statements with it.
	mock.ExpectBegin()
	mock.ExpectCommit()

	events := NewEventRepository(db)
	regs := NewRegistrationRepository(db)
	err = NewTransactor(db).WithTx(context.Background(), func(ctx context.Context) error {
		_, err := events.GetForUpdate(ctx, "not-a-uuid")
		require.ErrorIs(t, err, domain.ErrNotFound)

		n, err := regs.CountByEventID(ctx, "not-a-uuid")
		require.NoError(t, err)
		require.Zero(t, n)

		removed, err := regs.DeleteByEventID(ctx, "not-a-uuid")
		require.NoError(t, err)
		require.Zero(t, removed)

		require.ErrorIs(t, events.Save(ctx, &domain.Event{ID: "42"}), domain.ErrNotFound)
		require.ErrorIs(t, events.Delete(ctx, "urn:uuid:"+evID), domain.ErrNotFound)
		require.ErrorIs(t, regs.Delete(ctx, "reg-1"), domain.ErrNotFound)
		return nil
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestValidID(t *testing.T) {
	require.True(t, validID(evID))
	require.False(t, validID(""))
	require.False(t, validID("not-a-uuid"))
	require.False(t, validID("3f0a8c526d1e4b7a9c2f1e5d7a9b0c01"))
	require.False(t, validID("{"+evID+"}"))
}
