package postgres

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"eventregistration/internal/domain"
)

func TestContactRepository(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	cols := []string{"id", "name", "email", "mobile", "message", "is_read", "created_at"}
	mock.ExpectQuery(`INSERT INTO contact_messages`).
		WithArgs("Ada", "ada@example.com", "", "Hello", false, created).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(msgID))
	mock.ExpectQuery(`UPDATE contact_messages SET is_read = TRUE`).
		WithArgs(msgID).
		WillReturnRows(sqlmock.NewRows(cols).AddRow(msgID, "Ada", "ada@example.com", "", "Hello", true, created))
	mock.ExpectExec(`DELETE FROM contact_messages WHERE id = \$1`).
		WithArgs(msgID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewContactRepository(db)
	m := &domain.ContactMessage{Name: "Ada", Email: "ada@example.com", Message: "Hello", CreatedAt: created}
	require.NoError(t, repo.Create(ctx, m))
	require.Equal(t, msgID, m.ID)

	read, err := repo.MarkRead(ctx, msgID)
	require.NoError(t, err)
	require.True(t, read.Read)

	_, err = repo.MarkRead(ctx, "bad")
	require.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, repo.Delete(ctx, msgID))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFeedbackRepository_List(t *testing.T) {
	tests := []struct {
		name         string
		verifiedOnly bool
		query        string
	}{
		{name: "all", verifiedOnly: false, query: `SELECT id, name, rating, comment, verified, created_at FROM feedback ORDER BY created_at DESC`},
		{name: "verified only", verifiedOnly: true, query: `FROM feedback WHERE verified = TRUE ORDER BY created_at DESC`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			mock.ExpectQuery(tt.query).
				WillReturnRows(sqlmock.NewRows([]string{"id", "name", "rating", "comment", "verified", "created_at"}).
					AddRow(fbID, "Ada", 5, "Great", true, created))

			list, err := NewFeedbackRepository(db).List(context.Background(), tt.verifiedOnly)
			require.NoError(t, err)
			require.Len(t, list, 1)
			require.Equal(t, 5, list[0].Rating)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestFeedbackRepository_VerifyNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`UPDATE feedback SET verified = TRUE WHERE id = \$1`).
		WithArgs(fbMissing).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.ErrorIs(t, NewFeedbackRepository(db).Verify(context.Background(), fbMissing), domain.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
