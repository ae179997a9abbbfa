package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"eventregistration/internal/domain"
)

type feedbackRepository struct {
	DB *sql.DB
}

func NewFeedbackRepository(db *sql.DB) domain.FeedbackRepository {
	return &feedbackRepository{DB: db}
}

func (r *feedbackRepository) Create(ctx context.Context, f *domain.Feedback) error {
	query := `
		INSERT INTO feedback (name, rating, comment, verified, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := conn(ctx, r.DB).QueryRowContext(ctx, query, f.Name, f.Rating, f.Comment, f.Verified, f.CreatedAt).Scan(&f.ID)
	if err != nil {
		return fmt.Errorf("create feedback: %w", err)
	}
	return nil
}

func (r *feedbackRepository) List(ctx context.Context, verifiedOnly bool) ([]*domain.Feedback, error) {
	query := `SELECT id, name, rating, comment, verified, created_at FROM feedback`
	if verifiedOnly {
		query += ` WHERE verified = TRUE`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := conn(ctx, r.DB).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	defer rows.Close()

	list := []*domain.Feedback{}
	for rows.Next() {
		f := &domain.Feedback{}
		if err := rows.Scan(&f.ID, &f.Name, &f.Rating, &f.Comment, &f.Verified, &f.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *feedbackRepository) Verify(ctx context.Context, id string) error {
	if !validID(id) {
		return domain.ErrNotFound
	}
	res, err := conn(ctx, r.DB).ExecContext(ctx, `UPDATE feedback SET verified = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("verify feedback: %w", err)
	}
	return expectOne(res)
}

func (r *feedbackRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return domain.ErrNotFound
	}
	res, err := conn(ctx, r.DB).ExecContext(ctx, `DELETE FROM feedback WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete feedback: %w", err)
	}
	return expectOne(res)
}
