package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"eventregistration/internal/domain"
)

type contactRepository struct {
	DB *sql.DB
}

func NewContactRepository(db *sql.DB) domain.ContactRepository {
	return &contactRepository{DB: db}
}

func (r *contactRepository) Create(ctx context.Context, m *domain.ContactMessage) error {
	query := `
		INSERT INTO contact_messages (name, email, mobile, message, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := conn(ctx, r.DB).QueryRowContext(ctx, query, m.Name, m.Email, m.Mobile, m.Message, m.Read, m.CreatedAt).Scan(&m.ID)
	if err != nil {
		return fmt.Errorf("create contact message: %w", err)
	}
	return nil
}

func (r *contactRepository) List(ctx context.Context) ([]*domain.ContactMessage, error) {
	rows, err := conn(ctx, r.DB).QueryContext(ctx, `
		SELECT id, name, email, mobile, message, is_read, created_at
		FROM contact_messages
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list contact messages: %w", err)
	}
	defer rows.Close()

	msgs := []*domain.ContactMessage{}
	for rows.Next() {
		m := &domain.ContactMessage{}
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Mobile, &m.Message, &m.Read, &m.CreatedAt); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return msgs, nil
}

func (r *contactRepository) MarkRead(ctx context.Context, id string) (*domain.ContactMessage, error) {
	if !validID(id) {
		return nil, domain.ErrNotFound
	}
	query := `
		UPDATE contact_messages SET is_read = TRUE
		WHERE id = $1
		RETURNING id, name, email, mobile, message, is_read, created_at
	`
	m := &domain.ContactMessage{}
	err := conn(ctx, r.DB).QueryRowContext(ctx, query, id).
		Scan(&m.ID, &m.Name, &m.Email, &m.Mobile, &m.Message, &m.Read, &m.CreatedAt)
	if err != nil {
		if notFound(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("mark contact message read: %w", err)
	}
	return m, nil
}

func (r *contactRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return domain.ErrNotFound
	}
	res, err := conn(ctx, r.DB).ExecContext(ctx, `DELETE FROM contact_messages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete contact message: %w", err)
	}
	return expectOne(res)
}
