package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"eventregistration/internal/domain"
)

type registrationRepository struct {
	DB *sql.DB
}

func NewRegistrationRepository(db *sql.DB) domain.RegistrationRepository {
	return &registrationRepository{
		DB: db,
	}
}

func (r *registrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	if !validID(reg.EventID) {
		return domain.ErrNotFound
	}
	query := `
		INSERT INTO registrations (name, email, mobile, message, event_id, registered_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := conn(ctx, r.DB).QueryRowContext(ctx, query,
		reg.Name, reg.Email, reg.Mobile, reg.Message, reg.EventID, reg.RegisteredAt,
	).Scan(&reg.ID)
	if err != nil {
		return fmt.Errorf("create registration: %w", err)
	}
	return nil
}

func (r *registrationRepository) GetByID(ctx context.Context, id string) (*domain.Registration, error) {
	if !validID(id) {
		return nil, domain.ErrNotFound
	}
	query := `
		SELECT id, name, email, mobile, message, event_id, registered_at
		FROM registrations
		WHERE id = $1
	`
	reg := &domain.Registration{}
	err := conn(ctx, r.DB).QueryRowContext(ctx, query, id).
		Scan(&reg.ID, &reg.Name, &reg.Email, &reg.Mobile, &reg.Message, &reg.EventID, &reg.RegisteredAt)
	if err != nil {
		if notFound(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get registration: %w", err)
	}
	return reg, nil
}

// List joins the event title; registrations whose event is gone get an empty title.
func (r *registrationRepository) List(ctx context.Context) ([]*domain.RegistrationWithEvent, error) {
	query := `
		SELECT r.id, r.name, r.email, r.mobile, r.message, r.event_id, r.registered_at,
			COALESCE(e.title, '')
		FROM registrations r
		LEFT JOIN events e ON e.id = r.event_id
		ORDER BY r.registered_at DESC
	`
	rows, err := conn(ctx, r.DB).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	defer rows.Close()

	regs := []*domain.RegistrationWithEvent{}
	for rows.Next() {
		reg := &domain.RegistrationWithEvent{Registration: &domain.Registration{}}
		if err := rows.Scan(&reg.ID, &reg.Name, &reg.Email, &reg.Mobile, &reg.Message, &reg.EventID,
			&reg.RegisteredAt, &reg.EventTitle); err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return regs, nil
}

func (r *registrationRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Registration, error) {
	if !validID(eventID) {
		return []*domain.Registration{}, nil
	}
	query := `
		SELECT id, name, email, mobile, message, event_id, registered_at
		FROM registrations
		WHERE event_id = $1
		ORDER BY registered_at DESC
	`
	rows, err := conn(ctx, r.DB).QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("list registrations by event: %w", err)
	}
	defer rows.Close()

	regs := []*domain.Registration{}
	for rows.Next() {
		reg := &domain.Registration{}
		if err := rows.Scan(&reg.ID, &reg.Name, &reg.Email, &reg.Mobile, &reg.Message, &reg.EventID, &reg.RegisteredAt); err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return regs, nil
}

func (r *registrationRepository) CountByEventID(ctx context.Context, eventID string) (int, error) {
	if !validID(eventID) {
		return 0, nil
	}
	var n int
	err := conn(ctx, r.DB).QueryRowContext(ctx, `SELECT COUNT(*) FROM registrations WHERE event_id = $1`, eventID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count registrations: %w", err)
	}
	return n, nil
}

func (r *registrationRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return domain.ErrNotFound
	}
	res, err := conn(ctx, r.DB).ExecContext(ctx, `DELETE FROM registrations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete registration: %w", err)
	}
	return expectOne(res)
}

func (r *registrationRepository) DeleteByEventID(ctx context.Context, eventID string) (int, error) {
	if !validID(eventID) {
		return 0, nil
	}
	res, err := conn(ctx, r.DB).ExecContext(ctx, `DELETE FROM registrations WHERE event_id = $1`, eventID)
	if err != nil {
		return 0, fmt.Errorf("delete registrations by event: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
