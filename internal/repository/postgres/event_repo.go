package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"eventregistration/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

const eventColumns = `id, title, event_date, event_time, location, total_seats, left_seats,
		tags, description, highlights, organizer, banner_path, created_at`

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (title, event_date, event_time, location, total_seats, left_seats,
			tags, description, highlights, organizer, banner_path, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`
	err := conn(ctx, r.DB).QueryRowContext(ctx, query,
		e.Title, e.Date, e.Time, e.Location, e.TotalSeats, e.LeftSeats,
		e.Tags, e.Description, e.Highlights, e.Organizer, e.BannerPath, e.CreatedAt,
	).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	return r.get(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id)
}

func (r *eventRepository) GetForUpdate(ctx context.Context, id string) (*domain.Event, error) {
	return r.get(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1 FOR UPDATE`, id)
}

func (r *eventRepository) get(ctx context.Context, query, id string) (*domain.Event, error) {
	if !validID(id) {
		return nil, domain.ErrNotFound
	}
	e, err := scanEvent(conn(ctx, r.DB).QueryRowContext(ctx, query, id))
	if err != nil {
		if notFound(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return e, nil
}

func (r *eventRepository) List(ctx context.Context) ([]*domain.Event, error) {
	rows, err := conn(ctx, r.DB).QueryContext(ctx, `SELECT `+eventColumns+` FROM events ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	events := []*domain.Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) Save(ctx context.Context, e *domain.Event) error {
	if !validID(e.ID) {
		return domain.ErrNotFound
	}
	query := `
		UPDATE events
		SET title = $1, event_date = $2, event_time = $3, location = $4, total_seats = $5,
			left_seats = $6, tags = $7, description = $8, highlights = $9, organizer = $10,
			banner_path = $11
		WHERE id = $12
	`
	res, err := conn(ctx, r.DB).ExecContext(ctx, query,
		e.Title, e.Date, e.Time, e.Location, e.TotalSeats, e.LeftSeats,
		e.Tags, e.Description, e.Highlights, e.Organizer, e.BannerPath, e.ID,
	)
	if err != nil {
		return fmt.Errorf("save event: %w", err)
	}
	return expectOne(res)
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return domain.ErrNotFound
	}
	res, err := conn(ctx, r.DB).ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return expectOne(res)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEvent(s scanner) (*domain.Event, error) {
	e := &domain.Event{}
	err := s.Scan(&e.ID, &e.Title, &e.Date, &e.Time, &e.Location, &e.TotalSeats, &e.LeftSeats,
		&e.Tags, &e.Description, &e.Highlights, &e.Organizer, &e.BannerPath, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	return e, nil
}
