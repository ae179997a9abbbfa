// Package repository selects the datastore backing the application ports.
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/lib/pq"

	"eventregistration/internal/domain"
	"eventregistration/internal/repository/memory"
	"eventregistration/internal/repository/postgres"
	"eventregistration/migrations"
)

// Stores groups the repositories of one datastore.
type Stores struct {
	Tx            domain.Transactor
	Events        domain.EventRepository
	Registrations domain.RegistrationRepository
	Admins        domain.AdminRepository
	Contacts      domain.ContactRepository
	Feedback      domain.FeedbackRepository

	// Ping reports datastore reachability.
	Ping func(ctx context.Context) error
	// Close releases the datastore.
	Close func() error
}

// Open returns the stores for kind ("postgres" or "memory"). Postgres connections are
// verified and migrated before Open returns.
func Open(ctx context.Context, kind, dsn string, logger *slog.Logger) (*Stores, error) {
	switch kind {
	case "memory":
		logger.Warn("using in-memory datastore, data is lost on restart")
		s := memory.NewStore()
		return &Stores{
			Tx:            s,
			Events:        s.Events(),
			Registrations: s.Registrations(),
			Admins:        s.Admins(),
			Contacts:      s.Contacts(),
			Feedback:      s.Feedback(),
			Ping:          func(context.Context) error { return nil },
			Close:         func() error { return nil },
		}, nil
	case "postgres":
		db, err := sql.Open("postgres", dsn)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("ping database: %w", err)
		}
		if err := migrations.Apply(ctx, db); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply migrations: %w", err)
		}
		logger.Info("connected to postgres")
		return &Stores{
			Tx:            postgres.NewTransactor(db),
			Events:        postgres.NewEventRepository(db),
			Registrations: postgres.NewRegistrationRepository(db),
			Admins:        postgres.NewAdminRepository(db),
			Contacts:      postgres.NewContactRepository(db),
			Feedback:      postgres.NewFeedbackRepository(db),
			Ping:          db.PingContext,
			Close:         db.Close,
		}, nil
	default:
		return nil, fmt.Errorf("unknown datastore %q", kind)
	}
}
