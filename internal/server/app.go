// Package server wires eventdesk together: configuration, logging, the
// database and its migrations, and the services on top of them.
package server

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/eventdesk/internal/dbx"
	"github.com/dmitrijs2005/eventdesk/internal/logging"
	"github.com/dmitrijs2005/eventdesk/internal/server/auth"
	"github.com/dmitrijs2005/eventdesk/internal/server/config"
	"github.com/dmitrijs2005/eventdesk/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/eventdesk/internal/server/services"
)

type App struct {
	Config *config.Config
	Logger logging.Logger

	Credentials *services.CredentialService
	Events      *services.EventService
	Audit       *services.AuditService
	Profiles    *services.ProfileService
	Sessions    *services.SessionService

	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewApp opens the configured database, brings the schema up to date,
// seeds the bootstrap admin when one is configured and builds the
// services. The caller must Close the App.
func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	d, err := dbx.DialectFor(cfg.DatabaseDriver)
	if err != nil {
		return nil, err
	}

	db, err := dbx.Open(ctx, d, cfg.DatabaseDSN, cfg.ConnectTimeout)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm, err := repomanager.NewSQLRepositoryManager(d, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	app := newApp(db, rm, cfg, logger)

	if cfg.AdminUsername != "" && cfg.AdminPassword != "" {
		id, created, err := app.Credentials.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("admin bootstrap error: %w", err)
		}
		if created {
			logger.Info(ctx, "bootstrap admin created", "admin_id", id, "username", cfg.AdminUsername)
		}
	}

	logger.Debug(ctx, "app ready", "driver", d.Name)
	return app, nil
}

func newApp(db *sql.DB, rm repomanager.RepositoryManager, cfg *config.Config, logger logging.Logger) *App {
	creds := services.NewCredentialService(db, rm, auth.NewBcryptHasher(cfg.BcryptCost), logger)
	audit := services.NewAuditService(db, rm, logger)

	return &App{
		Config:      cfg,
		Logger:      logger,
		Credentials: creds,
		Events:      services.NewEventService(db, rm, logger),
		Audit:       audit,
		Profiles:    services.NewProfileService(db, rm, creds, logger),
		Sessions:    services.NewSessionService(creds, audit, cfg, logger),
		db:          db,
		repomanager: rm,
	}
}

// Close releases the database.
func (app *App) Close() error {
	return app.db.Close()
}
