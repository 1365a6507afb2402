package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-project-board/internal/config"
	"github.com/MKhiriev/go-project-board/internal/logger"
)

// Storages groups every repository over one database connection.
type Storages struct {
	UserRepository    UserRepository
	TokenRepository   TokenRepository
	ProjectRepository ProjectRepository
	VacancyRepository VacancyRepository

	// Pinger reports database liveness for health checks.
	Pinger Pinger

	db *DB
}

// NewStorages connects to the configured database, applies pending
// migrations and wires the repositories.
func NewStorages(ctx context.Context, cfg config.Storage, logger *logger.Logger) (*Storages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnect(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("database connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return NewStoragesFromDB(db, logger), nil
}

// NewStoragesFromDB wires the repositories over an open connection.
func NewStoragesFromDB(db *DB, logger *logger.Logger) *Storages {
	return &Storages{
		UserRepository:    NewUserRepository(db, logger),
		TokenRepository:   NewTokenRepository(db, logger),
		ProjectRepository: NewProjectRepository(db, logger),
		VacancyRepository: NewVacancyRepository(db, logger),
		Pinger:            db,
		db:                db,
	}
}

// Close releases the database connection.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
