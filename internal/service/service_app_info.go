package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-project-board/internal/config"
	"github.com/MKhiriev/go-project-board/internal/logger"
	"github.com/MKhiriev/go-project-board/internal/store"
	"github.com/MKhiriev/go-project-board/models"
)

const (
	apiWelcomeMessage = "Welcome to Project Management API!"
	apiStatusMessage  = "API is working correctly!"

	healthStatusOK       = "ok"
	healthStatusDegraded = "degraded"
	databaseUp           = "up"
	databaseDown         = "down"
)

// apiEndpoints lists the top-level resources advertised by the API root.
var apiEndpoints = map[string]string{
	"projects":  "/api/projects/",
	"vacancies": "/api/vacancies/",
	"auth":      "/auth/",
	"health":    "/healthz",
}

type appInfoService struct {
	appVersion string
	pinger     store.Pinger

	logger *logger.Logger
}

// NewAppInfoService builds the service reporting the configured version.
// pinger may be nil, in which case the database is reported as down.
func NewAppInfoService(cfg config.App, pinger store.Pinger, logger *logger.Logger) (AppInfoService, error) {
	if cfg.Version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	return &appInfoService{
		appVersion: cfg.Version,
		pinger:     pinger,
		logger:     logger,
	}, nil
}

func (s *appInfoService) GetAppVersion(ctx context.Context) string {
	return s.appVersion
}

func (s *appInfoService) Info(ctx context.Context) models.APIInfo {
	endpoints := make(map[string]string, len(apiEndpoints))
	for name, path := range apiEndpoints {
		endpoints[name] = path
	}

	return models.APIInfo{
		Message:   apiWelcomeMessage,
		Version:   s.appVersion,
		Endpoints: endpoints,
		Status:    apiStatusMessage,
	}
}

// Health pings the database. The returned error wraps ErrUnavailable when
// the ping fails; the payload is filled in either case.
func (s *appInfoService) Health(ctx context.Context) (models.Health, error) {
	if s.pinger == nil {
		return models.Health{Status: healthStatusDegraded, Database: databaseDown}, ErrUnavailable
	}

	if err := s.pinger.PingContext(ctx); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*appInfoService.Health").Msg("database ping failed")
		return models.Health{Status: healthStatusDegraded, Database: databaseDown}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	return models.Health{Status: healthStatusOK, Database: databaseUp}, nil
}
