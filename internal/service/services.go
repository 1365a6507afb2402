package service

import (
	"github.com/MKhiriev/go-project-board/internal/config"
	"github.com/MKhiriev/go-project-board/internal/logger"
	"github.com/MKhiriev/go-project-board/internal/store"
)

type Services struct {
	AuthService    AuthService
	ProjectService ProjectService
	VacancyService VacancyService
	AppInfoService AppInfoService
}

func NewServices(storages *store.Storages, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, storages.Pinger, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		AuthService:    NewAuthService(storages.UserRepository, storages.TokenRepository, cfg.Auth, logger),
		ProjectService: NewProjectService(storages.ProjectRepository, storages.VacancyRepository, logger),
		VacancyService: NewVacancyService(storages.VacancyRepository, storages.ProjectRepository, logger),
		AppInfoService: appInfoService,
	}, nil
}
