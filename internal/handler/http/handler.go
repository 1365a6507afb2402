package http

import (
	"github.com/MKhiriev/go-project-board/internal/config"
	"github.com/MKhiriev/go-project-board/internal/logger"
	"github.com/MKhiriev/go-project-board/internal/service"
	"github.com/MKhiriev/go-project-board/internal/utils"
	"github.com/MKhiriev/go-project-board/models"
)

type Handler struct {
	services *service.Services

	pageSize    int
	corsOrigins []string

	traceIDs *utils.UUIDGenerator

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.StructuredConfig, logger *logger.Logger) *Handler {
	pageSize := cfg.App.PageSize
	if pageSize <= 0 {
		pageSize = models.DefaultPageSize
	}

	logger.Info().Int("page_size", pageSize).Strs("cors_origins", cfg.Server.CORSAllowedOrigins).Msg("http handler created")
	return &Handler{
		services:    services,
		pageSize:    pageSize,
		corsOrigins: cfg.Server.CORSAllowedOrigins,
		traceIDs:    utils.NewUUIDGenerator(),
		logger:      logger,
	}
}
