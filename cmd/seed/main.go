// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-project-board/internal/adapter"
	"github.com/MKhiriev/go-project-board/internal/client"
	"github.com/MKhiriev/go-project-board/internal/config"
	"github.com/MKhiriev/go-project-board/internal/logger"
)

func main() {
	log := logger.NewConsoleLogger("project-board-seed", os.Stdout)

	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	api, err := adapter.NewHTTPAPIClient(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating api client")
	}

	app, err := client.NewApp(api, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating seed client")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary, err := app.Run(ctx)
	if err != nil {
		log.Err(err).Msg("seeding failed")
		stop()
		os.Exit(1)
	}

	fmt.Printf("Projects created: %d\n", summary.Projects)
	fmt.Printf("Vacancies created: %d\n", summary.Vacancies)
}
