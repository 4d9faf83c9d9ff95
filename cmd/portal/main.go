package main

import (
	"flag"
	"os"

	"github.com/campusgate/admissions/internal/pkg/logger"
	"github.com/campusgate/admissions/internal/portal"
)

func main() {
	configPath := flag.String("config", "./config.yaml", "path to the configuration file")
	flag.Parse()

	p, err := portal.New(*configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize portal")
		os.Exit(1)
	}

	if err := p.Run(); err != nil {
		logger.Error().Err(err).Msg("Portal exited with an error")
		os.Exit(1)
	}
}
