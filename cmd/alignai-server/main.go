package main

import (
	"flag"
	"os"

	"github.com/joho/godotenv"

	"github.com/alignai/alignai/assistantservice"
	"github.com/alignai/alignai/internal/logger"
)

func main() {
	envFile := flag.String("env-file", ".env", "Path to an optional env file")
	flag.Parse()

	log := logger.New("alignai-server")

	// Missing env file is fine; the environment itself may carry the config.
	if err := godotenv.Load(*envFile); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Str("path", *envFile).Msg("Failed to load env file")
	}

	if err := assistantservice.Run(); err != nil {
		log.Fatal().Err(err).Msg("Server exited with error")
	}
}
