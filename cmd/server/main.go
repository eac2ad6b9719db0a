package main

import (
	"os"
	"time"

	"github.com/DanijelPavlovic/valere-margins-challenge/db"
	"github.com/DanijelPavlovic/valere-margins-challenge/internal/auth"
	"github.com/DanijelPavlovic/valere-margins-challenge/internal/router"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("no .env file found, relying on environment")
	}

	if err := auth.InitJWTSecret(); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize JWT secret")
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal().Msg("DATABASE_URL environment variable is not set")
	}

	if err := db.ConnectDatabase(dsn); err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	if err := db.MigrateDatabase(); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	if os.Getenv("SEED_DATABASE") == "true" {
		if err := db.SeedDatabase(); err != nil {
			log.Fatal().Err(err).Msg("failed to seed database")
		}
		log.Info().Msg("database seeded")
	}

	r := router.NewRouter()

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
		log.Info().Msg("PORT not set, defaulting to 3000")
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
