package main

import (
	"io"
	"net/url"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/internal/router"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load configuration from a .env file if one exists
	_ = godotenv.Load()

	// gin uses debug as the default mode, we use release for
	// security reasons
	ginMode, ok := os.LookupEnv("GIN_MODE")
	if !ok {
		gin.SetMode("release")
	} else {
		gin.SetMode(ginMode)
	}

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	logFormat, ok := os.LookupEnv("LOG_FORMAT")
	output := io.Writer(os.Stdout)
	if (!ok && gin.IsDebugging()) || (ok && logFormat == "human") {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	dbPath, ok := os.LookupEnv("DB_PATH")
	if !ok {
		// Create the default data directory
		dataDir := filepath.Join(".", "data")
		err := os.MkdirAll(dataDir, os.ModePerm)
		if err != nil {
			log.Fatal().Msg(err.Error())
		}

		dbPath = filepath.Join(dataDir, "gorm.db")
	}

	// Connect to the database and migrate the schema
	err := models.Connect(dbPath)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// The URL the API is reachable at, used to build resource links
	apiURL, ok := os.LookupEnv("API_URL")
	if !ok {
		apiURL = "http://localhost:8080"
	}

	baseURL, err := url.Parse(apiURL)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	r, teardown, err := router.Config(baseURL)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}
	defer teardown()

	router.AttachRoutes(r.Group("/"))

	// gin reads the PORT environment variable when no address is passed
	if err := r.Run(); err != nil {
		log.Fatal().Msg(err.Error())
	}
}
