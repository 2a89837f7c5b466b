// Package wire provides dependency injection for the parley CLI.
// It creates singleton services with lazy initialization.
package wire

import (
	"database/sql"
	"io"
	"log"
	"log/slog"
	"os"
	"sync"

	cliadapter "github.com/example/parley/internal/adapters/cli"
	"github.com/example/parley/internal/adapters/httpapi"
	sqliteadapter "github.com/example/parley/internal/adapters/sqlite"
	"github.com/example/parley/internal/app"
	"github.com/example/parley/internal/config"
	"github.com/example/parley/internal/db"
	"github.com/example/parley/internal/logging"
	"github.com/example/parley/internal/ports/primary"
)

var (
	cfg                *config.Config
	logger             *slog.Logger
	database           *sql.DB
	messageService     primary.MessageService
	participantService primary.ParticipantService
	once               sync.Once
)

// MessageService returns the singleton MessageService instance.
func MessageService() primary.MessageService {
	once.Do(initServices)
	return messageService
}

// ParticipantService returns the singleton ParticipantService instance.
func ParticipantService() primary.ParticipantService {
	once.Do(initServices)
	return participantService
}

// Config returns the configuration the services were built from.
func Config() *config.Config {
	once.Do(initServices)
	return cfg
}

// Logger returns the process-wide logger.
func Logger() *slog.Logger {
	once.Do(initServices)
	return logger
}

// DB returns the shared database handle.
func DB() *sql.DB {
	once.Do(initServices)
	return database
}

// MessageAdapter returns a new MessageAdapter writing to stdout.
func MessageAdapter() *cliadapter.MessageAdapter {
	return MessageAdapterWithOutput(os.Stdout)
}

// MessageAdapterWithOutput returns a MessageAdapter writing to out.
func MessageAdapterWithOutput(out io.Writer) *cliadapter.MessageAdapter {
	once.Do(initServices)
	return cliadapter.NewMessageAdapter(messageService, out)
}

// ParticipantAdapter returns a new ParticipantAdapter writing to stdout.
func ParticipantAdapter() *cliadapter.ParticipantAdapter {
	return ParticipantAdapterWithOutput(os.Stdout)
}

// ParticipantAdapterWithOutput returns a ParticipantAdapter writing to out.
func ParticipantAdapterWithOutput(out io.Writer) *cliadapter.ParticipantAdapter {
	once.Do(initServices)
	return cliadapter.NewParticipantAdapter(participantService, out)
}

// HTTPServer builds the HTTP API over the singleton services using the
// configured rate limits.
func HTTPServer() *httpapi.Server {
	once.Do(initServices)
	return httpapi.NewServer(messageService, participantService, httpapi.Options{
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
		Logger:         logger,
	})
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	cwd, err := os.Getwd()
	if err != nil {
		log.Fatalf("failed to get working directory: %v", err)
	}

	cfg, err = config.Load(cwd)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger = logging.New(cfg.LogLevel, os.Stderr)

	dbPath, err := cfg.ResolveDatabasePath()
	if err != nil {
		log.Fatalf("failed to resolve database path: %v", err)
	}

	database, err = db.Open(dbPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	logger.Debug("database ready", "path", dbPath)

	// Create repositories (secondary adapters)
	messageRepo := sqliteadapter.NewMessageRepository(database)
	participantRepo := sqliteadapter.NewParticipantRepository(database)

	// Create services (primary ports)
	messageService = app.NewMessageService(messageRepo, participantRepo, logger)
	participantService = app.NewParticipantService(participantRepo, logger)
}
