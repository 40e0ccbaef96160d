/*
Webapp is the executable for the birding web server.

It serves the observation log's HTML views directly: species catalogue,
observation notes, signup and login forms, and per-user profiles.

Usage:

	webapp [flags]

Flags, environment variables and the optional config.yml file are handled by
the code in `load-configuration.go`.

Return values (exit codes):

	0
		The program ended successfully (no errors, stopped by signal)

	> 0
		The program ended due to an error

Note that this program will build the database schema on first run and refuse
to start against a database whose schema differs from the embedded one.
*/
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/ardanlabs/conf"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"

	"github.com/bwgoh/birding/pkg/auth"
	"github.com/bwgoh/birding/pkg/notes"
	"github.com/bwgoh/birding/pkg/rest"
	"github.com/bwgoh/birding/pkg/species"
	"github.com/bwgoh/birding/pkg/storage/sqlite"
	"github.com/bwgoh/birding/pkg/users"
)

// main is the program entry point. The only purpose of this function is to call run() and set the exit code if there is
// any error
func main() {
	if err := run(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "error: ", err)
		os.Exit(1)
	}
}

// run executes the program:
// * reads the configuration
// * creates and configures the logger
// * connects to storage
// * registers the route handlers
// * starts the web server and waits for a termination event
func run() error {
	// Load Configuration and defaults
	cfg, err := loadConfiguration()
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			return nil
		}
		return err
	}

	// Init logging
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	if cfg.Debug {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}

	logger.Infof("application initializing")

	// initialise database before registering handlers for an immediate exit in case of issues
	storage, err := sqlite.New(logger, cfg.DB.Filename)
	if err != nil {
		logger.WithError(err).Error("error initialising storage")
		return fmt.Errorf("error while initialising storage: %w", err)
	}
	defer func() { _ = storage.Close() }()

	hashKey, blockKey, err := sessionKeys(cfg)
	if err != nil {
		return err
	}
	sessions := auth.NewSessions(hashKey, blockKey)

	logger.Info("initializing web server")

	// Make a channel to listen for an interrupt or terminate signal from the OS.
	// Use a buffered channel because the signal package requires it.
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Make a channel to listen for errors coming from the listener. Use a
	// buffered channel so the goroutine can exit if we don't collect this error.
	serverErrors := make(chan error, 1)

	engine, err := rest.New(rest.Config{
		Logger: logger,
	})
	if err != nil {
		logger.WithError(err).Error("error creating the server engine")
		return fmt.Errorf("creating the server engine: %w", err)
	}

	// request-scoped loggers for every route
	engine.Use(engine.RequestLogger())

	// setup handlers; repositories receive the shared connection pool explicitly
	var userRepository = users.NewRepository(storage.Connection)
	var speciesRepository = species.NewRepository(storage.Connection)
	var noteRepository = notes.NewRepository(storage.Connection)

	notes.RegisterHandlers(engine, noteRepository, speciesRepository, sessions)
	species.RegisterHandlers(engine, speciesRepository, sessions)
	users.RegisterHandlers(engine, userRepository, noteRepository, sessions)

	engine.ServeFiles("/static/*filepath", http.Dir("static"))

	// form method tunnelling must run before routing; access logging and
	// panic recovery wrap the lot
	handler := rest.MethodOverride(engine.Handler())
	handler = applyAccessHandlers(handler, logger)

	server := http.Server{
		Addr:              cfg.Web.Host,
		Handler:           handler,
		ReadTimeout:       cfg.Web.ReadTimeout,
		ReadHeaderTimeout: cfg.Web.ReadTimeout,
		WriteTimeout:      cfg.Web.WriteTimeout,
	}

	// Start the service listening for requests in a separate goroutine
	go func() {
		logger.Infof("web server listening on %s", server.Addr)
		serverErrors <- server.ListenAndServe()
		logger.Infof("stopping web server")
	}()

	// Waiting for shutdown signal or POSIX signals
	select {
	case err := <-serverErrors:
		// Non-recoverable server error
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Infof("signal %v received, start shutdown", sig)

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Web.ShutdownTimeout)
		defer cancel()

		// Asking listener to shut down and load shed.
		if err = server.Shutdown(ctx); err != nil {
			logger.WithError(err).Warning("error during graceful shutdown of HTTP server")
			err = server.Close()
		}

		if err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}
