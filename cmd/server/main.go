/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the leave-management server. Handles configuration,
  dependency wiring, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load environment configuration (.env supported)
  2. Open the selected store (sqlite or flat-file)
  3. Run one accrual trigger pass (the boot session)
  4. Configure the HTTP router
  5. Start the server with graceful shutdown

COMMAND-LINE FLAGS:
  -port      HTTP server port (overrides PORT)
  -backend   "sqlite" or "file" (overrides BACKEND)
  -db        SQLite database path; ":memory:" works for development
  -data      Data directory for the flat-file backend

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM: stop accepting connections, wait up to 30s for active
  requests, close the store, exit.

SEE ALSO:
  - api/server.go: Router configuration
  - config/config.go: Environment variables
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/warden/leave-engine/api"
	"github.com/warden/leave-engine/auth"
	"github.com/warden/leave-engine/config"
	"github.com/warden/leave-engine/leave"
	"github.com/warden/leave-engine/notify"
	filestore "github.com/warden/leave-engine/store/file"
	"github.com/warden/leave-engine/store/sqlite"
)

func main() {
	cfg := config.Load()

	// Flags override the environment.
	port := flag.Int("port", cfg.Port, "HTTP server port")
	backend := flag.String("backend", cfg.Backend, "storage backend: sqlite or file")
	dbPath := flag.String("db", cfg.DBPath, "SQLite database path")
	dataDir := flag.String("data", cfg.DataDir, "data directory for the file backend")
	flag.Parse()

	var (
		store  leave.Store
		closer func() error
		err    error
	)
	switch *backend {
	case "sqlite":
		s, serr := sqlite.New(*dbPath)
		if serr != nil {
			logrus.WithError(serr).Fatal("failed to open sqlite store")
		}
		store, closer = s, s.Close
	case "file":
		store, err = filestore.New(*dataDir)
		if err != nil {
			logrus.WithError(err).Fatal("failed to open file store")
		}
		closer = func() error { return nil }
	default:
		logrus.Fatalf("unknown backend %q (want sqlite or file)", *backend)
	}
	defer closer()

	var notifier notify.Notifier = notify.Noop{}
	if cfg.SMTPHost != "" {
		recipients := strings.Split(cfg.MailTo, ",")
		for i := range recipients {
			recipients[i] = strings.TrimSpace(recipients[i])
		}
		notifier = notify.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom, recipients)
		logrus.WithField("host", cfg.SMTPHost).Info("email notifications enabled")
	} else {
		logrus.Info("SMTP not configured; notifications disabled")
	}

	runner := &leave.AccrualRunner{
		Store:          store,
		DefaultCeiling: cfg.DefaultCeiling,
		Log:            logrus.StandardLogger(),
	}

	// Boot counts as a session load: prime state and apply any pending
	// month's accrual before serving anyone.
	if _, err := runner.Run(context.Background(), time.Now()); err != nil {
		logrus.WithError(err).Error("startup accrual pass failed; serving with un-mutated roster")
	}

	sessions := auth.NewSessionManager(time.Duration(cfg.SessionTTLHours) * time.Hour)
	handler := api.NewHandler(store, sessions, notifier, runner, cfg.AdminName)
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logrus.Infof("server starting on http://localhost:%d", *port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logrus.WithError(err).Fatal("server forced to shutdown")
	}

	logrus.Info("server stopped")
}
