package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/me/smecert/internal/config"
	"github.com/me/smecert/internal/logging"
	"github.com/me/smecert/internal/server"
	"github.com/me/smecert/internal/store"
)

func main() {
	configFile := flag.String("config", "", "Path to YAML config file")
	dotenvFile := flag.String("env-file", "", "Path to .env file (default .env if present)")
	debug := flag.Bool("debug", false, "Shorthand for --log-level=debug")

	// Flags below override both the config file and the environment.
	addr := flag.String("addr", "", "Listen address")
	apiURL := flag.String("api", "", "Upstream API base URL")
	dbPath := flag.String("db", "", "Session database path (default ~/.smecert/sessions.db)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	logFormat := flag.String("log-format", "", "Log format (text, json)")
	staticDir := flag.String("static", "ui/assets", "Static assets directory")
	secure := flag.Bool("secure-cookies", false, "Set Secure on session cookies (HTTPS deployments)")

	flag.Parse()

	if err := config.LoadDotenv(*dotenvFile); err != nil {
		fmt.Fprintf(os.Stderr, "load env file: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	cfg.FromEnv()
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *apiURL != "" {
		cfg.APIBaseURL = *apiURL
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *logFormat != "" {
		cfg.LogFormat = *logFormat
	}
	if *secure {
		cfg.SecureCookies = true
	}
	if *debug {
		cfg.LogLevel = "debug"
	}

	logger := logging.NewLogger(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat)

	// Resolve session database path.
	path := cfg.DBPath
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "cannot determine home directory: %v\n", err)
			os.Exit(1)
		}
		dir := filepath.Join(home, ".smecert")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "cannot create %s: %v\n", dir, err)
			os.Exit(1)
		}
		path = filepath.Join(dir, "sessions.db")
	}

	st, err := store.NewSQLiteStore(path, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open session database: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	if err := st.Migrate(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "migrate session database: %v\n", err)
		os.Exit(1)
	}
	logger.Info("session database ready", "path", path)

	srv := server.New(cfg, st, logger, server.WithStaticDir(*staticDir))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv.StartCleanup(ctx)

	if err := srv.Run(ctx); err != nil && err != http.ErrServerClosed {
		fmt.Fprintf(os.Stderr, "server: %v\n", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
