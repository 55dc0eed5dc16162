package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"
	"gopkg.in/yaml.v3"

	"github.com/vwap/veganizer/pkg/api"
	"github.com/vwap/veganizer/pkg/lexicon"
	"github.com/vwap/veganizer/pkg/store"
	"github.com/vwap/veganizer/pkg/veganize"
)

const version = "0.1.0"

type config struct {
	Addr           string `yaml:"addr"`
	DBPath         string `yaml:"db_path"`
	LexiconOverlay string `yaml:"lexicon_overlay"`
	LogLevel       string `yaml:"log_level"`
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		cmdServe(os.Args[2:])
	case "mcp":
		cmdMCP(os.Args[2:])
	case "ingest":
		cmdIngest(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: veganizer <command>\n\nCommands:\n  serve    Start the HTTP server\n  mcp      Serve the MCP tools over stdio\n  ingest   Ingest an ingredient source into the registry\n")
}

func cmdServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	fs.Parse(args)

	logger := newLogger(os.Stderr, "")
	cfg := loadConfig(*cfgPath, logger)
	logger = newLogger(os.Stderr, cfg.LogLevel)

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open record store", "error", err)
		os.Exit(1)
	}
	defer st.Close()

	lex := lexicon.New()
	if cfg.LexiconOverlay != "" {
		if err := lex.Reload(cfg.LexiconOverlay); err != nil {
			logger.Error("failed to load lexicon overlay", "error", err)
			os.Exit(1)
		}
		logger.Info("lexicon overlay loaded", "path", cfg.LexiconOverlay)
	}

	v := veganize.New(st, lex, logger)
	router := api.NewRouter(v, st, lex, logger)

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: router,
	}

	// SIGHUP: hot reload the lexicon overlay.
	// SIGINT/SIGTERM: graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sighup := make(chan os.Signal, 1)
	signal.Notify(sighup, syscall.SIGHUP)
	go func() {
		for range sighup {
			logger.Info("SIGHUP received, reloading lexicon")
			if err := lex.Reload(cfg.LexiconOverlay); err != nil {
				logger.Error("lexicon reload failed", "error", err)
			} else {
				logger.Info("lexicon reloaded", "overlay", cfg.LexiconOverlay)
			}
		}
	}()

	go func() {
		logger.Info("veganizer listening", "addr", cfg.Addr, "db", cfg.DBPath)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	srv.Shutdown(context.Background())
}

func cmdMCP(args []string) {
	fs := flag.NewFlagSet("mcp", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	fs.Parse(args)

	// Stdout carries the MCP protocol; all logging goes to stderr.
	logger := newLogger(os.Stderr, "")
	cfg := loadConfig(*cfgPath, logger)
	logger = newLogger(os.Stderr, cfg.LogLevel)

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open record store", "error", err)
		os.Exit(1)
	}
	defer st.Close()

	lex := lexicon.New()
	if cfg.LexiconOverlay != "" {
		if err := lex.Reload(cfg.LexiconOverlay); err != nil {
			logger.Error("failed to load lexicon overlay", "error", err)
			os.Exit(1)
		}
	}

	srv := server.NewMCPServer("vwap-veganizer", version)
	api.RegisterMCPTools(srv, veganize.New(st, lex, logger), st, logger)

	logger.Info("serving MCP tools over stdio")
	if err := server.ServeStdio(srv); err != nil {
		logger.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}

func newLogger(w *os.File, level string) *slog.Logger {
	lvl := slog.LevelInfo
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

func loadConfig(path string, logger *slog.Logger) config {
	cfg := config{
		Addr:   ":8420",
		DBPath: "ingredients.db",
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Info("no config file, using defaults", "path", path)
			return cfg
		}
		logger.Error("read config", "error", err)
		os.Exit(1)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		logger.Error("parse config", "error", err)
		os.Exit(1)
	}
	return cfg
}
