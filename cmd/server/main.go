package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/cristhianfss97/Controle-de-Produtos/internal/auth"
	"github.com/cristhianfss97/Controle-de-Produtos/internal/config"
	"github.com/cristhianfss97/Controle-de-Produtos/internal/db"
	"github.com/cristhianfss97/Controle-de-Produtos/internal/server"
)

func newLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	var out zerolog.Logger
	if cfg.Env == "development" {
		out = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	} else {
		out = zerolog.New(os.Stderr)
	}
	return out.Level(level).With().Timestamp().Logger()
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		boot := zerolog.New(os.Stderr)
		boot.Fatal().Err(err).Msg("invalid configuration")
	}
	log := newLogger(cfg)

	conn, err := db.Connect(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("database setup failed")
	}

	sessions := auth.NewSessions(cfg.SessionSecret)
	handler := server.New(conn, sessions, log)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("env", cfg.Env).Str("addr", srv.Addr).Bool("postgres", cfg.UsingPostgres()).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
	log.Info().Msg("server stopped")
}
