package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/cmskit/jwt-session/internal/config"
	"github.com/cmskit/jwt-session/lifecycle"
	"github.com/cmskit/jwt-session/server"
	"github.com/cmskit/jwt-session/server/loginsession"
	"github.com/cmskit/jwt-session/store"
	"github.com/cmskit/jwt-session/store/redisrepo"
	"github.com/cmskit/jwt-session/store/repofake"
	"github.com/cmskit/jwt-session/token"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("error running server")
	}
	log.Info().Msg("server stopped")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("recovered from panic")
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	_ = godotenv.Load()

	cfg, err := config.New()
	if err != nil {
		return err
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if cfg.GetEnv() == "DEV" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	displayAppname(cfg.GetAppName())

	signer, err := token.NewHMACSigner(cfg.GetSigningSecret())
	if err != nil {
		return err
	}
	codec, err := token.NewCodec(signer)
	if err != nil {
		return err
	}

	tokenRepo, expirySource, err := buildStores(cfg)
	if err != nil {
		return err
	}

	manager, err := lifecycle.New(codec, tokenRepo, expirySource, lifecycle.WithLogger(log.Logger))
	if err != nil {
		return err
	}

	handler, err := server.New(cfg, manager, expirySource, loginsession.NewInMemoryLoginSessionRepo())
	if err != nil {
		return err
	}

	httpServer := &http.Server{Addr: cfg.GetPort(), Handler: handler}
	go listenAndServe(httpServer)
	waitForStopSignal()
	return shutdown(httpServer)
}

// buildStores wires the Redis-backed stores when a Redis URL is configured
// and falls back to in-memory implementations for single-process runs.
func buildStores(cfg config.Config) (store.Repo, config.ExpirySource, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		seed := cfg.GetDefaultExpiryMinutes()
		return repofake.NewFakeTokenRepo(), config.NewMemoryExpirySource(seed), nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, nil, fmt.Errorf("redis unavailable: %w", err)
	}

	return redisrepo.New(client), config.NewRedisExpirySource(client), nil
}

func listenAndServe(httpServer *http.Server) {
	log.Info().Str("addr", httpServer.Addr).Msg("server listening")
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error().Err(err).Msg("server.ListenAndServe")
	}
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(httpServer *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
