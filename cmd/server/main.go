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
	"github.com/jrsteele09/rental-portal/api"
	"github.com/jrsteele09/rental-portal/internal/config"
	"github.com/jrsteele09/rental-portal/internal/logging"
	"github.com/jrsteele09/rental-portal/listing"
	"github.com/jrsteele09/rental-portal/server"
	"github.com/jrsteele09/rental-portal/sessions"
	"github.com/jrsteele09/rental-portal/token"
	"github.com/rs/zerolog/log"
)

const maxRestarts = 5

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "failed to load .env: %s\n", err)
	}

	c := config.New()
	logging.Setup(c.GetEnv(), c.GetLogLevel())

	for attempt := 1; ; attempt++ {
		err := run(c)
		if err == nil {
			break
		}
		if attempt >= maxRestarts {
			log.Fatal().Err(err).Msg("Server failed too many times, giving up")
		}
		log.Error().Err(err).Int("attempt", attempt).Msg("Error running server, restarting")
		time.Sleep(1 * time.Second)
	}
	log.Info().Msg("Server stopped")
}

func run(c config.Config) (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("stack", string(debug.Stack())).Msg("Recovered from panic")
			returnError = errors.New("panic recovered")
		}
	}()

	displayAppname(c.GetAppName())

	backend, closeBackend, err := newBackend(c)
	if err != nil {
		return err
	}
	defer closeBackend()

	handler, err := server.New(c, backend)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              c.GetPort(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() { serveErr <- listenAndServe(srv) }()

	select {
	case err := <-serveErr:
		return err
	case <-waitForStopSignal():
	}
	return shutdown(srv)
}

// newBackend wires the api clients, session cookies and draft store
func newBackend(c config.Config) (server.Backend, func(), error) {
	sealer := sessions.NewSealer(c.GetSessionSecret())
	if c.GetEnv() != "DEV" && c.GetSessionSecret() == "rental-portal-dev-secret" {
		log.Warn().Msg("SESSION_SECRET is not set, session cookies use the development key")
	}

	backend := server.Backend{
		API:     api.New(c.GetAPIBaseURL(), c.GetHTTPTimeout()),
		Content: api.NewContentService(c.GetAIBaseURL(), c.GetHTTPTimeout()),
		Cookies: sessions.NewCookies(sealer, sessions.CookieOptions{
			AccessName:    c.GetAccessCookieName(),
			RefreshName:   c.GetRefreshCookieName(),
			AccessMaxAge:  c.GetAccessCookieMaxAge(),
			RefreshMaxAge: c.GetRefreshCookieMaxAge(),
		}),
		Decoder: token.NewDecoder(),
	}

	if c.GetRedisAddr() == "" {
		log.Info().Msg("Listing drafts are kept in memory")
		backend.Drafts = listing.NewMemoryDraftStore()
		return backend, func() {}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	client, err := listing.NewRedisClient(ctx, listing.RedisOptions{
		Addr:     c.GetRedisAddr(),
		Password: c.GetRedisPassword(),
		DB:       c.GetRedisDB(),
	})
	if err != nil {
		return server.Backend{}, nil, err
	}
	log.Info().Str("addr", c.GetRedisAddr()).Dur("ttl", c.GetDraftTTL()).Msg("Listing drafts are kept in redis")
	backend.Drafts = listing.NewRedisDraftStore(client, c.GetDraftTTL())
	return backend, func() {
		if err := client.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close redis client")
		}
	}, nil
}

func listenAndServe(server *http.Server) error {
	log.Info().Str("addr", server.Addr).Msg("Server listening")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() <-chan os.Signal {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	return stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
