package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/frudas24/pointerkit/internal/app"
	"github.com/frudas24/pointerkit/internal/config"
	"github.com/frudas24/pointerkit/internal/logging"
	"github.com/frudas24/pointerkit/internal/rtc"
	"github.com/frudas24/pointerkit/internal/session"
)

const shutdownTimeout = 5 * time.Second

type serveOptions struct {
	configFile string
	staticDir  string
	debug      bool
}

// run wires the application and blocks until shutdown.
func run(ctx context.Context, opts serveOptions) error {
	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return err
	}
	lc, err := cfg.Log()
	if err != nil {
		return err
	}
	if opts.debug {
		lc.Level = zerolog.DebugLevel
	}
	log := logging.New(lc)
	logStartup(log, cfg)

	peers, err := rtc.NewFactory(cfg.ICEServers)
	if err != nil {
		return err
	}
	defer peers.ClosePeer()

	appInstance, err := app.New(cfg, session.New(cfg.UIPassword), peers, log)
	if err != nil {
		return err
	}
	if err := appInstance.Start(); err != nil {
		return err
	}

	mux := http.NewServeMux()
	appInstance.RegisterRoutes(mux, opts.staticDir)
	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return appInstance.WatchLayout(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// logStartup prints startup checks and connection info.
func logStartup(log zerolog.Logger, cfg config.Config) {
	log.Info().Msg("pointerd starting")
	envPath := filepath.Join(cfg.DataDir, ".env")
	log.Info().Str("path", envPath).Bool("found", fileExists(envPath)).Msg("env check")
	log.Info().Str("file", cfg.LayoutPath).Str("viewer_policy", cfg.ViewerPolicy).Int("ice_servers", len(cfg.ICEServers)).Msg("config")
	ev := log.Info().Str("listen_addr", cfg.ListenAddr)
	if url := localURL(cfg.ListenAddr); url != "" {
		ev = ev.Str("local_url", url)
	}
	ev.Msg("listening")
}

// localURL returns a browsable URL for the listen address.
func localURL(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return ""
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port)
}

// fileExists reports whether a path exists and is a file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
