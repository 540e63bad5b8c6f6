// Command server exposes the lyrics translator as a JSON REST API.
//
// Settings come from an optional YAML file (-config) and VOCALTRANS_*
// environment variables; see internal/config.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/vocal-technique/vocaltrans"
	"github.com/vocal-technique/vocaltrans/internal/api"
	"github.com/vocal-technique/vocaltrans/internal/config"
	"github.com/vocal-technique/vocaltrans/internal/feedback"
	"github.com/vocal-technique/vocaltrans/internal/observability"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "server: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	opts := []config.Option{}
	if configPath != "" {
		opts = append(opts, config.WithFile(configPath), config.WithRequiredFile())
	}
	cfg, err := config.Load(opts...)
	if err != nil {
		return err
	}

	logger, err := observability.NewLogger(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	tr, err := vocaltrans.OpenDir(cfg.Translate.TablesDir)
	if err != nil {
		return fmt.Errorf("load tables: %w", err)
	}
	stats := tr.Tables().Stats()
	logger.Info("rule tables loaded",
		zap.String("dir", cfg.Translate.TablesDir),
		zap.Int("exceptions", stats.Exceptions),
		zap.Int("vowels", stats.Vowels),
		zap.Int("consonants", stats.Consonants),
	)

	var fb *feedback.Service
	if cfg.Feedback.Enabled {
		fb, err = feedback.NewService(feedback.NewLogSink(logger))
		if err != nil {
			return err
		}
	}

	router := api.NewRouter(api.Deps{
		Translator: tr,
		Feedback:   fb,
		Logger:     logger,
		Defaults: vocaltrans.Options{
			Hyphenate: cfg.Translate.Hyphenate,
			Uppercase: cfg.Translate.Uppercase,
		},
		DefaultIntensity: cfg.Translate.Intensity,
		RequestTimeout:   cfg.Server.RequestTimeout,
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		MaxBodyBytes:     cfg.Server.MaxBodyBytes,
		MaxTextBytes:     cfg.Server.MaxTextBytes,
	})

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	serverLogger := logger.Named("http").With(zap.String("addr", server.Addr))
	g.Go(func() error {
		serverLogger.Info("vocaltrans api listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		serverLogger.Info("shutting down; draining requests")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownGrace)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
		return nil
	})
	return g.Wait()
}
