package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/orris-inc/subconv/internal/convert"
	"github.com/orris-inc/subconv/internal/emit/template"
	"github.com/orris-inc/subconv/internal/fetch"
	httpinterfaces "github.com/orris-inc/subconv/internal/interfaces/http"
	sharedconfig "github.com/orris-inc/subconv/internal/shared/config"
	"github.com/orris-inc/subconv/internal/shared/logger"
)

// newServeCommand builds the "serve" subcommand, grounded on the teacher's
// server.NewCommand: load config, init logger, wire the usecase, start an
// http.Server, and shut down gracefully on SIGINT/SIGTERM.
func newServeCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the subconv HTTP front end",
		Long:  `Serve exposes POST /convert, POST /managed and GET /managed/:token over HTTP.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config.yaml")
	return cmd
}

func runServe(configPath string) error {
	cfg, err := sharedconfig.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	log := logger.Get()

	fetcher := &fetch.HTTPFetcher{
		Client: &http.Client{Timeout: time.Duration(cfg.Fetch.TimeoutSeconds) * time.Second},
	}
	uc := convert.NewUseCase(fetcher, logger.NewLogger())

	templates := template.NewLoader()
	if err := templates.Load(cfg.Template.Path, logger.NewLogger()); err != nil {
		return fmt.Errorf("load base templates: %w", err)
	}

	router := httpinterfaces.NewRouter(uc, cfg, templates, log)
	router.SetupRoutes()

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      router.GetEngine(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server starting", "address", cfg.Server.GetAddr(), "mode", cfg.Server.Mode)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		return err
	}

	log.Info("server exited gracefully")
	return nil
}
