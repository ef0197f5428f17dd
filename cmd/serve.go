package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"harpy-detect/config"
	"harpy-detect/internal/api/rest"
	"harpy-detect/internal/api/telegram"
	"harpy-detect/internal/container"
	"harpy-detect/internal/infrastructure/storage"
	"harpy-detect/internal/infrastructure/vision"
)

const shutdownTimeout = 30 * time.Second

func newServeCmd(flags *rootFlags) *cobra.Command {
	var addr, engine string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API (and the Telegram bot when a token is configured)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags, config.Options{Addr: addr, Engine: engine})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "HTTP listen address (default :8000)")
	cmd.Flags().StringVar(&engine, "engine", "", "Filter engine: imaging or gocv")

	return cmd
}

func loadConfig(flags *rootFlags, opts config.Options) (*config.Config, error) {
	if flags.logLevel != "" {
		opts.LogLevel = flags.logLevel
	}
	if flags.debug {
		opts.LogLevel = "debug"
	}

	cfg, err := config.Load(flags.configPath, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	setupLogging(cfg.Log.Level, cfg.Log.Pretty || flags.debug)
	return cfg, nil
}

func buildContainer(cfg *config.Config) (*container.Container, error) {
	filter, err := vision.NewFilter(cfg.Filter.Engine)
	if err != nil {
		return nil, fmt.Errorf("failed to create filter: %w", err)
	}

	return container.New(storage.NewMemoryChatRepository(), vision.NewCodec(), filter), nil
}

func serve(ctx context.Context, cfg *config.Config) error {
	log.Info().
		Str("version", version).
		Str("commit", commit).
		Str("engine", cfg.Filter.Engine).
		Msg("Starting harpy-detect")

	appContainer, err := buildContainer(cfg)
	if err != nil {
		return err
	}

	router := rest.NewRouter(appContainer.PrivacyService, rest.RouterOptions{
		MaxBodyBytes: cfg.HTTP.MaxBodyBytes,
		CORSOrigins:  cfg.HTTP.CORSOrigins,
	})

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	var bot *telegram.Bot
	if cfg.TelegramEnabled() {
		bot, err = telegram.NewBot(cfg.Telegram.Token, appContainer.ChatService, appContainer.PrivacyService)
		if err != nil {
			return fmt.Errorf("failed to create telegram bot: %w", err)
		}
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", cfg.HTTP.Addr).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	if bot != nil {
		g.Go(func() error {
			log.Info().Msg("Starting Telegram bot")
			return bot.Run(ctx)
		})
	}

	g.Go(func() error {
		<-ctx.Done()
		log.Info().Msg("Shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Error shutting down HTTP server")
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	log.Info().Msg("harpy-detect shutdown complete")
	return nil
}

// writeFile пишет результат фильтрации на диск.
func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
