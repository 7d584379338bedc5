package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/magabrotheeeer/djmanager/internal/app/reminder"
	"github.com/magabrotheeeer/djmanager/internal/config"
	"github.com/magabrotheeeer/djmanager/internal/lib/logger"
	"github.com/magabrotheeeer/djmanager/internal/lib/sl"
)

var (
	once bool

	rootCmd = &cobra.Command{
		Use:   "subscription-reminder",
		Short: "Publish subscription expiry warnings to RabbitMQ",
		Long: `subscription-reminder checks user subscriptions on a fixed interval and
publishes a warning for every account that is close to expiry or already expired.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context())
		},
	}
)

func init() {
	rootCmd.Flags().BoolVar(&once, "once", false, "Run a single check and exit")
}

func run(ctx context.Context) error {
	cfg := config.MustLoad()
	log := logger.Setup(cfg.Env, cfg.Log)
	log.Info("starting subscription-reminder", slog.String("env", cfg.Env))

	app, err := reminder.New(ctx, cfg, log)
	if err != nil {
		log.Error("failed to initialize reminder", sl.Err(err))
		return err
	}

	if once {
		published, err := app.RunOnce(ctx)
		if err != nil {
			log.Error("reminder check failed", sl.Err(err))
			return err
		}
		log.Info("reminder check finished", slog.Int("published", published))
		return nil
	}

	if err := app.Run(ctx); err != nil {
		log.Error("reminder stopped with error", sl.Err(err))
		return err
	}
	log.Info("subscription-reminder stopped gracefully")
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
