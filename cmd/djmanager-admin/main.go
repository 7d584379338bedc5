package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/magabrotheeeer/djmanager/internal/config"
	"github.com/magabrotheeeer/djmanager/internal/errs"
	"github.com/magabrotheeeer/djmanager/internal/lib/jwt"
	"github.com/magabrotheeeer/djmanager/internal/lib/logger"
	"github.com/magabrotheeeer/djmanager/internal/lib/sl"
	"github.com/magabrotheeeer/djmanager/internal/services/auth"
	"github.com/magabrotheeeer/djmanager/internal/storage"
)

var (
	configPath string
	username   string
	password   string

	rootCmd = &cobra.Command{
		Use:   "djmanager-admin",
		Short: "Administrative tasks for djmanager",
		Long: `djmanager-admin works directly with the configured storage.
It creates the first administrator and resets forgotten passwords.`,
		SilenceUsage: true,
	}

	initCmd = &cobra.Command{
		Use:   "init",
		Short: "Create the first administrator account",
		Long: `init creates an administrator when none exists yet. The administrator
must change the password on first login.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withAuth(cmd.Context(), func(ctx context.Context, svc *auth.Service) error {
				user, err := svc.Bootstrap(ctx, username, password)
				if errors.Is(err, errs.ErrAlreadyInitialized) {
					fmt.Fprintln(cmd.OutOrStdout(), "administrator already exists, nothing to do")
					return nil
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "administrator %q created\n", user.Username)
				return nil
			})
		},
	}

	resetCmd = &cobra.Command{
		Use:   "reset-password <username>",
		Short: "Set a temporary password for an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withAuth(cmd.Context(), func(ctx context.Context, svc *auth.Service) error {
				if err := svc.ResetPassword(ctx, args[0], password); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "password for %q reset, change required on next login\n", args[0])
				return nil
			})
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: $CONFIG_PATH)")

	initCmd.Flags().StringVarP(&username, "username", "u", "admin", "Administrator username")
	initCmd.Flags().StringVarP(&password, "password", "p", "", "Initial password")
	_ = initCmd.MarkFlagRequired("password")

	resetCmd.Flags().StringVarP(&password, "password", "p", "", "Temporary password")
	_ = resetCmd.MarkFlagRequired("password")

	rootCmd.AddCommand(initCmd, resetCmd)
}

func loadConfig() (*config.Config, error) {
	_ = godotenv.Load()

	path := configPath
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		return nil, errors.New("config path is not set, use --config or CONFIG_PATH")
	}
	return config.Load(path)
}

func withAuth(ctx context.Context, fn func(context.Context, *auth.Service) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := logger.New(cfg.Env, io.Discard)
	if cfg.Env == logger.EnvLocal {
		log = logger.Setup(cfg.Env, cfg.Log)
	}

	store, err := storage.Open(ctx, cfg.Storage, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Warn("failed to close storage", sl.Err(err))
		}
	}()

	svc := auth.NewService(store, jwt.NewJWTMaker(cfg.JWTToken.SecretKey, cfg.JWTToken.TokenTTL), log)
	return fn(ctx, svc)
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
