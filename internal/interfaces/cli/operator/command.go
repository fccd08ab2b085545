package operator

import (
	"context"
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	operatordomain "lineup/internal/domain/operator"
	"lineup/internal/infrastructure/auth"
	"lineup/internal/infrastructure/config"
	"lineup/internal/infrastructure/database"
	"lineup/internal/infrastructure/migration"
	"lineup/internal/infrastructure/repository"
	"lineup/internal/shared/logger"
)

var (
	env      string
	username string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "operator",
		Short: "Operator account management",
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	cmd.AddCommand(newCreateCommand())

	return cmd
}

func newCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an operator account",
		Long:  `Create an operator account that can advance and reset the queue.`,
		RunE:  runCreate,
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "Operator username (required)")
	cmd.MarkFlagRequired("username")

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if cfg.Storage.Driver == "memory" {
		return fmt.Errorf("operator accounts require a persistent storage driver")
	}

	if err := database.Init(&cfg.Storage, &cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	if err := migration.NewManager(cfg.Storage.Driver).Migrate(database.Get()); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	password, err := promptPassword()
	if err != nil {
		return err
	}

	hasher := auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost)
	hash, err := hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	op, err := operatordomain.NewOperator(username, hash)
	if err != nil {
		return fmt.Errorf("invalid operator: %w", err)
	}

	repo := repository.NewOperatorRepository(database.Get(), logger.NewLogger())
	if err := repo.Create(context.Background(), op); err != nil {
		return fmt.Errorf("failed to create operator: %w", err)
	}

	fmt.Printf("operator %q created with id %d\n", op.Username(), op.ID())
	return nil
}

func promptPassword() (string, error) {
	fmt.Fprint(os.Stderr, "Password: ")
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	fmt.Fprint(os.Stderr, "Confirm password: ")
	confirm, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password confirmation: %w", err)
	}

	if string(password) != string(confirm) {
		return "", fmt.Errorf("passwords do not match")
	}
	if len(password) < 8 {
		return "", fmt.Errorf("password must be at least 8 characters")
	}

	return string(password), nil
}
