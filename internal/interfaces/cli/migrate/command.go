package migrate

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"lineup/internal/infrastructure/config"
	"lineup/internal/infrastructure/database"
	"lineup/internal/infrastructure/migration"
	"lineup/internal/shared/logger"
)

var (
	env   string
	steps int
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Run or roll back database schema migrations.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	cmd.AddCommand(
		newUpCommand(),
		newDownCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		RunE:  runUp,
	}
}

func newDownCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Rollback migrations",
		RunE:  runDown,
	}

	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to rollback")

	return cmd
}

func initEnv() (*config.Config, error) {
	cfg, err := config.Load(env)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if cfg.Storage.Driver == "memory" {
		return nil, fmt.Errorf("the memory storage driver has no schema to migrate")
	}

	if err := database.Init(&cfg.Storage, &cfg.Database); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return cfg, nil
}

func runUp(cmd *cobra.Command, args []string) error {
	cfg, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	return migration.NewManager(cfg.Storage.Driver).Migrate(database.Get())
}

func runDown(cmd *cobra.Command, args []string) error {
	cfg, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	if cfg.Storage.Driver != "mysql" {
		return fmt.Errorf("down migrations are only supported for the mysql driver")
	}

	scriptsPath, err := filepath.Abs("./internal/infrastructure/migration/scripts")
	if err != nil {
		return fmt.Errorf("failed to resolve scripts path: %w", err)
	}

	strategy := migration.NewGolangMigrateStrategy(scriptsPath)
	gm, ok := strategy.(*migration.GolangMigrateStrategy)
	if !ok {
		return fmt.Errorf("unexpected migration strategy")
	}

	return gm.MigrateDown(database.Get(), steps)
}
