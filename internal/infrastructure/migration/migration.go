package migration

import (
	"fmt"
	"path/filepath"

	"gorm.io/gorm"

	"lineup/internal/infrastructure/persistence/models"
	"lineup/internal/shared/logger"
)

// Manager runs database migrations with a selected strategy.
type Manager struct {
	strategy Strategy
	logger   logger.Interface
}

// NewManager picks a strategy for the storage driver: versioned SQL
// scripts for mysql, gorm auto-migration for sqlite.
func NewManager(driver string) *Manager {
	var strategy Strategy

	switch driver {
	case "mysql":
		scriptsPath, _ := filepath.Abs("./internal/infrastructure/migration/scripts")
		strategy = NewGolangMigrateStrategy(scriptsPath)
	default:
		strategy = NewGormAutoMigrateStrategy()
	}

	return &Manager{
		strategy: strategy,
		logger:   logger.NewLogger().With("component", "migration.manager"),
	}
}

func NewManagerWithStrategy(strategy Strategy) *Manager {
	return &Manager{
		strategy: strategy,
		logger:   logger.NewLogger().With("component", "migration.manager"),
	}
}

func (m *Manager) Migrate(db *gorm.DB) error {
	ms := AutoMigrateModels()

	m.logger.Infow("starting database migration",
		"strategy", m.strategy.GetName(),
		"models_count", len(ms))

	if err := m.strategy.Migrate(db, ms...); err != nil {
		m.logger.Errorw("migration failed",
			"strategy", m.strategy.GetName(),
			"error", err)
		return fmt.Errorf("migration failed with strategy %s: %w", m.strategy.GetName(), err)
	}

	m.logger.Infow("database migration completed successfully",
		"strategy", m.strategy.GetName())

	return nil
}

func (m *Manager) GetStrategy() Strategy {
	return m.strategy
}

// AutoMigrateModels lists every model the schema carries.
func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.QueueEntryModel{},
		&models.SystemStateModel{},
		&models.OperatorModel{},
	}
}
