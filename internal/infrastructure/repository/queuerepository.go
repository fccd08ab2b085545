package repository

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"lineup/internal/domain/queue"
	"lineup/internal/infrastructure/persistence/mappers"
	"lineup/internal/infrastructure/persistence/models"
	"lineup/internal/shared/errors"
	"lineup/internal/shared/logger"
)

// QueueRepository is the relational Store implementation. The singleton
// system_state row is the serialization point: AllocateNumber, Advance,
// and Reset all lock it inside a transaction, so concurrent joins get
// distinct numbers and concurrent advances cannot both move the pointer
// from the same base.
type QueueRepository struct {
	db     *gorm.DB
	mapper mappers.QueueEntryMapper
	logger logger.Interface
}

func NewQueueRepository(db *gorm.DB, log logger.Interface) *QueueRepository {
	return &QueueRepository{
		db:     db,
		mapper: mappers.NewQueueEntryMapper(),
		logger: log,
	}
}

func (r *QueueRepository) CreateEntry(ctx context.Context, t *queue.Ticket) error {
	model := r.mapper.ToModel(t)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.IsUniqueViolation(err) {
			// Two unique indexes can fire here; the key name tells them
			// apart.
			if strings.Contains(err.Error(), "email") {
				return errors.NewDuplicateError("this email has already joined the queue")
			}
			return errors.NewConflictError("ticket number already taken")
		}
		r.logger.Errorw("failed to insert queue entry", "error", err)
		return errors.NewUnavailableError("queue store unavailable")
	}

	return t.SetID(model.ID)
}

func (r *QueueRepository) EntryByNumber(ctx context.Context, number int) (*queue.Ticket, error) {
	var model models.QueueEntryModel

	err := r.db.WithContext(ctx).Where("number = ?", number).First(&model).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NewNotFoundError("ticket not found")
		}
		r.logger.Errorw("failed to find queue entry", "number", number, "error", err)
		return nil, errors.NewUnavailableError("queue store unavailable")
	}

	return r.mapper.ToDomain(&model)
}

func (r *QueueRepository) EntryByEmail(ctx context.Context, email string) (*queue.Ticket, error) {
	var model models.QueueEntryModel

	err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to find queue entry by email", "error", err)
		return nil, errors.NewUnavailableError("queue store unavailable")
	}

	return r.mapper.ToDomain(&model)
}

func (r *QueueRepository) ListEntries(ctx context.Context) ([]*queue.Ticket, error) {
	var ms []models.QueueEntryModel

	err := r.db.WithContext(ctx).Order("number ASC").Find(&ms).Error
	if err != nil {
		r.logger.Errorw("failed to list queue entries", "error", err)
		return nil, errors.NewUnavailableError("queue store unavailable")
	}

	return r.mapper.ToDomainList(ms)
}

func (r *QueueRepository) State(ctx context.Context) (*queue.LedgerState, error) {
	var model models.SystemStateModel

	err := r.db.WithContext(ctx).
		Where(models.SystemStateModel{ID: models.SystemStateID}).
		Attrs(models.SystemStateModel{CurrentServing: 1, LastIssued: 0, Generation: 1}).
		FirstOrCreate(&model).Error
	if err != nil {
		r.logger.Errorw("failed to load system state", "error", err)
		return nil, errors.NewUnavailableError("queue store unavailable")
	}

	return stateToDomain(&model)
}

func (r *QueueRepository) AllocateNumber(ctx context.Context) (int, error) {
	var allocated int

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		state, err := lockState(tx)
		if err != nil {
			return err
		}

		state.LastIssued++
		if err := tx.Model(&models.SystemStateModel{}).
			Where("id = ?", models.SystemStateID).
			Update("last_issued", state.LastIssued).Error; err != nil {
			return err
		}

		allocated = state.LastIssued
		return nil
	})
	if err != nil {
		r.logger.Errorw("failed to allocate ticket number", "error", err)
		return 0, errors.NewUnavailableError("queue store unavailable")
	}

	return allocated, nil
}

func (r *QueueRepository) Advance(ctx context.Context) (*queue.LedgerState, bool, error) {
	var (
		result   *queue.LedgerState
		advanced bool
	)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		state, err := lockState(tx)
		if err != nil {
			return err
		}

		if state.CurrentServing >= state.LastIssued {
			result, err = stateToDomain(state)
			return err
		}

		// The row lock already serializes advances; the precondition guard
		// is for drivers that do not honor SELECT ... FOR UPDATE.
		res := tx.Model(&models.SystemStateModel{}).
			Where("id = ? AND current_serving = ?", models.SystemStateID, state.CurrentServing).
			Update("current_serving", state.CurrentServing+1)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errors.NewConflictError("concurrent advance detected")
		}

		state.CurrentServing++
		advanced = true
		result, err = stateToDomain(state)
		return err
	})
	if err != nil {
		if errors.IsAppError(err) {
			return nil, false, err
		}
		r.logger.Errorw("failed to advance queue", "error", err)
		return nil, false, errors.NewUnavailableError("queue store unavailable")
	}

	return result, advanced, nil
}

func (r *QueueRepository) Reset(ctx context.Context) (*queue.LedgerState, error) {
	var result *queue.LedgerState

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		state, err := lockState(tx)
		if err != nil {
			return err
		}

		if err := tx.Where("1 = 1").Delete(&models.QueueEntryModel{}).Error; err != nil {
			return err
		}

		state.CurrentServing = 1
		state.LastIssued = 0
		state.Generation++
		if err := tx.Model(&models.SystemStateModel{}).
			Where("id = ?", models.SystemStateID).
			Updates(map[string]interface{}{
				"current_serving": state.CurrentServing,
				"last_issued":     state.LastIssued,
				"generation":      state.Generation,
			}).Error; err != nil {
			return err
		}

		result, err = stateToDomain(state)
		return err
	})
	if err != nil {
		r.logger.Errorw("failed to reset queue", "error", err)
		return nil, errors.NewUnavailableError("queue store unavailable")
	}

	return result, nil
}

// lockState loads the singleton row under SELECT ... FOR UPDATE, creating
// it on first use.
func lockState(tx *gorm.DB) (*models.SystemStateModel, error) {
	var state models.SystemStateModel

	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", models.SystemStateID).
		First(&state).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		state = models.SystemStateModel{
			ID:             models.SystemStateID,
			CurrentServing: 1,
			LastIssued:     0,
			Generation:     1,
		}
		err = tx.Create(&state).Error
	}
	if err != nil {
		return nil, err
	}
	return &state, nil
}

func stateToDomain(m *models.SystemStateModel) (*queue.LedgerState, error) {
	updatedAt := m.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}
	return queue.ReconstructLedgerState(m.CurrentServing, m.LastIssued, m.Generation, updatedAt)
}
