package repository

import (
	"context"
	stderrors "errors"

	"gorm.io/gorm"

	"lineup/internal/domain/operator"
	"lineup/internal/infrastructure/persistence/mappers"
	"lineup/internal/infrastructure/persistence/models"
	"lineup/internal/shared/errors"
	"lineup/internal/shared/logger"
)

type OperatorRepository struct {
	db     *gorm.DB
	mapper mappers.OperatorMapper
	logger logger.Interface
}

func NewOperatorRepository(db *gorm.DB, log logger.Interface) *OperatorRepository {
	return &OperatorRepository{
		db:     db,
		mapper: mappers.NewOperatorMapper(),
		logger: log,
	}
}

func (r *OperatorRepository) Create(ctx context.Context, op *operator.Operator) error {
	model := r.mapper.ToModel(op)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.IsUniqueViolation(err) {
			return errors.NewDuplicateError("operator username already exists")
		}
		r.logger.Errorw("failed to create operator", "error", err)
		return errors.NewUnavailableError("operator store unavailable")
	}

	return op.SetID(model.ID)
}

func (r *OperatorRepository) ByUsername(ctx context.Context, username string) (*operator.Operator, error) {
	var model models.OperatorModel

	err := r.db.WithContext(ctx).Where("username = ?", username).First(&model).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NewNotFoundError("operator not found")
		}
		r.logger.Errorw("failed to find operator", "error", err)
		return nil, errors.NewUnavailableError("operator store unavailable")
	}

	return r.mapper.ToDomain(&model)
}
