package mappers

import (
	"lineup/internal/domain/operator"
	"lineup/internal/infrastructure/persistence/models"
)

type OperatorMapper struct{}

func NewOperatorMapper() OperatorMapper {
	return OperatorMapper{}
}

func (m OperatorMapper) ToModel(op *operator.Operator) *models.OperatorModel {
	return &models.OperatorModel{
		ID:           op.ID(),
		Username:     op.Username(),
		PasswordHash: op.PasswordHash(),
		CreatedAt:    op.CreatedAt(),
	}
}

func (m OperatorMapper) ToDomain(model *models.OperatorModel) (*operator.Operator, error) {
	return operator.ReconstructOperator(model.ID, model.Username, model.PasswordHash, model.CreatedAt)
}
