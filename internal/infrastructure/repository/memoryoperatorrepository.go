package repository

import (
	"context"
	"sync"
	"time"

	"lineup/internal/domain/operator"
	"lineup/internal/shared/errors"
)

type MemoryOperatorRepository struct {
	mu         sync.Mutex
	nextID     uint
	byUsername map[string]*operator.Operator
}

func NewMemoryOperatorRepository() *MemoryOperatorRepository {
	return &MemoryOperatorRepository{
		nextID:     1,
		byUsername: make(map[string]*operator.Operator),
	}
}

func (r *MemoryOperatorRepository) Create(_ context.Context, op *operator.Operator) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byUsername[op.Username()]; ok {
		return errors.NewDuplicateError("operator username already exists")
	}

	if err := op.SetID(r.nextID); err != nil {
		return err
	}
	r.nextID++

	stored, err := operator.ReconstructOperator(op.ID(), op.Username(), op.PasswordHash(), time.Now().UTC())
	if err != nil {
		return err
	}
	r.byUsername[stored.Username()] = stored
	return nil
}

func (r *MemoryOperatorRepository) ByUsername(_ context.Context, username string) (*operator.Operator, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	op, ok := r.byUsername[username]
	if !ok {
		return nil, errors.NewNotFoundError("operator not found")
	}
	return op, nil
}
