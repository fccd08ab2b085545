package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lineup/internal/domain/queue"
	"lineup/internal/shared/errors"
)

func TestAdvanceQueueUseCase_Execute_Success(t *testing.T) {
	mockRepo := &mockRepository{
		AdvanceFunc: func(ctx context.Context) (*queue.LedgerState, bool, error) {
			return mustState(2, 2, 1), true, nil
		},
	}
	notifier := &mockNotifier{}

	useCase := NewAdvanceQueueUseCase(mockRepo, notifier, &mockLogger{})
	result, err := useCase.Execute(context.Background(), AdvanceQueueCommand{OperatorID: 1})

	require.NoError(t, err)
	assert.True(t, result.Advanced)
	assert.Equal(t, 2, result.CurrentServing)
	assert.Equal(t, 1, notifier.stateChanged)
}

func TestAdvanceQueueUseCase_Execute_NothingToAdvance(t *testing.T) {
	mockRepo := &mockRepository{
		AdvanceFunc: func(ctx context.Context) (*queue.LedgerState, bool, error) {
			return mustState(3, 3, 1), false, nil
		},
	}
	notifier := &mockNotifier{}

	useCase := NewAdvanceQueueUseCase(mockRepo, notifier, &mockLogger{})
	result, err := useCase.Execute(context.Background(), AdvanceQueueCommand{OperatorID: 1})

	require.NoError(t, err, "nothing to advance is a no-op, not an error")
	assert.False(t, result.Advanced)
	assert.Equal(t, 3, result.CurrentServing, "state unchanged")
	assert.Zero(t, notifier.stateChanged, "no notification for a no-op")
}

func TestAdvanceQueueUseCase_Execute_RequiresOperator(t *testing.T) {
	advanced := false
	mockRepo := &mockRepository{
		AdvanceFunc: func(ctx context.Context) (*queue.LedgerState, bool, error) {
			advanced = true
			return mustState(2, 2, 1), true, nil
		},
	}

	useCase := NewAdvanceQueueUseCase(mockRepo, &mockNotifier{}, &mockLogger{})
	result, err := useCase.Execute(context.Background(), AdvanceQueueCommand{})

	assert.Nil(t, result)
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrorTypeUnauthorized, appErr.Type)
	assert.False(t, advanced, "store untouched without operator capability")
}
