package usecases

import (
	"context"

	"lineup/internal/domain/queue"
	"lineup/internal/shared/errors"
	"lineup/internal/shared/logger"
)

type ResetQueueCommand struct {
	OperatorID uint
}

type ResetQueueResult struct {
	CurrentServing int
	Generation     int
}

// ResetQueueUseCase discards every ticket and starts a fresh ledger
// generation. The operation is destructive and non-recoverable; the HTTP
// boundary demands an explicit confirmation field before it ever reaches
// this usecase.
type ResetQueueUseCase struct {
	repo     queue.Repository
	notifier ChangeNotifier
	logger   logger.Interface
}

func NewResetQueueUseCase(repo queue.Repository, notifier ChangeNotifier, log logger.Interface) *ResetQueueUseCase {
	return &ResetQueueUseCase{
		repo:     repo,
		notifier: notifier,
		logger:   log,
	}
}

func (uc *ResetQueueUseCase) Execute(ctx context.Context, cmd ResetQueueCommand) (*ResetQueueResult, error) {
	if cmd.OperatorID == 0 {
		return nil, errors.NewUnauthorizedError("operator capability required to reset the queue")
	}

	state, err := uc.repo.Reset(ctx)
	if err != nil {
		uc.logger.Errorw("failed to reset queue", "error", err)
		return nil, err
	}

	uc.logger.Infow("queue reset",
		"generation", state.Generation(),
		"operator_id", cmd.OperatorID)

	if err := uc.notifier.NotifyQueueChanged(ctx); err != nil {
		uc.logger.Warnw("failed to publish queue change notification", "error", err)
	}
	if err := uc.notifier.NotifyStateChanged(ctx); err != nil {
		uc.logger.Warnw("failed to publish state change notification", "error", err)
	}

	return &ResetQueueResult{
		CurrentServing: state.CurrentServing(),
		Generation:     state.Generation(),
	}, nil
}
