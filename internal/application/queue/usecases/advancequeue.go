package usecases

import (
	"context"

	"lineup/internal/domain/queue"
	"lineup/internal/shared/errors"
	"lineup/internal/shared/logger"
)

type AdvanceQueueCommand struct {
	// OperatorID is the authenticated operator performing the advance.
	// Zero means the caller holds no operator capability.
	OperatorID uint
}

type AdvanceQueueResult struct {
	CurrentServing int
	LastIssued     int
	Generation     int

	// Advanced is false when there was nothing beyond the current ticket;
	// the state is returned unchanged and no error is raised.
	Advanced bool
}

type AdvanceQueueUseCase struct {
	repo     queue.Repository
	notifier ChangeNotifier
	logger   logger.Interface
}

func NewAdvanceQueueUseCase(repo queue.Repository, notifier ChangeNotifier, log logger.Interface) *AdvanceQueueUseCase {
	return &AdvanceQueueUseCase{
		repo:     repo,
		notifier: notifier,
		logger:   log,
	}
}

func (uc *AdvanceQueueUseCase) Execute(ctx context.Context, cmd AdvanceQueueCommand) (*AdvanceQueueResult, error) {
	if cmd.OperatorID == 0 {
		return nil, errors.NewUnauthorizedError("operator capability required to advance the queue")
	}

	state, advanced, err := uc.repo.Advance(ctx)
	if err != nil {
		uc.logger.Errorw("failed to advance queue", "error", err)
		return nil, err
	}

	if advanced {
		uc.logger.Infow("queue advanced",
			"current_serving", state.CurrentServing(),
			"operator_id", cmd.OperatorID)
		if err := uc.notifier.NotifyStateChanged(ctx); err != nil {
			uc.logger.Warnw("failed to publish state change notification", "error", err)
		}
	} else {
		uc.logger.Infow("nothing to advance",
			"current_serving", state.CurrentServing(),
			"last_issued", state.LastIssued())
	}

	return &AdvanceQueueResult{
		CurrentServing: state.CurrentServing(),
		LastIssued:     state.LastIssued(),
		Generation:     state.Generation(),
		Advanced:       advanced,
	}, nil
}
