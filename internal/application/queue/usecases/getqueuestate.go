package usecases

import (
	"context"
	"time"

	"lineup/internal/domain/queue"
	"lineup/internal/shared/logger"
)

type GetQueueStateQuery struct{}

type QueueEntryView struct {
	Number    int       `json:"number"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type QueueStateResult struct {
	CurrentServing int              `json:"current_serving"`
	LastIssued     int              `json:"last_issued"`
	Generation     int              `json:"generation"`
	WaitingCount   int              `json:"waiting_count"`
	CompletedCount int              `json:"completed_count"`
	NowServing     *QueueEntryView  `json:"now_serving,omitempty"`
	Entries        []QueueEntryView `json:"entries"`
}

// GetQueueStateUseCase is the read model for displays and the admin list.
// Entry statuses are derived from the state snapshot taken at the start of
// the read; observers that need fresher data will be told to reload by the
// change notification stream anyway.
type GetQueueStateUseCase struct {
	repo   queue.Repository
	logger logger.Interface
}

func NewGetQueueStateUseCase(repo queue.Repository, log logger.Interface) *GetQueueStateUseCase {
	return &GetQueueStateUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *GetQueueStateUseCase) Execute(ctx context.Context, _ GetQueueStateQuery) (*QueueStateResult, error) {
	state, err := uc.repo.State(ctx)
	if err != nil {
		uc.logger.Errorw("failed to load ledger state", "error", err)
		return nil, err
	}

	tickets, err := uc.repo.ListEntries(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list queue entries", "error", err)
		return nil, err
	}

	result := &QueueStateResult{
		CurrentServing: state.CurrentServing(),
		LastIssued:     state.LastIssued(),
		Generation:     state.Generation(),
		WaitingCount:   state.WaitingCount(),
		CompletedCount: state.CompletedCount(),
		Entries:        make([]QueueEntryView, 0, len(tickets)),
	}

	for _, t := range tickets {
		view := QueueEntryView{
			Number:    t.Number(),
			Name:      t.Name(),
			Status:    t.StatusIn(state).String(),
			CreatedAt: t.CreatedAt(),
		}
		result.Entries = append(result.Entries, view)
		if view.Status == queue.StatusCurrent.String() {
			nowServing := view
			result.NowServing = &nowServing
		}
	}

	return result, nil
}
