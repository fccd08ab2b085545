package usecases

import (
	"context"
	"time"

	"lineup/internal/domain/queue"
	"lineup/internal/shared/errors"
	"lineup/internal/shared/logger"
)

type GetTicketQuery struct {
	Number int
}

type TicketResult struct {
	Number         int       `json:"number"`
	Name           string    `json:"name"`
	Status         string    `json:"status"`
	CurrentServing int       `json:"current_serving"`
	Generation     int       `json:"generation"`
	PeopleAhead    int       `json:"people_ahead"`
	CreatedAt      time.Time `json:"created_at"`
}

type GetTicketUseCase struct {
	repo   queue.Repository
	logger logger.Interface
}

func NewGetTicketUseCase(repo queue.Repository, log logger.Interface) *GetTicketUseCase {
	return &GetTicketUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *GetTicketUseCase) Execute(ctx context.Context, query GetTicketQuery) (*TicketResult, error) {
	if query.Number <= 0 {
		return nil, errors.NewValidationError("ticket number must be positive")
	}

	ticket, err := uc.repo.EntryByNumber(ctx, query.Number)
	if err != nil {
		return nil, err
	}

	state, err := uc.repo.State(ctx)
	if err != nil {
		uc.logger.Errorw("failed to load ledger state", "error", err)
		return nil, err
	}

	ahead := ticket.Number() - state.CurrentServing()
	if ahead < 0 {
		ahead = 0
	}

	return &TicketResult{
		Number:         ticket.Number(),
		Name:           ticket.Name(),
		Status:         ticket.StatusIn(state).String(),
		CurrentServing: state.CurrentServing(),
		Generation:     state.Generation(),
		PeopleAhead:    ahead,
		CreatedAt:      ticket.CreatedAt(),
	}, nil
}
