package usecases

import (
	"context"
	"html"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"lineup/internal/domain/queue"
	"lineup/internal/shared/errors"
	"lineup/internal/shared/logger"
)

type JoinQueueCommand struct {
	Name  string
	Email string

	// ClientKey identifies the caller for rate limiting, typically the
	// remote IP.
	ClientKey string
}

type JoinQueueResult struct {
	Number         int
	Name           string
	Status         string
	CurrentServing int
	Generation     int
	CreatedAt      time.Time
}

type JoinQueueUseCase struct {
	repo          queue.Repository
	limiter       RateLimiter
	notifier      ChangeNotifier
	sanitizer     *bluemonday.Policy
	retryAttempts int
	logger        logger.Interface
}

func NewJoinQueueUseCase(
	repo queue.Repository,
	limiter RateLimiter,
	notifier ChangeNotifier,
	retryAttempts int,
	log logger.Interface,
) *JoinQueueUseCase {
	if retryAttempts < 1 {
		retryAttempts = 3
	}
	return &JoinQueueUseCase{
		repo:          repo,
		limiter:       limiter,
		notifier:      notifier,
		sanitizer:     bluemonday.StrictPolicy(),
		retryAttempts: retryAttempts,
		logger:        log,
	}
}

func (uc *JoinQueueUseCase) Execute(ctx context.Context, cmd JoinQueueCommand) (*JoinQueueResult, error) {
	if cmd.ClientKey != "" {
		allowed, retryAfter, err := uc.limiter.Allow(ctx, cmd.ClientKey)
		if err != nil {
			// Rate limiting is best-effort: a broken limiter backend must
			// not take the join path down with it.
			uc.logger.Warnw("rate limiter unavailable, allowing join", "error", err)
		} else if !allowed {
			return nil, errors.NewRateLimitedError(retryAfter)
		}
	}

	// Names end up on a shared display; strip any markup before the domain
	// charset check. The sanitizer HTML-escapes its output, so unescape to
	// get plain text back (apostrophes are part of the allowed charset).
	name := html.UnescapeString(uc.sanitizer.Sanitize(cmd.Name))
	ticket, err := queue.NewTicket(name, cmd.Email)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if ticket.HasEmail() {
		existing, err := uc.repo.EntryByEmail(ctx, ticket.Email())
		if err != nil {
			uc.logger.Errorw("failed to check for existing email", "error", err)
			return nil, err
		}
		if existing != nil {
			return nil, errors.NewDuplicateError("this email has already joined the queue")
		}
	}

	if err := uc.persistWithFreshNumber(ctx, ticket); err != nil {
		return nil, err
	}

	if err := uc.notifier.NotifyQueueChanged(ctx); err != nil {
		uc.logger.Warnw("failed to publish queue change notification", "error", err)
	}

	state, err := uc.repo.State(ctx)
	if err != nil {
		uc.logger.Errorw("failed to load ledger state after join", "error", err)
		return nil, err
	}

	uc.logger.Infow("entrant joined queue",
		"number", ticket.Number(),
		"current_serving", state.CurrentServing())

	return &JoinQueueResult{
		Number:         ticket.Number(),
		Name:           ticket.Name(),
		Status:         ticket.StatusIn(state).String(),
		CurrentServing: state.CurrentServing(),
		Generation:     state.Generation(),
		CreatedAt:      ticket.CreatedAt(),
	}, nil
}

// persistWithFreshNumber allocates a sequence number and inserts the entry,
// retrying with a new number when the store's uniqueness constraint reports
// a collision. The allocator is atomic, so collisions only occur around
// resets racing in-flight joins; the bound keeps a broken store from
// looping forever.
func (uc *JoinQueueUseCase) persistWithFreshNumber(ctx context.Context, ticket *queue.Ticket) error {
	for attempt := 0; attempt < uc.retryAttempts; attempt++ {
		number, err := uc.repo.AllocateNumber(ctx)
		if err != nil {
			uc.logger.Errorw("failed to allocate ticket number", "error", err)
			return err
		}
		if err := ticket.SetNumber(number); err != nil {
			return errors.NewInternalError(err.Error())
		}

		err = uc.repo.CreateEntry(ctx, ticket)
		if err == nil {
			return nil
		}
		if errors.IsConflictError(err) {
			uc.logger.Warnw("ticket number collision, retrying",
				"number", number, "attempt", attempt+1)
			ticket.ClearNumber()
			continue
		}
		return err
	}

	return errors.NewUnavailableError("could not assign a ticket number, please try again")
}
