package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lineup/internal/domain/queue"
	"lineup/internal/shared/errors"
)

func TestJoinQueueUseCase_Execute_Success(t *testing.T) {
	var saved *queue.Ticket
	next := 0
	mockRepo := &mockRepository{
		AllocateNumberFunc: func(ctx context.Context) (int, error) {
			next++
			return next, nil
		},
		CreateEntryFunc: func(ctx context.Context, tkt *queue.Ticket) error {
			if err := tkt.SetID(uint(tkt.Number())); err != nil {
				return err
			}
			saved = tkt
			return nil
		},
		StateFunc: func(ctx context.Context) (*queue.LedgerState, error) {
			return mustState(1, next, 1), nil
		},
	}
	notifier := &mockNotifier{}

	useCase := NewJoinQueueUseCase(mockRepo, &mockRateLimiter{}, notifier, 3, &mockLogger{})
	result, err := useCase.Execute(context.Background(), JoinQueueCommand{
		Name:      "  Alice  ",
		ClientKey: "192.0.2.1",
	})

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, 1, result.Number)
	assert.Equal(t, "Alice", result.Name)
	assert.Equal(t, queue.StatusCurrent.String(), result.Status, "first ticket on a fresh ledger is served at once")
	assert.Equal(t, 1, result.CurrentServing)
	assert.NotZero(t, result.CreatedAt)

	require.NotNil(t, saved)
	assert.Equal(t, "Alice", saved.Name())
	assert.Equal(t, 1, notifier.queueChanged)
}

func TestJoinQueueUseCase_Execute_SecondJoinIsWaiting(t *testing.T) {
	mockRepo := &mockRepository{
		AllocateNumberFunc: func(ctx context.Context) (int, error) {
			return 2, nil
		},
		StateFunc: func(ctx context.Context) (*queue.LedgerState, error) {
			return mustState(1, 2, 1), nil
		},
	}

	useCase := NewJoinQueueUseCase(mockRepo, &mockRateLimiter{}, &mockNotifier{}, 3, &mockLogger{})
	result, err := useCase.Execute(context.Background(), JoinQueueCommand{Name: "Bob"})

	require.NoError(t, err)
	assert.Equal(t, 2, result.Number)
	assert.Equal(t, queue.StatusWaiting.String(), result.Status)
}

func TestJoinQueueUseCase_Execute_NameSanitizing(t *testing.T) {
	tests := []struct {
		name    string
		cmdName string
		want    string
	}{
		{name: "apostrophe survives", cmdName: "O'Brien", want: "O'Brien"},
		{name: "full punctuation survives", cmdName: "O'Brien-Smith Jr.", want: "O'Brien-Smith Jr."},
		{name: "markup stripped", cmdName: "<b>Alice</b>", want: "Alice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var saved *queue.Ticket
			mockRepo := &mockRepository{
				CreateEntryFunc: func(ctx context.Context, tkt *queue.Ticket) error {
					saved = tkt
					return nil
				},
				StateFunc: func(ctx context.Context) (*queue.LedgerState, error) {
					return mustState(1, 1, 1), nil
				},
			}

			useCase := NewJoinQueueUseCase(mockRepo, &mockRateLimiter{}, &mockNotifier{}, 3, &mockLogger{})
			result, err := useCase.Execute(context.Background(), JoinQueueCommand{Name: tt.cmdName})

			require.NoError(t, err)
			assert.Equal(t, tt.want, result.Name)
			require.NotNil(t, saved)
			assert.Equal(t, tt.want, saved.Name())
		})
	}
}

func TestJoinQueueUseCase_Execute_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		cmdName string
		email   string
	}{
		{name: "empty name", cmdName: ""},
		{name: "short name", cmdName: "A"},
		{name: "bad charset", cmdName: "Alice; DROP TABLE"},
		{name: "markup stripped to nothing", cmdName: "<b></b>"},
		{name: "bad email", cmdName: "Alice", email: "nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			created := false
			mockRepo := &mockRepository{
				CreateEntryFunc: func(ctx context.Context, tkt *queue.Ticket) error {
					created = true
					return nil
				},
			}

			useCase := NewJoinQueueUseCase(mockRepo, &mockRateLimiter{}, &mockNotifier{}, 3, &mockLogger{})
			result, err := useCase.Execute(context.Background(), JoinQueueCommand{
				Name:  tt.cmdName,
				Email: tt.email,
			})

			assert.Nil(t, result)
			assert.True(t, errors.IsValidationError(err), "expected validation error, got %v", err)
			assert.False(t, created, "nothing persisted on validation failure")
		})
	}
}

func TestJoinQueueUseCase_Execute_DuplicateEmail(t *testing.T) {
	mockRepo := &mockRepository{
		EntryByEmailFunc: func(ctx context.Context, email string) (*queue.Ticket, error) {
			assert.Equal(t, "alice@example.com", email, "lookup uses the normalized email")
			return mustTicket(1, "Alice", "alice@example.com"), nil
		},
	}

	useCase := NewJoinQueueUseCase(mockRepo, &mockRateLimiter{}, &mockNotifier{}, 3, &mockLogger{})
	result, err := useCase.Execute(context.Background(), JoinQueueCommand{
		Name:  "Alice Again",
		Email: "ALICE@Example.com",
	})

	assert.Nil(t, result)
	assert.True(t, errors.IsDuplicateError(err), "expected duplicate error, got %v", err)
}

func TestJoinQueueUseCase_Execute_RateLimited(t *testing.T) {
	limiter := &mockRateLimiter{
		AllowFunc: func(ctx context.Context, key string) (bool, time.Duration, error) {
			return false, 42 * time.Second, nil
		},
	}

	useCase := NewJoinQueueUseCase(&mockRepository{}, limiter, &mockNotifier{}, 3, &mockLogger{})
	result, err := useCase.Execute(context.Background(), JoinQueueCommand{
		Name:      "Alice",
		ClientKey: "192.0.2.1",
	})

	assert.Nil(t, result)
	require.True(t, errors.IsRateLimitedError(err), "expected rate limited error, got %v", err)
	assert.Equal(t, 42*time.Second, errors.GetAppError(err).RetryAfter)
}

func TestJoinQueueUseCase_Execute_LimiterFailureIsOpen(t *testing.T) {
	limiter := &mockRateLimiter{
		AllowFunc: func(ctx context.Context, key string) (bool, time.Duration, error) {
			return false, 0, errors.NewUnavailableError("redis down")
		},
	}
	mockRepo := &mockRepository{
		StateFunc: func(ctx context.Context) (*queue.LedgerState, error) {
			return mustState(1, 1, 1), nil
		},
	}

	useCase := NewJoinQueueUseCase(mockRepo, limiter, &mockNotifier{}, 3, &mockLogger{})
	result, err := useCase.Execute(context.Background(), JoinQueueCommand{
		Name:      "Alice",
		ClientKey: "192.0.2.1",
	})

	require.NoError(t, err, "a broken limiter must not block joins")
	assert.NotNil(t, result)
}

func TestJoinQueueUseCase_Execute_ConflictRetries(t *testing.T) {
	allocated := []int{}
	attempts := 0
	mockRepo := &mockRepository{
		AllocateNumberFunc: func(ctx context.Context) (int, error) {
			n := len(allocated) + 5
			allocated = append(allocated, n)
			return n, nil
		},
		CreateEntryFunc: func(ctx context.Context, tkt *queue.Ticket) error {
			attempts++
			if attempts < 3 {
				return errors.NewConflictError("ticket number already taken")
			}
			return nil
		},
		StateFunc: func(ctx context.Context) (*queue.LedgerState, error) {
			return mustState(1, 7, 1), nil
		},
	}

	useCase := NewJoinQueueUseCase(mockRepo, &mockRateLimiter{}, &mockNotifier{}, 3, &mockLogger{})
	result, err := useCase.Execute(context.Background(), JoinQueueCommand{Name: "Alice"})

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
	assert.Equal(t, []int{5, 6, 7}, allocated, "every retry allocates a fresh number")
	assert.Equal(t, 7, result.Number)
}

func TestJoinQueueUseCase_Execute_ConflictRetriesExhausted(t *testing.T) {
	mockRepo := &mockRepository{
		CreateEntryFunc: func(ctx context.Context, tkt *queue.Ticket) error {
			return errors.NewConflictError("ticket number already taken")
		},
	}
	notifier := &mockNotifier{}

	useCase := NewJoinQueueUseCase(mockRepo, &mockRateLimiter{}, notifier, 3, &mockLogger{})
	result, err := useCase.Execute(context.Background(), JoinQueueCommand{Name: "Alice"})

	assert.Nil(t, result)
	assert.True(t, errors.IsUnavailableError(err), "expected unavailable error, got %v", err)
	assert.Zero(t, notifier.queueChanged, "no notification for a failed join")
}
