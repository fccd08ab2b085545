package usecases

import (
	"context"
	"time"

	"lineup/internal/domain/queue"
	"lineup/internal/shared/errors"
	"lineup/internal/shared/logger"
)

type mockRepository struct {
	CreateEntryFunc    func(ctx context.Context, t *queue.Ticket) error
	EntryByNumberFunc  func(ctx context.Context, number int) (*queue.Ticket, error)
	EntryByEmailFunc   func(ctx context.Context, email string) (*queue.Ticket, error)
	ListEntriesFunc    func(ctx context.Context) ([]*queue.Ticket, error)
	StateFunc          func(ctx context.Context) (*queue.LedgerState, error)
	AllocateNumberFunc func(ctx context.Context) (int, error)
	AdvanceFunc        func(ctx context.Context) (*queue.LedgerState, bool, error)
	ResetFunc          func(ctx context.Context) (*queue.LedgerState, error)
}

func (m *mockRepository) CreateEntry(ctx context.Context, t *queue.Ticket) error {
	if m.CreateEntryFunc != nil {
		return m.CreateEntryFunc(ctx, t)
	}
	return nil
}

func (m *mockRepository) EntryByNumber(ctx context.Context, number int) (*queue.Ticket, error) {
	if m.EntryByNumberFunc != nil {
		return m.EntryByNumberFunc(ctx, number)
	}
	return nil, errors.NewNotFoundError("ticket not found")
}

func (m *mockRepository) EntryByEmail(ctx context.Context, email string) (*queue.Ticket, error) {
	if m.EntryByEmailFunc != nil {
		return m.EntryByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *mockRepository) ListEntries(ctx context.Context) ([]*queue.Ticket, error) {
	if m.ListEntriesFunc != nil {
		return m.ListEntriesFunc(ctx)
	}
	return nil, nil
}

func (m *mockRepository) State(ctx context.Context) (*queue.LedgerState, error) {
	if m.StateFunc != nil {
		return m.StateFunc(ctx)
	}
	return queue.NewLedgerState(), nil
}

func (m *mockRepository) AllocateNumber(ctx context.Context) (int, error) {
	if m.AllocateNumberFunc != nil {
		return m.AllocateNumberFunc(ctx)
	}
	return 1, nil
}

func (m *mockRepository) Advance(ctx context.Context) (*queue.LedgerState, bool, error) {
	if m.AdvanceFunc != nil {
		return m.AdvanceFunc(ctx)
	}
	return queue.NewLedgerState(), false, nil
}

func (m *mockRepository) Reset(ctx context.Context) (*queue.LedgerState, error) {
	if m.ResetFunc != nil {
		return m.ResetFunc(ctx)
	}
	return queue.NewLedgerState(), nil
}

type mockRateLimiter struct {
	AllowFunc func(ctx context.Context, key string) (bool, time.Duration, error)
}

func (m *mockRateLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	if m.AllowFunc != nil {
		return m.AllowFunc(ctx, key)
	}
	return true, 0, nil
}

type mockNotifier struct {
	queueChanged int
	stateChanged int

	NotifyQueueChangedFunc func(ctx context.Context) error
	NotifyStateChangedFunc func(ctx context.Context) error
}

func (m *mockNotifier) NotifyQueueChanged(ctx context.Context) error {
	m.queueChanged++
	if m.NotifyQueueChangedFunc != nil {
		return m.NotifyQueueChangedFunc(ctx)
	}
	return nil
}

func (m *mockNotifier) NotifyStateChanged(ctx context.Context) error {
	m.stateChanged++
	if m.NotifyStateChangedFunc != nil {
		return m.NotifyStateChangedFunc(ctx)
	}
	return nil
}

type mockLogger struct{}

func (m *mockLogger) Debug(msg string, args ...any)                    {}
func (m *mockLogger) Info(msg string, args ...any)                     {}
func (m *mockLogger) Warn(msg string, args ...any)                     {}
func (m *mockLogger) Error(msg string, args ...any)                    {}
func (m *mockLogger) With(args ...any) logger.Interface                { return m }
func (m *mockLogger) Named(name string) logger.Interface               { return m }
func (m *mockLogger) Debugw(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Infow(msg string, keysAndValues ...interface{})   {}
func (m *mockLogger) Warnw(msg string, keysAndValues ...interface{})   {}
func (m *mockLogger) Errorw(msg string, keysAndValues ...interface{})  {}

func mustTicket(number int, name, email string) *queue.Ticket {
	t, err := queue.ReconstructTicket(uint(number), number, name, email, time.Now().UTC())
	if err != nil {
		panic(err)
	}
	return t
}

func mustState(currentServing, lastIssued, generation int) *queue.LedgerState {
	s, err := queue.ReconstructLedgerState(currentServing, lastIssued, generation, time.Now().UTC())
	if err != nil {
		panic(err)
	}
	return s
}
