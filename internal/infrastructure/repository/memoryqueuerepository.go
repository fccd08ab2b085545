package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"lineup/internal/domain/queue"
	"lineup/internal/shared/errors"
)

// MemoryQueueRepository keeps the whole ledger in process memory. It
// backs the memory storage driver and the test suites; everything is
// lost on restart.
type MemoryQueueRepository struct {
	mu      sync.Mutex
	nextID  uint
	byID    map[uint]*queue.Ticket
	state   *queue.LedgerState
	updated time.Time
}

func NewMemoryQueueRepository() *MemoryQueueRepository {
	return &MemoryQueueRepository{
		nextID: 1,
		byID:   make(map[uint]*queue.Ticket),
		state:  queue.NewLedgerState(),
	}
}

func (r *MemoryQueueRepository) CreateEntry(_ context.Context, t *queue.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.byID {
		if existing.Number() == t.Number() {
			return errors.NewConflictError("ticket number already taken")
		}
		if t.Email() != "" && existing.Email() == t.Email() {
			return errors.NewDuplicateError("this email has already joined the queue")
		}
	}

	if err := t.SetID(r.nextID); err != nil {
		return err
	}
	r.nextID++

	stored, err := queue.ReconstructTicket(t.ID(), t.Number(), t.Name(), t.Email(), t.CreatedAt())
	if err != nil {
		return err
	}
	r.byID[stored.ID()] = stored
	return nil
}

func (r *MemoryQueueRepository) EntryByNumber(_ context.Context, number int) (*queue.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range r.byID {
		if t.Number() == number {
			return t, nil
		}
	}
	return nil, errors.NewNotFoundError("ticket not found")
}

func (r *MemoryQueueRepository) EntryByEmail(_ context.Context, email string) (*queue.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	email = strings.ToLower(email)
	for _, t := range r.byID {
		if t.Email() != "" && t.Email() == email {
			return t, nil
		}
	}
	return nil, nil
}

func (r *MemoryQueueRepository) ListEntries(_ context.Context) ([]*queue.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*queue.Ticket, 0, len(r.byID))
	for _, t := range r.byID {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number() < out[j].Number() })
	return out, nil
}

func (r *MemoryQueueRepository) State(_ context.Context) (*queue.LedgerState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

func (r *MemoryQueueRepository) AllocateNumber(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := r.state.LastIssued() + 1
	state, err := queue.ReconstructLedgerState(r.state.CurrentServing(), next, r.state.Generation(), time.Now().UTC())
	if err != nil {
		return 0, err
	}
	r.state = state
	return next, nil
}

func (r *MemoryQueueRepository) Advance(_ context.Context) (*queue.LedgerState, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.state.CanAdvance() {
		snap, err := r.snapshotLocked()
		return snap, false, err
	}

	state, err := queue.ReconstructLedgerState(
		r.state.CurrentServing()+1, r.state.LastIssued(), r.state.Generation(), time.Now().UTC())
	if err != nil {
		return nil, false, err
	}
	r.state = state

	snap, err := r.snapshotLocked()
	return snap, err == nil, err
}

func (r *MemoryQueueRepository) Reset(_ context.Context) (*queue.LedgerState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	state, err := queue.ReconstructLedgerState(1, 0, r.state.Generation()+1, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	r.state = state
	r.byID = make(map[uint]*queue.Ticket)
	return r.snapshotLocked()
}

func (r *MemoryQueueRepository) snapshotLocked() (*queue.LedgerState, error) {
	return queue.ReconstructLedgerState(
		r.state.CurrentServing(), r.state.LastIssued(), r.state.Generation(), r.state.UpdatedAt())
}
