package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lineup/internal/domain/queue"
	"lineup/internal/shared/errors"
)

func newTicket(t *testing.T, name, email string) *queue.Ticket {
	t.Helper()
	ticket, err := queue.NewTicket(name, email)
	require.NoError(t, err)
	return ticket
}

func TestMemoryQueueRepository_CreateAndLookup(t *testing.T) {
	repo := NewMemoryQueueRepository()
	ctx := context.Background()

	number, err := repo.AllocateNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, number)

	ticket := newTicket(t, "Alice", "alice@example.com")
	require.NoError(t, ticket.SetNumber(number))
	require.NoError(t, repo.CreateEntry(ctx, ticket))
	assert.NotZero(t, ticket.ID())

	found, err := repo.EntryByNumber(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Alice", found.Name())

	_, err = repo.EntryByNumber(ctx, 99)
	assert.True(t, errors.IsNotFoundError(err))

	byEmail, err := repo.EntryByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, 1, byEmail.Number())

	missing, err := repo.EntryByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMemoryQueueRepository_DuplicateEmail(t *testing.T) {
	repo := NewMemoryQueueRepository()
	ctx := context.Background()

	first := newTicket(t, "Alice", "alice@example.com")
	n, err := repo.AllocateNumber(ctx)
	require.NoError(t, err)
	require.NoError(t, first.SetNumber(n))
	require.NoError(t, repo.CreateEntry(ctx, first))

	second := newTicket(t, "Other Alice", "alice@example.com")
	n, err = repo.AllocateNumber(ctx)
	require.NoError(t, err)
	require.NoError(t, second.SetNumber(n))

	err = repo.CreateEntry(ctx, second)
	assert.True(t, errors.IsDuplicateError(err))
}

func TestMemoryQueueRepository_AdvanceAndReset(t *testing.T) {
	repo := NewMemoryQueueRepository()
	ctx := context.Background()

	// Advancing an empty ledger is a no-op.
	state, advanced, err := repo.Advance(ctx)
	require.NoError(t, err)
	assert.False(t, advanced)
	assert.Equal(t, 1, state.CurrentServing())

	for i, name := range []string{"Alice", "Bob"} {
		ticket := newTicket(t, name, "")
		n, err := repo.AllocateNumber(ctx)
		require.NoError(t, err)
		assert.Equal(t, i+1, n)
		require.NoError(t, ticket.SetNumber(n))
		require.NoError(t, repo.CreateEntry(ctx, ticket))
	}

	state, advanced, err = repo.Advance(ctx)
	require.NoError(t, err)
	assert.True(t, advanced)
	assert.Equal(t, 2, state.CurrentServing())

	state, err = repo.Reset(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, state.CurrentServing())
	assert.Equal(t, 0, state.LastIssued())
	assert.Equal(t, 2, state.Generation())

	entries, err := repo.ListEntries(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)

	// Numbering restarts after a reset.
	n, err := repo.AllocateNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

// Concurrent joins must each end up with a distinct consecutive number.
func TestMemoryQueueRepository_ConcurrentAllocation(t *testing.T) {
	repo := NewMemoryQueueRepository()
	ctx := context.Background()

	const joiners = 50

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		numbers []int
	)

	for i := 0; i < joiners; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			ticket, err := queue.NewTicket(fmt.Sprintf("Guest %d", i), "")
			if !assert.NoError(t, err) {
				return
			}
			n, err := repo.AllocateNumber(ctx)
			if !assert.NoError(t, err) {
				return
			}
			if !assert.NoError(t, ticket.SetNumber(n)) {
				return
			}
			if !assert.NoError(t, repo.CreateEntry(ctx, ticket)) {
				return
			}

			mu.Lock()
			numbers = append(numbers, n)
			mu.Unlock()
		}(i)
	}
	wg.Wait()

	require.Len(t, numbers, joiners)
	sort.Ints(numbers)
	for i, n := range numbers {
		assert.Equal(t, i+1, n)
	}

	state, err := repo.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, joiners, state.LastIssued())
	assert.Equal(t, 1, state.CurrentServing())
}
