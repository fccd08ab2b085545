package queue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLedgerState(t *testing.T) {
	state := NewLedgerState()

	assert.Equal(t, 1, state.CurrentServing())
	assert.Equal(t, 0, state.LastIssued())
	assert.Equal(t, 1, state.Generation())
	assert.False(t, state.CanAdvance(), "empty ledger has nothing to advance")
	assert.Equal(t, 0, state.WaitingCount())
	assert.Equal(t, 0, state.CompletedCount())
}

func TestReconstructLedgerState_Validation(t *testing.T) {
	tests := []struct {
		name           string
		currentServing int
		lastIssued     int
		generation     int
		wantErr        bool
	}{
		{name: "valid", currentServing: 1, lastIssued: 0, generation: 1},
		{name: "mid-event", currentServing: 4, lastIssued: 9, generation: 2},
		{name: "zero current serving", currentServing: 0, lastIssued: 0, generation: 1, wantErr: true},
		{name: "negative last issued", currentServing: 1, lastIssued: -1, generation: 1, wantErr: true},
		{name: "zero generation", currentServing: 1, lastIssued: 0, generation: 0, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state, err := ReconstructLedgerState(tt.currentServing, tt.lastIssued, tt.generation, time.Now())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.currentServing, state.CurrentServing())
			assert.Equal(t, tt.lastIssued, state.LastIssued())
			assert.Equal(t, tt.generation, state.Generation())
		})
	}
}

func TestLedgerState_Counts(t *testing.T) {
	tests := []struct {
		name           string
		currentServing int
		lastIssued     int
		canAdvance     bool
		waiting        int
		completed      int
	}{
		{name: "fresh ledger", currentServing: 1, lastIssued: 0, canAdvance: false, waiting: 0, completed: 0},
		{name: "single ticket being served", currentServing: 1, lastIssued: 1, canAdvance: false, waiting: 0, completed: 0},
		{name: "serving first with one waiting", currentServing: 1, lastIssued: 2, canAdvance: true, waiting: 1, completed: 0},
		{name: "mid-event", currentServing: 5, lastIssued: 9, canAdvance: true, waiting: 4, completed: 4},
		{name: "served past the end", currentServing: 10, lastIssued: 9, canAdvance: false, waiting: 0, completed: 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state, err := ReconstructLedgerState(tt.currentServing, tt.lastIssued, 1, time.Now())
			require.NoError(t, err)

			assert.Equal(t, tt.canAdvance, state.CanAdvance())
			assert.Equal(t, tt.waiting, state.WaitingCount())
			assert.Equal(t, tt.completed, state.CompletedCount())
		})
	}
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, StatusCompleted, StatusFor(1, 3))
	assert.Equal(t, StatusCompleted, StatusFor(2, 3))
	assert.Equal(t, StatusCurrent, StatusFor(3, 3))
	assert.Equal(t, StatusWaiting, StatusFor(4, 3))

	// joining an empty, never-advanced ledger: ticket 1 is served at once
	assert.Equal(t, StatusCurrent, StatusFor(1, 1))
}

func TestStatus_IsValid(t *testing.T) {
	assert.True(t, StatusWaiting.IsValid())
	assert.True(t, StatusCurrent.IsValid())
	assert.True(t, StatusCompleted.IsValid())
	assert.False(t, Status("removed").IsValid())
	assert.False(t, Status("").IsValid())
}
