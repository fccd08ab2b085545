package queue

import (
	"fmt"
	"time"
)

// LedgerState is the singleton record tracking the current-serving pointer
// and the monotonic issuance counter. There is exactly one row per
// deployment (fixed id).
//
// Semantics of CurrentServing: if a ticket with that number exists, it is
// the ticket being served; otherwise it is the next number that will be
// served. With zero tickets and CurrentServing == 1 nothing has been served
// yet, so a ticket joining an empty ledger receives number 1 and derives
// status "current" immediately.
type LedgerState struct {
	currentServing int
	lastIssued     int
	generation     int
	updatedAt      time.Time
}

// NewLedgerState returns the bring-up state of a fresh ledger generation.
func NewLedgerState() *LedgerState {
	return &LedgerState{
		currentServing: 1,
		lastIssued:     0,
		generation:     1,
		updatedAt:      time.Now().UTC(),
	}
}

// ReconstructLedgerState rebuilds the state from persisted values.
func ReconstructLedgerState(currentServing, lastIssued, generation int, updatedAt time.Time) (*LedgerState, error) {
	if currentServing < 1 {
		return nil, fmt.Errorf("current serving must be at least 1")
	}
	if lastIssued < 0 {
		return nil, fmt.Errorf("last issued cannot be negative")
	}
	if generation < 1 {
		return nil, fmt.Errorf("generation must be at least 1")
	}

	return &LedgerState{
		currentServing: currentServing,
		lastIssued:     lastIssued,
		generation:     generation,
		updatedAt:      updatedAt,
	}, nil
}

func (s *LedgerState) CurrentServing() int {
	return s.currentServing
}

// LastIssued is the highest ticket number ever issued in this ledger
// generation. Numbers are never reused, even after completion or skips.
func (s *LedgerState) LastIssued() int {
	return s.lastIssued
}

// Generation increments on every reset so displays can discard stale local
// ticket state.
func (s *LedgerState) Generation() int {
	return s.generation
}

func (s *LedgerState) UpdatedAt() time.Time {
	return s.updatedAt
}

// CanAdvance reports whether a ticket beyond the current one exists.
func (s *LedgerState) CanAdvance() bool {
	return s.currentServing < s.lastIssued
}

// WaitingCount is the number of tickets still ahead of the serving pointer.
func (s *LedgerState) WaitingCount() int {
	if s.lastIssued <= s.currentServing {
		return 0
	}
	return s.lastIssued - s.currentServing
}

// CompletedCount is the number of tickets already served, clamped at zero
// and at the number actually issued.
func (s *LedgerState) CompletedCount() int {
	done := s.currentServing - 1
	if done < 0 {
		done = 0
	}
	if done > s.lastIssued {
		done = s.lastIssued
	}
	return done
}
