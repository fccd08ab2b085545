package queue

import (
	"context"
)

// Repository is the Store boundary for the queue ledger. Implementations
// must translate backend failures into the shared error taxonomy: a unique
// key violation on the ticket number becomes a conflict error, one on the
// email becomes a duplicate error, and transient backend failures become
// unavailable errors. Raw driver errors never cross this boundary.
//
// AllocateNumber, Advance, and Reset are the serialization points for the
// shared singleton row: implementations must make them atomic so that two
// concurrent joins can never be handed the same number and two concurrent
// advances can never both increment from the same base.
type Repository interface {
	// CreateEntry persists a ticket whose number has already been allocated.
	CreateEntry(ctx context.Context, t *Ticket) error

	// EntryByNumber returns a not-found error when no such ticket exists.
	EntryByNumber(ctx context.Context, number int) (*Ticket, error)

	// EntryByEmail looks up an entry by normalized (lowercased) email.
	// Returns (nil, nil) when no entry carries the email.
	EntryByEmail(ctx context.Context, email string) (*Ticket, error)

	// ListEntries returns all entries ordered by ticket number ascending.
	ListEntries(ctx context.Context) ([]*Ticket, error)

	State(ctx context.Context) (*LedgerState, error)

	// AllocateNumber atomically increments the issuance counter and returns
	// the freshly reserved number.
	AllocateNumber(ctx context.Context) (int, error)

	// Advance moves the serving pointer forward by one if a ticket beyond
	// the current one exists. The returned bool reports whether anything
	// moved; a false with a nil error is the "nothing to advance" no-op.
	Advance(ctx context.Context) (*LedgerState, bool, error)

	// Reset discards every entry and starts a fresh ledger generation with
	// CurrentServing back at 1. Destructive and non-recoverable.
	Reset(ctx context.Context) (*LedgerState, error)
}
