package queue

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const (
	MinNameLength = 2
	MaxNameLength = 50
)

// validNamePattern is the conservative character set accepted for attendee
// names: letters, digits, spaces, hyphens, apostrophes, and periods.
var validNamePattern = regexp.MustCompile(`^[a-zA-Z0-9 \-'.]+$`)

// emailPattern is a pragmatic format check; the unique index on the store
// is the authoritative duplicate guard.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Ticket is one entrant's place in line. Tickets are created exclusively
// through the join operation and never mutated afterwards; their status is
// derived from the ledger state on read.
type Ticket struct {
	id        uint
	number    int
	name      string
	email     string
	createdAt time.Time
}

// NewTicket validates the entrant's details and returns a ticket without a
// number. The number is assigned by the store's allocator at persistence
// time, never by counting existing rows.
func NewTicket(name, email string) (*Ticket, error) {
	trimmed := strings.TrimSpace(name)
	if len(trimmed) < MinNameLength {
		return nil, fmt.Errorf("name must be at least %d characters", MinNameLength)
	}
	if len(trimmed) > MaxNameLength {
		return nil, fmt.Errorf("name must be at most %d characters", MaxNameLength)
	}
	if !validNamePattern.MatchString(trimmed) {
		return nil, fmt.Errorf("name contains invalid characters")
	}

	normalizedEmail := ""
	if email != "" {
		normalizedEmail = strings.ToLower(strings.TrimSpace(email))
		if !emailPattern.MatchString(normalizedEmail) {
			return nil, fmt.Errorf("invalid email format")
		}
	}

	return &Ticket{
		name:      trimmed,
		email:     normalizedEmail,
		createdAt: time.Now().UTC(),
	}, nil
}

// ReconstructTicket rebuilds a ticket from persisted state.
func ReconstructTicket(id uint, number int, name, email string, createdAt time.Time) (*Ticket, error) {
	if id == 0 {
		return nil, fmt.Errorf("ticket ID cannot be zero")
	}
	if number <= 0 {
		return nil, fmt.Errorf("ticket number must be positive")
	}
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}

	return &Ticket{
		id:        id,
		number:    number,
		name:      name,
		email:     email,
		createdAt: createdAt,
	}, nil
}

func (t *Ticket) ID() uint {
	return t.id
}

func (t *Ticket) Number() int {
	return t.number
}

func (t *Ticket) Name() string {
	return t.name
}

func (t *Ticket) Email() string {
	return t.email
}

func (t *Ticket) HasEmail() bool {
	return t.email != ""
}

func (t *Ticket) CreatedAt() time.Time {
	return t.createdAt
}

// StatusIn derives this ticket's status from the given ledger state.
func (t *Ticket) StatusIn(state *LedgerState) Status {
	return StatusFor(t.number, state.CurrentServing())
}

func (t *Ticket) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("ticket ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("ticket ID cannot be zero")
	}
	t.id = id
	return nil
}

// SetNumber assigns the allocated sequence number. It can only happen once.
func (t *Ticket) SetNumber(number int) error {
	if t.number != 0 {
		return fmt.Errorf("ticket number is already set")
	}
	if number <= 0 {
		return fmt.Errorf("ticket number must be positive")
	}
	t.number = number
	return nil
}

// ClearNumber drops a previously assigned number so the join retry loop can
// request a fresh one after a uniqueness conflict.
func (t *Ticket) ClearNumber() {
	t.number = 0
}
