package queue

// Status is the derived position of a ticket relative to the ledger's
// current-serving pointer. It is never stored; it is recomputed on every
// read so the ticket list and the pointer cannot drift apart.
type Status string

const (
	StatusWaiting   Status = "waiting"
	StatusCurrent   Status = "current"
	StatusCompleted Status = "completed"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusWaiting, StatusCurrent, StatusCompleted:
		return true
	}
	return false
}

// StatusFor derives a ticket's status from the current-serving pointer:
// completed below it, current at it, waiting above it.
func StatusFor(number, currentServing int) Status {
	switch {
	case number < currentServing:
		return StatusCompleted
	case number == currentServing:
		return StatusCurrent
	default:
		return StatusWaiting
	}
}
