package round

import "time"

// Status represents the lifecycle state of a funding round.
type Status string

const (
	StatusPending     Status = "PENDING"
	StatusOpen        Status = "OPEN"
	StatusClosed      Status = "CLOSED"
	StatusCalculated  Status = "CALCULATED"
	StatusDistributed Status = "DISTRIBUTED"
	StatusCancelled   Status = "CANCELLED"
)

// Round is a time-boxed funding event with one matching budget.
// The budget is immutable once the round leaves PENDING.
type Round struct {
	ID        string    `json:"id"`
	Budget    int64     `json:"budget"`
	StartAt   time.Time `json:"start_at"`
	EndAt     time.Time `json:"end_at"`
	Status    Status    `json:"status"`
	Metadata  string    `json:"metadata,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Clock supplies the current time for lifecycle checks. The engine never
// reads the wall clock directly; the hosting process decides what "now" is.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// EffectiveStatus returns the status the round is in once lazy time checks
// are applied: an OPEN round whose end time has passed behaves as CLOSED even
// before anything persists the transition.
func EffectiveStatus(r *Round, now time.Time) Status {
	if r.Status == StatusOpen && !now.Before(r.EndAt) {
		return StatusClosed
	}
	return r.Status
}
