// Package state defines the history backend interface and types for
// recording program runs.
package state

import (
	"math/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// Status classifies how a run ended.
type Status string

const (
	// StatusSolved means the agent reached the exit.
	StatusSolved Status = "solved"
	// StatusFailed means the run finished without reaching the exit.
	StatusFailed Status = "failed"
	// StatusFault means the run aborted with a diagnostic.
	StatusFault Status = "fault"
)

// Entry records a single program run.
type Entry struct {
	ID         string        `json:"id"`
	Program    string        `json:"program"`
	Map        string        `json:"map"`
	Status     Status        `json:"status"`
	Steps      int           `json:"steps"`
	Diagnostic string        `json:"diagnostic,omitempty"`
	RanAt      time.Time     `json:"ran_at"`
	Duration   time.Duration `json:"duration"`
}

// NewEntryID returns a fresh run identifier. ULIDs sort
// lexicographically by creation time, so history listings stay
// chronological without a separate sort key.
func NewEntryID(now time.Time) string {
	entropy := ulid.Monotonic(rand.New(rand.NewSource(now.UnixNano())), 0)
	return ulid.MustNew(ulid.Timestamp(now), entropy).String()
}

// Backend is the interface for run history persistence.
type Backend interface {
	// Load reads all history entries from the backend.
	Load() ([]Entry, error)

	// Save replaces the backend contents with entries.
	Save(entries []Entry) error

	// Append records one more run.
	Append(entry Entry) error

	// Get retrieves a single entry by ID.
	Get(id string) (*Entry, error)

	// List returns all entries, optionally filtered by status.
	List(status *Status) ([]Entry, error)
}
