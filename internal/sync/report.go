package sync

import "time"

// Outcome classifies an aggregate sync report for user-facing messaging.
type Outcome string

const (
	OutcomeNothing      Outcome = "nothing_to_sync"
	OutcomeAllSucceeded Outcome = "all_succeeded"
	OutcomeAllFailed    Outcome = "all_failed"
	OutcomePartial      Outcome = "partial"
)

// ItemSuccess records one queued complaint acknowledged by the server.
type ItemSuccess struct {
	LocalID  string `json:"localId"`
	ServerID int64  `json:"serverId"`
}

// ItemFailure records one queued complaint that stays queued for the next
// cycle.
type ItemFailure struct {
	LocalID string `json:"localId"`
	Error   string `json:"error"`
}

// Report is the aggregate result of one sync cycle.
type Report struct {
	Succeeded  []ItemSuccess `json:"succeeded"`
	Failed     []ItemFailure `json:"failed"`
	StartedAt  time.Time     `json:"startedAt"`
	FinishedAt time.Time     `json:"finishedAt"`
}

// Outcome partitions the report into the three user-facing cases (plus the
// empty no-op cycle).
func (r *Report) Outcome() Outcome {
	switch {
	case len(r.Succeeded) == 0 && len(r.Failed) == 0:
		return OutcomeNothing
	case len(r.Failed) == 0:
		return OutcomeAllSucceeded
	case len(r.Succeeded) == 0:
		return OutcomeAllFailed
	default:
		return OutcomePartial
	}
}

// Message returns the user-facing summary for this report.
func (r *Report) Message() string {
	switch r.Outcome() {
	case OutcomeAllSucceeded:
		return "All offline complaints have been submitted."
	case OutcomeAllFailed:
		return "Offline complaints could not be submitted yet; they will be retried automatically."
	case OutcomePartial:
		return "Some offline complaints were submitted; the rest will be retried automatically."
	default:
		return "No offline complaints to submit."
	}
}
