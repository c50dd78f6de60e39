package domain

import "time"

// Request is a single inbound download request. It is created on
// message receipt and never mutated afterwards.
type Request struct {
	ID         string
	URL        string
	ChatID     int64
	MessageID  int
	ReceivedAt time.Time
}

// VideoMetadata describes a resolved video before anything is
// downloaded.
type VideoMetadata struct {
	Title        string
	Duration     int // seconds; 0 when the source does not report one
	Width        int
	Height       int
	ThumbnailURL string
}

// Outcome is the terminal state of one request's workflow.
type Outcome int

const (
	// OutcomeDelivered means the video was uploaded to the chat.
	OutcomeDelivered Outcome = iota
	// OutcomeRejected means a policy gate (duration or size) stopped
	// the request. Not a fault.
	OutcomeRejected
	// OutcomeFailed means a stage errored out.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeDelivered:
		return "delivered"
	case OutcomeRejected:
		return "rejected"
	case OutcomeFailed:
		return "failed"
	}
	return "unknown"
}

// Result carries the outcome of a completed workflow back to the
// caller. Reason is a short human-readable message shown to the
// requester for rejected and failed outcomes; Err is set only for
// failures.
type Result struct {
	Outcome Outcome
	Reason  string
	Err     error
}
