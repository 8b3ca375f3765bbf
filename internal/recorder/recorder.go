package recorder

import (
	"time"

	"HoyoSentinel/internal/model"
)

// EventRecord is a fired recovery event as stored in history.
type EventRecord struct {
	ID        string
	Account   string
	Kind      model.EventKind
	Payload   string // JSON of the event struct
	CreatedAt time.Time
}

// ClaimRecord is the outcome of one daily check-in attempt.
type ClaimRecord struct {
	Account string
	Game    model.Game
	Reward  string
	Amount  int
	Status  string // "CLAIMED", "ALREADY_CLAIMED", "CAPTCHA" or "FAILED"
	Note    string
}

// Recorder persists historical data for analysis.
type Recorder interface {
	RecordSnapshot(account string, s model.RecoveryState) error
	RecordEvent(account string, ev model.Event) error
	RecordClaim(c *ClaimRecord) error
	RecentEvents(account string, limit int) ([]EventRecord, error)
	Close() error
}

// EventRecorder adapts a Recorder to the detector's subscriber signature.
type EventRecorder struct {
	Recorder Recorder
}

func (e EventRecorder) HandleEvent(account string, ev model.Event) error {
	return e.Recorder.RecordEvent(account, ev)
}
