package baseline

import (
	"context"
	"time"

	"HoyoSentinel/internal/model"
)

// Entry is the last snapshot seen for an account. Amount is the baseline the
// detector compares the next poll against.
type Entry struct {
	Amount    int                 `json:"amount"`
	State     model.RecoveryState `json:"state"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// NewEntry builds an entry from a freshly fetched snapshot.
func NewEntry(state model.RecoveryState) Entry {
	return Entry{Amount: state.CurrentAmount, State: state, UpdatedAt: time.Now()}
}

// Store keeps one baseline per account key across restarts.
type Store interface {
	// Load returns ok=false when no baseline exists for key.
	Load(ctx context.Context, key string) (Entry, bool, error)
	Save(ctx context.Context, key string, e Entry) error
	Close() error
}
