package model

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidSnapshot is returned by RecoveryState.Validate for snapshots the
// calculator cannot reason about.
var ErrInvalidSnapshot = errors.New("invalid recovery snapshot")

// RecoveryState is an immutable point-in-time reading of a regenerating
// resource (Star Rail trailblaze power and similar counters).
type RecoveryState struct {
	CurrentAmount int `json:"current_amount"`
	MaxAmount     int `json:"max_amount"`
	// SecondsSinceLastUnit is the upstream recover-time counter. It keeps
	// growing past the unit interval while the amount sits at max.
	SecondsSinceLastUnit     int64 `json:"seconds_since_last_unit"`
	FullRecoveryEpochSeconds int64 `json:"full_recovery_ts"`
	ObservedAtEpochSeconds   int64 `json:"observed_at_ts"`
}

// ObservedAt returns the capture time of the snapshot in UTC.
func (s RecoveryState) ObservedAt() time.Time {
	return time.Unix(s.ObservedAtEpochSeconds, 0).UTC()
}

// Validate reports whether the snapshot satisfies the calculator's preconditions.
func (s RecoveryState) Validate() error {
	if s.MaxAmount <= 0 {
		return fmt.Errorf("%w: max amount %d must be positive", ErrInvalidSnapshot, s.MaxAmount)
	}
	if s.CurrentAmount < 0 {
		return fmt.Errorf("%w: current amount %d is negative", ErrInvalidSnapshot, s.CurrentAmount)
	}
	if s.SecondsSinceLastUnit < 0 {
		return fmt.Errorf("%w: recover time %d is negative", ErrInvalidSnapshot, s.SecondsSinceLastUnit)
	}
	return nil
}
