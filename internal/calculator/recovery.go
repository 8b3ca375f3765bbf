package calculator

import (
	"time"

	"HoyoSentinel/internal/model"
)

// UnitIntervalSeconds is the regeneration period of one unit.
const UnitIntervalSeconds = 360

// UnitInterval is UnitIntervalSeconds as a duration.
const UnitInterval = UnitIntervalSeconds * time.Second

// Percentage returns CurrentAmount / MaxAmount (0.0 ~ 1.0). It is not clamped
// and yields NaN or +Inf when MaxAmount is zero.
func Percentage(s model.RecoveryState) float64 {
	return float64(s.CurrentAmount) / float64(s.MaxAmount)
}

// IsFull reports whether the amount reached capacity.
func IsFull(s model.RecoveryState) bool {
	return s.CurrentAmount >= s.MaxAmount
}

// RecoveryDuration passes the upstream recover-time counter through as a duration.
func RecoveryDuration(s model.RecoveryState) time.Duration {
	return time.Duration(s.SecondsSinceLastUnit) * time.Second
}

// FullRecoveryTime converts the upstream full-recovery timestamp.
func FullRecoveryTime(s model.RecoveryState) time.Time {
	return time.Unix(s.FullRecoveryEpochSeconds, 0).UTC()
}

// TimeToNextUnit returns the countdown to the next unit boundary, or zero when
// full. A counter sitting exactly on a boundary waits a whole interval.
func TimeToNextUnit(s model.RecoveryState) time.Duration {
	if IsFull(s) {
		return 0
	}
	return time.Duration(UnitIntervalSeconds-s.SecondsSinceLastUnit%UnitIntervalSeconds) * time.Second
}

// NextUnitTime is the wall-clock time of the next unit, measured from the
// observation timestamp rather than from now.
func NextUnitTime(s model.RecoveryState) time.Time {
	return s.ObservedAt().Add(TimeToNextUnit(s))
}
