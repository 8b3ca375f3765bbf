package calculator

import (
	"time"

	"HoyoSentinel/internal/model"
)

// AmountAtDuration projects the amount after elapsed, flooring partial units
// and clamping at MaxAmount. elapsed must not be negative.
func AmountAtDuration(s model.RecoveryState, elapsed time.Duration) int {
	recovered := int(elapsed / UnitInterval)
	return min(s.CurrentAmount+recovered, s.MaxAmount)
}

// TimeToReachAmount returns when the amount reaches target. Targets already
// met return the observation time; targets above capacity are clamped.
func TimeToReachAmount(s model.RecoveryState, target int) time.Time {
	if target <= s.CurrentAmount {
		return s.ObservedAt()
	}
	return s.ObservedAt().Add(unitsNeeded(s, target))
}

// DurationToReachAmount is TimeToReachAmount expressed as a wait from the
// observation time.
func DurationToReachAmount(s model.RecoveryState, target int) time.Duration {
	if target <= s.CurrentAmount {
		return 0
	}
	return unitsNeeded(s, target)
}

// ForecastAtTime projects the amount at an absolute time. Times at or before
// the observation return the observed amount.
func ForecastAtTime(s model.RecoveryState, at time.Time) int {
	elapsed := at.Sub(s.ObservedAt())
	if elapsed <= 0 {
		return s.CurrentAmount
	}
	return AmountAtDuration(s, elapsed)
}

func unitsNeeded(s model.RecoveryState, target int) time.Duration {
	if target > s.MaxAmount {
		target = s.MaxAmount
	}
	return time.Duration(target-s.CurrentAmount) * UnitInterval
}
