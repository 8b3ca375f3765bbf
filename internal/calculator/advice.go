package calculator

import (
	"time"

	"HoyoSentinel/internal/model"
)

// DefaultUsageThreshold is the fill ratio at which spending is recommended.
const DefaultUsageThreshold = 0.8

// AdviceCode is a structured usage recommendation; presentation is left to callers.
type AdviceCode string

const (
	AdviceFull         AdviceCode = "full"
	AdviceNearlyFull   AdviceCode = "nearly_full"
	AdviceLongRecovery AdviceCode = "long_recovery"
	AdviceUnitSoon     AdviceCode = "unit_soon"
)

const (
	longRecoveryThreshold = 20 * time.Hour
	unitSoonThreshold     = 10 * time.Minute
)

// Summary bundles the values a status report needs.
type Summary struct {
	CurrentAmount    int
	MaxAmount        int
	Percentage       float64
	Full             bool
	RecoveryDuration time.Duration
	FullRecoveryTime time.Time
	TimeToNextUnit   time.Duration
	NextUnitTime     time.Time
	ObservedAt       time.Time
}

// Summarize computes a Summary for the snapshot.
func Summarize(s model.RecoveryState) Summary {
	return Summary{
		CurrentAmount:    s.CurrentAmount,
		MaxAmount:        s.MaxAmount,
		Percentage:       Percentage(s),
		Full:             IsFull(s),
		RecoveryDuration: RecoveryDuration(s),
		FullRecoveryTime: FullRecoveryTime(s),
		TimeToNextUnit:   TimeToNextUnit(s),
		NextUnitTime:     NextUnitTime(s),
		ObservedAt:       s.ObservedAt(),
	}
}

// ShouldUseNow reports whether the fill ratio reached threshold.
func ShouldUseNow(s model.RecoveryState, threshold float64) bool {
	return Percentage(s) >= threshold
}

// OptimalUsageTime returns the observation time when target is already
// available, otherwise the time the amount reaches target.
func OptimalUsageTime(s model.RecoveryState, target int) time.Time {
	if s.CurrentAmount >= target {
		return s.ObservedAt()
	}
	return TimeToReachAmount(s, target)
}

// Advise returns the recommendations that apply to the snapshot, in a stable order.
func Advise(s model.RecoveryState, threshold float64) []AdviceCode {
	var advice []AdviceCode

	if IsFull(s) {
		advice = append(advice, AdviceFull)
	} else if ShouldUseNow(s, threshold) {
		advice = append(advice, AdviceNearlyFull)
	}

	if RecoveryDuration(s) > longRecoveryThreshold {
		advice = append(advice, AdviceLongRecovery)
	}

	// full snapshots report a zero countdown, which is not "soon"
	if next := TimeToNextUnit(s); next > 0 && next < unitSoonThreshold {
		advice = append(advice, AdviceUnitSoon)
	}

	return advice
}
