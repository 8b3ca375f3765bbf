package detector

import (
	"time"

	"HoyoSentinel/internal/calculator"
	"HoyoSentinel/internal/model"
)

// Detector decides which recovery events a snapshot fires. It keeps no state
// between calls; callers own the baseline.
type Detector struct {
	Now func() time.Time
}

// New creates a Detector stamped with the system clock.
func New() *Detector {
	return &Detector{Now: time.Now}
}

// Detect runs Detect with the detector's clock.
func (d *Detector) Detect(state model.RecoveryState, previous *int) []model.Event {
	now := time.Now
	if d.Now != nil {
		now = d.Now
	}
	return Detect(state, previous, now())
}

// Detect returns the events fired by state against an optional baseline, in
// the order full, unit gained, changed. The checks are independent: a full
// snapshot that also grew fires both of the first two. now stamps ChangedEvent.
func Detect(state model.RecoveryState, previous *int, now time.Time) []model.Event {
	var events []model.Event

	// Check 1: at capacity, on every call
	if calculator.IsFull(state) {
		events = append(events, model.FullEvent{
			FullTime:         calculator.FullRecoveryTime(state),
			MaxAmount:        state.MaxAmount,
			RecoveryDuration: calculator.RecoveryDuration(state),
		})
	}

	if previous == nil {
		return events
	}

	// Check 2: grew since the baseline; payload projects the next unit
	if state.CurrentAmount > *previous {
		next := min(state.CurrentAmount+1, state.MaxAmount)
		events = append(events, model.UnitGainedEvent{
			PointTime:      calculator.NextUnitTime(state),
			NewAmount:      next,
			MaxAmount:      state.MaxAmount,
			TimeToNextUnit: calculator.TimeToNextUnit(state),
			Percentage:     float64(next) / float64(state.MaxAmount),
		})
	}

	// Check 3: any baseline, regardless of direction
	events = append(events, model.ChangedEvent{
		PreviousAmount: *previous,
		CurrentAmount:  state.CurrentAmount,
		MaxAmount:      state.MaxAmount,
		Delta:          state.CurrentAmount - *previous,
		Percentage:     calculator.Percentage(state),
		ChangeTime:     now,
	})

	return events
}
