package model

import "time"

// EventKind identifies which recovery event fired.
type EventKind string

const (
	EventFull       EventKind = "full"
	EventUnitGained EventKind = "unit_gained"
	EventChanged    EventKind = "changed"
)

// Event is one of FullEvent, UnitGainedEvent or ChangedEvent.
type Event interface {
	Kind() EventKind
}

// FullEvent fires whenever a snapshot is at or above capacity.
type FullEvent struct {
	FullTime         time.Time     `json:"full_time"`
	MaxAmount        int           `json:"max_amount"`
	RecoveryDuration time.Duration `json:"recovery_duration"`
}

func (FullEvent) Kind() EventKind { return EventFull }

// UnitGainedEvent fires when the amount grew since the baseline. NewAmount is
// the projected value after the next unit, not the observed amount.
type UnitGainedEvent struct {
	PointTime      time.Time     `json:"point_time"`
	NewAmount      int           `json:"new_amount"`
	MaxAmount      int           `json:"max_amount"`
	TimeToNextUnit time.Duration `json:"time_to_next_unit"`
	Percentage     float64       `json:"percentage"`
}

func (UnitGainedEvent) Kind() EventKind { return EventUnitGained }

// ChangedEvent fires on every detection that has a baseline, including
// detections where the amount did not move.
type ChangedEvent struct {
	PreviousAmount int       `json:"previous_amount"`
	CurrentAmount  int       `json:"current_amount"`
	MaxAmount      int       `json:"max_amount"`
	Delta          int       `json:"delta"`
	Percentage     float64   `json:"percentage"`
	ChangeTime     time.Time `json:"change_time"`
}

func (ChangedEvent) Kind() EventKind { return EventChanged }
