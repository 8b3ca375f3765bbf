package calculator

import (
	"math"
	"testing"
	"time"

	"HoyoSentinel/internal/model"

	"github.com/stretchr/testify/assert"
)

const observedAt = int64(1_700_000_000)

func state(current, max int, recover int64) model.RecoveryState {
	return model.RecoveryState{
		CurrentAmount:            current,
		MaxAmount:                max,
		SecondsSinceLastUnit:     recover,
		FullRecoveryEpochSeconds: observedAt + recover,
		ObservedAtEpochSeconds:   observedAt,
	}
}

func TestIsFull(t *testing.T) {
	tests := []struct {
		current, max int
		want         bool
	}{
		{0, 300, false},
		{299, 300, false},
		{300, 300, true},
		{310, 300, true},
		{240, 240, true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsFull(state(tt.current, tt.max, 0)), "current=%d max=%d", tt.current, tt.max)
	}
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 0.5, Percentage(state(150, 300, 0)))
	assert.Equal(t, 1.0, Percentage(state(300, 300, 0)))
	assert.Equal(t, 0.0, Percentage(state(0, 300, 0)))
	assert.Equal(t, float64(299)/float64(300), Percentage(state(299, 300, 0)))
	// not clamped
	assert.Greater(t, Percentage(state(320, 300, 0)), 1.0)
}

func TestPercentage_ZeroMaxIsNotANumber(t *testing.T) {
	assert.True(t, math.IsNaN(Percentage(state(0, 0, 0))))
	assert.True(t, math.IsInf(Percentage(state(5, 0, 0)), 1))
}

func TestRecoveryDurationAndFullTime(t *testing.T) {
	s := state(100, 300, 72000)
	assert.Equal(t, 20*time.Hour, RecoveryDuration(s))
	assert.Equal(t, time.Unix(observedAt+72000, 0).UTC(), FullRecoveryTime(s))
}

func TestTimeToNextUnit(t *testing.T) {
	tests := []struct {
		name    string
		recover int64
		want    time.Duration
	}{
		{"on boundary waits a full interval", 0, 360 * time.Second},
		{"mid cycle", 100, 260 * time.Second},
		{"exact multiple", 720, 360 * time.Second},
		{"past several cycles", 725, 355 * time.Second},
		{"one second left", 359, time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TimeToNextUnit(state(10, 300, tt.recover)))
		})
	}
}

func TestTimeToNextUnit_FullIsZero(t *testing.T) {
	assert.Equal(t, time.Duration(0), TimeToNextUnit(state(300, 300, 100)))
	assert.Equal(t, time.Duration(0), TimeToNextUnit(state(305, 300, 5000)))
}

func TestTimeToNextUnit_Range(t *testing.T) {
	for recover := int64(0); recover < 3*UnitIntervalSeconds; recover++ {
		got := TimeToNextUnit(state(0, 300, recover))
		if got <= 0 || got > UnitInterval {
			t.Fatalf("recover=%d: got %v, want (0, 360s]", recover, got)
		}
	}
}

func TestNextUnitTime(t *testing.T) {
	s := state(10, 300, 100)
	assert.Equal(t, time.Unix(observedAt+260, 0).UTC(), NextUnitTime(s))

	full := state(300, 300, 100)
	assert.Equal(t, full.ObservedAt(), NextUnitTime(full))
}

func TestAmountAtDuration_Scenario(t *testing.T) {
	s := state(0, 300, 0)
	assert.Equal(t, 1, AmountAtDuration(s, 360*time.Second))
	assert.Equal(t, 10, AmountAtDuration(s, 3600*time.Second))
	assert.Equal(t, 300, AmountAtDuration(s, 30*time.Hour))
}

func TestAmountAtDuration_FloorsPartialUnits(t *testing.T) {
	s := state(5, 300, 0)
	assert.Equal(t, 5, AmountAtDuration(s, 0))
	assert.Equal(t, 5, AmountAtDuration(s, 359*time.Second))
	assert.Equal(t, 6, AmountAtDuration(s, 360*time.Second))
	assert.Equal(t, 6, AmountAtDuration(s, 719*time.Second+999*time.Millisecond))
}

func TestAmountAtDuration_MonotonicAndClamped(t *testing.T) {
	s := state(280, 300, 0)
	prev := AmountAtDuration(s, 0)
	assert.Equal(t, s.CurrentAmount, prev)
	for d := time.Duration(0); d <= 3*time.Hour; d += 45 * time.Second {
		got := AmountAtDuration(s, d)
		assert.GreaterOrEqual(t, got, prev, "d=%v", d)
		assert.LessOrEqual(t, got, s.MaxAmount, "d=%v", d)
		prev = got
	}
}

func TestTimeToReachAmount(t *testing.T) {
	full := state(300, 300, 0)
	assert.Equal(t, full.ObservedAt(), TimeToReachAmount(full, 200))

	s := state(100, 300, 0)
	assert.Equal(t, s.ObservedAt(), TimeToReachAmount(s, 100))
	assert.Equal(t, s.ObservedAt().Add(50*UnitInterval), TimeToReachAmount(s, 150))
	// clamped to capacity
	assert.Equal(t, s.ObservedAt().Add(200*UnitInterval), TimeToReachAmount(s, 1000))
}

func TestDurationToReachAmount(t *testing.T) {
	s := state(290, 300, 0)
	assert.Equal(t, time.Duration(0), DurationToReachAmount(s, 290))
	assert.Equal(t, time.Duration(0), DurationToReachAmount(s, 10))
	assert.Equal(t, 3*UnitInterval, DurationToReachAmount(s, 293))
	assert.Equal(t, 10*UnitInterval, DurationToReachAmount(s, 400))
}

func TestReachAmount_RoundTrip(t *testing.T) {
	s := state(37, 240, 123)
	for target := s.CurrentAmount + 1; target <= s.MaxAmount; target++ {
		assert.Equal(t, target, AmountAtDuration(s, DurationToReachAmount(s, target)), "target=%d", target)
	}
}

func TestForecastAtTime(t *testing.T) {
	s := state(100, 300, 0)
	assert.Equal(t, 100, ForecastAtTime(s, s.ObservedAt().Add(-time.Hour)))
	assert.Equal(t, 100, ForecastAtTime(s, s.ObservedAt()))
	assert.Equal(t, 102, ForecastAtTime(s, s.ObservedAt().Add(12*time.Minute)))
	assert.Equal(t, 300, ForecastAtTime(s, s.ObservedAt().Add(48*time.Hour)))
}
