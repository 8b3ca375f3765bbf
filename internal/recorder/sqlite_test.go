package recorder

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"HoyoSentinel/internal/model"
)

func openTestRecorder(t *testing.T) *SQLiteRecorder {
	t.Helper()
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() })
	return r
}

func TestRecordSnapshot(t *testing.T) {
	r := openTestRecorder(t)
	s := model.RecoveryState{CurrentAmount: 120, MaxAmount: 240, SecondsSinceLastUnit: 43200, ObservedAtEpochSeconds: 1_700_000_000}
	require.NoError(t, r.RecordSnapshot("starrail:600000001", s))

	var (
		current int
		pct     float64
	)
	err := r.db.QueryRow(`SELECT current_amount, percentage FROM snapshots WHERE account = ?`, "starrail:600000001").
		Scan(&current, &pct)
	require.NoError(t, err)
	assert.Equal(t, 120, current)
	assert.InDelta(t, 0.5, pct, 1e-9)
}

func TestRecordEventAndRecent(t *testing.T) {
	r := openTestRecorder(t)
	clock := time.Unix(1_700_000_000, 0)
	r.now = func() time.Time { clock = clock.Add(time.Second); return clock }

	acct := "starrail:600000001"
	require.NoError(t, r.RecordEvent(acct, model.ChangedEvent{PreviousAmount: 10, CurrentAmount: 11, MaxAmount: 240, Delta: 1}))
	require.NoError(t, r.RecordEvent(acct, model.FullEvent{MaxAmount: 240}))
	require.NoError(t, r.RecordEvent("other", model.FullEvent{MaxAmount: 240}))

	recs, err := r.RecentEvents(acct, 10)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, model.EventFull, recs[0].Kind)
	assert.Equal(t, model.EventChanged, recs[1].Kind)
	assert.NotEqual(t, recs[0].ID, recs[1].ID)
	assert.Len(t, recs[0].ID, 36)

	var changed model.ChangedEvent
	require.NoError(t, json.Unmarshal([]byte(recs[1].Payload), &changed))
	assert.Equal(t, 1, changed.Delta)

	recs, err = r.RecentEvents(acct, 1)
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}

func TestEventRecorderSubscriber(t *testing.T) {
	r := openTestRecorder(t)
	sub := EventRecorder{Recorder: r}
	require.NoError(t, sub.HandleEvent("acct", model.UnitGainedEvent{NewAmount: 5, MaxAmount: 240}))

	recs, err := r.RecentEvents("acct", 5)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, model.EventUnitGained, recs[0].Kind)
}

func TestRecordClaim(t *testing.T) {
	r := openTestRecorder(t)
	require.NoError(t, r.RecordClaim(&ClaimRecord{
		Account: "starrail:600000001", Game: model.GameStarRail,
		Reward: "Stellar Jade", Amount: 20, Status: "CLAIMED",
	}))

	var status string
	require.NoError(t, r.db.QueryRow(`SELECT status FROM reward_claims`).Scan(&status))
	assert.Equal(t, "CLAIMED", status)
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NewNoopRecorder()
	assert.NoError(t, r.RecordSnapshot("a", model.RecoveryState{}))
	assert.NoError(t, r.RecordEvent("a", model.FullEvent{}))
	recs, err := r.RecentEvents("a", 1)
	assert.NoError(t, err)
	assert.Empty(t, recs)
}
