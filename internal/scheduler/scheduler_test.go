package scheduler

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"HoyoSentinel/internal/baseline"
	"HoyoSentinel/internal/detector"
	"HoyoSentinel/internal/hoyolab"
	"HoyoSentinel/internal/model"
	"HoyoSentinel/internal/recorder"
)

type collected struct {
	account string
	kind    model.EventKind
}

type collector struct {
	mu     sync.Mutex
	events []collected
}

func (c *collector) HandleEvent(account string, ev model.Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, collected{account, ev.Kind()})
	return nil
}

func (c *collector) kinds() []model.EventKind {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []model.EventKind
	for _, e := range c.events {
		out = append(out, e.kind)
	}
	return out
}

type fakeSender struct {
	msgs []string
}

func (f *fakeSender) SendWithRetry(_ context.Context, text string, _ int) error {
	f.msgs = append(f.msgs, text)
	return nil
}

type fakeClaims struct {
	recorder.NoopRecorder
	claims []*recorder.ClaimRecord
}

func (f *fakeClaims) RecordClaim(c *recorder.ClaimRecord) error {
	f.claims = append(f.claims, c)
	return nil
}

var hsrUser = hoyolab.User{Game: model.GameStarRail, UID: 600000001, Server: hoyolab.ServerStarRailAmerica}

func snap(current int) model.RecoveryState {
	return model.RecoveryState{
		CurrentAmount:          current,
		MaxAmount:              240,
		SecondsSinceLastUnit:   int64(240-current) * 360,
		ObservedAtEpochSeconds: 1_700_000_000,
	}
}

func newTestScheduler(t *testing.T, fetcher hoyolab.Fetcher, users ...hoyolab.User) (*Scheduler, *collector, *baseline.FileStore) {
	t.Helper()
	store, err := baseline.NewFileStore(filepath.Join(t.TempDir(), "baseline.json"))
	require.NoError(t, err)
	disp := detector.NewDispatcher()
	col := &collector{}
	disp.Subscribe(col)
	s := NewScheduler(context.Background(), Options{
		Fetcher:    fetcher,
		Users:      users,
		Baselines:  store,
		Dispatcher: disp,
	})
	return s, col, store
}

func TestPollFirstRunHasNoBaseline(t *testing.T) {
	s, col, store := newTestScheduler(t, &hoyolab.MockFetcher{States: []model.RecoveryState{snap(100)}}, hsrUser)

	_, err := s.PollAccount(hsrUser)
	require.NoError(t, err)
	assert.Empty(t, col.kinds())

	e, ok, err := store.Load(context.Background(), hsrUser.Key())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 100, e.Amount)
}

func TestPollSequence(t *testing.T) {
	fetcher := &hoyolab.MockFetcher{States: []model.RecoveryState{snap(238), snap(239), snap(240), snap(240), snap(200)}}
	s, col, _ := newTestScheduler(t, fetcher, hsrUser)

	for i := 0; i < 5; i++ {
		s.RunPollNow()
	}

	assert.Equal(t, []model.EventKind{
		// 238 -> 239
		model.EventUnitGained, model.EventChanged,
		// 239 -> 240
		model.EventFull, model.EventUnitGained, model.EventChanged,
		// 240 -> 240
		model.EventFull, model.EventChanged,
		// 240 -> 200
		model.EventChanged,
	}, col.kinds())

	last, ok := s.LastState(hsrUser.Key())
	require.True(t, ok)
	assert.Equal(t, 200, last.CurrentAmount)
}

func TestPollErrorDoesNotStopOtherAccounts(t *testing.T) {
	fetcher := &hoyolab.MockFetcher{Err: errors.New("portal down")}
	other := hoyolab.User{Game: model.GameZenless, UID: 1300000001, Server: hoyolab.ServerZenlessAsia}
	s, col, _ := newTestScheduler(t, fetcher, hsrUser, other)

	s.RunPollNow()
	assert.Empty(t, col.kinds())
	_, ok := s.LastState(hsrUser.Key())
	assert.False(t, ok)
}

func TestRewardTaskClaimsOncePerGame(t *testing.T) {
	alt := hoyolab.User{Game: model.GameStarRail, UID: 700000001, Server: hoyolab.ServerStarRailEurope}
	s, _, _ := newTestScheduler(t, &hoyolab.MockFetcher{}, hsrUser, alt)
	sender := &fakeSender{}
	claims := &fakeClaims{}
	s.Notifier = sender
	s.Recorder = claims

	s.rewardTask()
	require.Len(t, claims.claims, 1)
	assert.Equal(t, "CLAIMED", claims.claims[0].Status)
	require.Len(t, sender.msgs, 1)
	assert.Contains(t, sender.msgs[0], "Stellar Jade")
}

func TestRewardTaskAlreadyClaimedIsQuiet(t *testing.T) {
	s, _, _ := newTestScheduler(t, &hoyolab.MockFetcher{RewardErr: hoyolab.ErrAlreadyClaimed}, hsrUser)
	sender := &fakeSender{}
	claims := &fakeClaims{}
	s.Notifier = sender
	s.Recorder = claims

	s.rewardTask()
	require.Len(t, claims.claims, 1)
	assert.Equal(t, "ALREADY_CLAIMED", claims.claims[0].Status)
	assert.Empty(t, sender.msgs)

	reply := s.HandleCommand("/claim")
	assert.Contains(t, reply, "already checked in")
}

func TestHandleCommand(t *testing.T) {
	s, _, _ := newTestScheduler(t, &hoyolab.MockFetcher{States: []model.RecoveryState{snap(120)}}, hsrUser)

	reply := s.HandleCommand("/stamina@HoyoSentinelBot")
	assert.Contains(t, reply, "starrail:600000001")
	assert.Contains(t, reply, "120/240")

	assert.Contains(t, s.HandleCommand("/events"), "none recorded")
	assert.Contains(t, s.HandleCommand("/help"), "/stamina")
	assert.Contains(t, s.HandleCommand(""), "/stamina")
	assert.Contains(t, s.HandleCommand("hello"), "/claim")
}

func TestStaminaFallsBackToLastState(t *testing.T) {
	fetcher := &hoyolab.MockFetcher{States: []model.RecoveryState{snap(50)}}
	s, _, _ := newTestScheduler(t, fetcher, hsrUser)
	_, err := s.PollAccount(hsrUser)
	require.NoError(t, err)

	fetcher.Err = errors.New("timeout")
	reply := s.HandleCommand("/stamina")
	assert.Contains(t, reply, "50/240")
}

func TestRegisterAll(t *testing.T) {
	s, _, _ := newTestScheduler(t, &hoyolab.MockFetcher{}, hsrUser)
	require.NoError(t, s.RegisterAll("0 */6 * * * *", "0 5 0 * * *"))
	assert.Len(t, s.Cron.Entries(), 2)

	s2, _, _ := newTestScheduler(t, &hoyolab.MockFetcher{}, hsrUser)
	assert.Error(t, s2.RegisterAll("not a cron", ""))
}

// slowStore widens the window between loading and saving a baseline and
// records how many loads overlap.
type slowStore struct {
	baseline.Store
	inFlight    atomic.Int32
	maxInFlight atomic.Int32
}

func (s *slowStore) Load(ctx context.Context, key string) (baseline.Entry, bool, error) {
	n := s.inFlight.Add(1)
	defer s.inFlight.Add(-1)
	for {
		m := s.maxInFlight.Load()
		if n <= m || s.maxInFlight.CompareAndSwap(m, n) {
			break
		}
	}
	time.Sleep(20 * time.Millisecond)
	return s.Store.Load(ctx, key)
}

func TestConcurrentPollsOfOneAccountAreSerialized(t *testing.T) {
	s, col, store := newTestScheduler(t, &hoyolab.MockFetcher{States: []model.RecoveryState{snap(101)}}, hsrUser)
	require.NoError(t, store.Save(context.Background(), hsrUser.Key(), baseline.NewEntry(snap(100))))
	slow := &slowStore{Store: store}
	s.Baselines = slow

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.PollAccount(hsrUser)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), slow.maxInFlight.Load())
	assert.Equal(t, []model.EventKind{
		model.EventUnitGained, model.EventChanged,
		model.EventChanged,
	}, col.kinds())
}

func TestPollSkipsGamesWithoutRecovery(t *testing.T) {
	genshin := hoyolab.User{Game: model.GameGenshin, UID: 800000001, Server: hoyolab.ServerAsia}
	fetcher := &hoyolab.MockFetcher{States: []model.RecoveryState{snap(10)}}
	s, _, _ := newTestScheduler(t, fetcher, genshin)

	s.RunPollNow()
	assert.Equal(t, 0, fetcher.Calls())
	assert.Equal(t, "No accounts with a recovery counter", s.HandleCommand("/stamina"))
	assert.Equal(t, 0, fetcher.Calls())

	res, err := fetcher.ClaimDailyReward(context.Background(), genshin.Game)
	require.NoError(t, err)
	assert.Equal(t, model.GameGenshin, res.Game)
}
