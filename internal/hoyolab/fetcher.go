package hoyolab

import (
	"context"
	"fmt"
	"sync"
	"time"

	"HoyoSentinel/internal/model"
)

// Fetcher defines the interface the watcher polls.
type Fetcher interface {
	FetchRecoveryState(ctx context.Context, user User) (model.RecoveryState, error)
	ClaimDailyReward(ctx context.Context, game model.Game) (*model.RewardResult, error)
	Name() string
}

var _ Fetcher = (*Client)(nil)

// SupportsRecovery reports whether game has a RecoveryState mapping. Genshin
// resin regenerates every eight minutes and only takes part in check-ins.
func SupportsRecovery(game model.Game) bool {
	return game == model.GameStarRail || game == model.GameZenless
}

// FetchRecoveryState reads the daily note for user and maps it to a snapshot.
// Genshin resin does not follow the six-minute unit interval and is rejected.
func (c *Client) FetchRecoveryState(ctx context.Context, user User) (model.RecoveryState, error) {
	var state model.RecoveryState
	switch user.Game {
	case model.GameStarRail:
		note, err := c.StarRail.FetchDailyNote(ctx, user)
		if err != nil {
			return state, fmt.Errorf("fetch note for %d: %w", user.UID, err)
		}
		state = note.RecoveryState()
	case model.GameZenless:
		note, err := c.Zenless.FetchDailyNote(ctx, user)
		if err != nil {
			return state, fmt.Errorf("fetch note for %d: %w", user.UID, err)
		}
		state = note.RecoveryState(time.Now())
	default:
		return state, fmt.Errorf("%w: %s has no recovery snapshot", ErrUnsupportedGame, user.Game)
	}
	if err := state.Validate(); err != nil {
		return model.RecoveryState{}, err
	}
	return state, nil
}

// ClaimDailyReward signs in to the check-in event of game.
func (c *Client) ClaimDailyReward(ctx context.Context, game model.Game) (*model.RewardResult, error) {
	switch game {
	case model.GameGenshin:
		return c.Genshin.ClaimDailyReward(ctx)
	case model.GameStarRail:
		return c.StarRail.ClaimDailyReward(ctx)
	case model.GameZenless:
		return c.Zenless.ClaimDailyReward(ctx)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedGame, game)
}

// MockFetcher replays fixed snapshots for development and testing. Each call
// returns the next entry of States; the last one repeats.
type MockFetcher struct {
	States    []model.RecoveryState
	Err       error
	Reward    *model.RewardResult
	RewardErr error

	mu    sync.Mutex
	calls int
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchRecoveryState(_ context.Context, _ User) (model.RecoveryState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return model.RecoveryState{}, m.Err
	}
	if len(m.States) == 0 {
		return model.RecoveryState{}, fmt.Errorf("mock: no states")
	}
	i := min(m.calls, len(m.States)-1)
	m.calls++
	return m.States[i], nil
}

func (m *MockFetcher) ClaimDailyReward(_ context.Context, game model.Game) (*model.RewardResult, error) {
	if m.RewardErr != nil {
		return nil, m.RewardErr
	}
	if m.Reward != nil {
		r := *m.Reward
		r.Game = game
		return &r, nil
	}
	return &model.RewardResult{Game: game, Name: "Stellar Jade", Amount: 20, Claimed: true}, nil
}

// Calls reports how many snapshots were served.
func (m *MockFetcher) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
