package hoyolab

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"HoyoSentinel/internal/model"
)

// GenshinClient queries Genshin Impact records.
type GenshinClient struct{ baseClient }

// StarRailClient queries Honkai: Star Rail records.
type StarRailClient struct{ baseClient }

// ZenlessClient queries Zenless Zone Zero records.
type ZenlessClient struct{ baseClient }

func (c *GenshinClient) FetchStats(ctx context.Context, user User) (*model.GenshinStats, error) {
	u, err := c.recordURL(c.data.Endpoints.GenshinStats, user)
	if err != nil {
		return nil, err
	}
	return fetchData[model.GenshinStats](ctx, c.data, u, requestOptions{cookie: c.cookie, requireDS: true})
}

func (c *GenshinClient) FetchDailyNote(ctx context.Context, user User) (*model.GenshinNote, error) {
	u, err := c.recordURL(c.data.Endpoints.GenshinDailyNote, user)
	if err != nil {
		return nil, err
	}
	return fetchData[model.GenshinNote](ctx, c.data, u, requestOptions{cookie: c.cookie, requireDS: true})
}

func (c *GenshinClient) ClaimDailyReward(ctx context.Context) (*model.RewardResult, error) {
	e := c.data.Endpoints
	return c.claim(ctx, rewardEndpoints{info: e.GenshinRewardInfo, home: e.GenshinRewardHome, sign: e.GenshinRewardSign})
}

func (c *StarRailClient) FetchStats(ctx context.Context, user User) (*model.StarRailStats, error) {
	u, err := c.recordURL(c.data.Endpoints.StarRailStats, user)
	if err != nil {
		return nil, err
	}
	return fetchData[model.StarRailStats](ctx, c.data, u, requestOptions{cookie: c.cookie, requireDS: true})
}

func (c *StarRailClient) FetchDailyNote(ctx context.Context, user User) (*model.StarRailNote, error) {
	u, err := c.recordURL(c.data.Endpoints.StarRailDailyNote, user)
	if err != nil {
		return nil, err
	}
	return fetchData[model.StarRailNote](ctx, c.data, u, requestOptions{cookie: c.cookie, requireDS: true})
}

// GetRewardData returns this month's check-in award table.
func (c *StarRailClient) GetRewardData(ctx context.Context) (*model.RewardHome, error) {
	u := withQuery(c.data.Endpoints.StarRailRewardHome, "lang", c.data.Language)
	return fetchData[model.RewardHome](ctx, c.data, u, requestOptions{cookie: c.cookie})
}

func (c *StarRailClient) ClaimDailyReward(ctx context.Context) (*model.RewardResult, error) {
	e := c.data.Endpoints
	return c.claim(ctx, rewardEndpoints{info: e.StarRailRewardInfo, home: e.StarRailRewardHome, sign: e.StarRailRewardSign})
}

func (c *ZenlessClient) FetchStats(ctx context.Context, user User) (*model.ZenlessStats, error) {
	u, err := c.recordURL(c.data.Endpoints.ZenlessStats, user)
	if err != nil {
		return nil, err
	}
	return fetchData[model.ZenlessStats](ctx, c.data, u, requestOptions{cookie: c.cookie, requireDS: true})
}

func (c *ZenlessClient) FetchDailyNote(ctx context.Context, user User) (*model.ZenlessNote, error) {
	u, err := c.recordURL(c.data.Endpoints.ZenlessDailyNote, user)
	if err != nil {
		return nil, err
	}
	return fetchData[model.ZenlessNote](ctx, c.data, u, requestOptions{cookie: c.cookie, requireDS: true})
}

func (c *ZenlessClient) ClaimDailyReward(ctx context.Context) (*model.RewardResult, error) {
	e := c.data.Endpoints
	return c.claim(ctx, rewardEndpoints{info: e.ZenlessRewardInfo, home: e.ZenlessRewardHome, sign: e.ZenlessRewardSign})
}

type rewardEndpoints struct {
	info, home, sign string
}

// claim reads the check-in streak, looks up today's award and signs in. A
// risk flag on an otherwise successful sign response counts as a captcha.
func (c *baseClient) claim(ctx context.Context, ep rewardEndpoints) (*model.RewardResult, error) {
	lang := c.data.Language
	opts := requestOptions{cookie: c.cookie}

	info, err := fetchData[model.RewardInfo](ctx, c.data, withQuery(ep.info, "lang", lang), opts)
	if err != nil {
		return nil, fmt.Errorf("reward info: %w", err)
	}
	home, err := fetchData[model.RewardHome](ctx, c.data, withQuery(ep.home, "lang", lang), opts)
	if err != nil {
		return nil, fmt.Errorf("reward home: %w", err)
	}

	idx := max(info.TotalSignDay-1, 0)
	if idx >= len(home.Awards) {
		return nil, fmt.Errorf("reward home: no award for day %d of %d", idx+1, len(home.Awards))
	}
	award := home.Awards[idx]
	result := &model.RewardResult{Game: c.game, Name: award.Name, Amount: award.Count}

	opts.method = http.MethodPost
	sign, err := fetchData[model.SignResult](ctx, c.data, withQuery(ep.sign, "lang", lang), opts)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Retcode == retcodeAlreadyClaimed {
			return nil, ErrAlreadyClaimed
		}
		return nil, fmt.Errorf("reward sign: %w", err)
	}
	if sign.GTResult != nil && sign.GTResult.IsRisk {
		return nil, ErrCaptcha
	}
	result.Claimed = true
	return result, nil
}
