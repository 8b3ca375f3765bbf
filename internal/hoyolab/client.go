package hoyolab

import (
	"context"
	"fmt"

	"HoyoSentinel/internal/model"
)

// baseClient carries what every game client shares.
type baseClient struct {
	cookie Cookie
	data   *ClientData
	game   model.Game
}

// FetchUserStats returns the record card for uid, or for the cookie's own
// account when uid is empty.
func (c *baseClient) FetchUserStats(ctx context.Context, uid string) (*model.UserStats, error) {
	if uid == "" {
		uid = c.cookie.HoyolabUID()
	}
	u := withQuery(c.data.Endpoints.UserStats, "uid", uid)
	return fetchData[model.UserStats](ctx, c.data, u, requestOptions{cookie: c.cookie, requireDS: true})
}

// GetUserAccountInfo looks up the account behind the ltoken.
func (c *baseClient) GetUserAccountInfo(ctx context.Context) (*model.AccountInfo, error) {
	return fetchData[model.AccountInfo](ctx, c.data, c.data.Endpoints.AccountInfo, requestOptions{cookie: c.cookie})
}

// GetGameRoles lists bound roles, filtered to this client's game when gameOnly.
func (c *baseClient) GetGameRoles(ctx context.Context, gameOnly bool, region string) (*model.GameRoles, error) {
	biz := ""
	if gameOnly {
		biz = c.game.Biz()
	}
	u := withQuery(c.data.Endpoints.GameRoles, "game_biz", biz, "region", region)
	return fetchData[model.GameRoles](ctx, c.data, u, requestOptions{cookie: c.cookie})
}

func (c *baseClient) recordURL(endpoint string, user User) (string, error) {
	if user.Game != c.game {
		return "", fmt.Errorf("%s client cannot query %s user %d", c.game, user.Game, user.UID)
	}
	return withQuery(endpoint, "server", user.Server, "role_id", fmt.Sprint(user.UID)), nil
}

// Client is the root HoYoLAB client owning one client per game.
type Client struct {
	Genshin  *GenshinClient
	StarRail *StarRailClient
	Zenless  *ZenlessClient

	cookie Cookie
	data   *ClientData
}

// NewClient creates a root client. A nil data uses NewClientData("").
func NewClient(cookie Cookie, data *ClientData) *Client {
	if data == nil {
		data = NewClientData("")
	}
	return &Client{
		Genshin:  &GenshinClient{baseClient{cookie: cookie, data: data, game: model.GameGenshin}},
		StarRail: &StarRailClient{baseClient{cookie: cookie, data: data, game: model.GameStarRail}},
		Zenless:  &ZenlessClient{baseClient{cookie: cookie, data: data, game: model.GameZenless}},
		cookie:   cookie,
		data:     data,
	}
}

func (c *Client) Name() string { return "hoyolab" }

// ClientData exposes the shared transport configuration.
func (c *Client) ClientData() *ClientData { return c.data }

// SetLanguage changes the x-rpc-language sent by every game client.
func (c *Client) SetLanguage(lang string) { c.data.Language = lang }

// SetUserAgent changes the User-Agent sent by every game client.
func (c *Client) SetUserAgent(ua string) { c.data.UserAgent = ua }

// FetchUserStats returns the record card across all games.
func (c *Client) FetchUserStats(ctx context.Context, uid string) (*model.UserStats, error) {
	return c.Genshin.FetchUserStats(ctx, uid)
}

// GetUserAccountInfo looks up the account behind the ltoken.
func (c *Client) GetUserAccountInfo(ctx context.Context) (*model.AccountInfo, error) {
	return c.Genshin.GetUserAccountInfo(ctx)
}

// GetGameRoles lists roles for every game, optionally filtered by region.
func (c *Client) GetGameRoles(ctx context.Context, region string) (*model.GameRoles, error) {
	return c.Genshin.GetGameRoles(ctx, false, region)
}

// GetAvailableLanguages lists the portal locales. No cookie is sent.
func (c *Client) GetAvailableLanguages(ctx context.Context) (*model.Languages, error) {
	return fetchData[model.Languages](ctx, c.data, c.data.Endpoints.Languages, requestOptions{})
}

// ResolveUser finds the cookie owner's account for game via the record card.
func (c *Client) ResolveUser(ctx context.Context, game model.Game) (User, error) {
	stats, err := c.FetchUserStats(ctx, "")
	if err != nil {
		return User{}, fmt.Errorf("fetch user stats: %w", err)
	}
	return UserFromStats(stats, game)
}
