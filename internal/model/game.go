package model

import "fmt"

// Game identifies a title served by the HoYoLAB portal.
type Game string

const (
	GameGenshin  Game = "genshin"
	GameStarRail Game = "starrail"
	GameZenless  Game = "zenless"
)

// ParseGame accepts the config spelling of a game.
func ParseGame(s string) (Game, error) {
	switch Game(s) {
	case GameGenshin, GameStarRail, GameZenless:
		return Game(s), nil
	case "hsr", "hkrpg":
		return GameStarRail, nil
	case "gi", "hk4e":
		return GameGenshin, nil
	case "zzz", "nap":
		return GameZenless, nil
	}
	return "", fmt.Errorf("unknown game %q", s)
}

// ID is the numeric game id used in game record cards.
func (g Game) ID() int {
	switch g {
	case GameGenshin:
		return 2
	case GameStarRail:
		return 6
	case GameZenless:
		return 8
	}
	return 0
}

// Biz is the game_biz identifier used by the account and roles APIs.
func (g Game) Biz() string {
	switch g {
	case GameGenshin:
		return "hk4e_global"
	case GameStarRail:
		return "hkrpg_global"
	case GameZenless:
		return "nap_global"
	}
	return ""
}
