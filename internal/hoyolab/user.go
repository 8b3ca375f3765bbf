package hoyolab

import (
	"fmt"
	"strconv"

	"HoyoSentinel/internal/model"
)

// User is a game account resolved to its region server.
type User struct {
	Game   model.Game
	UID    int
	Server string
}

// NewUser resolves the server for uid.
func NewUser(game model.Game, uid int) (User, error) {
	server, err := ServerFor(game, uid)
	if err != nil {
		return User{}, err
	}
	return User{Game: game, UID: uid, Server: server}, nil
}

// Key identifies the account in stores and notifications.
func (u User) Key() string {
	return fmt.Sprintf("%s:%d", u.Game, u.UID)
}

// UserFromStats picks the account for game from a record card.
func UserFromStats(stats *model.UserStats, game model.Game) (User, error) {
	for _, rec := range stats.List {
		if rec.GameID != game.ID() {
			continue
		}
		uid, err := strconv.Atoi(rec.GameRoleID)
		if err != nil || uid == 0 {
			continue
		}
		return NewUser(game, uid)
	}
	return User{}, fmt.Errorf("%w: no %s role on the record card", ErrAccountNotFound, game)
}
