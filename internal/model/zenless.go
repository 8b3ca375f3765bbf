package model

import "time"

// ZenlessNote is the Zenless Zone Zero real-time note.
type ZenlessNote struct {
	Energy struct {
		Progress struct {
			Max     int `json:"max"`
			Current int `json:"current"`
		} `json:"progress"`
		Restore int64 `json:"restore"`
	} `json:"energy"`
	Vitality struct {
		Max     int `json:"max"`
		Current int `json:"current"`
	} `json:"vitality"`
	VhsSale struct {
		SaleState string `json:"sale_state"`
	} `json:"vhs_sale"`
	CardSign string `json:"card_sign"`
}

// ZenlessStats is the battle chronicle index.
type ZenlessStats struct {
	Stats struct {
		ActiveDays       int `json:"active_days"`
		AvatarNum        int `json:"avatar_num"`
		BuddyNum         int `json:"buddy_num"`
		AchievementCount int `json:"achievement_count"`
	} `json:"stats"`
}

// RecoveryState maps the battery charge onto a snapshot. The note carries no
// server timestamp, so observedAt is the fetch time.
func (n *ZenlessNote) RecoveryState(observedAt time.Time) RecoveryState {
	now := observedAt.Unix()
	return RecoveryState{
		CurrentAmount:            n.Energy.Progress.Current,
		MaxAmount:                n.Energy.Progress.Max,
		SecondsSinceLastUnit:     n.Energy.Restore,
		FullRecoveryEpochSeconds: now + n.Energy.Restore,
		ObservedAtEpochSeconds:   now,
	}
}
