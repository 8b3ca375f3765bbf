package model

// StarRailNote is the Honkai: Star Rail real-time note.
type StarRailNote struct {
	CurrentStamina          int                  `json:"current_stamina"`
	MaxStamina              int                  `json:"max_stamina"`
	StaminaRecoverTime      int64                `json:"stamina_recover_time"`
	StaminaFullTS           int64                `json:"stamina_full_ts"`
	AcceptedExpeditionNum   int                  `json:"accepted_epedition_num"`
	TotalExpeditionNum      int                  `json:"total_expedition_num"`
	Expeditions             []StarRailExpedition `json:"expeditions"`
	CurrentTrainScore       int                  `json:"current_train_score"`
	MaxTrainScore           int                  `json:"max_train_score"`
	CurrentRogueScore       int                  `json:"current_rogue_score"`
	MaxRogueScore           int                  `json:"max_rogue_score"`
	WeeklyCocoonCount       int                  `json:"weekly_cocoon_cnt"`
	WeeklyCocoonLimit       int                  `json:"weekly_cocoon_limit"`
	CurrentReserveStamina   int                  `json:"current_reserve_stamina"`
	IsReserveStaminaFull    bool                 `json:"is_reserve_stamina_full"`
	RogueTournWeeklyUnlock  bool                 `json:"rogue_tourn_weekly_unlocked"`
	RogueTournWeeklyMax     int                  `json:"rogue_tourn_weekly_max"`
	RogueTournWeeklyCurrent int                  `json:"rogue_tourn_weekly_cur"`
	CurrentTS               int64                `json:"current_ts"`
	RogueTournExpIsFull     bool                 `json:"rogue_tourn_exp_is_full"`
}

// RecoveryState maps the stamina fields of the note onto a snapshot.
func (n *StarRailNote) RecoveryState() RecoveryState {
	return RecoveryState{
		CurrentAmount:            n.CurrentStamina,
		MaxAmount:                n.MaxStamina,
		SecondsSinceLastUnit:     n.StaminaRecoverTime,
		FullRecoveryEpochSeconds: n.StaminaFullTS,
		ObservedAtEpochSeconds:   n.CurrentTS,
	}
}

// ExpeditionStatus values reported by the note.
const (
	ExpeditionOngoing  = "Ongoing"
	ExpeditionFinished = "Finished"
)

type StarRailExpedition struct {
	Avatars       []string `json:"avatars"`
	Status        string   `json:"status"`
	RemainingTime int64    `json:"remaining_time"`
	Name          string   `json:"name"`
	ItemURL       string   `json:"item_url"`
	FinishTS      int64    `json:"finish_ts"`
}

// StarRailStats is the battle chronicle index.
type StarRailStats struct {
	Stats struct {
		ActiveDays       int    `json:"active_days"`
		AvatarNum        int    `json:"avatar_num"`
		AchievementNum   int    `json:"achievement_num"`
		ChestNum         int    `json:"chest_num"`
		AbyssProcess     string `json:"abyss_process"`
		DreamPavingCount int    `json:"dream_paving_count"`
	} `json:"stats"`
	AvatarList []StarRailAvatar `json:"avatar_list"`
}

type StarRailAvatar struct {
	ID      int    `json:"id"`
	Level   int    `json:"level"`
	Name    string `json:"name"`
	Element string `json:"element"`
	Icon    string `json:"icon"`
	Rarity  int    `json:"rarity"`
	Rank    int    `json:"rank"`
}
