package model

// GenshinNote is the Genshin Impact real-time note. The portal reports the
// recovery counters as decimal strings.
type GenshinNote struct {
	CurrentResin              int                 `json:"current_resin"`
	MaxResin                  int                 `json:"max_resin"`
	ResinRecoveryTime         string              `json:"resin_recovery_time"`
	FinishedTaskNum           int                 `json:"finished_task_num"`
	TotalTaskNum              int                 `json:"total_task_num"`
	IsExtraTaskRewardReceived bool                `json:"is_extra_task_reward_received"`
	RemainResinDiscountNum    int                 `json:"remain_resin_discount_num"`
	ResinDiscountNumLimit     int                 `json:"resin_discount_num_limit"`
	CurrentExpeditionNum      int                 `json:"current_expedition_num"`
	MaxExpeditionNum          int                 `json:"max_expedition_num"`
	Expeditions               []GenshinExpedition `json:"expeditions"`
	CurrentHomeCoin           int                 `json:"current_home_coin"`
	MaxHomeCoin               int                 `json:"max_home_coin"`
	HomeCoinRecoveryTime      string              `json:"home_coin_recovery_time"`
}

type GenshinExpedition struct {
	AvatarSideIcon string `json:"avatar_side_icon"`
	Status         string `json:"status"`
	RemainedTime   string `json:"remained_time"`
}

// GenshinStats is the battle chronicle index.
type GenshinStats struct {
	Role struct {
		Nickname string `json:"nickname"`
		Region   string `json:"region"`
		Level    int    `json:"level"`
	} `json:"role"`
	Stats struct {
		ActiveDayNumber   int    `json:"active_day_number"`
		AchievementNumber int    `json:"achievement_number"`
		AvatarNumber      int    `json:"avatar_number"`
		WayPointNumber    int    `json:"way_point_number"`
		DomainNumber      int    `json:"domain_number"`
		SpiralAbyss       string `json:"spiral_abyss"`
	} `json:"stats"`
}
