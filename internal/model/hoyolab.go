package model

// Response is the envelope every HoYoLAB endpoint wraps its payload in.
type Response[T any] struct {
	Retcode int    `json:"retcode"`
	Message string `json:"message"`
	Data    *T     `json:"data"`
}

// UserStats is the game record card listing for a HoYoLAB account.
type UserStats struct {
	List []GameRecord `json:"list"`
}

// GameRecord is one game entry on the record card.
type GameRecord struct {
	HasRole      bool         `json:"has_role"`
	GameID       int          `json:"game_id"`
	GameRoleID   string       `json:"game_role_id"`
	Nickname     string       `json:"nickname"`
	Region       string       `json:"region"`
	Level        int          `json:"level"`
	RegionName   string       `json:"region_name"`
	Data         []GameData   `json:"data"`
	DataSwitches []DataSwitch `json:"data_switches"`
}

type GameData struct {
	Name  string `json:"name"`
	Type  int    `json:"type"`
	Value string `json:"value"`
}

type DataSwitch struct {
	SwitchID   int    `json:"switch_id"`
	IsPublic   bool   `json:"is_public"`
	SwitchName string `json:"switch_name"`
}

// AccountInfo is returned by the ltoken account lookup.
type AccountInfo struct {
	AccountID   int64  `json:"account_id"`
	AccountName string `json:"account_name"`
	Email       string `json:"email"`
	AreaCode    string `json:"area_code"`
	Mobile      string `json:"mobile"`
}

// GameRoles lists the in-game characters bound to an account.
type GameRoles struct {
	List []GameRole `json:"list"`
}

type GameRole struct {
	GameBiz    string `json:"game_biz"`
	Region     string `json:"region"`
	GameUID    string `json:"game_uid"`
	Nickname   string `json:"nickname"`
	Level      int    `json:"level"`
	IsChosen   bool   `json:"is_chosen"`
	RegionName string `json:"region_name"`
	IsOfficial bool   `json:"is_official"`
}

// Languages lists the locales the portal accepts.
type Languages struct {
	Langs []Language `json:"langs"`
}

type Language struct {
	Name  string   `json:"name"`
	Value string   `json:"value"`
	Label string   `json:"label"`
	Alias []string `json:"alias"`
}

// RewardInfo is the daily check-in status.
type RewardInfo struct {
	TotalSignDay int    `json:"total_sign_day"`
	Today        string `json:"today"`
	IsSign       bool   `json:"is_sign"`
	FirstBind    bool   `json:"first_bind"`
	MonthLastDay bool   `json:"month_last_day"`
}

// RewardHome is the month's check-in award table.
type RewardHome struct {
	Month  int     `json:"month"`
	Awards []Award `json:"awards"`
	Biz    string  `json:"biz"`
	Resign bool    `json:"resign"`
}

type Award struct {
	Icon  string `json:"icon"`
	Name  string `json:"name"`
	Count int    `json:"cnt"`
}

// SignResult is the payload of the check-in POST.
type SignResult struct {
	Code     string `json:"code"`
	GTResult *struct {
		RiskCode int  `json:"risk_code"`
		IsRisk   bool `json:"is_risk"`
		Success  int  `json:"success"`
	} `json:"gt_result"`
}

// RewardResult describes a completed check-in.
type RewardResult struct {
	Game    Game   `json:"game"`
	Name    string `json:"name"`
	Amount  int    `json:"amount"`
	Claimed bool   `json:"claimed"`
}
