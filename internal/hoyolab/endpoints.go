package hoyolab

import (
	"net/http"
	"net/url"
	"time"
)

const (
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/109.0.0.0 Safari/537.36"
	defaultLanguage  = "en-us"
	appVersion       = "1.5.0"
	clientType       = "5"
)

// Endpoints holds every URL the client calls. Reward URLs already carry their
// act_id query parameter.
type Endpoints struct {
	UserStats   string
	AccountInfo string
	GameRoles   string
	Languages   string

	GenshinStats      string
	GenshinDailyNote  string
	GenshinRewardInfo string
	GenshinRewardHome string
	GenshinRewardSign string

	StarRailStats      string
	StarRailDailyNote  string
	StarRailRewardInfo string
	StarRailRewardHome string
	StarRailRewardSign string

	ZenlessStats      string
	ZenlessDailyNote  string
	ZenlessRewardInfo string
	ZenlessRewardHome string
	ZenlessRewardSign string
}

// DefaultEndpoints returns the overseas HoYoLAB endpoints.
func DefaultEndpoints() Endpoints {
	const (
		record   = "https://bbs-api-os.hoyolab.com/game_record"
		account  = "https://api-account-os.hoyolab.com"
		genshinA = "?act_id=e202102251931481"
		hsrA     = "?act_id=e202303301540311"
		zzzA     = "?act_id=e202406031448091"
	)
	return Endpoints{
		UserStats:   record + "/card/wapi/getGameRecordCard",
		AccountInfo: account + "/auth/api/getUserAccountInfoByLToken",
		GameRoles:   account + "/binding/api/getUserGameRolesByCookie",
		Languages:   "https://bbs-api-os.hoyolab.com/community/misc/wapi/langs",

		GenshinStats:      record + "/genshin/api/index",
		GenshinDailyNote:  record + "/genshin/api/dailyNote",
		GenshinRewardInfo: "https://sg-hk4e-api.hoyolab.com/event/sol/info" + genshinA,
		GenshinRewardHome: "https://sg-hk4e-api.hoyolab.com/event/sol/home" + genshinA,
		GenshinRewardSign: "https://sg-hk4e-api.hoyolab.com/event/sol/sign" + genshinA,

		StarRailStats:      record + "/hkrpg/api/index",
		StarRailDailyNote:  record + "/hkrpg/api/note",
		StarRailRewardInfo: "https://sg-public-api.hoyolab.com/event/luna/hkrpg/os/info" + hsrA,
		StarRailRewardHome: "https://sg-public-api.hoyolab.com/event/luna/hkrpg/os/home" + hsrA,
		StarRailRewardSign: "https://sg-public-api.hoyolab.com/event/luna/hkrpg/os/sign" + hsrA,

		ZenlessStats:      "https://sg-act-nap-api.hoyolab.com/event/game_record_zzz/api/zzz/index",
		ZenlessDailyNote:  "https://sg-act-nap-api.hoyolab.com/event/game_record_zzz/api/zzz/note",
		ZenlessRewardInfo: "https://sg-public-api.hoyolab.com/event/luna/zzz/os/info" + zzzA,
		ZenlessRewardHome: "https://sg-public-api.hoyolab.com/event/luna/zzz/os/home" + zzzA,
		ZenlessRewardSign: "https://sg-public-api.hoyolab.com/event/luna/zzz/os/sign" + zzzA,
	}
}

// ClientData is the transport configuration shared by all game clients.
type ClientData struct {
	UserAgent  string
	Language   string
	Endpoints  Endpoints
	HTTPClient *http.Client
}

// NewClientData creates a ClientData with optional proxy support.
func NewClientData(proxyURL string) *ClientData {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &ClientData{
		UserAgent: defaultUserAgent,
		Language:  defaultLanguage,
		Endpoints: DefaultEndpoints(),
		HTTPClient: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}
