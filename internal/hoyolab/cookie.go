package hoyolab

import (
	"fmt"
	"regexp"
)

// Cookie supplies the session cookie header and the HoYoLAB account id.
type Cookie interface {
	Header() string
	HoyolabUID() string
}

// CookieV1 is the legacy ltoken/ltuid pair.
type CookieV1 struct {
	LToken string `json:"ltoken" yaml:"ltoken"`
	LtUID  string `json:"ltuid" yaml:"ltuid"`
}

func (c CookieV1) Header() string     { return fmt.Sprintf("ltoken=%s; ltuid=%s", c.LToken, c.LtUID) }
func (c CookieV1) HoyolabUID() string { return c.LtUID }

// CookieV2 is the current ltoken_v2 triple.
type CookieV2 struct {
	LTokenV2 string `json:"ltoken_v2" yaml:"ltoken_v2"`
	LtMidV2  string `json:"ltmid_v2" yaml:"ltmid_v2"`
	LtUIDV2  string `json:"ltuid_v2" yaml:"ltuid_v2"`
}

func (c CookieV2) Header() string {
	return fmt.Sprintf("ltoken_v2=%s; ltmid_v2=%s; ltuid_v2=%s", c.LTokenV2, c.LtMidV2, c.LtUIDV2)
}
func (c CookieV2) HoyolabUID() string { return c.LtUIDV2 }

// RawCookie sends a browser cookie string unchanged.
type RawCookie struct {
	Raw string
	UID string
}

func (c RawCookie) Header() string     { return c.Raw }
func (c RawCookie) HoyolabUID() string { return c.UID }

var cookieFields = func() map[string]*regexp.Regexp {
	m := make(map[string]*regexp.Regexp)
	for _, name := range []string{"ltoken", "ltuid", "ltoken_v2", "ltmid_v2", "ltuid_v2", "account_id_v2"} {
		m[name] = regexp.MustCompile(`(?:^|[;\s])` + regexp.QuoteMeta(name) + `=([^;]+)`)
	}
	return m
}()

func cookieField(raw, name string) string {
	m := cookieFields[name].FindStringSubmatch(raw)
	if m == nil {
		return ""
	}
	return m[1]
}

// ParseCookie extracts a typed cookie from a browser cookie string, preferring
// the v2 fields.
func ParseCookie(raw string) (Cookie, error) {
	if token := cookieField(raw, "ltoken_v2"); token != "" {
		uid := cookieField(raw, "ltuid_v2")
		if uid == "" {
			uid = cookieField(raw, "account_id_v2")
		}
		if uid == "" {
			return nil, fmt.Errorf("parse cookie: ltoken_v2 present but ltuid_v2 missing")
		}
		return CookieV2{LTokenV2: token, LtMidV2: cookieField(raw, "ltmid_v2"), LtUIDV2: uid}, nil
	}
	token, uid := cookieField(raw, "ltoken"), cookieField(raw, "ltuid")
	if token == "" || uid == "" {
		return nil, fmt.Errorf("parse cookie: no ltoken/ltuid pair found")
	}
	return CookieV1{LToken: token, LtUID: uid}, nil
}
