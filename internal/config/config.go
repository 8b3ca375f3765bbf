package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"HoyoSentinel/internal/calculator"
	"HoyoSentinel/internal/model"
)

// Account is one game account to watch.
type Account struct {
	Game string `yaml:"game"`
	UID  int    `yaml:"uid"`
	Name string `yaml:"name"`
}

// Config holds all application configuration.
type Config struct {
	Hoyolab struct {
		Cookie    string `yaml:"cookie"`
		Language  string `yaml:"language"`
		UserAgent string `yaml:"user_agent"`
	} `yaml:"hoyolab"`
	Accounts []Account `yaml:"accounts"`
	Schedule struct {
		PollCron   string `yaml:"poll_cron"`
		RewardCron string `yaml:"reward_cron"`
	} `yaml:"schedule"`
	Telegram struct {
		BotToken string   `yaml:"bot_token"`
		ChatID   string   `yaml:"chat_id"`
		Events   []string `yaml:"events"`
	} `yaml:"telegram"`
	NATS struct {
		URL     string `yaml:"url"`
		Subject string `yaml:"subject"`
	} `yaml:"nats"`
	Baseline struct {
		File          string `yaml:"file"`
		RedisAddr     string `yaml:"redis_addr"`
		RedisPassword string `yaml:"redis_password"`
		RedisDB       int    `yaml:"redis_db"`
	} `yaml:"baseline"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy          string  `yaml:"proxy"`
	UsageThreshold float64 `yaml:"usage_threshold"`
}

// Load reads config from a YAML file, then applies .env and environment
// variable overrides. Real environment variables win over .env entries.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	_ = godotenv.Load()
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setString("HOYOLAB_COOKIE", &c.Hoyolab.Cookie)
	setString("HOYOLAB_LANGUAGE", &c.Hoyolab.Language)
	setString("TELEGRAM_BOT_TOKEN", &c.Telegram.BotToken)
	setString("TELEGRAM_CHAT_ID", &c.Telegram.ChatID)
	setString("NATS_URL", &c.NATS.URL)
	setString("REDIS_ADDR", &c.Baseline.RedisAddr)
	setString("REDIS_PASSWORD", &c.Baseline.RedisPassword)
	setString("BASELINE_FILE", &c.Baseline.File)
	setString("HTTPS_PROXY", &c.Proxy)
	setString("CRON_POLL", &c.Schedule.PollCron)
	setString("CRON_REWARD", &c.Schedule.RewardCron)
	setString("SQLITE_PATH", &c.Database.SQLitePath)

	if v := os.Getenv("USAGE_THRESHOLD"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("USAGE_THRESHOLD: %w", err)
		}
		c.UsageThreshold = f
	}
	// HOYOLAB_ACCOUNTS=starrail:600000001,zzz:1300000001 replaces the YAML list
	if v := os.Getenv("HOYOLAB_ACCOUNTS"); v != "" {
		accounts, err := parseAccounts(v)
		if err != nil {
			return fmt.Errorf("HOYOLAB_ACCOUNTS: %w", err)
		}
		c.Accounts = accounts
	}
	return nil
}

func parseAccounts(v string) ([]Account, error) {
	var out []Account
	for _, item := range strings.Split(v, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		game, uidStr, ok := strings.Cut(item, ":")
		if !ok {
			return nil, fmt.Errorf("%q: want game:uid", item)
		}
		uid, err := strconv.Atoi(uidStr)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", item, err)
		}
		out = append(out, Account{Game: game, UID: uid})
	}
	return out, nil
}

func (c *Config) applyDefaults() {
	if c.Hoyolab.Language == "" {
		c.Hoyolab.Language = "en-us"
	}
	if c.Schedule.PollCron == "" {
		c.Schedule.PollCron = "0 */6 * * * *"
	}
	if c.Schedule.RewardCron == "" {
		c.Schedule.RewardCron = "0 5 0 * * *"
	}
	if len(c.Telegram.Events) == 0 {
		c.Telegram.Events = []string{string(model.EventFull)}
	}
	if c.NATS.Subject == "" {
		c.NATS.Subject = "hoyosentinel.events"
	}
	if c.Baseline.File == "" {
		c.Baseline.File = "data/baseline.json"
	}
	if c.Database.SQLitePath == "" {
		c.Database.SQLitePath = "data/hoyo_sentinel.db"
	}
	if c.UsageThreshold == 0 {
		c.UsageThreshold = calculator.DefaultUsageThreshold
	}
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Hoyolab.Cookie == "" {
		return fmt.Errorf("hoyolab.cookie is required")
	}
	if len(c.Accounts) == 0 {
		return fmt.Errorf("at least one account is required")
	}
	for i, a := range c.Accounts {
		if _, err := model.ParseGame(a.Game); err != nil {
			return fmt.Errorf("accounts[%d]: %w", i, err)
		}
		if a.UID <= 0 {
			return fmt.Errorf("accounts[%d].uid must be positive", i)
		}
	}
	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		return fmt.Errorf("telegram.bot_token and telegram.chat_id must be set together")
	}
	for _, e := range c.Telegram.Events {
		switch model.EventKind(e) {
		case model.EventFull, model.EventUnitGained, model.EventChanged:
		default:
			return fmt.Errorf("telegram.events: unknown event %q", e)
		}
	}
	if c.UsageThreshold <= 0 || c.UsageThreshold > 1 {
		return fmt.Errorf("usage_threshold must be in (0, 1]")
	}
	return nil
}

// TelegramEnabled reports whether Telegram push and commands are configured.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}

// EventKinds returns the Telegram event filter as typed kinds.
func (c *Config) EventKinds() []model.EventKind {
	kinds := make([]model.EventKind, 0, len(c.Telegram.Events))
	for _, e := range c.Telegram.Events {
		kinds = append(kinds, model.EventKind(e))
	}
	return kinds
}

// MaskSecret shortens a credential for logging.
func MaskSecret(s string) string {
	if len(s) <= 8 {
		return strings.Repeat("*", len(s))
	}
	return s[:4] + "..." + s[len(s)-4:]
}
