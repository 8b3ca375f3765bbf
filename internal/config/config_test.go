package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"HoyoSentinel/internal/model"
)

const sampleYAML = `
hoyolab:
  cookie: "ltoken_v2=abc; ltuid_v2=1001"
accounts:
  - game: starrail
    uid: 600000001
    name: main
  - game: zzz
    uid: 1300000001
schedule:
  poll_cron: "0 */10 * * * *"
telegram:
  bot_token: "123:abc"
  chat_id: "42"
  events: [full, unit_gained]
usage_threshold: 0.9
`

var envKeys = []string{
	"HOYOLAB_COOKIE", "HOYOLAB_LANGUAGE", "HOYOLAB_ACCOUNTS", "TELEGRAM_BOT_TOKEN", "TELEGRAM_CHAT_ID",
	"NATS_URL", "REDIS_ADDR", "REDIS_PASSWORD", "BASELINE_FILE", "HTTPS_PROXY",
	"CRON_POLL", "CRON_REWARD", "SQLITE_PATH", "USAGE_THRESHOLD",
}

// isolate runs the test from an empty dir so no stray .env is picked up, and
// clears every override.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
	return dir
}

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadYAML(t *testing.T) {
	dir := isolate(t)
	cfg, err := Load(writeConfig(t, dir, sampleYAML))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "ltoken_v2=abc; ltuid_v2=1001", cfg.Hoyolab.Cookie)
	require.Len(t, cfg.Accounts, 2)
	assert.Equal(t, Account{Game: "starrail", UID: 600000001, Name: "main"}, cfg.Accounts[0])
	assert.Equal(t, "0 */10 * * * *", cfg.Schedule.PollCron)
	assert.Equal(t, []model.EventKind{model.EventFull, model.EventUnitGained}, cfg.EventKinds())
	assert.Equal(t, 0.9, cfg.UsageThreshold)
	assert.True(t, cfg.TelegramEnabled())
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)
	cfg, err := Load("does-not-exist.yaml")
	require.NoError(t, err)

	assert.Equal(t, "en-us", cfg.Hoyolab.Language)
	assert.Equal(t, "0 */6 * * * *", cfg.Schedule.PollCron)
	assert.Equal(t, "0 5 0 * * *", cfg.Schedule.RewardCron)
	assert.Equal(t, []string{"full"}, cfg.Telegram.Events)
	assert.Equal(t, "data/baseline.json", cfg.Baseline.File)
	assert.Equal(t, "data/hoyo_sentinel.db", cfg.Database.SQLitePath)
	assert.Equal(t, 0.8, cfg.UsageThreshold)
	assert.False(t, cfg.TelegramEnabled())
	assert.Error(t, cfg.Validate())
}

func TestEnvOverrides(t *testing.T) {
	dir := isolate(t)
	t.Setenv("HOYOLAB_COOKIE", "ltoken=x; ltuid=y")
	t.Setenv("HOYOLAB_ACCOUNTS", "hsr:700000001, genshin:800000001")
	t.Setenv("USAGE_THRESHOLD", "0.5")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := Load(writeConfig(t, dir, sampleYAML))
	require.NoError(t, err)
	assert.Equal(t, "ltoken=x; ltuid=y", cfg.Hoyolab.Cookie)
	assert.Equal(t, []Account{{Game: "hsr", UID: 700000001}, {Game: "genshin", UID: 800000001}}, cfg.Accounts)
	assert.Equal(t, 0.5, cfg.UsageThreshold)
	assert.Equal(t, "localhost:6379", cfg.Baseline.RedisAddr)
}

func TestDotEnvFile(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SQLITE_PATH=/tmp/from-dotenv.db\n"), 0644))
	// godotenv never overrides variables that already exist, even empty ones
	require.NoError(t, os.Unsetenv("SQLITE_PATH"))

	cfg, err := Load("missing.yaml")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/from-dotenv.db", cfg.Database.SQLitePath)
	require.NoError(t, os.Unsetenv("SQLITE_PATH"))
}

func TestBadEnvValues(t *testing.T) {
	isolate(t)
	t.Setenv("USAGE_THRESHOLD", "lots")
	_, err := Load("missing.yaml")
	assert.Error(t, err)

	t.Setenv("USAGE_THRESHOLD", "")
	t.Setenv("HOYOLAB_ACCOUNTS", "starrail-600000001")
	_, err = Load("missing.yaml")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		c := &Config{Accounts: []Account{{Game: "starrail", UID: 600000001}}}
		c.Hoyolab.Cookie = "ltoken=x; ltuid=y"
		c.applyDefaults()
		return c
	}
	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no cookie", func(c *Config) { c.Hoyolab.Cookie = "" }},
		{"no accounts", func(c *Config) { c.Accounts = nil }},
		{"bad game", func(c *Config) { c.Accounts[0].Game = "honkai3" }},
		{"bad uid", func(c *Config) { c.Accounts[0].UID = 0 }},
		{"half telegram", func(c *Config) { c.Telegram.BotToken = "t" }},
		{"bad event", func(c *Config) { c.Telegram.Events = []string{"empty"} }},
		{"threshold too high", func(c *Config) { c.UsageThreshold = 1.5 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestMaskSecret(t *testing.T) {
	assert.Equal(t, "****", MaskSecret("abcd"))
	assert.Equal(t, "ltok...1001", MaskSecret("ltoken_v2=abc; ltuid_v2=1001"))
}
