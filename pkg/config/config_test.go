package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	tmpfile, err := os.CreateTemp("", "config_test_*.yml")
	require.NoError(t, err)
	t.Cleanup(func() { os.Remove(tmpfile.Name()) })

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		tmpfile.Close()
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}
	return tmpfile.Name()
}

func TestLoadConfig_Defaults(t *testing.T) {
	// Provide a path that definitely doesn't exist
	config, err := LoadConfig("non_existent_config.yml")
	require.NoError(t, err)

	assert.Equal(t, 3600, config.Modmail.CooldownSeconds)
	assert.Equal(t, 50, config.Modmail.MinLength)
	assert.Equal(t, 1000, config.Modmail.MaxLength)
	assert.Equal(t, "carberra.xyz", config.Links.Domain)
	assert.Equal(t, 500, config.Members.CacheSize)
	assert.Equal(t, 10, config.Members.CacheTTLMinutes)
	assert.Equal(t, "carberretta", config.Redis.Prefix)
	assert.Equal(t, time.Hour, config.Cooldown())
	assert.Equal(t, 10*time.Minute, config.MemberCacheTTL())
}

func TestLoadConfig_ValidFile(t *testing.T) {
	path := writeTempConfig(t, `
guild_id: "626608699942764544"
modmail:
  channel_id: "631236924212789248"
  cooldown_seconds: 120
  max_length: 500
links:
  domain: example.org
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "626608699942764544", config.GuildID)
	assert.Equal(t, "631236924212789248", config.Modmail.ChannelID)
	assert.Equal(t, 2*time.Minute, config.Cooldown())
	assert.Equal(t, 500, config.Modmail.MaxLength)
	// Unset values fall back to defaults
	assert.Equal(t, 50, config.Modmail.MinLength)
	assert.Equal(t, "example.org", config.Links.Domain)
	assert.NoError(t, config.Validate())
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := writeTempConfig(t, `
modmail:
  cooldown_seconds: "not a number"
  broken_yaml: [ unclosed bracket
`)

	config, err := LoadConfig(path)

	assert.Error(t, err)
	assert.Nil(t, config)
}

func TestConfig_ApplyEnv(t *testing.T) {
	t.Setenv("DISCORD_GUILD_ID", "1")
	t.Setenv("MODMAIL_CHANNEL_ID", "2")

	config, err := LoadConfig("non_existent_config.yml")
	require.NoError(t, err)
	assert.Error(t, config.Validate())

	config.ApplyEnv()
	assert.Equal(t, "1", config.GuildID)
	assert.Equal(t, "2", config.Modmail.ChannelID)
	assert.NoError(t, config.Validate())
}

func TestConfig_ValidateBounds(t *testing.T) {
	config, err := LoadConfig("non_existent_config.yml")
	require.NoError(t, err)
	config.GuildID = "1"
	config.Modmail.ChannelID = "2"
	config.Modmail.MinLength = 2000

	assert.Error(t, config.Validate())
}
