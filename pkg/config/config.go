package config

import (
	"errors"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	GuildID string `yaml:"guild_id"`
	Modmail struct {
		ChannelID       string `yaml:"channel_id"`
		CooldownSeconds int    `yaml:"cooldown_seconds"`
		MinLength       int    `yaml:"min_length"`
		MaxLength       int    `yaml:"max_length"`
	} `yaml:"modmail"`
	Links struct {
		Domain string `yaml:"domain"`
	} `yaml:"links"`
	Members struct {
		CacheSize       int `yaml:"cache_size"`
		CacheTTLMinutes int `yaml:"cache_ttl_minutes"`
	} `yaml:"members"`
	Redis struct {
		Prefix string `yaml:"prefix"`
	} `yaml:"redis"`
}

func LoadConfig(path string) (*Config, error) {
	config := &Config{}

	_, err := os.Stat(path)
	if os.IsNotExist(err) {
		config.applyDefaults()
		return config, nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	err = yaml.Unmarshal(file, config)
	if err != nil {
		return nil, err
	}

	config.applyDefaults()
	return config, nil
}

func (c *Config) applyDefaults() {
	if c.Modmail.CooldownSeconds == 0 {
		c.Modmail.CooldownSeconds = 3600
	}
	if c.Modmail.MinLength == 0 {
		c.Modmail.MinLength = 50
	}
	if c.Modmail.MaxLength == 0 {
		c.Modmail.MaxLength = 1000
	}
	if c.Links.Domain == "" {
		c.Links.Domain = "carberra.xyz"
	}
	if c.Members.CacheSize == 0 {
		c.Members.CacheSize = 500
	}
	if c.Members.CacheTTLMinutes == 0 {
		c.Members.CacheTTLMinutes = 10
	}
	if c.Redis.Prefix == "" {
		c.Redis.Prefix = "carberretta"
	}
}

// ApplyEnv overrides deployment specific values from the environment.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("DISCORD_GUILD_ID"); v != "" {
		c.GuildID = v
	}
	if v := os.Getenv("MODMAIL_CHANNEL_ID"); v != "" {
		c.Modmail.ChannelID = v
	}
}

func (c *Config) Validate() error {
	if c.GuildID == "" {
		return errors.New("guild_id is not set (config.yml or DISCORD_GUILD_ID)")
	}
	if c.Modmail.ChannelID == "" {
		return errors.New("modmail.channel_id is not set (config.yml or MODMAIL_CHANNEL_ID)")
	}
	if c.Modmail.MinLength > c.Modmail.MaxLength {
		return errors.New("modmail.min_length is greater than modmail.max_length")
	}
	return nil
}

func (c *Config) Cooldown() time.Duration {
	return time.Duration(c.Modmail.CooldownSeconds) * time.Second
}

func (c *Config) MemberCacheTTL() time.Duration {
	return time.Duration(c.Members.CacheTTLMinutes) * time.Minute
}
