package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// LoadConfig loads configuration from multiple sources: the .env file, then
// config.yaml, with environment variables overriding both.
//
// Keys:
//   - BOT_TOKEN                       Discord bot token (required)
//   - bot.prefix                      prefix command marker, default "!"
//   - bot.adminChannelId              channel for operational log embeds
//   - moderation.settingsFile         guild settings snapshot path
//   - moderation.auditDb              audit archive sqlite path
//   - moderation.auditRetentionDays   archive retention, default 31
func LoadConfig() {
	// 1. Load environment variables from .env; ignore a missing file.
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, skipping.")
	}

	// 2. Read the base config file (config.yaml).
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("bot.prefix", "!")
	viper.SetDefault("moderation.settingsFile", "data/guild_settings.json")
	viper.SetDefault("moderation.auditDb", "data/audit.db")
	viper.SetDefault("moderation.auditRetentionDays", 31)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// A missing config file is fine; environment variables and
			// defaults cover everything but the token.
			log.Printf("No config.yaml found, using environment variables and defaults.")
		} else {
			panic(fmt.Errorf("fatal error parsing config file: %w", err))
		}
	}
}
