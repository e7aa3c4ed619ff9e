package models

const (
	// DefaultTimeoutMinutes is applied when a guild record is first created.
	DefaultTimeoutMinutes = 1

	// MinTimeoutMinutes and MaxTimeoutMinutes bound the configurable timeout.
	MinTimeoutMinutes = 1
	MaxTimeoutMinutes = 60
)

// GuildSettings holds the per-guild moderation configuration.
type GuildSettings struct {
	GuildID             string   `json:"guild_id" mapstructure:"guild_id"`
	GuildName           string   `json:"guild_name" mapstructure:"guild_name"`
	MonitoredChannelIDs []string `json:"monitored_channel_ids" mapstructure:"monitored_channel_ids"`
	TimeoutMinutes      int      `json:"timeout_minutes" mapstructure:"timeout_minutes"`
	LogChannelID        string   `json:"log_channel_id,omitempty" mapstructure:"log_channel_id"`
}

// NewGuildSettings returns a settings record with defaults for a guild the
// bot has not seen before.
func NewGuildSettings(guildID, guildName string) GuildSettings {
	return GuildSettings{
		GuildID:             guildID,
		GuildName:           guildName,
		MonitoredChannelIDs: []string{},
		TimeoutMinutes:      DefaultTimeoutMinutes,
	}
}

// IsMonitored reports whether the channel is subject to the media policy.
func (g GuildSettings) IsMonitored(channelID string) bool {
	for _, id := range g.MonitoredChannelIDs {
		if id == channelID {
			return true
		}
	}
	return false
}

// SettingsFile is the on-disk snapshot format: an ordered list of guild
// records, rewritten in full on every save.
type SettingsFile struct {
	Guilds []GuildSettings `json:"guilds"`
}
