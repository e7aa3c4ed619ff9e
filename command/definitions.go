package command

import "github.com/bwmarrin/discordgo"

// PolicyCommand defines the structure for the /policy command.
type PolicyCommand struct{}

// Definition returns the application command definition.
func (c *PolicyCommand) Definition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "policy",
		Description: "Show the media policy configuration for this server",
	}
}

// WatchCommand defines the structure for the /watch command.
type WatchCommand struct{}

// Definition returns the application command definition.
func (c *WatchCommand) Definition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "watch",
		Description: "Add a channel to the media policy",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Name:        "channel",
				Description: "The channel to monitor",
				Type:        discordgo.ApplicationCommandOptionChannel,
				Required:    true,
			},
		},
	}
}

// UnwatchCommand defines the structure for the /unwatch command.
type UnwatchCommand struct{}

// Definition returns the application command definition.
func (c *UnwatchCommand) Definition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "unwatch",
		Description: "Remove a channel from the media policy",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Name:        "channel",
				Description: "The channel to stop monitoring",
				Type:        discordgo.ApplicationCommandOptionChannel,
				Required:    true,
			},
		},
	}
}

// TimeoutCommand defines the structure for the /timeout command.
type TimeoutCommand struct{}

// Definition returns the application command definition.
func (c *TimeoutCommand) Definition() *discordgo.ApplicationCommand {
	minValue := 1.0
	return &discordgo.ApplicationCommand{
		Name:        "timeout",
		Description: "Set the timeout length for policy violations",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Name:        "minutes",
				Description: "Timeout length in minutes (1-60)",
				Type:        discordgo.ApplicationCommandOptionInteger,
				Required:    true,
				MinValue:    &minValue,
				MaxValue:    60,
			},
		},
	}
}

// LogChannelCommand defines the structure for the /logchannel command.
type LogChannelCommand struct{}

// Definition returns the application command definition.
func (c *LogChannelCommand) Definition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "logchannel",
		Description: "Set the channel audit entries are mirrored to",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Name:        "channel",
				Description: "The channel to mirror audit entries to",
				Type:        discordgo.ApplicationCommandOptionChannel,
				Required:    true,
			},
		},
	}
}

// AuditLogCommand defines the structure for the /auditlog command.
type AuditLogCommand struct{}

// Definition returns the application command definition.
func (c *AuditLogCommand) Definition() *discordgo.ApplicationCommand {
	minValue := 1.0
	return &discordgo.ApplicationCommand{
		Name:        "auditlog",
		Description: "Show recent moderation audit entries",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Name:        "limit",
				Description: "How many entries to show (1-20, default 10)",
				Type:        discordgo.ApplicationCommandOptionInteger,
				Required:    false,
				MinValue:    &minValue,
				MaxValue:    20,
			},
		},
	}
}

// PingCommand defines the structure for the /ping command.
type PingCommand struct{}

// Definition returns the application command definition.
func (c *PingCommand) Definition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "ping",
		Description: "Responds with Pong!",
	}
}
