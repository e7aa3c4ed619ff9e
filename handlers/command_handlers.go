package handlers

import (
	"fmt"
	"log"
	"strings"

	"mediaguard/bot"
	"mediaguard/utils"

	"github.com/bwmarrin/discordgo"
)

// HandlePolicy handles the logic for the /policy command.
func HandlePolicy(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	settings := b.Settings.Get(i.GuildID)

	var sb strings.Builder
	sb.WriteString("**Media policy configuration**\n")
	if len(settings.MonitoredChannelIDs) == 0 {
		sb.WriteString("Monitored channels: none\n")
	} else {
		mentions := make([]string, len(settings.MonitoredChannelIDs))
		for idx, id := range settings.MonitoredChannelIDs {
			mentions[idx] = fmt.Sprintf("<#%s>", id)
		}
		sb.WriteString("Monitored channels: " + strings.Join(mentions, ", ") + "\n")
	}
	sb.WriteString(fmt.Sprintf("Timeout: %d minute(s)\n", settings.TimeoutMinutes))
	if settings.LogChannelID != "" {
		sb.WriteString(fmt.Sprintf("Log channel: <#%s>\n", settings.LogChannelID))
	} else {
		sb.WriteString("Log channel: not set\n")
	}

	respond(s, i, sb.String())
}

// HandleWatch handles the logic for the /watch command.
func HandleWatch(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	channelID := channelOption(i)
	if channelID == "" {
		respond(s, i, "Error: a channel is required.")
		return
	}

	if err := b.Settings.AddChannel(i.GuildID, channelID); err != nil {
		commandError(s, i, "watch", err)
		return
	}

	b.Events.Append(i.GuildID, fmt.Sprintf("configuration: channel=%s added to monitored set by user=%s", channelID, i.Member.User.ID))
	respond(s, i, fmt.Sprintf("✅ <#%s> is now monitored by the media policy.", channelID))
}

// HandleUnwatch handles the logic for the /unwatch command.
func HandleUnwatch(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	channelID := channelOption(i)
	if channelID == "" {
		respond(s, i, "Error: a channel is required.")
		return
	}

	if err := b.Settings.RemoveChannel(i.GuildID, channelID); err != nil {
		commandError(s, i, "unwatch", err)
		return
	}

	b.Events.Append(i.GuildID, fmt.Sprintf("configuration: channel=%s removed from monitored set by user=%s", channelID, i.Member.User.ID))
	respond(s, i, fmt.Sprintf("✅ <#%s> is no longer monitored.", channelID))
}

// HandleTimeout handles the logic for the /timeout command.
func HandleTimeout(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		respond(s, i, "Error: a minute value is required.")
		return
	}
	minutes := int(options[0].IntValue())

	if err := b.Settings.SetTimeout(i.GuildID, minutes); err != nil {
		// Out-of-range values are rejected with no state change.
		respond(s, i, fmt.Sprintf("🚫 %v", err))
		return
	}

	b.Events.Append(i.GuildID, fmt.Sprintf("configuration: timeout set to %dm by user=%s", minutes, i.Member.User.ID))
	respond(s, i, fmt.Sprintf("✅ Timeout set to %d minute(s).", minutes))
}

// HandleLogChannel handles the logic for the /logchannel command.
func HandleLogChannel(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	channelID := channelOption(i)
	if channelID == "" {
		respond(s, i, "Error: a channel is required.")
		return
	}

	if err := b.Settings.SetLogChannel(i.GuildID, channelID); err != nil {
		commandError(s, i, "logchannel", err)
		return
	}

	b.Events.Append(i.GuildID, fmt.Sprintf("configuration: log channel set to %s by user=%s", channelID, i.Member.User.ID))
	respond(s, i, fmt.Sprintf("✅ Audit entries will be mirrored to <#%s>.", channelID))
}

// HandleAuditLog handles the logic for the /auditlog command.
func HandleAuditLog(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	limit := 10
	if options := i.ApplicationCommandData().Options; len(options) > 0 {
		limit = int(options[0].IntValue())
	}

	entries := b.Events.Tail(i.GuildID, limit)
	if len(entries) == 0 {
		respond(s, i, "No audit entries recorded yet.")
		return
	}

	lines := make([]string, len(entries))
	for idx, entry := range entries {
		lines[idx] = entry.String()
	}
	content := strings.Join(lines, "\n")
	// Discord caps message content at 2000 characters.
	if len(content) > 1900 {
		content = content[len(content)-1900:]
	}
	respond(s, i, content)
}

// HandlePing handles the logic for the /ping command.
func HandlePing(s *discordgo.Session, i *discordgo.InteractionCreate) {
	s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: "Pong!",
		},
	})
}

// channelOption extracts the channel id from the first command option.
func channelOption(i *discordgo.InteractionCreate) string {
	options := i.ApplicationCommandData().Options
	for _, opt := range options {
		if opt.Type == discordgo.ApplicationCommandOptionChannel {
			if ch := opt.ChannelValue(nil); ch != nil {
				return ch.ID
			}
		}
	}
	return ""
}

// commandError logs a command failure and shows the user a generic notice.
func commandError(s *discordgo.Session, i *discordgo.InteractionCreate, name string, err error) {
	log.Printf("Error handling /%s for guild %s: %v", name, i.GuildID, err)
	utils.Error("Commands", name, fmt.Sprintf("guild=%s: %v", i.GuildID, err))
	respond(s, i, "🚫 Something went wrong while updating the configuration.")
}
