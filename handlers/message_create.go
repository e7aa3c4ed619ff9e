package handlers

import (
	"fmt"
	"log"
	"runtime/debug"
	"strings"

	"mediaguard/bot"
	"mediaguard/models"
	"mediaguard/utils"

	"github.com/bwmarrin/discordgo"
	"github.com/spf13/viper"
)

// MessageCreate returns the handler invoked once per message creation event.
// Command-prefix messages are routed to the prefix command surface; everything
// else goes through the moderation engine. A panic in the pipeline is
// recovered here so a single message can never halt the event loop.
func MessageCreate(b *bot.Bot) func(s *discordgo.Session, m *discordgo.MessageCreate) {
	return func(s *discordgo.Session, m *discordgo.MessageCreate) {
		// Ignore all messages created by the bot itself
		if m.Author == nil || m.Author.ID == s.State.User.ID {
			return
		}

		prefix := viper.GetString("bot.prefix")
		if prefix == "" {
			prefix = "!" // Default prefix
		}

		if strings.HasPrefix(m.Content, prefix) {
			handlePrefixCommand(s, m, prefix)
			return
		}

		defer func() {
			if r := recover(); r != nil {
				log.Printf("Panic while moderating message %s in channel %s: %v\n%s", m.ID, m.ChannelID, r, debug.Stack())
				utils.Error("Moderation", "HandleMessage", fmt.Sprintf("panic: message_id=%s channel=%s: %v", m.ID, m.ChannelID, r))
				if m.GuildID != "" {
					b.Events.Append(m.GuildID, fmt.Sprintf(
						"enforcement failed unexpectedly: channel=%s message_id=%s error=%v",
						m.ChannelID, m.ID, r))
				}
			}
		}()

		outcome := b.Engine.HandleMessage(m)
		if outcome.Disposition != models.Skipped {
			log.Printf("Moderated message %s in channel %s: %s", m.ID, m.ChannelID, outcome.Disposition)
		}
	}
}

// handlePrefixCommand answers the legacy prefix commands.
func handlePrefixCommand(s *discordgo.Session, m *discordgo.MessageCreate, prefix string) {
	command := strings.TrimPrefix(m.Content, prefix)

	switch command {
	case "ping":
		s.ChannelMessageSend(m.ChannelID, "Pong!")
	case "pong":
		s.ChannelMessageSend(m.ChannelID, "Ping!")
	}
}
