package handlers

import (
	"mediaguard/bot"
	"mediaguard/utils"

	"github.com/bwmarrin/discordgo"
)

// CommandDispatcher is the central handler for all application command
// interactions. It performs permission checks and then dispatches the
// interaction to the appropriate handler.
func CommandDispatcher(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	auth := utils.NewAuth()

	commandPermissions := map[string]string{
		"policy":     "admin",
		"watch":      "admin",
		"unwatch":    "admin",
		"timeout":    "admin",
		"logchannel": "admin",
		"auditlog":   "admin",
		"ping":       "guest",
	}

	commandName := i.ApplicationCommandData().Name
	requiredLevel, ok := commandPermissions[commandName]

	if ok {
		if !auth.CheckPermission(i, requiredLevel) {
			respond(s, i, "🚫 You do not have permission to run this command.")
			return
		}
	}

	switch commandName {
	case "policy":
		HandlePolicy(b, s, i)
	case "watch":
		HandleWatch(b, s, i)
	case "unwatch":
		HandleUnwatch(b, s, i)
	case "timeout":
		HandleTimeout(b, s, i)
	case "logchannel":
		HandleLogChannel(b, s, i)
	case "auditlog":
		HandleAuditLog(b, s, i)
	case "ping":
		HandlePing(s, i)
	default:
		respond(s, i, "🚫 Unknown command.")
	}
}

// respond sends an ephemeral reply to an interaction.
func respond(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}
