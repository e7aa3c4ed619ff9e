package handlers

import (
	"log"

	"mediaguard/bot"

	"github.com/bwmarrin/discordgo"
)

// GuildCreate records the guild's display name in the settings store when the
// gateway announces a guild. The name is informational only; a failure to
// persist it is logged and otherwise ignored.
func GuildCreate(b *bot.Bot) func(s *discordgo.Session, g *discordgo.GuildCreate) {
	return func(s *discordgo.Session, g *discordgo.GuildCreate) {
		if err := b.Settings.SetName(g.ID, g.Name); err != nil {
			log.Printf("Error recording name for guild %s: %v", g.ID, err)
		}
	}
}
