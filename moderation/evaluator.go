package moderation

import (
	"log"
	"strings"
	"time"

	"mediaguard/models"

	"github.com/bwmarrin/discordgo"
)

// ChatClient is the slice of the Discord client the moderation pipeline
// needs. *discordgo.Session satisfies it.
type ChatClient interface {
	Channel(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	ChannelMessage(channelID, messageID string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageDelete(channelID, messageID string, options ...discordgo.RequestOption) error
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	UserChannelCreate(recipientID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	GuildMemberTimeout(guildID string, userID string, until *time.Time, options ...discordgo.RequestOption) error
	UserChannelPermissions(userID, channelID string, fetchOptions ...discordgo.RequestOption) (int64, error)
}

// mediaExtensions are accepted when an attachment carries no content-type:
// common video containers plus the animated-image format.
var mediaExtensions = []string{".mp4", ".mov", ".webm", ".mkv", ".avi", ".flv", ".wmv", ".gif"}

// HasMedia reports whether any attachment is an image or video, either by
// declared content-type or by filename extension. It inspects only data
// already present on the message.
func HasMedia(m *discordgo.Message) bool {
	for _, attachment := range m.Attachments {
		if attachment == nil {
			continue
		}
		if strings.HasPrefix(attachment.ContentType, "image/") ||
			strings.HasPrefix(attachment.ContentType, "video/") {
			return true
		}
		filename := strings.ToLower(attachment.Filename)
		for _, ext := range mediaExtensions {
			if strings.HasSuffix(filename, ext) {
				return true
			}
		}
	}
	return false
}

// Evaluator answers the two compliance questions for a message. The thread
// check may need one network round-trip; the media check never does.
type Evaluator struct {
	client ChatClient
}

// NewEvaluator creates an evaluator on top of a chat client.
func NewEvaluator(client ChatClient) *Evaluator {
	return &Evaluator{client: client}
}

// HasThread reports whether the message lives in a thread or has one
// attached. If the message's channel is itself a thread no network call is
// made. Otherwise the message is re-fetched once; a fetch failure yields
// ThreadUnknown, which policy treats as "no thread".
func (e *Evaluator) HasThread(m *discordgo.Message) models.ThreadCheck {
	if ch, err := e.client.Channel(m.ChannelID); err == nil && ch.IsThread() {
		return models.ThreadPresent
	}

	fetched, err := e.client.ChannelMessage(m.ChannelID, m.ID)
	if err != nil {
		log.Printf("Error checking thread status for message %s in channel %s: %v", m.ID, m.ChannelID, err)
		return models.ThreadUnknown
	}
	if fetched.Thread != nil {
		return models.ThreadPresent
	}
	return models.ThreadAbsent
}
