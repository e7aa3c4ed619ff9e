package moderation

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
)

// fakeClient implements ChatClient and records every outbound call.
type fakeClient struct {
	mu sync.Mutex

	channels   map[string]*discordgo.Channel
	channelErr error

	fetched    *discordgo.Message
	fetchErr   error
	fetchCalls int

	deleted   []string
	deleteErr error

	timeouts   []fakeTimeout
	timeoutErr error

	sent    []fakeSend
	sendErr error

	dmOpenErr error

	perms    int64
	permsErr error
}

type fakeTimeout struct {
	guildID string
	userID  string
	until   time.Time
}

type fakeSend struct {
	channelID string
	content   string
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		channels: map[string]*discordgo.Channel{
			"C": {ID: "C", Type: discordgo.ChannelTypeGuildText},
		},
	}
}

func (f *fakeClient) Channel(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.channelErr != nil {
		return nil, f.channelErr
	}
	ch, ok := f.channels[channelID]
	if !ok {
		return nil, errors.New("unknown channel")
	}
	return ch, nil
}

func (f *fakeClient) ChannelMessage(channelID, messageID string, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetchCalls++
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	if f.fetched != nil {
		return f.fetched, nil
	}
	return &discordgo.Message{ID: messageID, ChannelID: channelID}, nil
}

func (f *fakeClient) ChannelMessageDelete(channelID, messageID string, options ...discordgo.RequestOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, messageID)
	return nil
}

func (f *fakeClient) ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	f.sent = append(f.sent, fakeSend{channelID: channelID, content: content})
	return &discordgo.Message{ChannelID: channelID, Content: content}, nil
}

func (f *fakeClient) UserChannelCreate(recipientID string, options ...discordgo.RequestOption) (*discordgo.Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.dmOpenErr != nil {
		return nil, f.dmOpenErr
	}
	return &discordgo.Channel{ID: "dm-" + recipientID, Type: discordgo.ChannelTypeDM}, nil
}

func (f *fakeClient) GuildMemberTimeout(guildID string, userID string, until *time.Time, options ...discordgo.RequestOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.timeoutErr != nil {
		return f.timeoutErr
	}
	call := fakeTimeout{guildID: guildID, userID: userID}
	if until != nil {
		call.until = *until
	}
	f.timeouts = append(f.timeouts, call)
	return nil
}

func (f *fakeClient) UserChannelPermissions(userID, channelID string, fetchOptions ...discordgo.RequestOption) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.permsErr != nil {
		return 0, f.permsErr
	}
	return f.perms, nil
}

// forbiddenError builds the platform's permission-denied REST error.
func forbiddenError() error {
	return &discordgo.RESTError{
		Response: &http.Response{StatusCode: http.StatusForbidden},
		Message:  &discordgo.APIErrorMessage{Message: "Missing Permissions"},
	}
}
