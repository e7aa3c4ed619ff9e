package moderation

import (
	"errors"
	"path/filepath"
	"testing"

	"mediaguard/database"
	"mediaguard/eventlog"
	"mediaguard/models"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, client *fakeClient) (*Engine, *database.SettingsStore) {
	t.Helper()
	store := database.NewSettingsStore(filepath.Join(t.TempDir(), "settings.json"))
	store.Load()
	events := eventlog.New(store, nil)
	return NewEngine(client, store, events, "!"), store
}

func textMessage(guildID, channelID, userID, messageID string) *discordgo.MessageCreate {
	return &discordgo.MessageCreate{
		Message: &discordgo.Message{
			ID:        messageID,
			GuildID:   guildID,
			ChannelID: channelID,
			Content:   "hello",
			Author:    &discordgo.User{ID: userID},
		},
	}
}

func TestStandardEnforcement(t *testing.T) {
	client := newFakeClient()
	engine, store := newTestEngine(t, client)
	require.NoError(t, store.AddChannel("G", "C"))

	out := engine.HandleMessage(textMessage("G", "C", "U", "M"))

	assert.Equal(t, models.Enforced, out.Disposition)
	assert.False(t, out.HasMedia)
	assert.False(t, out.HasThread)

	require.Len(t, client.deleted, 1)
	assert.Equal(t, "M", client.deleted[0])

	require.Len(t, client.timeouts, 1)
	assert.Equal(t, "G", client.timeouts[0].guildID)
	assert.Equal(t, "U", client.timeouts[0].userID)

	require.Len(t, client.sent, 1)
	assert.Equal(t, "dm-U", client.sent[0].channelID)
	assert.Contains(t, client.sent[0].content, "<#C>")
	assert.Contains(t, client.sent[0].content, "1 minutes")

	tail := engine.Events().Tail("G", 5)
	require.Len(t, tail, 1)
	assert.Contains(t, tail[0].Text, "user=U channel=C")
	assert.Contains(t, tail[0].Text, "message_id=M")
	assert.Contains(t, tail[0].Text, "timeout=1m")
}

func TestAdminExemption(t *testing.T) {
	client := newFakeClient()
	client.perms = discordgo.PermissionAdministrator
	engine, store := newTestEngine(t, client)
	require.NoError(t, store.AddChannel("G", "C"))

	out := engine.HandleMessage(textMessage("G", "C", "A", "M"))

	assert.Equal(t, models.AdminReported, out.Disposition)
	assert.Len(t, client.deleted, 1, "the message is still removed")
	assert.Empty(t, client.timeouts, "administrators are never timed out")

	require.Len(t, client.sent, 1)
	assert.Equal(t, "dm-A", client.sent[0].channelID)
	assert.Contains(t, client.sent[0].content, "administrator")

	tail := engine.Events().Tail("G", 5)
	require.Len(t, tail, 1)
	assert.Contains(t, tail[0].Text, "administrator message removed")
}

func TestCompliantMediaMessageSkipped(t *testing.T) {
	client := newFakeClient()
	engine, store := newTestEngine(t, client)
	require.NoError(t, store.AddChannel("G", "C"))

	m := textMessage("G", "C", "U", "M")
	m.Attachments = []*discordgo.MessageAttachment{{Filename: "cat.gif"}}

	out := engine.HandleMessage(m)

	assert.Equal(t, models.Skipped, out.Disposition)
	assert.True(t, out.HasMedia)
	assert.Empty(t, client.deleted)
	assert.Empty(t, client.timeouts)
	assert.Empty(t, engine.Events().Tail("G", 5))
}

func TestCompliantThreadMessageSkipped(t *testing.T) {
	client := newFakeClient()
	client.fetched = &discordgo.Message{
		ID: "M", ChannelID: "C",
		Thread: &discordgo.Channel{ID: "TH"},
	}
	engine, store := newTestEngine(t, client)
	require.NoError(t, store.AddChannel("G", "C"))

	out := engine.HandleMessage(textMessage("G", "C", "U", "M"))

	assert.Equal(t, models.Skipped, out.Disposition)
	assert.True(t, out.HasThread)
	assert.Empty(t, client.deleted)
}

func TestUnmonitoredChannelSkipped(t *testing.T) {
	client := newFakeClient()
	engine, _ := newTestEngine(t, client)

	out := engine.HandleMessage(textMessage("G", "C", "U", "M"))

	assert.Equal(t, models.Skipped, out.Disposition)
	assert.Zero(t, client.fetchCalls, "unmonitored messages are not evaluated")
	assert.Empty(t, client.deleted)
	assert.Empty(t, engine.Events().Tail("G", 5))
}

func TestAdmissionFilter(t *testing.T) {
	client := newFakeClient()
	engine, store := newTestEngine(t, client)
	require.NoError(t, store.AddChannel("G", "C"))

	dm := textMessage("", "C", "U", "M")
	assert.Equal(t, models.Skipped, engine.HandleMessage(dm).Disposition)

	fromBot := textMessage("G", "C", "U", "M")
	fromBot.Author.Bot = true
	assert.Equal(t, models.Skipped, engine.HandleMessage(fromBot).Disposition)

	cmd := textMessage("G", "C", "U", "M")
	cmd.Content = "!ping"
	assert.Equal(t, models.Skipped, engine.HandleMessage(cmd).Disposition)

	assert.Empty(t, client.deleted)
}

func TestDeleteFailureStopsEnforcement(t *testing.T) {
	client := newFakeClient()
	client.deleteErr = forbiddenError()
	engine, store := newTestEngine(t, client)
	require.NoError(t, store.AddChannel("G", "C"))

	out := engine.HandleMessage(textMessage("G", "C", "U", "M"))

	assert.Equal(t, models.ErrorRecorded, out.Disposition)
	assert.Error(t, out.Err)
	assert.Empty(t, client.timeouts, "no further action on a message that may not exist")
	assert.Empty(t, client.sent)

	tail := engine.Events().Tail("G", 5)
	require.Len(t, tail, 1)
	assert.Contains(t, tail[0].Text, "enforcement failed at delete")
}

func TestTimeoutPermissionFailureRecorded(t *testing.T) {
	client := newFakeClient()
	client.timeoutErr = forbiddenError()
	engine, store := newTestEngine(t, client)
	require.NoError(t, store.AddChannel("G", "C"))

	out := engine.HandleMessage(textMessage("G", "C", "U", "M"))

	assert.Equal(t, models.ErrorRecorded, out.Disposition)
	assert.Len(t, client.deleted, 1, "deletion is not rolled back")
	assert.Empty(t, client.sent, "processing stops at the failed step")

	tail := engine.Events().Tail("G", 5)
	require.Len(t, tail, 1)
	assert.Contains(t, tail[0].Text, "missing permissions")
}

func TestWarningDeliveryFailureRecorded(t *testing.T) {
	client := newFakeClient()
	client.dmOpenErr = errors.New("cannot send messages to this user")
	engine, store := newTestEngine(t, client)
	require.NoError(t, store.AddChannel("G", "C"))

	out := engine.HandleMessage(textMessage("G", "C", "U", "M"))

	assert.Equal(t, models.ErrorRecorded, out.Disposition)
	assert.Len(t, client.deleted, 1)
	assert.Len(t, client.timeouts, 1, "the timeout is not rolled back either")

	tail := engine.Events().Tail("G", 5)
	require.Len(t, tail, 1)
	assert.Contains(t, tail[0].Text, "enforcement failed at warning delivery")
}

func TestPermissionLookupFailureDefaultsToEnforcement(t *testing.T) {
	client := newFakeClient()
	client.permsErr = errors.New("state not ready")
	engine, store := newTestEngine(t, client)
	require.NoError(t, store.AddChannel("G", "C"))

	out := engine.HandleMessage(textMessage("G", "C", "U", "M"))

	assert.Equal(t, models.Enforced, out.Disposition)
	assert.Len(t, client.timeouts, 1)
}

func TestConfiguredTimeoutLengthUsed(t *testing.T) {
	client := newFakeClient()
	engine, store := newTestEngine(t, client)
	require.NoError(t, store.AddChannel("G", "C"))
	require.NoError(t, store.SetTimeout("G", 30))

	out := engine.HandleMessage(textMessage("G", "C", "U", "M"))

	assert.Equal(t, models.Enforced, out.Disposition)
	require.Len(t, client.sent, 1)
	assert.Contains(t, client.sent[0].content, "30 minutes")

	tail := engine.Events().Tail("G", 5)
	require.Len(t, tail, 1)
	assert.Contains(t, tail[0].Text, "timeout=30m")
}

func TestWarningText(t *testing.T) {
	text := WarningText(WarningTimeout, 5, "C")
	assert.Contains(t, text, "5 minutes")
	assert.Contains(t, text, "<#C>")

	notice := WarningText(WarningAdminNotice, 5, "C")
	assert.Contains(t, notice, "administrator")
	assert.Contains(t, notice, "<#C>")
}
