package moderation

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"mediaguard/database"
	"mediaguard/eventlog"
	"mediaguard/models"
	"mediaguard/utils"

	"github.com/bwmarrin/discordgo"
)

// Engine runs the moderation pipeline for inbound messages: admission
// filtering, compliance evaluation, enforcement and failure handling.
type Engine struct {
	client   ChatClient
	settings *database.SettingsStore
	events   *eventlog.Log
	eval     *Evaluator
	prefix   string
}

// NewEngine wires the pipeline. prefix is the command prefix; messages
// starting with it belong to the command surface and are never evaluated.
func NewEngine(client ChatClient, settings *database.SettingsStore, events *eventlog.Log, prefix string) *Engine {
	return &Engine{
		client:   client,
		settings: settings,
		events:   events,
		eval:     NewEvaluator(client),
		prefix:   prefix,
	}
}

// Events exposes the audit log for handlers that record outcomes outside the
// pipeline proper.
func (e *Engine) Events() *eventlog.Log {
	return e.events
}

// HandleMessage runs one message through the pipeline and returns its
// outcome. It is safe to call concurrently for different messages.
func (e *Engine) HandleMessage(m *discordgo.MessageCreate) models.ModerationOutcome {
	out := models.ModerationOutcome{Disposition: models.Skipped}

	// Admission: direct messages, bot accounts and command invocations are
	// not subject to the policy.
	if m.GuildID == "" || m.Author == nil || m.Author.Bot {
		return out
	}
	if e.prefix != "" && strings.HasPrefix(m.Content, e.prefix) {
		return out
	}

	settings := e.settings.Get(m.GuildID)
	if !settings.IsMonitored(m.ChannelID) {
		return out
	}

	// The two checks are independent; the thread probe may hit the network,
	// so it runs alongside the local media check.
	threadCh := make(chan models.ThreadCheck, 1)
	go func() {
		threadCh <- e.eval.HasThread(m.Message)
	}()
	out.HasMedia = HasMedia(m.Message)
	out.HasThread = (<-threadCh).Satisfied()

	if out.HasMedia || out.HasThread {
		return out
	}

	return e.enforce(m, settings, out)
}

// enforce handles a non-compliant message. Deletion comes first and is never
// rolled back: a deleted message with a failed notification beats
// non-compliant content left visible.
func (e *Engine) enforce(m *discordgo.MessageCreate, settings models.GuildSettings, out models.ModerationOutcome) models.ModerationOutcome {
	warning := WarningText(WarningTimeout, settings.TimeoutMinutes, m.ChannelID)

	if err := e.client.ChannelMessageDelete(m.ChannelID, m.ID); err != nil {
		// The message may no longer exist; stop before acting on it further.
		return e.recordFailure(m, out, "delete", err)
	}

	if e.isAdmin(m) {
		notice := WarningText(WarningAdminNotice, settings.TimeoutMinutes, m.ChannelID)
		if err := e.directMessage(m.Author.ID, notice); err != nil {
			return e.recordFailure(m, out, "admin notice", err)
		}
		e.events.Append(m.GuildID, fmt.Sprintf(
			"administrator message removed (no timeout): user=%s channel=%s message_id=%s",
			m.Author.ID, m.ChannelID, m.ID))
		out.Disposition = models.AdminReported
		return out
	}

	until := time.Now().Add(time.Duration(settings.TimeoutMinutes) * time.Minute)
	if err := e.client.GuildMemberTimeout(m.GuildID, m.Author.ID, &until, discordgo.WithAuditLogReason(TimeoutReason)); err != nil {
		if isPermissionError(err) {
			// The bot lacks moderation rights. No retry, and the deletion
			// already happened.
			log.Printf("Missing permissions to timeout user %s in guild %s: %v", m.Author.ID, m.GuildID, err)
			utils.Warn("Moderation", "Timeout", fmt.Sprintf("Missing permissions to timeout user %s in guild %s", m.Author.ID, m.GuildID))
			e.events.Append(m.GuildID, fmt.Sprintf(
				"timeout failed, missing permissions: user=%s channel=%s message_id=%s",
				m.Author.ID, m.ChannelID, m.ID))
			out.Disposition = models.ErrorRecorded
			out.Err = err
			return out
		}
		return e.recordFailure(m, out, "timeout", err)
	}

	if err := e.directMessage(m.Author.ID, warning); err != nil {
		return e.recordFailure(m, out, "warning delivery", err)
	}

	e.events.Append(m.GuildID, fmt.Sprintf(
		"timeout enforced: user=%s channel=%s message_id=%s timeout=%dm",
		m.Author.ID, m.ChannelID, m.ID, settings.TimeoutMinutes))
	out.Disposition = models.Enforced
	return out
}

// isAdmin reports whether the author holds Administrator in the guild. A
// failed permission lookup is logged and treated as non-admin.
func (e *Engine) isAdmin(m *discordgo.MessageCreate) bool {
	perms, err := e.client.UserChannelPermissions(m.Author.ID, m.ChannelID)
	if err != nil {
		log.Printf("Error resolving permissions for user %s in channel %s: %v", m.Author.ID, m.ChannelID, err)
		return false
	}
	return perms&discordgo.PermissionAdministrator != 0
}

// directMessage opens (or reuses) the user's DM channel and sends text.
func (e *Engine) directMessage(userID, text string) error {
	ch, err := e.client.UserChannelCreate(userID)
	if err != nil {
		return fmt.Errorf("failed to open DM channel for user %s: %w", userID, err)
	}
	if _, err := e.client.ChannelMessageSend(ch.ID, text); err != nil {
		return fmt.Errorf("failed to send DM to user %s: %w", userID, err)
	}
	return nil
}

// recordFailure logs an enforcement failure with full context, writes it to
// the audit log and terminates the pipeline for this message.
func (e *Engine) recordFailure(m *discordgo.MessageCreate, out models.ModerationOutcome, step string, err error) models.ModerationOutcome {
	log.Printf("Enforcement failure at %s: guild=%s user=%s channel=%s message_id=%s: %v",
		step, m.GuildID, m.Author.ID, m.ChannelID, m.ID, err)
	utils.Error("Moderation", step, fmt.Sprintf("guild=%s user=%s message_id=%s: %v", m.GuildID, m.Author.ID, m.ID, err))
	e.events.Append(m.GuildID, fmt.Sprintf(
		"enforcement failed at %s: user=%s channel=%s message_id=%s error=%v",
		step, m.Author.ID, m.ChannelID, m.ID, err))
	out.Disposition = models.ErrorRecorded
	out.Err = err
	return out
}

// isPermissionError reports whether the platform rejected a call for lack of
// permissions.
func isPermissionError(err error) bool {
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) && restErr.Response != nil {
		return restErr.Response.StatusCode == http.StatusForbidden
	}
	return errors.Is(err, discordgo.ErrUnauthorized)
}
