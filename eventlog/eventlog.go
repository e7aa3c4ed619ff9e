package eventlog

import (
	"fmt"
	"log"
	"sync"
	"time"

	"mediaguard/database"

	"github.com/bwmarrin/discordgo"
)

// Capacity is the number of entries kept in memory per guild. Oldest entries
// are dropped once it is exceeded.
const Capacity = 200

// TailLimit bounds how many entries external consumers can request at once.
const TailLimit = 20

// Entry is one immutable audit record.
type Entry struct {
	Timestamp time.Time
	Text      string
}

func (e Entry) String() string {
	return fmt.Sprintf("[%s] %s", e.Timestamp.Format("2006-01-02 15:04:05 UTC"), e.Text)
}

// ChannelSender sends a plain message to a channel. *discordgo.Session
// satisfies it.
type ChannelSender interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Log is the bounded per-guild audit log. Appends are mirrored to the guild's
// configured log channel and archived to sqlite; both are best-effort and
// never fail the append.
type Log struct {
	mutex    sync.Mutex
	guilds   map[string][]Entry
	settings *database.SettingsStore
	archive  *database.AuditStore
	sender   ChannelSender
}

// New creates an event log. settings resolves each guild's mirror channel;
// a nil archive disables sqlite archiving, and mirroring stays off until a
// sender is attached.
func New(settings *database.SettingsStore, archive *database.AuditStore) *Log {
	return &Log{
		guilds:   make(map[string][]Entry),
		settings: settings,
		archive:  archive,
	}
}

// SetSender attaches the Discord session used for channel mirroring. Called
// once the session is open.
func (l *Log) SetSender(s ChannelSender) {
	l.mutex.Lock()
	l.sender = s
	l.mutex.Unlock()
}

// Append timestamps the text with current UTC time and pushes it onto the
// guild's ring. Mirroring or archive failures are logged internally and never
// propagate to the caller.
func (l *Log) Append(guildID, text string) {
	entry := Entry{Timestamp: time.Now().UTC(), Text: text}

	l.mutex.Lock()
	entries := append(l.guilds[guildID], entry)
	if len(entries) > Capacity {
		entries = entries[len(entries)-Capacity:]
	}
	l.guilds[guildID] = entries
	sender := l.sender
	l.mutex.Unlock()

	if l.archive != nil {
		if err := l.archive.Insert(guildID, text, entry.Timestamp); err != nil {
			log.Printf("Failed to archive audit entry for guild %s: %v", guildID, err)
		}
	}

	l.mirror(sender, guildID, entry)
}

// mirror sends the formatted entry to the guild's log channel, if one is
// configured.
func (l *Log) mirror(sender ChannelSender, guildID string, entry Entry) {
	if sender == nil || l.settings == nil {
		return
	}
	channelID := l.settings.Get(guildID).LogChannelID
	if channelID == "" {
		return
	}
	if _, err := sender.ChannelMessageSend(channelID, entry.String()); err != nil {
		log.Printf("Failed to mirror audit entry to channel %s (guild %s): %v", channelID, guildID, err)
	}
}

// Tail returns the most recent min(limit, stored) entries, newest last.
// limit is clamped to [1, TailLimit].
func (l *Log) Tail(guildID string, limit int) []Entry {
	if limit < 1 {
		limit = 1
	}
	if limit > TailLimit {
		limit = TailLimit
	}

	l.mutex.Lock()
	defer l.mutex.Unlock()

	entries := l.guilds[guildID]
	if limit > len(entries) {
		limit = len(entries)
	}
	out := make([]Entry, limit)
	copy(out, entries[len(entries)-limit:])
	return out
}

// Len reports how many entries are stored for a guild.
func (l *Log) Len(guildID string) int {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	return len(l.guilds[guildID])
}
