package database

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"mediaguard/models"
)

// SettingsStore owns the in-memory guild settings registry and its JSON
// snapshot file. Every mutation rewrites the whole file before returning, so
// memory and disk never disagree for longer than the call itself.
type SettingsStore struct {
	path   string
	mutex  sync.Mutex
	guilds map[string]models.GuildSettings
}

// NewSettingsStore creates a store backed by the given snapshot file. Call
// Load before use.
func NewSettingsStore(path string) *SettingsStore {
	return &SettingsStore{
		path:   path,
		guilds: make(map[string]models.GuildSettings),
	}
}

// Load reads the snapshot file once at startup. A missing or corrupt file
// yields an empty registry; the bot degrades to "no guild configured" rather
// than refusing to start.
func (s *SettingsStore) Load() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Could not read settings file %s: %v. Starting with empty settings.", s.path, err)
		}
		return
	}

	var file models.SettingsFile
	if err := json.Unmarshal(data, &file); err != nil {
		log.Printf("Could not parse settings file %s: %v. Starting with empty settings.", s.path, err)
		return
	}

	for _, g := range file.Guilds {
		s.guilds[g.GuildID] = g
	}
	log.Printf("Loaded settings for %d guilds from %s", len(s.guilds), s.path)
}

// Get returns the settings for a guild, synthesizing, registering and
// persisting a default record on first access. The create-and-flush happens
// under the store lock so two concurrent lookups cannot both create. Callers
// receive a copy; mutations go through the store.
func (s *SettingsStore) Get(guildID string) models.GuildSettings {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if g, ok := s.guilds[guildID]; ok {
		return copySettings(g)
	}

	g := models.NewGuildSettings(guildID, "")
	s.guilds[guildID] = g
	if err := s.save(); err != nil {
		log.Printf("Failed to persist default settings for guild %s: %v", guildID, err)
	}
	return copySettings(g)
}

// SetName records a guild's display name, creating the record if needed. The
// name is informational only.
func (s *SettingsStore) SetName(guildID, name string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	g, ok := s.guilds[guildID]
	if !ok {
		g = models.NewGuildSettings(guildID, name)
	}
	g.GuildName = name
	s.guilds[guildID] = g
	return s.save()
}

// AddChannel adds a channel to the guild's monitored set.
func (s *SettingsStore) AddChannel(guildID, channelID string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	g := s.getOrCreateLocked(guildID)
	if g.IsMonitored(channelID) {
		return nil
	}
	g.MonitoredChannelIDs = append(g.MonitoredChannelIDs, channelID)
	s.guilds[guildID] = g
	return s.save()
}

// RemoveChannel removes a channel from the guild's monitored set.
func (s *SettingsStore) RemoveChannel(guildID, channelID string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	g := s.getOrCreateLocked(guildID)
	kept := g.MonitoredChannelIDs[:0]
	for _, id := range g.MonitoredChannelIDs {
		if id != channelID {
			kept = append(kept, id)
		}
	}
	g.MonitoredChannelIDs = kept
	s.guilds[guildID] = g
	return s.save()
}

// SetTimeout updates the guild's timeout length. Values outside
// [MinTimeoutMinutes, MaxTimeoutMinutes] are rejected with no state change.
func (s *SettingsStore) SetTimeout(guildID string, minutes int) error {
	if minutes < models.MinTimeoutMinutes || minutes > models.MaxTimeoutMinutes {
		return fmt.Errorf("timeout must be between %d and %d minutes, got %d",
			models.MinTimeoutMinutes, models.MaxTimeoutMinutes, minutes)
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	g := s.getOrCreateLocked(guildID)
	g.TimeoutMinutes = minutes
	s.guilds[guildID] = g
	return s.save()
}

// SetLogChannel sets the channel audit entries are mirrored to. An empty id
// disables mirroring.
func (s *SettingsStore) SetLogChannel(guildID, channelID string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	g := s.getOrCreateLocked(guildID)
	g.LogChannelID = channelID
	s.guilds[guildID] = g
	return s.save()
}

// Save flushes the current registry to disk.
func (s *SettingsStore) Save() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.save()
}

func (s *SettingsStore) getOrCreateLocked(guildID string) models.GuildSettings {
	g, ok := s.guilds[guildID]
	if !ok {
		g = models.NewGuildSettings(guildID, "")
	}
	return g
}

// save writes the full snapshot, overwriting the previous file. Caller must
// hold the mutex.
func (s *SettingsStore) save() error {
	file := models.SettingsFile{Guilds: make([]models.GuildSettings, 0, len(s.guilds))}
	for _, g := range s.guilds {
		file.Guilds = append(file.Guilds, g)
	}
	sort.Slice(file.Guilds, func(i, j int) bool {
		return file.Guilds[i].GuildID < file.Guilds[j].GuildID
	})

	// Ensure the directory exists.
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	data, err := json.MarshalIndent(file, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	// Write the file, overwriting it if it exists.
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	return nil
}

func copySettings(g models.GuildSettings) models.GuildSettings {
	out := g
	out.MonitoredChannelIDs = append([]string(nil), g.MonitoredChannelIDs...)
	return out
}
