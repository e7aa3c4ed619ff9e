package bot

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"mediaguard/command"
	"mediaguard/config"
	"mediaguard/database"
	"mediaguard/eventlog"
	"mediaguard/moderation"
	"mediaguard/utils"

	"github.com/bwmarrin/discordgo"
	"github.com/spf13/viper"
)

// Bot encapsulates the bot's state: the Discord session, the guild settings
// registry, the audit log and the moderation engine.
type Bot struct {
	Session  *discordgo.Session
	Settings *database.SettingsStore
	Audit    *database.AuditStore
	Events   *eventlog.Log
	Engine   *moderation.Engine
	db       *sql.DB
}

// stateClient prefers the gateway state cache for channel lookups before
// falling back to REST, so the thread check stays local whenever the channel
// type is already known.
type stateClient struct {
	*discordgo.Session
}

func (c stateClient) Channel(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error) {
	if ch, err := c.State.Channel(channelID); err == nil {
		return ch, nil
	}
	return c.Session.Channel(channelID, options...)
}

// NewBot creates and initializes a new Bot instance.
func NewBot() (*Bot, error) {
	config.LoadConfig()
	token := viper.GetString("BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("no bot token provided")
	}

	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}

	dg.Identify.Intents = discordgo.IntentsGuildMessages | discordgo.IntentsGuilds |
		discordgo.IntentsGuildMembers | discordgo.IntentsMessageContent

	settingsPath := viper.GetString("moderation.settingsFile")
	if settingsPath == "" {
		settingsPath = "data/guild_settings.json"
	}
	settings := database.NewSettingsStore(settingsPath)
	settings.Load()

	dbPath := viper.GetString("moderation.auditDb")
	if dbPath == "" {
		dbPath = "data/audit.db"
	}
	db, err := database.InitDB(dbPath)
	if err != nil {
		return nil, fmt.Errorf("error opening audit database: %w", err)
	}
	audit := database.NewAuditStore(db)
	events := eventlog.New(settings, audit)

	prefix := viper.GetString("bot.prefix")
	if prefix == "" {
		prefix = "!"
	}
	engine := moderation.NewEngine(stateClient{dg}, settings, events, prefix)

	return &Bot{
		Session:  dg,
		Settings: settings,
		Audit:    audit,
		Events:   events,
		Engine:   engine,
		db:       db,
	}, nil
}

// Start opens the bot's session, registers handlers and slash commands, and
// starts the scheduler.
func (b *Bot) Start(registerHandlers func(*Bot)) error {
	registerHandlers(b)

	err := b.Session.Open()
	if err != nil {
		return fmt.Errorf("error opening connection: %w", err)
	}

	utils.InitLogger(b.Session)
	b.Events.SetSender(b.Session)

	// Register slash commands
	for _, def := range command.GetCommandDefinitions() {
		_, err := b.Session.ApplicationCommandCreate(b.Session.State.User.ID, "", def)
		if err != nil {
			log.Printf("Cannot create '%v' command: %v", def.Name, err)
		}
	}

	startScheduler(b.Audit)

	fmt.Println("Bot is now running. Press CTRL-C to exit.")
	return nil
}

// Stop gracefully closes the bot's session and flushes state.
func (b *Bot) Stop() {
	stopScheduler()
	if err := b.Settings.Save(); err != nil {
		log.Printf("Error flushing settings on shutdown: %v", err)
	}
	if b.db != nil {
		b.db.Close()
	}
	if b.Session != nil {
		b.Session.Close()
	}
	fmt.Println("Bot stopped gracefully.")
}

// Run is the main entry point for the bot application.
func Run(registerHandlers func(*Bot)) {
	bot, err := NewBot()
	if err != nil {
		log.Fatalf("Error initializing bot: %v", err)
	}

	if err := bot.Start(registerHandlers); err != nil {
		log.Fatalf("Error starting bot: %v", err)
	}

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	bot.Stop()
}
