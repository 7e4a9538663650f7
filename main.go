package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"carberretta/pkg/bot"
	"carberretta/pkg/cache"
	"carberretta/pkg/config"
	"carberretta/pkg/cooldown"
	"carberretta/pkg/modmail"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
)

func main() {
	// Load config.yml
	cfg, err := config.LoadConfig("config.yml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Load .env for secrets
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}
	cfg.ApplyEnv()

	token := os.Getenv("DISCORD_TOKEN")
	if token == "" {
		log.Fatal("Missing required environment variable: DISCORD_TOKEN")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	// Cooldowns live in Redis when it is available so they survive restarts
	var store cooldown.Store
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		redisCache, err := cache.NewRedisCache(redisURL, cfg.Redis.Prefix)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisCache.Close()
		store = cooldown.NewRedisStore(redisCache, "modmail")
		log.Println("Modmail cooldowns stored in Redis")
	} else {
		store = cooldown.NewMemoryStore()
		log.Println("REDIS_URL not set, modmail cooldowns kept in memory")
	}

	relay := modmail.NewRelay(store, modmail.Options{
		ChannelID: cfg.Modmail.ChannelID,
		Cooldown:  cfg.Cooldown(),
		MinLength: cfg.Modmail.MinLength,
		MaxLength: cfg.Modmail.MaxLength,
	})
	members := bot.NewMemberResolver(cfg.GuildID, cfg.Members.CacheSize, cfg.MemberCacheTTL())
	handler := bot.NewHandler(cfg.GuildID, cfg.Links.Domain, relay, members)

	// Create Discord Session
	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		log.Fatalf("Error creating Discord session: %v", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsDirectMessages |
		discordgo.IntentsMessageContent

	// Register Handlers
	dg.AddHandler(handler.Ready)
	dg.AddHandler(handler.MessageCreate)
	dg.AddHandler(handler.GuildMemberUpdate)
	dg.AddHandler(handler.InteractionCreate)

	// Open Connection
	if err := dg.Open(); err != nil {
		log.Fatalf("Error opening connection: %v", err)
	}
	defer dg.Close()

	registeredCommands, err := bot.RegisterSlashCommands(dg, cfg.GuildID)
	if err != nil {
		log.Fatalf("Error registering slash commands: %v", err)
	}

	// Cleanup function to unregister commands on shutdown
	defer func() {
		if err := bot.UnregisterSlashCommands(dg, cfg.GuildID, registeredCommands); err != nil {
			log.Printf("Error unregistering slash commands: %v", err)
		}
	}()

	log.Println("Carberretta is now running. Press CTRL-C to exit.")

	// Wait for signal
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc
}
