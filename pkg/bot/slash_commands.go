package bot

import (
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
)

// Links are the targets offered by /link.
var Links = []string{
	"Docs",
	"Donate",
	"GitHub",
	"Instagram",
	"LBRY",
	"Patreon",
	"Plans",
	"Twitch",
	"Twitter",
	"YouTube",
}

const maxCharinfoCharacters = 15

var manageNicknames int64 = discordgo.PermissionManageNicknames

func linkChoices() []*discordgo.ApplicationCommandOptionChoice {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, len(Links))
	for i, l := range Links {
		choices[i] = &discordgo.ApplicationCommandOptionChoice{Name: l, Value: l}
	}
	return choices
}

// SlashCommands defines all available slash commands
var SlashCommands = []*discordgo.ApplicationCommand{
	{
		Name:        "link",
		Description: "Retrieve a Carberra link.",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "target",
				Description: "The link to show.",
				Required:    true,
				Choices:     linkChoices(),
			},
		},
	},
	{
		Name:        "charinfo",
		Description: "Get character information.",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "characters",
				Description: "The characters to get the information on.",
				Required:    true,
			},
		},
	},
	{
		Name:                     "validatenicknames",
		Description:              "Clean up every member's nickname.",
		DefaultMemberPermissions: &manageNicknames,
	},
}

// SlashCommandHandlers maps command names to their handler functions
var SlashCommandHandlers = map[string]func(h *Handler, s Session, i *discordgo.InteractionCreate){
	"link":              handleLinkCommand,
	"charinfo":          handleCharinfoCommand,
	"validatenicknames": handleValidateNicknamesCommand,
}

func respond(s Session, i *discordgo.InteractionCreate, data *discordgo.InteractionResponseData) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
	if err != nil {
		log.Printf("Error responding to %s command: %v", i.ApplicationCommandData().Name, err)
	}
}

func handleLinkCommand(h *Handler, s Session, i *discordgo.InteractionCreate) {
	target := stringOption(i, "target")
	if target == "" {
		return
	}
	respond(s, i, &discordgo.InteractionResponseData{
		Content: fmt.Sprintf("<https://%s.%s>", strings.ToLower(target), h.linkDomain),
	})
}

func handleCharinfoCommand(h *Handler, s Session, i *discordgo.InteractionCreate) {
	characters := stringOption(i, "characters")
	if utf8.RuneCountInString(characters) > maxCharinfoCharacters {
		respond(s, i, &discordgo.InteractionResponseData{
			Content: fmt.Sprintf("You can only pass %d characters at a time.", maxCharinfoCharacters),
		})
		return
	}

	if i.Member == nil || i.Member.User == nil {
		respond(s, i, &discordgo.InteractionResponseData{
			Content: "This command can only be used in a server.",
			Flags:   discordgo.MessageFlagsEphemeral,
		})
		return
	}

	names, points := describeCharacters(characters)
	respond(s, i, &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{
			{
				Title:       "Character information",
				Description: fmt.Sprintf("Displaying information on %d character(s).", utf8.RuneCountInString(characters)),
				Color:       chooseColour(),
				Timestamp:   time.Now().Format(time.RFC3339),
				Author:      &discordgo.MessageEmbedAuthor{Name: "Query"},
				Footer: &discordgo.MessageEmbedFooter{
					Text:    "Requested by " + displayName(i.Member),
					IconURL: i.Member.AvatarURL(""),
				},
				Fields: []*discordgo.MessageEmbedField{
					{Name: "Names", Value: names, Inline: true},
					{Name: "Code points", Value: points, Inline: true},
				},
			},
		},
	})
}

func handleValidateNicknamesCommand(h *Handler, s Session, i *discordgo.InteractionCreate) {
	if i.Member == nil || i.Member.Permissions&discordgo.PermissionManageNicknames == 0 {
		respond(s, i, &discordgo.InteractionResponseData{
			Content: "You need the Manage Nicknames permission to do that.",
			Flags:   discordgo.MessageFlagsEphemeral,
		})
		return
	}

	// The sweep can take longer than the interaction deadline.
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
	if err != nil {
		log.Printf("Error deferring validatenicknames response: %v", err)
		return
	}

	stats, err := h.ValidateNicknames(s, i.GuildID)
	if err != nil {
		log.Printf("Error listing members of %s: %v", i.GuildID, err)
	}
	log.Printf("Validated nicknames in %s: %d checked, %d changed, %d denied, %d failed",
		i.GuildID, stats.Checked, stats.Changed, stats.Denied, stats.Failed)

	done := "Done."
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{Content: &done}); err != nil {
		log.Printf("Error completing validatenicknames response: %v", err)
	}
}

// InteractionCreate handles all slash command interactions
func (h *Handler) InteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	h.HandleInteraction(&DiscordSession{s}, i)
}

func (h *Handler) HandleInteraction(s Session, i *discordgo.InteractionCreate) {
	// Only handle application commands (slash commands)
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	commandName := i.ApplicationCommandData().Name

	// Find and execute the appropriate handler
	if handler, ok := SlashCommandHandlers[commandName]; ok {
		handler(h, s, i)
	} else {
		log.Printf("Unknown slash command: %s", commandName)
	}
}

// RegisterSlashCommands registers all slash commands with Discord
func RegisterSlashCommands(s *discordgo.Session, guildID string) ([]*discordgo.ApplicationCommand, error) {
	log.Println("Registering slash commands...")

	registeredCommands := make([]*discordgo.ApplicationCommand, len(SlashCommands))

	for i, cmd := range SlashCommands {
		// Register globally (guildID = "") or for a specific guild
		registeredCmd, err := s.ApplicationCommandCreate(s.State.User.ID, guildID, cmd)
		if err != nil {
			log.Printf("Cannot create '%s' command: %v", cmd.Name, err)
			return nil, err
		}
		registeredCommands[i] = registeredCmd
		log.Printf("Registered command: %s", cmd.Name)
	}

	return registeredCommands, nil
}

// UnregisterSlashCommands removes all registered slash commands
func UnregisterSlashCommands(s *discordgo.Session, guildID string, commands []*discordgo.ApplicationCommand) error {
	log.Println("Unregistering slash commands...")

	for _, cmd := range commands {
		err := s.ApplicationCommandDelete(s.State.User.ID, guildID, cmd.ID)
		if err != nil {
			log.Printf("Cannot delete '%s' command: %v", cmd.Name, err)
			return err
		}
		log.Printf("Unregistered command: %s", cmd.Name)
	}

	return nil
}
