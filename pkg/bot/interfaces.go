package bot

import (
	"github.com/bwmarrin/discordgo"
)

// Session interface abstracts discordgo.Session for testing
type Session interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
	Channel(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	GuildMember(guildID, userID string, options ...discordgo.RequestOption) (*discordgo.Member, error)
	GuildMembers(guildID string, after string, limit int, options ...discordgo.RequestOption) ([]*discordgo.Member, error)
	GuildRoles(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Role, error)
	GuildMemberNickname(guildID, userID, nickname string, options ...discordgo.RequestOption) error
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	RequestGuildMembers(guildID, query string, limit int, nonce string, presences bool) error
	InteractionResponseEdit(interaction *discordgo.Interaction, newresp *discordgo.WebhookEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// DiscordSession adapts discordgo.Session to the Session interface
type DiscordSession struct {
	*discordgo.Session
}

var _ Session = (*DiscordSession)(nil)

// discordMessage exposes a direct message to the modmail relay.
type discordMessage struct {
	msg *discordgo.Message
}

func (m discordMessage) ID() string        { return m.msg.ID }
func (m discordMessage) ChannelID() string { return m.msg.ChannelID }
func (m discordMessage) Content() string   { return m.msg.Content }

func (m discordMessage) AttachmentURLs() []string {
	urls := make([]string, 0, len(m.msg.Attachments))
	for _, a := range m.msg.Attachments {
		urls = append(urls, a.URL)
	}
	return urls
}
