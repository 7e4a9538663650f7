package modmail

import (
	"github.com/bwmarrin/discordgo"
)

// Report is one relayed modmail. It is built, posted and dropped.
type Report struct {
	AuthorMention string
	Color         int
	AvatarURL     string
	Content       string
	// AttachmentURL is the first attachment of the message, if any.
	AttachmentURL string
	MessageID     string
}

func NewReport(msg Message, author Author) *Report {
	r := &Report{
		AuthorMention: author.Mention(),
		Color:         author.AccentColor(),
		AvatarURL:     author.AvatarURL(),
		Content:       msg.Content(),
		MessageID:     msg.ID(),
	}
	if urls := msg.AttachmentURLs(); len(urls) > 0 {
		r.AttachmentURL = urls[0]
	}
	return r
}

func (r *Report) Embed() *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "Modmail",
		Color: r.Color,
		Thumbnail: &discordgo.MessageEmbedThumbnail{
			URL: r.AvatarURL,
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: "ID: " + r.MessageID,
		},
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Member", Value: r.AuthorMention, Inline: false},
			{Name: "Message", Value: r.Content, Inline: false},
		},
	}
	if r.AttachmentURL != "" {
		embed.Image = &discordgo.MessageEmbedImage{URL: r.AttachmentURL}
	}
	return embed
}
