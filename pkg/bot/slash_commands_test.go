package bot

import (
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func command(name string, member *discordgo.Member, options ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type:    discordgo.InteractionApplicationCommand,
			GuildID: "guild",
			Member:  member,
			Data: discordgo.ApplicationCommandInteractionData{
				Name:    name,
				Options: options,
			},
		},
	}
}

func stringOpt(name, value string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:  name,
		Type:  discordgo.ApplicationCommandOptionString,
		Value: value,
	}
}

func requester(permissions int64) *discordgo.Member {
	return &discordgo.Member{
		User:        &discordgo.User{ID: "7", Username: "carberra", GlobalName: "Carberra"},
		Permissions: permissions,
	}
}

func TestLinkCommand(t *testing.T) {
	h, _ := newTestHandler()
	session := NewMockSession()

	h.HandleInteraction(session, command("link", requester(0), stringOpt("target", "YouTube")))

	require.Len(t, session.Responses, 1)
	assert.Equal(t, "<https://youtube.carberra.xyz>", session.Responses[0].Data.Content)
}

func TestCharinfoCommand(t *testing.T) {
	h, _ := newTestHandler()
	session := NewMockSession()

	h.HandleInteraction(session, command("charinfo", requester(0), stringOpt("characters", "A€")))

	require.Len(t, session.Responses, 1)
	require.Len(t, session.Responses[0].Data.Embeds, 1)
	embed := session.Responses[0].Data.Embeds[0]

	assert.Equal(t, "Character information", embed.Title)
	assert.Equal(t, "Displaying information on 2 character(s).", embed.Description)
	assert.Equal(t, "Requested by Carberra", embed.Footer.Text)
	assert.Equal(t, "Query", embed.Author.Name)
	assert.Contains(t, colours, embed.Color)
	require.Len(t, embed.Fields, 2)
	assert.Equal(t,
		"[LATIN CAPITAL LETTER A](https://fileformat.info/info/unicode/char/41)\n[EURO SIGN](https://fileformat.info/info/unicode/char/20AC)",
		embed.Fields[0].Value)
	assert.Equal(t, "U+0041\nU+20AC", embed.Fields[1].Value)
}

func TestCharinfoCommand_TooMany(t *testing.T) {
	h, _ := newTestHandler()
	session := NewMockSession()

	h.HandleInteraction(session, command("charinfo", requester(0), stringOpt("characters", strings.Repeat("é", 16))))

	require.Len(t, session.Responses, 1)
	assert.Equal(t, "You can only pass 15 characters at a time.", session.Responses[0].Data.Content)
}

func TestDescribeCharacters_FallsBackToPlainNames(t *testing.T) {
	names, points := describeCharacters(strings.Repeat("\ufdfa", 15))

	assert.LessOrEqual(t, len(names), embedFieldLimit)
	assert.NotContains(t, names, "fileformat.info")
	assert.Equal(t, 15, strings.Count(names, "ARABIC LIGATURE SALLALLAHOU ALAYHE WASALLAM"))
	assert.Equal(t, 15, strings.Count(points, "U+FDFA"))
}

func TestDescribeCharacters_UnnamedCharacters(t *testing.T) {
	names, points := describeCharacters("\n\x7f")

	assert.Equal(t,
		"[N/A](https://fileformat.info/info/unicode/char/A)\n[N/A](https://fileformat.info/info/unicode/char/7F)",
		names)
	assert.Equal(t, "U+000A\nU+007F", points)
	assert.Equal(t, "N/A", charName('\u0085'))
	assert.Equal(t, "LATIN SMALL LETTER A", charName('a'))
}

func TestValidateNicknamesCommand(t *testing.T) {
	h, _ := newTestHandler()
	session := NewMockSession()
	session.Protected["2"] = true
	session.ListedMembers = []*discordgo.Member{
		listedMember("1", "##Zed", false),
		listedMember("2", "!!!", false),
	}

	h.HandleInteraction(session, command("validatenicknames", requester(discordgo.PermissionManageNicknames)))

	require.Len(t, session.Responses, 1)
	assert.Equal(t, discordgo.InteractionResponseDeferredChannelMessageWithSource, session.Responses[0].Type)
	require.Len(t, session.Edits, 1)
	assert.Equal(t, "Done.", *session.Edits[0].Content)
	assert.Equal(t, []nicknameEdit{{"guild", "1", "Zed"}}, session.NicknameEdits)
}

func TestValidateNicknamesCommand_RequiresPermission(t *testing.T) {
	h, _ := newTestHandler()
	session := NewMockSession()
	session.ListedMembers = []*discordgo.Member{listedMember("1", "##Zed", false)}

	h.HandleInteraction(session, command("validatenicknames", requester(0)))

	require.Len(t, session.Responses, 1)
	assert.Equal(t, discordgo.MessageFlagsEphemeral, session.Responses[0].Data.Flags)
	assert.Empty(t, session.NicknameEdits)
	assert.Empty(t, session.Edits)
}

func TestHandleInteraction_IgnoresOtherTypes(t *testing.T) {
	h, _ := newTestHandler()
	session := NewMockSession()

	i := command("link", requester(0))
	i.Type = discordgo.InteractionMessageComponent
	h.HandleInteraction(session, i)

	assert.Empty(t, session.Responses)
}

func TestTopRoleColor(t *testing.T) {
	roles := []*discordgo.Role{
		{ID: "a", Position: 3, Color: 0xaaaaaa},
		{ID: "b", Position: 7, Color: 0},
		{ID: "c", Position: 5, Color: 0xcccccc},
	}
	assert.Equal(t, 0xcccccc, topRoleColor([]string{"a", "b", "c"}, roles))
	assert.Equal(t, 0xaaaaaa, topRoleColor([]string{"a", "b"}, roles))
	assert.Equal(t, 0, topRoleColor([]string{"b"}, roles))
	assert.Equal(t, 0, topRoleColor(nil, roles))
}

func TestSlashCommandsHaveHandlers(t *testing.T) {
	for _, cmd := range SlashCommands {
		_, ok := SlashCommandHandlers[cmd.Name]
		assert.True(t, ok, "no handler for /%s", cmd.Name)
	}
}
