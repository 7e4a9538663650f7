package bot

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/text/unicode/runenames"
)

// embedFieldLimit is the longest value Discord accepts in an embed field.
const embedFieldLimit = 1024

var colours = []int{
	0x1abc9c, 0x2ecc71, 0x3498db, 0x9b59b6, 0xe91e63,
	0xf1c40f, 0xe67e22, 0xe74c3c, 0x11806a, 0x206694,
}

func chooseColour() int {
	return colours[rand.Intn(len(colours))]
}

// stringOption returns the value of a string option, or "" if it was not given.
func stringOption(i *discordgo.InteractionCreate, name string) string {
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == name && opt.Type == discordgo.ApplicationCommandOptionString {
			return opt.StringValue()
		}
	}
	return ""
}

// displayName prefers the guild nickname, then the global name, then the
// username.
func displayName(m *discordgo.Member) string {
	if m.Nick != "" {
		return m.Nick
	}
	if m.User.GlobalName != "" {
		return m.User.GlobalName
	}
	return m.User.Username
}

// charName is the Unicode name of r, or "N/A" for characters without one.
// Controls and other unnamed code points only have a "<label>".
func charName(r rune) string {
	name := runenames.Name(r)
	if name == "" || strings.HasPrefix(name, "<") {
		return "N/A"
	}
	return name
}

// describeCharacters returns newline separated Unicode names and code points
// for every character in s. Names link to fileformat.info unless the links
// would not fit in an embed field.
func describeCharacters(s string) (names string, points string) {
	var linked, plain, codes []string
	for _, r := range s {
		digit := fmt.Sprintf("%X", r)
		name := charName(r)
		plain = append(plain, name)
		linked = append(linked, fmt.Sprintf("[%s](https://fileformat.info/info/unicode/char/%s)", name, digit))
		codes = append(codes, fmt.Sprintf("U+%04X", r))
	}

	names = strings.Join(linked, "\n")
	if len(names) > embedFieldLimit {
		names = strings.Join(plain, "\n")
	}
	return names, strings.Join(codes, "\n")
}
