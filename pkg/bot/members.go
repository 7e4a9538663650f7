package bot

import (
	"log"
	"time"

	"carberretta/pkg/modmail"

	"github.com/bwmarrin/discordgo"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// memberProfile is what the modmail report shows about its sender.
type memberProfile struct {
	id        string
	mention   string
	color     int
	avatarURL string
}

func (p *memberProfile) ID() string        { return p.id }
func (p *memberProfile) Mention() string   { return p.mention }
func (p *memberProfile) AccentColor() int  { return p.color }
func (p *memberProfile) AvatarURL() string { return p.avatarURL }

// MemberResolver looks up DM senders in the guild. Profiles are cached for a
// short while since the same member often writes several times in a row.
type MemberResolver struct {
	guildID string
	cache   *expirable.LRU[string, *memberProfile]
}

func NewMemberResolver(guildID string, cacheSize int, ttl time.Duration) *MemberResolver {
	return &MemberResolver{
		guildID: guildID,
		cache:   expirable.NewLRU[string, *memberProfile](cacheSize, nil, ttl),
	}
}

// Resolve returns the guild profile of user. Users who are not in the guild
// get a plain profile with no colour.
func (r *MemberResolver) Resolve(s Session, user *discordgo.User) modmail.Author {
	if p, ok := r.cache.Get(user.ID); ok {
		return p
	}

	member, err := s.GuildMember(r.guildID, user.ID)
	if err != nil {
		log.Printf("Could not resolve guild member %s: %v", user.ID, err)
		return &memberProfile{
			id:        user.ID,
			mention:   user.Mention(),
			avatarURL: user.AvatarURL(""),
		}
	}
	if member.User == nil {
		member.User = user
	}

	color := 0
	roles, err := s.GuildRoles(r.guildID)
	if err != nil {
		log.Printf("Error fetching roles for guild %s: %v", r.guildID, err)
	} else {
		color = topRoleColor(member.Roles, roles)
	}

	p := &memberProfile{
		id:        user.ID,
		mention:   user.Mention(),
		color:     color,
		avatarURL: member.AvatarURL(""),
	}
	r.cache.Add(user.ID, p)
	return p
}

// Forget drops a cached profile, e.g. after the member changed.
func (r *MemberResolver) Forget(userID string) {
	r.cache.Remove(userID)
}

// topRoleColor is the colour of the highest positioned coloured role the
// member has, or 0.
func topRoleColor(memberRoles []string, guildRoles []*discordgo.Role) int {
	has := make(map[string]bool, len(memberRoles))
	for _, id := range memberRoles {
		has[id] = true
	}

	color, position := 0, -1
	for _, role := range guildRoles {
		if !has[role.ID] || role.Color == 0 {
			continue
		}
		if role.Position > position {
			color, position = role.Color, role.Position
		}
	}
	return color
}
