package bot

import (
	"context"
	"errors"
	"log"

	"carberretta/pkg/modmail"
	"carberretta/pkg/nickname"

	"github.com/bwmarrin/discordgo"
)

// membersPageSize is the largest page Discord returns for a member listing.
const membersPageSize = 1000

type Handler struct {
	guildID    string
	linkDomain string
	relay      *modmail.Relay
	members    *MemberResolver
	botID      string
}

func NewHandler(guildID, linkDomain string, relay *modmail.Relay, members *MemberResolver) *Handler {
	return &Handler{
		guildID:    guildID,
		linkDomain: linkDomain,
		relay:      relay,
		members:    members,
	}
}

func (h *Handler) SetBotID(id string) {
	h.botID = id
}

// Ready checks that the staff channel configured for modmail is reachable
// and asks for the guild's member list.
func (h *Handler) Ready(s *discordgo.Session, r *discordgo.Ready) {
	if r.User != nil {
		h.SetBotID(r.User.ID)
	}
	h.OnReady(&DiscordSession{s})
}

func (h *Handler) OnReady(s Session) {
	h.CheckModmailChannel(s)
	h.RequestMembers(s)
}

// RequestMembers fills the state cache with every guild member, so member
// updates arrive with the nickname they had before.
func (h *Handler) RequestMembers(s Session) {
	if err := s.RequestGuildMembers(h.guildID, "", 0, "", false); err != nil {
		log.Printf("Error requesting members of %s: %v", h.guildID, err)
	}
}

func (h *Handler) CheckModmailChannel(s Session) {
	channel, err := s.Channel(h.relay.ChannelID())
	if err != nil {
		log.Printf("Error resolving modmail channel %s: %v", h.relay.ChannelID(), err)
		return
	}
	log.Printf("Modmail reports go to #%s (%s)", channel.Name, channel.ID)
}

func (h *Handler) MessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	h.HandleMessage(&DiscordSession{s}, m)
}

// HandleMessage relays direct messages from people to the modmail channel.
func (h *Handler) HandleMessage(s Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot || m.Author.ID == h.botID {
		return
	}
	// Only direct messages carry no guild
	if m.GuildID != "" {
		return
	}

	author := h.members.Resolve(s, m.Author)
	result, err := h.relay.Handle(context.Background(), s, discordMessage{msg: m.Message}, author)
	if err != nil {
		if errors.Is(err, modmail.ErrDelivery) {
			log.Printf("Error relaying modmail %s from %s: %v", m.ID, m.Author.ID, err)
			return
		}
		log.Printf("Error handling modmail from %s (%s): %v", m.Author.ID, result, err)
	}
}

func (h *Handler) GuildMemberUpdate(s *discordgo.Session, m *discordgo.GuildMemberUpdate) {
	h.HandleMemberUpdate(&DiscordSession{s}, m)
}

// HandleMemberUpdate sanitizes a nickname right after it changes.
func (h *Handler) HandleMemberUpdate(s Session, m *discordgo.GuildMemberUpdate) {
	if m.Member == nil || m.User == nil || m.User.Bot {
		return
	}
	h.members.Forget(m.User.ID)

	if m.Nick == "" {
		return
	}

	// Members missing from the state cache come without their previous
	// nickname, so there is no telling whether it changed at all.
	if m.BeforeUpdate == nil || m.BeforeUpdate.Nick == m.Nick {
		return
	}

	decision := nickname.Decide(m.Nick, m.BeforeUpdate.Nick)
	outcome, err := nickname.Apply(s, m.GuildID, m.User.ID, decision)
	if err != nil {
		log.Printf("Error sanitizing nickname of %s: %v", m.User.ID, err)
		return
	}
	if outcome == nickname.OutcomeApplied {
		log.Printf("Nickname of %s: %s (%q -> %q)", m.User.ID, decision.Action, m.Nick, decision.Nickname)
	}
}

// SweepStats summarises a ValidateNicknames run.
type SweepStats struct {
	Checked int
	Changed int
	Denied  int
	Failed  int
}

// ValidateNicknames runs the nickname pipeline over every member of the
// guild. Failures for single members are counted and skipped.
func (h *Handler) ValidateNicknames(s Session, guildID string) (SweepStats, error) {
	var stats SweepStats
	after := ""

	for {
		members, err := s.GuildMembers(guildID, after, membersPageSize)
		if err != nil {
			return stats, err
		}

		for _, member := range members {
			if member.User == nil || member.User.Bot || member.Nick == "" {
				continue
			}
			stats.Checked++

			outcome, err := nickname.Apply(s, guildID, member.User.ID, nickname.DecideBatch(member.Nick))
			switch {
			case err != nil:
				stats.Failed++
				log.Printf("Error sanitizing nickname of %s: %v", member.User.ID, err)
			case outcome == nickname.OutcomeApplied:
				stats.Changed++
			case outcome == nickname.OutcomePermissionDenied:
				stats.Denied++
			}
		}

		if len(members) < membersPageSize {
			return stats, nil
		}
		after = members[len(members)-1].User.ID
	}
}
