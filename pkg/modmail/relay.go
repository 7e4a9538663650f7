// Package modmail forwards direct messages from members to a staff channel,
// one message per member per cooldown period.
package modmail

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"
	"unicode/utf8"

	"carberretta/pkg/cooldown"

	"github.com/bwmarrin/discordgo"
	"github.com/dustin/go-humanize"
)

// ErrDelivery wraps failures to post a report to the staff channel.
var ErrDelivery = errors.New("modmail delivery failed")

// Author is the sender of a modmail, resolved against the guild.
type Author interface {
	ID() string
	Mention() string
	AccentColor() int
	AvatarURL() string
}

// Message is the direct message being relayed.
type Message interface {
	ID() string
	ChannelID() string
	Content() string
	AttachmentURLs() []string
}

// Session is the part of discordgo.Session the relay talks to.
type Session interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

type Result int

const (
	ResultRelayed Result = iota
	ResultCoolingDown
	ResultInvalidLength
	// ResultUnavailable means the cooldown could not be checked.
	ResultUnavailable
)

func (r Result) String() string {
	switch r {
	case ResultRelayed:
		return "relayed"
	case ResultCoolingDown:
		return "cooling down"
	case ResultInvalidLength:
		return "invalid length"
	case ResultUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

type Options struct {
	ChannelID string
	Cooldown  time.Duration
	MinLength int
	MaxLength int
}

func DefaultOptions(channelID string) Options {
	return Options{
		ChannelID: channelID,
		Cooldown:  time.Hour,
		MinLength: 50,
		MaxLength: 1000,
	}
}

type Relay struct {
	store cooldown.Store
	opts  Options
	now   func() time.Time
	// Per-user locks so two messages from the same member can't both pass
	// the cooldown check. Entries live as long as the process.
	locks sync.Map
}

func NewRelay(store cooldown.Store, opts Options) *Relay {
	return &Relay{
		store: store,
		opts:  opts,
		now:   time.Now,
	}
}

// SetClock replaces the time source, for tests.
func (r *Relay) SetClock(now func() time.Time) {
	r.now = now
}

func (r *Relay) ChannelID() string {
	return r.opts.ChannelID
}

func (r *Relay) lock(userID string) func() {
	mu, _ := r.locks.LoadOrStore(userID, &sync.Mutex{})
	m := mu.(*sync.Mutex)
	m.Lock()
	return m.Unlock
}

// Remaining returns how long userID still has to wait. cooling is false for
// users who are eligible now, including users never seen before.
func (r *Relay) Remaining(ctx context.Context, userID string) (remaining time.Duration, cooling bool, err error) {
	deadline, ok, err := r.store.Deadline(ctx, userID)
	if err != nil {
		return 0, false, err
	}
	if !ok {
		return 0, false, nil
	}
	remaining = deadline.Sub(r.now())
	return remaining, remaining >= 0, nil
}

// Handle relays msg or replies with the reason it was rejected. Rejections
// are not errors. A failed relay returns an error wrapping ErrDelivery and
// leaves the cooldown untouched.
func (r *Relay) Handle(ctx context.Context, s Session, msg Message, author Author) (Result, error) {
	unlock := r.lock(author.ID())
	defer unlock()

	remaining, cooling, err := r.Remaining(ctx, author.ID())
	if err != nil {
		if _, replyErr := s.ChannelMessageSend(msg.ChannelID(),
			"Something went wrong on our end. Please try again later."); replyErr != nil {
			log.Printf("Error replying to %s: %v", author.ID(), replyErr)
		}
		return ResultUnavailable, fmt.Errorf("failed to check cooldown: %w", err)
	}
	if cooling {
		_, err := s.ChannelMessageSend(msg.ChannelID(),
			fmt.Sprintf("You're still on cooldown. Try again in %s.", LongDelta(remaining)))
		return ResultCoolingDown, err
	}

	if n := utf8.RuneCountInString(msg.Content()); n < r.opts.MinLength || n > r.opts.MaxLength {
		_, err := s.ChannelMessageSend(msg.ChannelID(),
			fmt.Sprintf("Your message should be between %s and %s characters long.",
				humanize.Comma(int64(r.opts.MinLength)), humanize.Comma(int64(r.opts.MaxLength))))
		return ResultInvalidLength, err
	}

	report := NewReport(msg, author)
	if _, err := s.ChannelMessageSendEmbed(r.opts.ChannelID, report.Embed()); err != nil {
		return ResultRelayed, fmt.Errorf("%w: %w", ErrDelivery, err)
	}
	log.Printf("Relayed modmail %s from %s", msg.ID(), author.ID())

	if err := r.store.SetDeadline(ctx, author.ID(), r.now().Add(r.opts.Cooldown)); err != nil {
		log.Printf("Error storing modmail cooldown for %s: %v", author.ID(), err)
	}

	_, err = s.ChannelMessageSend(msg.ChannelID(), fmt.Sprintf(
		"Message sent. If needed, a moderator will DM you regarding this issue. You'll need to wait %s before sending another modmail.",
		LongDelta(r.opts.Cooldown)))
	return ResultRelayed, err
}
