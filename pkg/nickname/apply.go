package nickname

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/bwmarrin/discordgo"
)

// Outcome reports what Apply did.
type Outcome int

const (
	OutcomeUnchanged Outcome = iota
	OutcomeApplied
	OutcomePermissionDenied
)

func (o Outcome) String() string {
	switch o {
	case OutcomeApplied:
		return "applied"
	case OutcomePermissionDenied:
		return "permission denied"
	default:
		return "unchanged"
	}
}

// Editor is the part of discordgo.Session needed to change nicknames.
type Editor interface {
	GuildMemberNickname(guildID, userID, nickname string, options ...discordgo.RequestOption) error
}

// Apply carries out d for the given member. A missing permission is reported
// as OutcomePermissionDenied with a nil error; other failures are returned.
func Apply(e Editor, guildID, userID string, d Decision) (Outcome, error) {
	if d.Action == ActionNone {
		return OutcomeUnchanged, nil
	}

	// An empty nickname resets the member to their account name.
	err := e.GuildMemberNickname(guildID, userID, d.Nickname, discordgo.WithAuditLogReason(d.Reason))
	if err != nil {
		if IsPermissionDenied(err) {
			return OutcomePermissionDenied, nil
		}
		return OutcomeUnchanged, fmt.Errorf("failed to %s nickname for %s: %w", d.Action, userID, err)
	}
	return OutcomeApplied, nil
}

// IsPermissionDenied reports whether err is Discord refusing the edit because
// the bot may not manage the target member.
func IsPermissionDenied(err error) bool {
	var restErr *discordgo.RESTError
	if !errors.As(err, &restErr) {
		return false
	}
	if restErr.Message != nil && restErr.Message.Code == discordgo.ErrCodeMissingPermissions {
		return true
	}
	return restErr.Response != nil && restErr.Response.StatusCode == http.StatusForbidden
}
