// Package nickname cleans member nicknames: it drops characters outside the
// whitelist, strips hoisting prefixes and decides whether a name is kept,
// rewritten, reverted or cleared.
package nickname

import (
	"strings"
)

const (
	ReasonInvalidCharacters = "Nickname contains invalid characters"
	ReasonInvalid           = "Invalid nickname"
)

// Action is what should happen to a member's nickname.
type Action int

const (
	ActionNone Action = iota
	ActionApply
	ActionRevert
	ActionClear
)

func (a Action) String() string {
	switch a {
	case ActionApply:
		return "apply"
	case ActionRevert:
		return "revert"
	case ActionClear:
		return "clear"
	default:
		return "none"
	}
}

// Decision pairs an Action with the nickname to set and the audit log reason.
// Nickname is empty for ActionClear and ActionNone.
type Decision struct {
	Action   Action
	Nickname string
	Reason   string
}

func isBasicLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// Filter drops every character that is not whitelisted.
func Filter(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if Allowed(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Unhoist strips the leading run of characters that are not basic Latin
// letters and collapses whitespace runs to single spaces.
func Unhoist(s string) string {
	s = strings.TrimLeftFunc(s, func(r rune) bool { return !isBasicLetter(r) })
	return strings.Join(strings.Fields(s), " ")
}

// Valid reports whether name is acceptable as a nickname. The first period
// and the first space are ignored, and the next three characters must be
// basic Latin letters.
func Valid(name string) bool {
	if name == "" {
		return false
	}
	rest := strings.Replace(name, ".", "", 1)
	rest = strings.Replace(rest, " ", "", 1)
	if rest == "" {
		return false
	}

	n := 0
	for _, r := range rest {
		if n == 3 {
			break
		}
		if !isBasicLetter(r) {
			return false
		}
		n++
	}
	return true
}

// Clean runs the filter and unhoist steps.
func Clean(s string) string {
	return Unhoist(Filter(s))
}

// Decide picks the outcome for a nickname change from prior to candidate.
func Decide(candidate, prior string) Decision {
	cleaned := Clean(candidate)
	if Valid(cleaned) {
		if cleaned == candidate {
			return Decision{Action: ActionNone}
		}
		return Decision{Action: ActionApply, Nickname: cleaned, Reason: ReasonInvalidCharacters}
	}

	if Valid(prior) {
		return Decision{Action: ActionRevert, Nickname: prior, Reason: ReasonInvalid}
	}
	return Decision{Action: ActionClear, Reason: ReasonInvalid}
}

// DecideBatch is Decide without a revert path, used when sweeping existing
// nicknames.
func DecideBatch(current string) Decision {
	cleaned := Clean(current)
	if Valid(cleaned) {
		if cleaned == current {
			return Decision{Action: ActionNone}
		}
		return Decision{Action: ActionApply, Nickname: cleaned, Reason: ReasonInvalidCharacters}
	}
	return Decision{Action: ActionClear, Reason: ReasonInvalid}
}
