package report

import (
	"fmt"
	"io"

	"github.com/ashita-ai/mokuhyo/gtmhub"
)

// Mode selects which sessions the sessions view shows.
type Mode int

const (
	// ModeOpen keeps sessions that are not closed. The default.
	ModeOpen Mode = iota
	// ModeAll keeps everything.
	ModeAll
	// ModeCurrent keeps sessions whose time window contains now, bounds
	// inclusive on both ends.
	ModeCurrent
)

// FilterSessions applies the mode to the fetched sessions. Comparisons are
// lexical on the fixed-format ISO-8601 Start/End strings.
func FilterSessions(items []gtmhub.Session, mode Mode, now string) []gtmhub.Session {
	switch mode {
	case ModeAll:
		return items
	case ModeCurrent:
		var kept []gtmhub.Session
		for _, s := range items {
			if s.End >= now && s.Start <= now {
				kept = append(kept, s)
			}
		}
		return kept
	default:
		var kept []gtmhub.Session
		for _, s := range items {
			if s.Status != gtmhub.SessionStatusClosed {
				kept = append(kept, s)
			}
		}
		return kept
	}
}

// WriteSessions renders one line per session, optionally prefixed with the id.
func WriteSessions(w io.Writer, sessions []gtmhub.Session, withIDs bool) {
	for _, s := range sessions {
		if withIDs {
			fmt.Fprintf(w, "* %s: %s (%s)\n", s.ID, s.Title, s.Status)
		} else {
			fmt.Fprintf(w, "* %s (%s)\n", s.Title, s.Status)
		}
	}
}
