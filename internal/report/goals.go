// Package report renders the terminal views: team and session lists and the
// hierarchical goal report.
package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/ashita-ai/mokuhyo/gtmhub"
)

var bold = color.New(color.Bold).SprintFunc()

// FilterGoals keeps goals whose date window contains now (inclusive on both
// ends, lexical ISO-8601 comparison) and whose owner is a team. User-owned
// goals are excluded from the report entirely. The server cannot be trusted
// to filter, so this always runs on the full fetched collection.
func FilterGoals(goals []gtmhub.Goal, now string) []gtmhub.Goal {
	var kept []gtmhub.Goal
	for _, g := range goals {
		if g.DateTo >= now && g.DateFrom <= now && g.Assignee.Type == gtmhub.AssigneeTypeTeam {
			kept = append(kept, g)
		}
	}
	return kept
}

// SortGoals orders goals by (dateFrom, sessionId, assignee name), each
// ascending. Goals equal on all three keys keep their relative order.
func SortGoals(goals []gtmhub.Goal) {
	sort.SliceStable(goals, func(i, j int) bool {
		a, b := goals[i], goals[j]
		if a.DateFrom != b.DateFrom {
			return a.DateFrom < b.DateFrom
		}
		if a.SessionID != b.SessionID {
			return a.SessionID < b.SessionID
		}
		return a.Assignee.Name < b.Assignee.Name
	})
}

// WriteGoalReport filters and sorts the goals, then renders the three-level
// session -> team -> goal report with key-result lines under each goal.
//
// Session titles are resolved against the supplied sessions; a goal whose
// session is absent renders the raw session id instead (the reference is
// soft and a miss is never an error). A session break always opens a new
// team group, even when the same team continues across the boundary.
func WriteGoalReport(w io.Writer, goals []gtmhub.Goal, sessions []gtmhub.Session, now string) {
	filtered := FilterGoals(goals, now)
	SortGoals(filtered)

	titles := make(map[string]string, len(sessions))
	for _, s := range sessions {
		titles[s.ID] = s.Title
	}

	var (
		currentSession string
		currentTeam    string
		haveSession    bool
		haveTeam       bool
	)
	for _, g := range filtered {
		if !haveSession || g.SessionID != currentSession {
			title, ok := titles[g.SessionID]
			if !ok {
				title = g.SessionID
			}
			fmt.Fprintf(w, "* %s (%s to %s)\n", bold(title), datePart(g.DateFrom), datePart(g.DateTo))
			currentSession = g.SessionID
			haveSession = true
			haveTeam = false
		}
		if !haveTeam || g.Assignee.Name != currentTeam {
			fmt.Fprintf(w, "    * %s\n", bold(g.Assignee.Name))
			currentTeam = g.Assignee.Name
			haveTeam = true
		}
		fmt.Fprintf(w, "        * %s (%.0f%%)\n", g.Name, g.Attainment*100)
		for _, m := range g.Metrics {
			fmt.Fprintf(w, "            * KR: %s (%s/%s)\n", m.Name, formatValue(m.Actual), formatValue(m.Target))
		}
	}
}

// datePart strips the time-of-day from an ISO-8601 timestamp. Timestamps
// without a 'T' separator pass through unchanged.
func datePart(ts string) string {
	if day, _, found := strings.Cut(ts, "T"); found {
		return day
	}
	return ts
}

// formatValue renders a metric value exactly, with no rounding and no
// trailing zeros.
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
