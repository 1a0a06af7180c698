package report_test

import (
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashita-ai/mokuhyo/gtmhub"
	"github.com/ashita-ai/mokuhyo/internal/report"
)

func TestMain(m *testing.M) {
	// Deterministic output regardless of the test environment's terminal.
	color.NoColor = true
	os.Exit(m.Run())
}

const now = "2024-06-15T00:00:00Z"

func goal(name, from, to, sessionID, team string, attainment float64) gtmhub.Goal {
	return gtmhub.Goal{
		Name:       name,
		DateFrom:   from,
		DateTo:     to,
		SessionID:  sessionID,
		Attainment: attainment,
		Assignee:   gtmhub.Assignee{Name: team, Type: gtmhub.AssigneeTypeTeam},
	}
}

func render(goals []gtmhub.Goal, sessions []gtmhub.Session) string {
	var sb strings.Builder
	report.WriteGoalReport(&sb, goals, sessions, now)
	return sb.String()
}

func TestFilterGoalsKeepsCurrentTeamGoals(t *testing.T) {
	in := goal("in window", "2024-01-01T00:00:00Z", "2024-12-31T23:59:59Z", "s1", "Platform", 0)
	kept := report.FilterGoals([]gtmhub.Goal{in}, now)
	assert.Len(t, kept, 1)
}

func TestFilterGoalsExcludesUserOwnedGoals(t *testing.T) {
	g := goal("user goal", "2024-01-01T00:00:00Z", "2024-12-31T23:59:59Z", "s1", "Alice", 0)
	g.Assignee.Type = "user"
	kept := report.FilterGoals([]gtmhub.Goal{g}, now)
	assert.Empty(t, kept)
}

func TestFilterGoalsExcludesOutsideWindow(t *testing.T) {
	past := goal("ended", "2024-01-01T00:00:00Z", "2024-03-31T23:59:59Z", "s1", "Platform", 0)
	future := goal("not started", "2024-07-01T00:00:00Z", "2024-09-30T23:59:59Z", "s1", "Platform", 0)
	kept := report.FilterGoals([]gtmhub.Goal{past, future}, now)
	assert.Empty(t, kept)
}

func TestFilterGoalsWindowBoundsAreInclusive(t *testing.T) {
	startsNow := goal("starts now", now, "2024-12-31T23:59:59Z", "s1", "Platform", 0)
	endsNow := goal("ends now", "2024-01-01T00:00:00Z", now, "s1", "Platform", 0)
	kept := report.FilterGoals([]gtmhub.Goal{startsNow, endsNow}, now)
	assert.Len(t, kept, 2)
}

func TestSortGoalsCompositeKeyOrdering(t *testing.T) {
	goals := []gtmhub.Goal{
		goal("c", "2024-02-01", "2024-12-31", "S1", "A", 0),
		goal("b", "2024-01-01", "2024-12-31", "S2", "A", 0),
		goal("a", "2024-01-01", "2024-12-31", "S1", "A", 0),
	}
	report.SortGoals(goals)

	names := []string{goals[0].Name, goals[1].Name, goals[2].Name}
	assert.Equal(t, []string{"a", "b", "c"}, names)
}

func TestSortGoalsTieBreaksOnAssigneeName(t *testing.T) {
	goals := []gtmhub.Goal{
		goal("second", "2024-01-01", "2024-12-31", "S1", "Zeta", 0),
		goal("first", "2024-01-01", "2024-12-31", "S1", "Alpha", 0),
	}
	report.SortGoals(goals)
	assert.Equal(t, "first", goals[0].Name)
}

func TestSortGoalsIsStable(t *testing.T) {
	goals := []gtmhub.Goal{
		goal("one", "2024-01-01", "2024-12-31", "S1", "A", 0),
		goal("two", "2024-01-01", "2024-12-31", "S1", "A", 0),
		goal("three", "2024-01-01", "2024-12-31", "S1", "A", 0),
	}
	report.SortGoals(goals)

	names := []string{goals[0].Name, goals[1].Name, goals[2].Name}
	assert.Equal(t, []string{"one", "two", "three"}, names)
}

func TestGoalReportGroupBreaks(t *testing.T) {
	sessions := []gtmhub.Session{
		{ID: "s1", Title: "Q2 2024"},
		{ID: "s2", Title: "H2 2024"},
	}
	goals := []gtmhub.Goal{
		goal("g1", "2024-04-01T00:00:00Z", "2024-06-30T23:59:59Z", "s1", "Platform", 0.5),
		goal("g2", "2024-04-01T00:00:00Z", "2024-06-30T23:59:59Z", "s1", "Platform", 0.25),
		goal("g3", "2024-04-01T00:00:00Z", "2024-06-30T23:59:59Z", "s1", "Sales", 1),
		// Same team as g3 but a new session: the team sub-header must repeat.
		goal("g4", "2024-06-01T00:00:00Z", "2024-12-31T23:59:59Z", "s2", "Sales", 0),
	}

	got := render(goals, sessions)
	want := "" +
		"* Q2 2024 (2024-04-01 to 2024-06-30)\n" +
		"    * Platform\n" +
		"        * g1 (50%)\n" +
		"        * g2 (25%)\n" +
		"    * Sales\n" +
		"        * g3 (100%)\n" +
		"* H2 2024 (2024-06-01 to 2024-12-31)\n" +
		"    * Sales\n" +
		"        * g4 (0%)\n"
	assert.Equal(t, want, got)
}

func TestGoalReportDanglingSessionRendersRawID(t *testing.T) {
	g := goal("orphan", "2024-01-01T00:00:00Z", "2024-12-31T23:59:59Z", "missing-session", "Platform", 0.1)
	got := render([]gtmhub.Goal{g}, nil)
	assert.Contains(t, got, "* missing-session (2024-01-01 to 2024-12-31)\n")
}

func TestGoalReportStripsTimeOfDayOnlyWhenPresent(t *testing.T) {
	g := goal("no separator", "2024-01-01", "2024-12-31", "s1", "Platform", 0)
	got := render([]gtmhub.Goal{g}, nil)
	assert.Contains(t, got, "(2024-01-01 to 2024-12-31)")
}

func TestGoalReportRoundsAttainmentToWholePercent(t *testing.T) {
	g := goal("almost", "2024-01-01T00:00:00Z", "2024-12-31T23:59:59Z", "s1", "Platform", 0.666)
	got := render([]gtmhub.Goal{g}, nil)
	assert.Contains(t, got, "* almost (67%)\n")
}

func TestGoalReportRendersMetricsInOriginalOrder(t *testing.T) {
	g := goal("with KRs", "2024-01-01T00:00:00Z", "2024-12-31T23:59:59Z", "s1", "Platform", 0.2)
	g.Metrics = []gtmhub.Metric{
		{Name: "z metric", Actual: 2.5, Target: 3},
		{Name: "a metric", Actual: 10, Target: 100},
	}

	got := render([]gtmhub.Goal{g}, nil)
	zIdx := strings.Index(got, "            * KR: z metric (2.5/3)\n")
	aIdx := strings.Index(got, "            * KR: a metric (10/100)\n")
	require.GreaterOrEqual(t, zIdx, 0)
	require.GreaterOrEqual(t, aIdx, 0)
	assert.Less(t, zIdx, aIdx, "metrics must keep their fetched order")
}

func TestGoalReportFiltersBeforeRendering(t *testing.T) {
	stale := goal("stale", "2023-01-01T00:00:00Z", "2023-12-31T23:59:59Z", "s1", "Platform", 1)
	got := render([]gtmhub.Goal{stale}, nil)
	assert.Empty(t, got)
}
