package gtmhub

// Team is a GTMHub team record. All fields are opaque display values; no
// cross-entity validation is performed.
type Team struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ParentID    string `json:"parentId"`
	AccountID   string `json:"accountId"`
	Description string `json:"description"`
	Avatar      string `json:"avatar"`
	DateCreated string `json:"dateCreated"`
}

// Session is a planning session: a named time-boxed period goals belong to.
// Start and End are ISO-8601 timestamps in a fixed zero-padded UTC format,
// so lexical comparison equals chronological comparison.
type Session struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Start     string `json:"start"`
	End       string `json:"end"`
	Status    string `json:"status"`
	AccountID string `json:"accountId"`
	ParentID  string `json:"parentId"`
}

// SessionStatusClosed is the one status value with defined semantics: the
// default sessions view excludes closed sessions.
const SessionStatusClosed = "closed"

// Assignee is the owner of a goal or metric, either a team or a user.
type Assignee struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AccountID string `json:"accountId"`
	Avatar    string `json:"avatar"`
	Type      string `json:"type"` // "team" or "user"
}

// AssigneeTypeTeam marks team-owned goals; the goal report keeps only these.
const AssigneeTypeTeam = "team"

// Confidence is an optional self-reported confidence attached to a metric.
// It is not rendered anywhere yet but must survive decoding.
type Confidence struct {
	Date   string  `json:"date"`
	Reason string  `json:"reason"`
	UserID string  `json:"userId"`
	Value  float64 `json:"value"`
}

// Metric is a key result. Attainment is reported as Actual against Target;
// the client never recomputes it.
type Metric struct {
	Name           string      `json:"name"`
	Actual         float64     `json:"actual"`
	Target         float64     `json:"target"`
	Description    *string     `json:"description,omitempty"`
	Assignee       *Assignee   `json:"assignee,omitempty"`
	Critical       *float64    `json:"critical,omitempty"`
	Confidence     *Confidence `json:"confidence,omitempty"`
	DueDate        *string     `json:"dueDate,omitempty"`
	InitialValue   *float64    `json:"initialValue,omitempty"`
	ManualType     *string     `json:"manualType,omitempty"`
	SessionID      *string     `json:"sessionId,omitempty"`
	TargetOperator *string     `json:"targetOperator,omitempty"`
}

// Goal is an objective. SessionID is a soft reference: the session it names
// may be absent from a fetched session collection and renderers must
// tolerate that. Attainment is a fraction in [0,1].
type Goal struct {
	ID                   string   `json:"id"`
	Name                 string   `json:"name"`
	URL                  string   `json:"url"`
	AccountID            string   `json:"accountId"`
	SessionID            string   `json:"sessionId"`
	DateFrom             string   `json:"dateFrom"`
	DateTo               string   `json:"dateTo"`
	DateCreated          string   `json:"dateCreated"`
	Attainment           float64  `json:"attainment"`
	AggregatedAttainment *float64 `json:"aggregatedAttainment,omitempty"`
	AttainmentType       *string  `json:"attainmentTypeString,omitempty"`
	Description          *string  `json:"description,omitempty"`
	Assignee             Assignee `json:"assignee"`
	Metrics              []Metric `json:"metrics"`
}

// TeamsResult is the decoded response of GET /teams.
type TeamsResult struct {
	Items      []Team `json:"items"`
	TotalCount int64  `json:"totalCount"`
}

// SessionsResult is the decoded response of GET /sessions.
type SessionsResult struct {
	Items      []Session `json:"items"`
	TotalCount int64     `json:"totalCount"`
}

// GoalsResult is the decoded response of GET /goals.
type GoalsResult struct {
	Items      []Goal `json:"items"`
	TotalCount int64  `json:"totalCount"`
}
