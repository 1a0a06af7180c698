package gtmhub

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

const defaultBaseURL = "https://app.us.gtmhub.com/api/v1"

// userAgent identifies the client; the version segment is bumped with
// releases.
const userAgent = "mokuhyo-go/0.1.0"

// maxErrorBodyLen bounds how much of an error response body is carried in
// an APIError.
const maxErrorBodyLen = 512

// goalFields is the field subset requested from GET /goals. The server
// ignores unknown names, so this doubles as documentation of what the
// report consumes.
const goalFields = "accountId,sessionId,assignee,attainment,attainmentType," +
	"dateCreated,dateFrom,dateTo,description,fullAggregatedAttainment,id," +
	"metrics{id,confidence,name,attainment,description,actual,target},name,url"

const sessionFields = "id,accountId,end,parentId,start,status,title"

// Config holds the settings needed to construct a Client.
type Config struct {
	// AccountID scopes every request via the gtmhub-accountId header.
	AccountID string

	// APIToken is the bearer token for the Authorization header.
	APIToken string

	// BaseURL overrides the production API root. Mostly for tests.
	BaseURL string

	// HTTPClient is an optional custom HTTP client. If nil, a client with
	// Timeout applied is used.
	HTTPClient *http.Client

	// Timeout applies to individual API requests when HTTPClient is nil.
	// Zero means no timeout; interruption is handled via context.
	Timeout time.Duration
}

// Client is an HTTP client for the GTMHub reporting API. It only issues
// GET requests and is safe for concurrent use.
type Client struct {
	baseURL   string
	accountID string
	apiToken  string
	requestID string
	client    *http.Client
}

// NewClient creates a Client from the given configuration.
// Returns an error if AccountID or APIToken is empty.
func NewClient(cfg Config) (*Client, error) {
	if cfg.AccountID == "" {
		return nil, fmt.Errorf("gtmhub: AccountID is required")
	}
	if cfg.APIToken == "" {
		return nil, fmt.Errorf("gtmhub: APIToken is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		baseURL:   baseURL,
		accountID: cfg.AccountID,
		apiToken:  cfg.APIToken,
		requestID: uuid.NewString(),
		client:    httpClient,
	}, nil
}

// Teams retrieves all teams visible to the account.
func (c *Client) Teams(ctx context.Context) (*TeamsResult, error) {
	var out TeamsResult
	if err := c.get(ctx, "/teams", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Sessions retrieves planning sessions, server-sorted by start ascending.
func (c *Client) Sessions(ctx context.Context) (*SessionsResult, error) {
	params := url.Values{}
	params.Set("fields", sessionFields)
	params.Set("sort", "start")

	var out SessionsResult
	if err := c.get(ctx, "/sessions", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Goals retrieves goals with their nested metrics. The server-side sort is
// requested as a courtesy only; the server's filter/limit/skip parameters
// are unreliable, so callers must treat the result as unfiltered and apply
// their own selection.
func (c *Client) Goals(ctx context.Context) (*GoalsResult, error) {
	params := url.Values{}
	params.Set("fields", goalFields)
	params.Set("sort", "-dateTo,sessionId,assignee.name")

	var out GoalsResult
	if err := c.get(ctx, "/goals", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, dest any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return &TransportError{Endpoint: path, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Authorization", "Bearer "+c.apiToken)
	req.Header.Set("gtmhub-accountId", c.accountID)
	req.Header.Set("X-Request-Id", c.requestID)

	slog.Debug("gtmhub request", "url", u)

	resp, err := c.client.Do(req)
	if err != nil {
		return &TransportError{Endpoint: path, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Endpoint: path, Err: err}
	}

	slog.Debug("gtmhub response", "url", u, "status", resp.StatusCode, "bytes", len(body))

	if resp.StatusCode >= 400 {
		excerpt := strings.TrimSpace(string(body))
		if len(excerpt) > maxErrorBodyLen {
			excerpt = excerpt[:maxErrorBodyLen]
		}
		return &APIError{StatusCode: resp.StatusCode, Endpoint: path, Body: excerpt}
	}

	if err := json.Unmarshal(body, dest); err != nil {
		return &DecodeError{Endpoint: path, Err: err}
	}
	return nil
}
