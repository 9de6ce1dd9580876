package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/yshiba/mstodo2md/internal/logger"
	"github.com/yshiba/mstodo2md/internal/models"
)

// DefaultBaseURL is the Microsoft Graph To Do lists collection.
const DefaultBaseURL = "https://graph.microsoft.com/v1.0/me/todo/lists"

// StatusError reports a non-success HTTP status from the Graph API.
type StatusError struct {
	StatusCode int
	Status     string
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("graph request %s failed: %s", e.URL, e.Status)
}

// Client talks to the Microsoft Graph To Do API with a bearer token.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// New creates a Client for the given lists base URL and bearer token.
func New(baseURL, token string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		token:      token,
	}
}

// page is the envelope every Graph collection endpoint returns. Value stays
// raw so a page whose value field is not an array can be tolerated.
type page struct {
	Value    json.RawMessage `json:"value"`
	NextLink *string         `json:"@odata.nextLink"`
}

// Lists fetches all pages of the lists collection.
func (c *Client) Lists(ctx context.Context) ([]models.TaskList, error) {
	items, err := c.fetchAll(ctx, c.baseURL)
	if err != nil {
		return nil, err
	}

	lists := make([]models.TaskList, 0, len(items))
	for _, item := range items {
		var list models.TaskList
		if err := json.Unmarshal(item, &list); err != nil {
			return nil, fmt.Errorf("failed to decode task list: %w", err)
		}
		lists = append(lists, list)
	}
	return lists, nil
}

// Tasks fetches all pages of the tasks collection of one list.
func (c *Client) Tasks(ctx context.Context, listID string) ([]models.Task, error) {
	items, err := c.fetchAll(ctx, fmt.Sprintf("%s/%s/tasks", c.baseURL, listID))
	if err != nil {
		return nil, err
	}

	tasks := make([]models.Task, 0, len(items))
	for _, item := range items {
		var task models.Task
		if err := json.Unmarshal(item, &task); err != nil {
			return nil, fmt.Errorf("failed to decode task: %w", err)
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// Validate issues a single authenticated read against the lists collection
// and reports whether the credential was accepted.
func (c *Client) Validate(ctx context.Context) error {
	resp, err := c.get(ctx, c.baseURL)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{StatusCode: resp.StatusCode, Status: resp.Status, URL: c.baseURL}
	}
	return nil
}

// fetchAll drains a cursor-paginated collection starting at url, returning
// the concatenation of every page's value array in server order. Termination
// relies solely on the server eventually omitting the continuation cursor.
func (c *Client) fetchAll(ctx context.Context, url string) ([]json.RawMessage, error) {
	var items []json.RawMessage

	next := url
	for next != "" {
		resp, err := c.get(ctx, next)
		if err != nil {
			return nil, err
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read response from %s: %w", next, err)
		}

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, &StatusError{StatusCode: resp.StatusCode, Status: resp.Status, URL: next}
		}

		var pg page
		if err := json.Unmarshal(body, &pg); err != nil {
			return nil, fmt.Errorf("failed to parse page from %s: %w", next, err)
		}

		// A page whose value field is absent or not an array counts as
		// empty; the cursor, if any, is still followed.
		var value []json.RawMessage
		if len(pg.Value) > 0 {
			if err := json.Unmarshal(pg.Value, &value); err != nil {
				logger.Warn("Ignoring non-array value field in collection page", map[string]interface{}{
					"url": next,
				})
				value = nil
			}
		}
		items = append(items, value...)

		if pg.NextLink == nil {
			break
		}
		next = *pg.NextLink
	}

	return items, nil
}

// get issues one authenticated request. The continuation cursor is used
// verbatim as the request URL.
func (c *Client) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", url, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", url, err)
	}
	return resp, nil
}
