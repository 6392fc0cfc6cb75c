package cmp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// paginationCap guards list endpoints against malformed or cyclic
// pagination.next links.
const paginationCap = 5000

// ErrAuthFailed marks a 401 that survived the one-shot token refresh.
var ErrAuthFailed = errors.New("cmp authorization failed after token refresh")

// APIError is any non-2xx CMP response that is not a recovered 401.
type APIError struct {
	Method string
	Path   string
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("cmp %s %s returned %d: %s", e.Method, e.Path, e.Status, e.Body)
}

// Client talks to the CMP API on behalf of one credential. Safe for
// concurrent use.
type Client struct {
	baseURL  string
	http     *http.Client
	provider tokenProvider
	cache    *tokenCache
}

// NewClient builds a client for one CMP credential.
func NewClient(baseURL, tokenURL, clientID, clientSecret string) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: 30 * time.Second},
		provider: newOAuthProvider(tokenURL, clientID, clientSecret),
		cache:    &tokenCache{},
	}
}

// Template is a CMP work-request template summary.
type Template struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Workflow is a CMP workflow summary.
type Workflow struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// WorkRequest is the created remote resource.
type WorkRequest struct {
	ID string `json:"id"`
}

type listPage[T any] struct {
	Data       []T `json:"data"`
	Pagination struct {
		Next string `json:"next"`
	} `json:"pagination"`
}

// doJSON executes one authenticated request. On the first 401 it
// invalidates the cached token, refetches, and retries exactly once; a
// second 401 is fatal.
func (c *Client) doJSON(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	raw, err := c.doRaw(ctx, method, path, body)
	if err != nil {
		return err
	}
	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("cmp %s %s: decode error: %w", method, path, err)
		}
	}
	return nil
}

func (c *Client) doRaw(ctx context.Context, method, path string, body interface{}) ([]byte, error) {
	retried := false
	for {
		token, err := c.cache.get(ctx, c.provider)
		if err != nil {
			return nil, err
		}

		var reader io.Reader
		if body != nil {
			b, err := json.Marshal(body)
			if err != nil {
				return nil, err
			}
			reader = bytes.NewReader(b)
		}

		req, err := http.NewRequestWithContext(ctx, method, c.url(path), reader)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Accept", "application/json")
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		res, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		raw, _ := io.ReadAll(res.Body)
		res.Body.Close()

		if res.StatusCode == http.StatusUnauthorized {
			if retried {
				return nil, fmt.Errorf("%w: %s %s", ErrAuthFailed, method, path)
			}
			// expired or revoked token: drop it and go around once more
			c.cache.invalidate()
			retried = true
			continue
		}
		if res.StatusCode < 200 || res.StatusCode > 299 {
			return nil, &APIError{Method: method, Path: path, Status: res.StatusCode, Body: string(raw)}
		}
		return raw, nil
	}
}

func (c *Client) url(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return c.baseURL + path
}

// ListTemplates walks every page of the templates endpoint.
func (c *Client) ListTemplates(ctx context.Context) ([]Template, error) {
	return listAll[Template](ctx, c, "/v3/work-request-templates")
}

// ListWorkflows walks every page of the workflows endpoint.
func (c *Client) ListWorkflows(ctx context.Context) ([]Workflow, error) {
	return listAll[Workflow](ctx, c, "/v3/workflows")
}

// GetTemplate fetches one template with its full field definitions as raw
// JSON; the admin panel snapshots it into a Form.
func (c *Client) GetTemplate(ctx context.Context, id string) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.doJSON(ctx, http.MethodGet, "/v3/work-request-templates/"+id, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// listAll follows pagination.next until absent or the safety cap is hit.
func listAll[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	var items []T
	next := path
	for next != "" {
		var page listPage[T]
		if err := c.doJSON(ctx, http.MethodGet, next, nil, &page); err != nil {
			return nil, err
		}
		items = append(items, page.Data...)
		if len(items) >= paginationCap {
			items = items[:paginationCap]
			break
		}
		next = page.Pagination.Next
	}
	return items, nil
}

// CreateWorkRequestInput is the create-request body.
type CreateWorkRequestInput struct {
	TemplateID string        `json:"template_id"`
	FormFields []interface{} `json:"form_fields"`
	WorkflowID string        `json:"workflow_id,omitempty"`
}

// CreateWorkRequest creates the remote work request and returns its id.
func (c *Client) CreateWorkRequest(ctx context.Context, input CreateWorkRequestInput) (*WorkRequest, error) {
	var out WorkRequest
	if err := c.doJSON(ctx, http.MethodPost, "/v3/work-requests", input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
