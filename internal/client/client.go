// Package client talks to the task API over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ZhuneIDS/apitareas/internal/model"
)

// Session is the authenticated identity of a client.
type Session struct {
	Username string `json:"username"`
	Token    string `json:"token"`
}

// LoggedIn reports whether s carries a token.
func (s *Session) LoggedIn() bool {
	return s != nil && s.Token != ""
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type taskBody struct {
	Title       string `json:"titulo"`
	Description string `json:"descripcion"`
}

type errorBody struct {
	Error string `json:"error"`
}

// Client is an HTTP client of the task API. It holds no session state;
// authenticated calls take the session explicitly.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// defaultTimeout bounds each request made with the default HTTP client.
const defaultTimeout = 10 * time.Second

// New creates a Client for the API at baseURL. A nil httpClient means a
// client with defaultTimeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// Register creates a user account.
func (c *Client) Register(ctx context.Context, username, password string) error {
	return c.do(ctx, http.MethodPost, "/register", nil, credentials{username, password}, nil)
}

// Login exchanges credentials for a session.
func (c *Client) Login(ctx context.Context, username, password string) (*Session, error) {
	var out struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/login", nil, credentials{username, password}, &out); err != nil {
		return nil, err
	}
	return &Session{Username: username, Token: out.Token}, nil
}

// ListTasks returns every task.
func (c *Client) ListTasks(ctx context.Context, s *Session) ([]model.Task, error) {
	var tasks []model.Task
	if err := c.do(ctx, http.MethodGet, "/tareas", s, nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// CreateTask adds a task and returns it with its assigned id.
func (c *Client) CreateTask(ctx context.Context, s *Session, title, description string) (model.Task, error) {
	var task model.Task
	err := c.do(ctx, http.MethodPost, "/tareas", s, taskBody{title, description}, &task)
	return task, err
}

// UpdateTask replaces the title and description of task id.
func (c *Client) UpdateTask(ctx context.Context, s *Session, id int64, title, description string) (model.Task, error) {
	var task model.Task
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/tareas/%d", id), s, taskBody{title, description}, &task)
	return task, err
}

// DeleteTask removes task id. Deleting an absent task succeeds.
func (c *Client) DeleteTask(ctx context.Context, s *Session, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/tareas/%d", id), s, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, s *Session, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.LoggedIn() {
		req.Header.Set("Authorization", "Bearer "+s.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var eb errorBody
		_ = json.NewDecoder(resp.Body).Decode(&eb)
		return newAPIError(resp.StatusCode, eb.Error)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}
