package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tableflip.dev/dayplan/pkg/task"
)

// DefaultTimeout bounds each request when no other timeout is configured.
const DefaultTimeout = 10 * time.Second

// Client talks to a {code,msg,data} envelope REST backend.
type Client struct {
	base       string
	httpClient *http.Client
}

var _ Gateway = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient swaps the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// NewClient targets {baseURL}/api/tasks.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		base:       strings.TrimRight(baseURL, "/") + "/api/tasks",
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type envelope struct {
	Code *int            `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

// GetAll implements Gateway.
func (c *Client) GetAll(ctx context.Context) ([]task.Task, error) {
	var tasks []task.Task
	if err := c.do(ctx, http.MethodGet, c.base, nil, &tasks, false); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []task.Task{}
	}
	return tasks, nil
}

// Create implements Gateway. A plain-text acknowledgement yields an empty
// record; a JSON success must carry the stored task.
func (c *Client) Create(ctx context.Context, d task.Draft) (*task.Task, error) {
	var out task.Task
	if err := c.do(ctx, http.MethodPost, c.base, d, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update implements Gateway. Like Create, a JSON success without the
// updated task is malformed.
func (c *Client) Update(ctx context.Context, id string, p task.Patch) (*task.Task, error) {
	var out task.Task
	if err := c.do(ctx, http.MethodPut, c.base+"/"+url.PathEscape(id), p, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete implements Gateway. The payload is ignored.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, c.base+"/"+url.PathEscape(id), nil, nil, false)
}

// do sends one request and unwraps the envelope payload into out. A JSON
// success without a payload leaves out untouched unless needData is set.
func (c *Client) do(ctx context.Context, method, target string, body, out interface{}, needData bool) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("gateway: encode %s body: %w", method, err)
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	req.Header.Set("bypass-tunnel-reminder", "true")
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("gateway: %s %s: %v", method, target, err)
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read body: %v", ErrTransport, err)
	}
	return decode(method, resp.StatusCode, resp.Header.Get("Content-Type"), raw, out, needData)
}

func decode(method string, status int, contentType string, raw []byte, out interface{}, needData bool) error {
	text := strings.TrimSpace(string(raw))
	if status < 200 || status > 299 {
		log.Printf("gateway: %s HTTP %d: %s", method, status, text)
		return fmt.Errorf("%w: HTTP %d", ErrStatus, status)
	}

	if !strings.Contains(strings.ToLower(contentType), "application/json") {
		if strings.EqualFold(text, "ok") || strings.Contains(text, "200") {
			return nil
		}
		if lower := strings.ToLower(text); strings.HasPrefix(lower, "<!doctype html") || strings.HasPrefix(lower, "<html") {
			log.Printf("gateway: warning: %s received HTML instead of JSON, check api.base_url", method)
		}
		return fmt.Errorf("%w: content type %q", ErrMalformed, contentType)
	}

	var env envelope
	if err := json.Unmarshal([]byte(text), &env); err != nil {
		log.Printf("gateway: %s could not parse body as JSON: %s", method, text)
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if env.Code == nil || (*env.Code != 200 && *env.Code != 0) {
		code := -1
		if env.Code != nil {
			code = *env.Code
		}
		log.Printf("gateway: %s business failure %d: %s", method, code, env.Msg)
		return fmt.Errorf("%w: code %d: %s", ErrBusiness, code, env.Msg)
	}
	if out == nil {
		return nil
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		if needData {
			log.Printf("gateway: %s success without a record", method)
			return fmt.Errorf("%w: no data in reply", ErrMalformed)
		}
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		log.Printf("gateway: %s unexpected payload: %s", method, env.Data)
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return nil
}
