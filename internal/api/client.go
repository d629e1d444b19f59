package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/valyala/fasttemplate"

	"github.com/idilsaglam/items/internal/model"
)

const (
	collectionPath = "/items"
	itemPathTmpl   = "/items/{{id}}"
)

// Options configure a Client. Root is the API origin, e.g. http://localhost:3000.
type Options struct {
	Root       string
	Token      string
	Timeout    time.Duration // 0 leaves the transport default
	Logger     *log.Logger
	HTTPClient *http.Client
}

// Client talks to the items API. It holds no per-request state and is safe
// for concurrent use.
type Client struct {
	root   string
	token  string
	http   *http.Client
	logger *log.Logger
}

func New(opt Options) *Client {
	hc := opt.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opt.Timeout}
	}
	logger := opt.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Client{
		root:   strings.TrimRight(opt.Root, "/"),
		token:  strings.TrimSpace(opt.Token),
		http:   hc,
		logger: logger,
	}
}

// Root returns the origin requests are sent to.
func (c *Client) Root() string { return c.root }

// Request is one round trip against the API. Body is JSON-encoded; RawBody is
// sent verbatim and wins over Body.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    any
	RawBody []byte
}

// Exchange is the request/response record shown after every action. It is
// rebuilt for each action and never stored.
type Exchange struct {
	Method       string `json:"method"`
	URL          string `json:"url"`
	Status       int    `json:"status"`
	StatusText   string `json:"statusText"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	RequestBody  string `json:"requestBody,omitempty"`
	ResponseBody string `json:"responseBody,omitempty"`
	IsError      bool   `json:"isError"`
}

// ItemPath renders /items/{id}.
func ItemPath(id int) string {
	return fasttemplate.New(itemPathTmpl, "{{", "}}").ExecuteString(map[string]interface{}{
		"id": strconv.Itoa(id),
	})
}

func (r Request) target() string {
	p := r.Path
	if len(r.Query) > 0 {
		p += "?" + r.Query.Encode()
	}
	return p
}

// Do sends req and always returns a populated Exchange. The error is a
// *NetworkError when the request never completed and an *HTTPError for
// non-2xx responses. The raw response body is returned for decoding.
func (c *Client) Do(ctx context.Context, req Request) (*Exchange, []byte, error) {
	target := req.target()
	ex := &Exchange{
		Method: req.Method,
		URL:    c.root + target,
		Title:  req.Method + " " + target,
	}

	payload := req.RawBody
	if payload == nil && req.Body != nil {
		b, err := json.Marshal(req.Body)
		if err != nil {
			return ex, nil, fmt.Errorf("encode body: %w", err)
		}
		payload = b
	}
	if payload != nil {
		ex.RequestBody = string(payload)
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	hreq, err := http.NewRequestWithContext(ctx, req.Method, ex.URL, body)
	if err != nil {
		return ex, nil, fmt.Errorf("build request: %w", err)
	}
	hreq.Header.Set("Accept", "application/json")
	if payload != nil {
		hreq.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		hreq.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(hreq)
	if err != nil {
		c.logger.Debug("request failed", "method", req.Method, "url", ex.URL, "err", err)
		ex.StatusText = "Network Error"
		ex.IsError = true
		ex.Description = Describe(0, describeVars(ex))
		return ex, nil, &NetworkError{Method: req.Method, URL: ex.URL, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Debug("read body failed", "method", req.Method, "url", ex.URL, "err", err)
		ex.StatusText = "Network Error"
		ex.IsError = true
		ex.Description = Describe(0, describeVars(ex))
		return ex, nil, &NetworkError{Method: req.Method, URL: ex.URL, Err: err}
	}
	c.logger.Debug("request", "method", req.Method, "url", ex.URL, "status", resp.StatusCode, "duration", time.Since(start))

	ex.Status = resp.StatusCode
	ex.StatusText = http.StatusText(resp.StatusCode)
	ex.ResponseBody = strings.TrimSpace(string(raw))
	ex.IsError = !ok(resp.StatusCode)
	ex.Description = Describe(resp.StatusCode, describeVars(ex))

	if ex.IsError {
		return ex, raw, &HTTPError{
			Status:     resp.StatusCode,
			StatusText: ex.StatusText,
			Message:    errorMessage(raw),
		}
	}
	return ex, raw, nil
}

func ok(status int) bool { return status >= 200 && status < 300 }

// errorMessage pulls the "error" field out of a JSON error body.
func errorMessage(raw []byte) string {
	var eb model.ErrorBody
	if err := json.Unmarshal(raw, &eb); err != nil {
		return ""
	}
	return strings.TrimSpace(eb.Error)
}

// List fetches the whole collection.
func (c *Client) List(ctx context.Context) (model.ItemList, *Exchange, error) {
	var out model.ItemList
	ex, raw, err := c.Do(ctx, Request{Method: http.MethodGet, Path: collectionPath})
	if err != nil {
		return out, ex, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		// a 2xx the console cannot use is still a failed action
		ex.IsError = true
		return out, ex, fmt.Errorf("decode items: %w", err)
	}
	if out.Items == nil {
		out.Items = []model.Item{}
	}
	return out, ex, nil
}

// Create posts a new item and returns the server's copy.
func (c *Client) Create(ctx context.Context, in model.ItemInput) (model.Item, *Exchange, error) {
	var out model.Item
	ex, raw, err := c.Do(ctx, Request{Method: http.MethodPost, Path: collectionPath, Body: in})
	if err != nil {
		return out, ex, err
	}
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &out); err != nil {
			ex.IsError = true
			return out, ex, fmt.Errorf("decode item: %w", err)
		}
	}
	return out, ex, nil
}

// Update replaces name and quantity of item id.
func (c *Client) Update(ctx context.Context, id int, in model.ItemInput) (model.Item, *Exchange, error) {
	var out model.Item
	ex, raw, err := c.Do(ctx, Request{Method: http.MethodPut, Path: ItemPath(id), Body: in})
	if err != nil {
		return out, ex, err
	}
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &out); err != nil {
			ex.IsError = true
			return out, ex, fmt.Errorf("decode item: %w", err)
		}
	}
	return out, ex, nil
}

// Delete removes item id. The response body is not interpreted.
func (c *Client) Delete(ctx context.Context, id int) (*Exchange, error) {
	ex, _, err := c.Do(ctx, Request{Method: http.MethodDelete, Path: ItemPath(id)})
	return ex, err
}
