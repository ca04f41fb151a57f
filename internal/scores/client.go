package scores

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
)

// Client talks to a score service over HTTP.
type Client struct {
	base string
	hc   *http.Client
}

var _ Board = (*Client)(nil)

// NewClient targets baseURL, e.g. "http://localhost:8080". A nil hc uses a
// client with a ten second timeout.
func NewClient(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{base: strings.TrimRight(baseURL, "/"), hc: hc}
}

func (c *Client) Submit(ctx context.Context, sub Submission) (Result, error) {
	body, err := json.Marshal(sub)
	if err != nil {
		return Result{}, fmt.Errorf("encode submission: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/scores", bytes.NewReader(body))
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("submit score: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		var e Entry
		if err := json.NewDecoder(resp.Body).Decode(&e); err != nil {
			return Result{}, fmt.Errorf("decode entry: %w", err)
		}
		return Result{Entry: e, Created: resp.StatusCode == http.StatusCreated}, nil
	case http.StatusConflict:
		return Result{}, ErrProfileRequired
	default:
		return Result{}, responseError(resp)
	}
}

func (c *Client) Lookup(ctx context.Context, id string) (Entry, error) {
	var out lookupResponse
	if err := c.getJSON(ctx, "/scores?id="+url.QueryEscape(id), &out); err != nil {
		return Entry{}, err
	}
	if !out.Exists || out.Entry == nil {
		return Entry{}, ErrNotFound
	}
	return *out.Entry, nil
}

func (c *Client) List(ctx context.Context, limit int) ([]Entry, error) {
	var out []Entry
	if err := c.getJSON(ctx, "/scores?limit="+strconv.Itoa(ClampLimit(limit)), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("get %s: %w", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return responseError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// responseError maps an error response back to the package's sentinels.
func responseError(resp *http.Response) error {
	var body struct {
		Error string `json:"error"`
	}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	_ = json.Unmarshal(data, &body)
	msg := body.Error
	if msg == "" {
		msg = resp.Status
	}
	if resp.StatusCode == http.StatusBadRequest {
		msg = strings.TrimPrefix(msg, ErrInvalid.Error()+": ")
		return fmt.Errorf("%w: %s", ErrInvalid, msg)
	}
	return fmt.Errorf("score service: %s", msg)
}
