// Package client is a Go client for the NoteVault API. Calls degrade to a
// bundled sample dataset when the backend is unreachable or failing, so a
// consuming UI keeps rendering during an outage.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type Note struct {
	ID           string `json:"id"`
	Branch       string `json:"branch"`
	Subject      string `json:"subject"`
	Topic        string `json:"topic"`
	Description  string `json:"description,omitempty"`
	FilePath     string `json:"filePath"`
	OriginalName string `json:"originalName"`
	UploadDate   string `json:"uploadDate"`
}

type Summary struct {
	Source  string `json:"source"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
}

type SearchData struct {
	Internal []Note   `json:"internal"`
	External *Summary `json:"external"`
}

// NotesResult is either live data (Offline false) or the sample dataset
// substituted after a connection failure or 5xx (Offline true).
type NotesResult struct {
	Notes         []Note
	Offline       bool
	OfflineReason string
}

type SearchResult struct {
	Data          SearchData
	Offline       bool
	OfflineReason string
}

type Client struct {
	baseURL string
	httpc   *http.Client
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpc = h }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RecentNotes fetches /api/notes. Connection failures and 5xx responses are
// treated uniformly as "backend offline" and answered from the sample set;
// 4xx responses surface as errors.
func (c *Client) RecentNotes(ctx context.Context) (NotesResult, error) {
	var notes []Note
	offlineReason, err := c.getJSON(ctx, "/api/notes", &notes)
	if err != nil {
		return NotesResult{}, err
	}
	if offlineReason != "" {
		return NotesResult{
			Notes:         SampleNotes(),
			Offline:       true,
			OfflineReason: offlineReason,
		}, nil
	}
	return NotesResult{Notes: notes}, nil
}

// Search queries /api/search. Offline, it runs a case-insensitive substring
// match over the sample subjects/topics and always attaches the offline
// summary card; this is a deliberately simpler policy than the server's
// sparse-result threshold.
func (c *Client) Search(ctx context.Context, query, branch string) (SearchResult, error) {
	path := "/api/search?q=" + url.QueryEscape(query)
	if branch != "" {
		path += "&branch=" + url.QueryEscape(branch)
	}
	var data SearchData
	offlineReason, err := c.getJSON(ctx, path, &data)
	if err != nil {
		return SearchResult{}, err
	}
	if offlineReason != "" {
		return SearchResult{
			Data:          offlineSearch(query),
			Offline:       true,
			OfflineReason: offlineReason,
		}, nil
	}
	return SearchResult{Data: data}, nil
}

// getJSON decodes the response into out. The returned string is non-empty
// when the caller should switch to offline data; a non-nil error is a real
// caller-facing failure (4xx, malformed payload).
func (c *Client) getJSON(ctx context.Context, path string, out any) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Sprintf("connection failed: %v", err), nil
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return fmt.Sprintf("server error (%d)", resp.StatusCode), nil
	}
	if resp.StatusCode >= 400 {
		var envelope struct {
			Error struct {
				Message string `json:"message"`
				Code    string `json:"code"`
			} `json:"error"`
		}
		body, _ := io.ReadAll(resp.Body)
		if jErr := json.Unmarshal(body, &envelope); jErr == nil && envelope.Error.Message != "" {
			return "", fmt.Errorf("api error (%d): %s", resp.StatusCode, envelope.Error.Message)
		}
		return "", fmt.Errorf("api error (%d)", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	return "", nil
}

func offlineSearch(query string) SearchData {
	q := strings.ToLower(strings.TrimSpace(query))
	matches := make([]Note, 0)
	for _, n := range SampleNotes() {
		if q == "" ||
			strings.Contains(strings.ToLower(n.Subject), q) ||
			strings.Contains(strings.ToLower(n.Topic), q) {
			matches = append(matches, n)
		}
	}
	return SearchData{
		Internal: matches,
		External: &Summary{
			Source:  "Offline Mode",
			Title:   "Concept Summary: " + query,
			Summary: fmt.Sprintf("The backend is unreachable; showing sample results for %q from the bundled library.", query),
		},
	}
}
