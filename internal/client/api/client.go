// Package api is a thin JSON client for the HabitKeeper HTTP API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type Client struct {
	baseURL      string
	http         *http.Client
	accessToken  string
	refreshToken string
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// LoggedIn reports whether the client holds an access token.
func (c *Client) LoggedIn() bool {
	return c.accessToken != ""
}

// Logout drops the stored token pair.
func (c *Client) Logout() {
	c.accessToken = ""
	c.refreshToken = ""
}

type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt"`
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type Tracker struct {
	ID          string `json:"id"`
	UserID      string `json:"userId"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// Value is the response form of an entry value.
type Value struct {
	Type         string          `json:"type"`
	RawValue     json.RawMessage `json:"rawValue,omitempty"`
	DisplayValue string          `json:"displayValue,omitempty"`
}

// ValuePayload is the request form: the declared type plus the raw JSON
// literal.
type ValuePayload struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`
}

type Entry struct {
	ID         string  `json:"id"`
	TrackerID  string  `json:"trackerId"`
	Value      Value   `json:"value"`
	RecordedAt string  `json:"recordedAt"`
	Note       *string `json:"note,omitempty"`
	CreatedAt  string  `json:"createdAt"`
}

func (c *Client) Register(ctx context.Context, email, password, name string) (*User, error) {
	body := map[string]string{"email": email, "password": password, "name": name}
	var user User
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) Login(ctx context.Context, email, password string) error {
	body := map[string]string{"email": email, "password": password}
	var pair TokenPair
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &pair); err != nil {
		return err
	}
	c.accessToken = pair.AccessToken
	c.refreshToken = pair.RefreshToken
	return nil
}

// Refresh trades the stored refresh token for a fresh pair.
func (c *Client) Refresh(ctx context.Context) error {
	body := map[string]string{"refreshToken": c.refreshToken}
	var pair TokenPair
	if err := c.do(ctx, http.MethodPost, "/api/auth/refresh", body, &pair); err != nil {
		return err
	}
	c.accessToken = pair.AccessToken
	c.refreshToken = pair.RefreshToken
	return nil
}

func (c *Client) ListTrackers(ctx context.Context) ([]Tracker, error) {
	var list []Tracker
	if err := c.do(ctx, http.MethodGet, "/api/trackers", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *Client) CreateTracker(ctx context.Context, name, trackerType, description string) (*Tracker, error) {
	body := map[string]string{"name": name, "type": trackerType, "description": description}
	var tracker Tracker
	if err := c.do(ctx, http.MethodPost, "/api/trackers", body, &tracker); err != nil {
		return nil, err
	}
	return &tracker, nil
}

func (c *Client) ListEntries(ctx context.Context, trackerID string) ([]Entry, error) {
	var list []Entry
	if err := c.do(ctx, http.MethodGet, "/api/trackers/"+trackerID+"/entries", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// AddEntry posts a raw JSON literal as the value, tagged with the tracker's
// type. rawValue must already be valid JSON ("true", "42.5", `"08:30"`).
func (c *Client) AddEntry(ctx context.Context, trackerID, trackerType string, rawValue json.RawMessage, note string) (*Entry, error) {
	body := map[string]any{
		"value": ValuePayload{Type: trackerType, Value: rawValue},
	}
	if note != "" {
		body["note"] = note
	}
	var entry Entry
	if err := c.do(ctx, http.MethodPost, "/api/trackers/"+trackerID+"/entries", body, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// TrackerStats returns the per-type summary as loose JSON, since its shape
// depends on the tracker's type.
func (c *Client) TrackerStats(ctx context.Context, trackerID string) (map[string]any, error) {
	var result map[string]any
	if err := c.do(ctx, http.MethodGet, "/api/trackers/"+trackerID+"/stats", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error != "" {
			return fmt.Errorf("server: %s", apiErr.Error)
		}
		return fmt.Errorf("server returned %s", resp.Status)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
