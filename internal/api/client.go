// Package api provides the authenticated HTTP client for the complaint
// server. Failure classification is strict: a failure is connectivity-class
// if and only if no HTTP response was received at all. Any response, 5xx
// included, surfaces as a server-side error and is never treated as a reason
// to queue.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/complainthub/client-go/internal/errors"
	"github.com/complainthub/client-go/internal/models"
)

// maxErrorBody bounds how much of an error response body is read.
const maxErrorBody = 64 * 1024

// Client talks to the complaint REST API.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient creates a Client for the given API base URL. The token is sent
// as a bearer credential on every request; token lifecycle is owned by the
// authentication layer, not by this client.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 5,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// CreateComplaint submits a complaint. When offlineID is non-empty it is
// attached as offline_id so the server can reject accidental duplicates of
// an already-synced record.
func (c *Client) CreateComplaint(ctx context.Context, fields models.Fields, offlineID string) (*models.Complaint, error) {
	body := fields.Clone()
	if body == nil {
		body = models.Fields{}
	}
	if offlineID != "" {
		body["offline_id"] = offlineID
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalid, "failed to encode complaint fields", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/complaints/", bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrap(errors.ErrInternal, "failed to build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		// Transport failure, timeout, DNS error: no response was received.
		return nil, errors.Wrap(errors.ErrConnectivity, "no response from complaint server", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return nil, errors.Wrap(errors.ErrServerRejected, "failed to read server response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, responseError(resp.StatusCode, raw)
	}

	var complaint models.Complaint
	if err := json.Unmarshal(raw, &complaint); err != nil {
		return nil, errors.Wrap(errors.ErrServerRejected, "failed to decode complaint record", err)
	}
	if complaint.ID == 0 {
		return nil, errors.New(errors.ErrServerRejected, "server response is missing a complaint id")
	}
	complaint.Raw = raw

	return &complaint, nil
}

// Ping checks reachability of the complaint server. Any HTTP response at all
// counts as reachable; only a transport failure counts as offline.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health/", nil)
	if err != nil {
		return errors.Wrap(errors.ErrInternal, "failed to build probe request", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(errors.ErrConnectivity, "complaint server unreachable", err)
	}
	io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
	resp.Body.Close()
	return nil
}

// responseError maps an HTTP error response to an application error.
func responseError(status int, body []byte) error {
	message := errorMessage(body)

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return errors.New(errors.ErrAuthFailed,
			fmt.Sprintf("authentication rejected (HTTP %d): %s", status, message))
	case status >= 400 && status < 500:
		return errors.New(errors.ErrValidation,
			fmt.Sprintf("server rejected the submission (HTTP %d): %s", status, message))
	default:
		return errors.New(errors.ErrServerRejected,
			fmt.Sprintf("server error (HTTP %d): %s", status, message))
	}
}

// errorMessage extracts a readable message from a JSON error body, falling
// back to the raw text.
func errorMessage(body []byte) string {
	var parsed map[string]interface{}
	if err := json.Unmarshal(body, &parsed); err == nil {
		if detail, ok := parsed["detail"].(string); ok {
			return detail
		}
		if msg, ok := parsed["message"].(string); ok {
			return msg
		}
		// Field-error maps: render compactly.
		parts := make([]string, 0, len(parsed))
		for field, v := range parsed {
			parts = append(parts, fmt.Sprintf("%s: %v", field, v))
		}
		if len(parts) > 0 {
			return strings.Join(parts, "; ")
		}
	}

	text := strings.TrimSpace(string(body))
	if text == "" {
		return "no error detail"
	}
	return text
}
