package triage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/anikett35/MediMage/internal/appointment"
	"github.com/anikett35/MediMage/internal/submission"
)

const defaultTimeout = 15 * time.Second

// APIError is a non-2xx answer from the store.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Client talks to the REST API mounted under /api.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a client for baseURL (for example http://localhost:5000/api).
// A nil httpClient gets one with a 15s timeout.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

func (c *Client) ListSubmissions(ctx context.Context) ([]submission.Submission, error) {
	var resp submission.ListResponse
	if err := c.do(ctx, http.MethodGet, "/submissions", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

func (c *Client) DeleteSubmission(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/submissions/"+url.PathEscape(id), nil, nil)
}

func (c *Client) DeleteAllSubmissions(ctx context.Context) (int64, error) {
	var resp submission.DeleteAllResponse
	if err := c.do(ctx, http.MethodDelete, "/submissions", nil, &resp); err != nil {
		return 0, err
	}
	return resp.DeletedCount, nil
}

func (c *Client) UpdateSubmissionStatus(ctx context.Context, id, status string) error {
	return c.do(ctx, http.MethodPut, "/submissions/"+url.PathEscape(id)+"/status",
		submission.StatusRequest{Status: status}, nil)
}

func (c *Client) ListAppointments(ctx context.Context) ([]appointment.Appointment, error) {
	var resp appointment.ListResponse
	if err := c.do(ctx, http.MethodGet, "/appointments", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

func (c *Client) DeleteAppointment(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/appointments/"+url.PathEscape(id), nil, nil)
}

func (c *Client) DeleteAllAppointments(ctx context.Context) (int64, error) {
	var resp appointment.DeleteAllResponse
	if err := c.do(ctx, http.MethodDelete, "/appointments", nil, &resp); err != nil {
		return 0, err
	}
	return resp.DeletedCount, nil
}

func (c *Client) UpdateAppointmentStatus(ctx context.Context, id, status string) error {
	return c.do(ctx, http.MethodPut, "/appointments/"+url.PathEscape(id)+"/status",
		appointment.StatusRequest{Status: status}, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Error string `json:"error"`
		}
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		if json.Unmarshal(raw, &apiErr) != nil || apiErr.Error == "" {
			apiErr.Error = strings.TrimSpace(string(raw))
		}
		return &APIError{StatusCode: resp.StatusCode, Message: apiErr.Error}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}
