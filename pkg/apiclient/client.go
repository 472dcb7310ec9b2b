// Copyright (c) 2026 Novaria. All rights reserved.
// Author: dev@novaria.app

/*
Package apiclient is a typed Go client for the Novaria HTTP API.

It is the supported way for first-party frontends and tooling to consume the
API: responses are decoded into client-side types, transient failures are
retried with exponential backoff, and every failure surfaces as an explicit
error instead of an empty fallback value.

Usage:

	client := apiclient.New("https://api.novaria.app", nil)
	page, err := client.ListNovels(ctx, 1, 20)
*/
package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	defaultTimeout = 10 * time.Second

	// maxAttempts bounds the retry loop for a single logical request.
	maxAttempts = 4

	// baseBackoff is the first retry delay; it doubles per attempt.
	baseBackoff = 250 * time.Millisecond
)

// Client talks to a Novaria API server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a Client for the given base URL. A nil httpClient gets a
// default with a sane timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("apiclient: server returned %d (%s): %s", e.StatusCode, e.Code, e.Message)
}

// errorEnvelope mirrors the server's error response shape.
type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// get performs a GET with bounded exponential-backoff retry and decodes the
// response body into dst.
//
// Only transport errors and 5xx responses are retried; a 4xx means the
// request itself is wrong and retrying cannot help.
func (c *Client) get(ctx context.Context, path string, query url.Values, dst any) error {
	requestURL := c.baseURL + path
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			backoff := baseBackoff << (attempt - 1)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}

		lastErr = c.doGet(ctx, requestURL, dst)
		if lastErr == nil {
			return nil
		}

		var apiErr *APIError
		if errors.As(lastErr, &apiErr) && apiErr.StatusCode < http.StatusInternalServerError {
			return lastErr
		}
	}

	return fmt.Errorf("apiclient: giving up after %d attempts: %w", maxAttempts, lastErr)
}

func (c *Client) doGet(ctx context.Context, requestURL string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return fmt.Errorf("apiclient: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("apiclient: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("apiclient: read response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		var envelope errorEnvelope
		_ = json.Unmarshal(body, &envelope)
		return &APIError{
			StatusCode: resp.StatusCode,
			Code:       envelope.Error.Code,
			Message:    envelope.Error.Message,
		}
	}

	if dst == nil {
		return nil
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("apiclient: decode response: %w", err)
	}
	return nil
}

// WaitReady polls the readiness endpoint until it reports healthy, trying up
// to attempts times with delay between polls. Useful for boot orchestration
// and integration tests.
func (c *Client) WaitReady(ctx context.Context, attempts int, delay time.Duration) error {
	var lastErr error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}

		lastErr = c.doGet(ctx, c.baseURL+"/ready", nil)
		if lastErr == nil {
			return nil
		}
	}
	return fmt.Errorf("apiclient: server not ready after %d attempts: %w", attempts, lastErr)
}

func pageQuery(page, limit int) url.Values {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))
	return query
}
