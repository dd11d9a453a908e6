// Package translator is a client for LibreTranslate-compatible translation
// services.
package translator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// SourceAuto asks the service to detect the source language itself.
const SourceAuto = "auto"

// FallbackText replaces a missing translatedText in an otherwise successful
// response.
const FallbackText = "Translation failed."

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 1 << 20

// UnavailableError reports that the service could not be reached or answered
// with a non-2xx status. StatusCode is zero for transport failures.
type UnavailableError struct {
	StatusCode int
	Err        error
}

func (e *UnavailableError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("translation service returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("translation service unreachable: %v", e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// IsUnavailable reports whether err is an *UnavailableError.
func IsUnavailable(err error) bool {
	var ue *UnavailableError
	return errors.As(err, &ue)
}

type request struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
}

type response struct {
	TranslatedText *string `json:"translatedText"`
}

// Client posts texts to a single translation endpoint.
type Client struct {
	url        string
	httpClient *http.Client
}

// New returns a Client for url whose requests time out after timeout.
func New(url string, timeout time.Duration) *Client {
	return &Client{url: url, httpClient: &http.Client{Timeout: timeout}}
}

// Translate sends text for translation from source to target.
//
// Network failures and non-2xx responses are returned as *UnavailableError.
// A 2xx response whose body lacks translatedText yields FallbackText.
func (c *Client) Translate(ctx context.Context, text, source, target string) (string, error) {
	body, err := json.Marshal(request{Q: text, Source: source, Target: target, Format: "text"})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &UnavailableError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return "", &UnavailableError{StatusCode: resp.StatusCode}
	}

	var out response
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&out); err != nil {
		return "", &UnavailableError{Err: fmt.Errorf("decode response: %w", err)}
	}

	if out.TranslatedText == nil {
		return FallbackText, nil
	}
	return *out.TranslatedText, nil
}
