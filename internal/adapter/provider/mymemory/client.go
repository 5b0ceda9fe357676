// Package mymemory implements a translation provider over the MyMemory API.
package mymemory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/heartmarshall/parla-dictionary/internal/adapter/provider/httpx"
	"github.com/heartmarshall/parla-dictionary/internal/provider"
)

// DefaultBaseURL is the public MyMemory endpoint.
const DefaultBaseURL = "https://api.mymemory.translated.net"

const quotaWarningPrefix = "MYMEMORY WARNING"

// ErrQuotaExceeded is returned when the daily free quota is used up.
var ErrQuotaExceeded = errors.New("mymemory: quota exceeded")

// Client translates single words via MyMemory.
type Client struct {
	baseURL    string
	email      string
	httpClient *http.Client
	retry      httpx.RetryPolicy
	log        *slog.Logger
}

// NewClient creates a Client. email is optional; when set it is sent as the
// "de" parameter, which raises the anonymous daily quota.
func NewClient(baseURL, email string, timeout time.Duration, retry httpx.RetryPolicy, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		email:      email,
		httpClient: &http.Client{Timeout: timeout},
		retry:      retry,
		log:        logger.With("adapter", "mymemory"),
	}
}

// Translate returns the best translation MyMemory knows for word.
// Confidence is the API's match score clamped to [0, 1].
func (c *Client) Translate(ctx context.Context, word, sourceLang, targetLang string) (provider.TranslationResult, error) {
	q := url.Values{}
	q.Set("q", word)
	q.Set("langpair", sourceLang+"|"+targetLang)
	if c.email != "" {
		q.Set("de", c.email)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/get?"+q.Encode(), nil)
	if err != nil {
		return provider.TranslationResult{}, fmt.Errorf("mymemory: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := httpx.Do(ctx, c.httpClient, req, c.retry, c.log)
	if err != nil {
		return provider.TranslationResult{}, fmt.Errorf("mymemory: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return provider.TranslationResult{}, fmt.Errorf("mymemory: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return provider.TranslationResult{}, fmt.Errorf("mymemory: read body: %w", err)
	}

	var data apiResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return provider.TranslationResult{}, fmt.Errorf("mymemory: decode json: %w", err)
	}

	text := strings.TrimSpace(data.ResponseData.TranslatedText)
	switch {
	case data.QuotaFinished, strings.HasPrefix(strings.ToUpper(text), quotaWarningPrefix):
		return provider.TranslationResult{}, ErrQuotaExceeded
	case data.ResponseStatus != 0 && data.ResponseStatus != http.StatusOK:
		return provider.TranslationResult{}, fmt.Errorf("mymemory: response status %d: %s", int(data.ResponseStatus), data.ResponseDetails)
	}

	c.log.DebugContext(ctx, "mymemory response",
		slog.String("word", word),
		slog.String("langpair", sourceLang+"|"+targetLang),
		slog.Float64("match", data.ResponseData.Match),
	)

	return provider.TranslationResult{
		Text:       text,
		Confidence: clamp01(data.ResponseData.Match),
	}, nil
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
