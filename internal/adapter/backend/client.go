// Package backend reads user phrases from the Parla backend REST API.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/heartmarshall/parla-dictionary/internal/adapter/provider/httpx"
	"github.com/heartmarshall/parla-dictionary/internal/domain"
	"github.com/heartmarshall/parla-dictionary/pkg/ctxutil"
)

// Client fetches the caller's phrases. The bearer token is taken from the
// request context, so one Client serves every session.
type Client struct {
	baseURL    string
	httpClient *http.Client
	retry      httpx.RetryPolicy
	log        *slog.Logger
}

// NewClient creates a backend Client rooted at baseURL.
func NewClient(baseURL string, timeout time.Duration, retry httpx.RetryPolicy, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		retry:      retry,
		log:        logger.With("adapter", "backend"),
	}
}

// FetchPhrases returns every phrase of the authenticated caller.
func (c *Client) FetchPhrases(ctx context.Context) ([]domain.Phrase, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/phrases", nil)
	if err != nil {
		return nil, fmt.Errorf("backend: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if token := ctxutil.AccessTokenFromCtx(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if reqID := ctxutil.RequestIDFromCtx(ctx); reqID != "" {
		req.Header.Set("X-Request-Id", reqID)
	}

	resp, err := httpx.Do(ctx, c.httpClient, req, c.retry, c.log)
	if err != nil {
		return nil, fmt.Errorf("backend: fetch phrases: %w: %w", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("backend: fetch phrases: %w", domain.ErrUnauthorized)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("backend: fetch phrases: %w: status %d", domain.ErrUpstream, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("backend: read body: %w", err)
	}

	phrases, err := decodePhrases(body)
	if err != nil {
		return nil, fmt.Errorf("backend: decode phrases: %w", err)
	}

	c.log.DebugContext(ctx, "phrases fetched", slog.Int("count", len(phrases)))

	return phrases, nil
}

type apiPhrase struct {
	ID   flexID `json:"id"`
	Text string `json:"text"`
}

// flexID accepts numeric and string identifiers.
type flexID string

func (f *flexID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("phrase id: %w", err)
	}
	if i, err := n.Int64(); err == nil {
		*f = flexID(strconv.FormatInt(i, 10))
		return nil
	}
	*f = flexID(n.String())
	return nil
}

// decodePhrases accepts either a bare array or an object wrapping the array
// in "phrases" or "data".
func decodePhrases(body []byte) ([]domain.Phrase, error) {
	var items []apiPhrase

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var envelope struct {
			Phrases []apiPhrase `json:"phrases"`
			Data    []apiPhrase `json:"data"`
		}
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return nil, err
		}
		items = envelope.Phrases
		if items == nil {
			items = envelope.Data
		}
	} else if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, err
	}

	phrases := make([]domain.Phrase, 0, len(items))
	for _, it := range items {
		phrases = append(phrases, domain.Phrase{ID: string(it.ID), Text: it.Text})
	}
	return phrases, nil
}
