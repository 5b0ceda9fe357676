// Package freedict looks words up in the FreeDictionary API
// (dictionaryapi.dev).
package freedict

import (
	"context"
	"encoding/json"
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

// DefaultBaseURL is the public FreeDictionary API; the language code and the
// word are appended as path segments.
const DefaultBaseURL = "https://api.dictionaryapi.dev/api/v2/entries"

// maxBodyBytes bounds a response; real entries are a few kilobytes.
const maxBodyBytes = 2 << 20

// Provider fetches definitions from the FreeDictionary API.
type Provider struct {
	baseURL    string
	httpClient *http.Client
	retry      httpx.RetryPolicy
	log        *slog.Logger
}

// NewProvider creates a Provider. An empty baseURL selects DefaultBaseURL.
func NewProvider(baseURL string, timeout time.Duration, retry httpx.RetryPolicy, logger *slog.Logger) *Provider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Provider{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		retry:      retry,
		log:        logger.With("adapter", "freedict"),
	}
}

// FetchEntry returns the merged entry for word in language, or nil, nil when
// the API does not know the word (HTTP 404). Any other failure is an error.
func (p *Provider) FetchEntry(ctx context.Context, word, language string) (*provider.DictionaryResult, error) {
	reqURL := p.baseURL + "/" + url.PathEscape(language) + "/" + url.PathEscape(word)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("freedict: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := httpx.Do(ctx, p.httpClient, req, p.retry, p.log)
	if err != nil {
		return nil, fmt.Errorf("freedict: %s: %w", word, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		p.log.DebugContext(ctx, "word not in dictionary", slog.String("word", word), slog.String("lang", language))
		return nil, nil
	default:
		return nil, fmt.Errorf("freedict: %s: unexpected status %d", word, resp.StatusCode)
	}

	var entries []apiEntry
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&entries); err != nil {
		return nil, fmt.Errorf("freedict: %s: decode: %w", word, err)
	}

	result := merge(entries)
	p.log.DebugContext(ctx, "dictionary entry fetched",
		slog.String("word", word),
		slog.Int("meanings", len(result.Meanings)),
	)
	return result, nil
}

// merge folds the per-etymology entries into one result. Meanings sharing a
// part of speech are joined in upstream order; empty definitions are dropped.
func merge(entries []apiEntry) *provider.DictionaryResult {
	result := &provider.DictionaryResult{Meanings: []provider.MeaningResult{}}
	byPOS := make(map[string]int)

	for _, e := range entries {
		if result.Word == "" {
			result.Word = e.Word
		}
		if result.Phonetic == "" {
			result.Phonetic = phonetic(e)
		}

		for _, m := range e.Meanings {
			defs := definitions(m.Definitions)
			pos := strings.ToLower(strings.TrimSpace(m.PartOfSpeech))

			idx, seen := byPOS[pos]
			if !seen {
				byPOS[pos] = len(result.Meanings)
				result.Meanings = append(result.Meanings, provider.MeaningResult{
					PartOfSpeech: pos,
					Definitions:  defs,
					Synonyms:     append([]string{}, m.Synonyms...),
					Antonyms:     append([]string{}, m.Antonyms...),
				})
				continue
			}
			target := &result.Meanings[idx]
			target.Definitions = append(target.Definitions, defs...)
			target.Synonyms = append(target.Synonyms, m.Synonyms...)
			target.Antonyms = append(target.Antonyms, m.Antonyms...)
		}
	}
	return result
}

// phonetic prefers the entry's headline transcription over the per-audio
// ones.
func phonetic(e apiEntry) string {
	if p := strings.TrimSpace(e.Phonetic); p != "" {
		return p
	}
	for _, ph := range e.Phonetics {
		if p := strings.TrimSpace(ph.Text); p != "" {
			return p
		}
	}
	return ""
}

func definitions(in []apiDefinition) []provider.DefinitionResult {
	out := make([]provider.DefinitionResult, 0, len(in))
	for _, d := range in {
		meaning := strings.TrimSpace(d.Definition)
		if meaning == "" {
			continue
		}
		out = append(out, provider.DefinitionResult{
			Meaning:  meaning,
			Example:  strings.TrimSpace(d.Example),
			Synonyms: d.Synonyms,
			Antonyms: d.Antonyms,
		})
	}
	return out
}
