package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/heartmarshall/parla-dictionary/internal/domain"
	"github.com/heartmarshall/parla-dictionary/internal/service/dictsync"
	"github.com/heartmarshall/parla-dictionary/internal/service/lookup"
	"github.com/heartmarshall/parla-dictionary/pkg/ctxutil"
)

type sessionRegistry interface {
	Get(key string) *dictsync.Orchestrator
}

type wordLookup interface {
	Lookup(ctx context.Context, word, sourceLang, targetLang string) lookup.Result
}

// DictionaryOptions configure a DictionaryHandler.
type DictionaryOptions struct {
	SourceLanguage string
	TargetLanguage string
	// SyncTimeout bounds syncs started in the background.
	SyncTimeout time.Duration
}

// DictionaryHandler serves the dictionary of the calling session.
type DictionaryHandler struct {
	sessions sessionRegistry
	lookup   wordLookup
	opts     DictionaryOptions
	log      *slog.Logger

	// background tracks syncs that outlive their request.
	background sync.WaitGroup
}

// NewDictionaryHandler creates a DictionaryHandler.
func NewDictionaryHandler(sessions sessionRegistry, lookup wordLookup, opts DictionaryOptions, logger *slog.Logger) *DictionaryHandler {
	return &DictionaryHandler{
		sessions: sessions,
		lookup:   lookup,
		opts:     opts,
		log:      logger.With("handler", "dictionary"),
	}
}

type stateResponse struct {
	Phase         dictsync.Phase     `json:"phase"`
	IsLoading     bool               `json:"isLoading"`
	IsImporting   bool               `json:"isImporting"`
	IsInitialized bool               `json:"isInitialized"`
	Progress      *dictsync.Progress `json:"progress,omitempty"`
	Error         string             `json:"error,omitempty"`
}

type snapshotResponse struct {
	State       stateResponse           `json:"state"`
	Fingerprint string                  `json:"fingerprint"`
	Words       []domain.VocabularyWord `json:"words"`
}

type lookupResponse struct {
	Word          string              `json:"word"`
	Translation   string              `json:"translation"`
	Confidence    float64             `json:"confidence"`
	Pronunciation string              `json:"pronunciation"`
	Definitions   []domain.Definition `json:"definitions"`
	Examples      []domain.Example    `json:"examples"`
	Synonyms      []string            `json:"synonyms"`
	Antonyms      []string            `json:"antonyms"`
	WordType      domain.WordType     `json:"wordType"`
	Error         string              `json:"error,omitempty"`
}

func toStateResponse(s dictsync.State) stateResponse {
	resp := stateResponse{
		Phase:         s.Phase(),
		IsLoading:     dictsync.IsLoading(s),
		IsInitialized: dictsync.IsInitialized(s),
		Error:         dictsync.ErrorMessage(s),
	}
	if p, ok := dictsync.IsImporting(s); ok {
		resp.IsImporting = true
		resp.Progress = &p
	}
	return resp
}

func toSnapshotResponse(s dictsync.Snapshot) snapshotResponse {
	return snapshotResponse{
		State:       toStateResponse(s.State),
		Fingerprint: s.Fingerprint,
		Words:       s.Words,
	}
}

// session resolves the orchestrator of the authenticated caller.
func (h *DictionaryHandler) session(w http.ResponseWriter, r *http.Request) (*dictsync.Orchestrator, bool) {
	key, ok := ctxutil.SessionKeyFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return nil, false
	}
	return h.sessions.Get(key), true
}

// Get handles GET /api/dictionary.
func (h *DictionaryHandler) Get(w http.ResponseWriter, r *http.Request) {
	o, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toSnapshotResponse(o.Snapshot()))
}

// Load handles POST /api/dictionary/load.
func (h *DictionaryHandler) Load(w http.ResponseWriter, r *http.Request) {
	h.startSync(w, r, (*dictsync.Orchestrator).Load)
}

// Refresh handles POST /api/dictionary/refresh.
func (h *DictionaryHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	h.startSync(w, r, (*dictsync.Orchestrator).Refresh)
}

// startSync runs fn in the background and answers 202 with the current
// snapshot. With ?wait=true it runs fn within the request instead.
func (h *DictionaryHandler) startSync(w http.ResponseWriter, r *http.Request, fn func(*dictsync.Orchestrator, context.Context) error) {
	o, ok := h.session(w, r)
	if !ok {
		return
	}

	if wait, _ := strconv.ParseBool(r.URL.Query().Get("wait")); wait {
		status := http.StatusOK
		if err := fn(o, r.Context()); err != nil {
			status = errorStatus(err)
		}
		writeJSON(w, status, toSnapshotResponse(o.Snapshot()))
		return
	}

	// The sync keeps the request's values (token, request ID) but not its
	// cancellation.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), h.opts.SyncTimeout)
	h.background.Add(1)
	go func() {
		defer h.background.Done()
		defer cancel()
		if err := fn(o, ctx); err != nil {
			h.log.WarnContext(ctx, "background sync failed", slog.String("error", err.Error()))
		}
	}()

	writeJSON(w, http.StatusAccepted, toSnapshotResponse(o.Snapshot()))
}

// Wait blocks until background syncs finish or ctx is done.
func (h *DictionaryHandler) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		h.background.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ListWords handles GET /api/dictionary/words.
func (h *DictionaryHandler) ListWords(w http.ResponseWriter, r *http.Request) {
	o, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, o.Words())
}

// AddWord handles POST /api/dictionary/words.
func (h *DictionaryHandler) AddWord(w http.ResponseWriter, r *http.Request) {
	o, ok := h.session(w, r)
	if !ok {
		return
	}

	var req domain.VocabularyWord
	if !decodeJSON(w, r, &req) {
		return
	}

	added, err := o.AddWord(r.Context(), req)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, added)
}

// UpdateWord handles PATCH /api/dictionary/words/{id}.
func (h *DictionaryHandler) UpdateWord(w http.ResponseWriter, r *http.Request) {
	o, ok := h.session(w, r)
	if !ok {
		return
	}

	var req domain.WordUpdate
	if !decodeJSON(w, r, &req) {
		return
	}

	updated, found, err := o.UpdateWord(r.Context(), chi.URLParam(r, "id"), req)
	if !found {
		writeError(w, http.StatusNotFound, "word not found")
		return
	}
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteWord handles DELETE /api/dictionary/words/{id}.
func (h *DictionaryHandler) DeleteWord(w http.ResponseWriter, r *http.Request) {
	o, ok := h.session(w, r)
	if !ok {
		return
	}

	if !o.DeleteWord(r.Context(), chi.URLParam(r, "id")) {
		writeError(w, http.StatusNotFound, "word not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Lookup handles GET /api/dictionary/lookup?word=&source=&target=.
func (h *DictionaryHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	word := domain.NormalizeText(q.Get("word"))
	if word == "" {
		writeError(w, http.StatusBadRequest, "word is required")
		return
	}
	source := strings.ToLower(strings.TrimSpace(q.Get("source")))
	if source == "" {
		source = h.opts.SourceLanguage
	}
	target := strings.ToLower(strings.TrimSpace(q.Get("target")))
	if target == "" {
		target = h.opts.TargetLanguage
	}

	res := h.lookup.Lookup(r.Context(), word, source, target)

	resp := lookupResponse{
		Word:          word,
		Translation:   res.Translation,
		Confidence:    res.Confidence,
		Pronunciation: res.Pronunciation,
		Definitions:   nonNil(res.Definitions),
		Examples:      nonNil(res.Examples),
		Synonyms:      nonNil(res.Synonyms),
		Antonyms:      nonNil(res.Antonyms),
		WordType:      res.WordType,
	}
	if res.Err != nil {
		resp.Error = res.Err.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
