package translate

import (
	"context"

	"github.com/heartmarshall/parla-dictionary/internal/provider"
)

// Stub is a no-op translation provider, selected when translation is
// disabled in config. Every word resolves to an empty translation.
type Stub struct{}

// NewStub creates a new no-op translation provider.
func NewStub() *Stub { return &Stub{} }

// Translate always returns an empty result with zero confidence.
func (s *Stub) Translate(ctx context.Context, word, sourceLang, targetLang string) (provider.TranslationResult, error) {
	return provider.TranslationResult{}, nil
}
