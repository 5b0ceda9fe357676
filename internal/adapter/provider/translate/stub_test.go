package translate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/parla-dictionary/internal/provider"
)

func TestStub_Translate_ReturnsEmpty(t *testing.T) {
	t.Parallel()

	got, err := NewStub().Translate(context.Background(), "hello", "en", "it")
	require.NoError(t, err)
	assert.Equal(t, provider.TranslationResult{}, got)
}
