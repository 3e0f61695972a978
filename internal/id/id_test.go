package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_HasPrefix(t *testing.T) {
	got, err := Generate("book")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got, "book-"))
	// NanoID default length is 21 characters.
	assert.Len(t, got, len("book-")+21)
}

func TestGenerate_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		got, err := Generate("custom")
		require.NoError(t, err)
		assert.False(t, seen[got], "duplicate id %s", got)
		seen[got] = true
	}
}

func TestMustGenerate(t *testing.T) {
	assert.NotPanics(t, func() {
		got := MustGenerate("act")
		assert.True(t, strings.HasPrefix(got, "act-"))
	})
}
