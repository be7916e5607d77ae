package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New("test error")
	require.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestWrap(t *testing.T) {
	original := New("original")
	wrapped := Wrap(original, "wrapped")

	assert.Contains(t, wrapped.Error(), "wrapped")
	assert.Contains(t, wrapped.Error(), "original")
	assert.True(t, Is(wrapped, original))
}

func TestOverwriteUnsafe(t *testing.T) {
	err := NewOverwriteUnsafe("src/RglueExports.cpp")
	require.NotNil(t, err)

	assert.True(t, IsOverwriteUnsafe(err))
	assert.False(t, IsFileIO(err))
	assert.Contains(t, err.Error(), "src/RglueExports.cpp")
}

func TestWrapFileIO(t *testing.T) {
	underlying := New("permission denied")
	err := WrapFileIO(underlying, "R/RglueExports.R")

	assert.True(t, IsFileIO(err))
	assert.Contains(t, err.Error(), "R/RglueExports.R")
	assert.Contains(t, err.Error(), "permission denied")
}

func TestIsHelpersNil(t *testing.T) {
	assert.False(t, IsOverwriteUnsafe(nil))
	assert.False(t, IsFileIO(nil))
}
