package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestInitializeConsole(t *testing.T) {
	err := Initialize(false, VerbosityInfo)
	require.NoError(t, err)
	require.NotNil(t, Logger)
	assert.False(t, JSONOutput)

	// Must not panic
	Infof("scanned %d files", 3)
	Warnw("unable to parse default", FieldArgument, "x", FieldFunction, "foo")
	Cleanup()
}

func TestInitializeJSON(t *testing.T) {
	err := Initialize(true, VerbosityUser)
	require.NoError(t, err)
	assert.True(t, JSONOutput)
	Cleanup()
}

func TestVerbosityToLevel(t *testing.T) {
	assert.Equal(t, zapcore.WarnLevel, VerbosityToLevel(VerbosityUser))
	assert.Equal(t, zapcore.InfoLevel, VerbosityToLevel(VerbosityInfo))
	assert.Equal(t, zapcore.DebugLevel, VerbosityToLevel(VerbosityDebug))
	assert.Equal(t, zapcore.DebugLevel, VerbosityToLevel(7))
}
