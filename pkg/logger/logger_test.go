package logger

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	for _, level := range []Level{Disabled, TraceLevel, DebugLevel, InfoLevel, WarnLevel, ErrorLevel, FatalLevel} {
		parsed, err := ParseLevel(level.String())
		require.NoError(t, err)
		require.Equal(t, level, parsed)
	}

	parsed, err := ParseLevel(" WARN ")
	require.NoError(t, err)
	require.Equal(t, WarnLevel, parsed)

	_, err = ParseLevel("verbose")
	require.Error(t, err)

	_, err = ParseLevel("")
	require.Error(t, err)
}
