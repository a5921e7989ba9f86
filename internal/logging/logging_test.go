package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	t.Parallel()

	log, err := New("warn")
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zap.InfoLevel))
	assert.True(t, log.Core().Enabled(zap.WarnLevel))

	console, err := NewConsole("debug")
	require.NoError(t, err)
	assert.True(t, console.Core().Enabled(zap.DebugLevel))

	_, err = New("loud")
	assert.Error(t, err)
	_, err = NewConsole("loud")
	assert.Error(t, err)
}
