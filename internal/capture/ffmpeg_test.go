package capture_test

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"framethumb/internal/capture"
	"framethumb/internal/capture/capturetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFFmpegCapture(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping ffmpeg test in short mode")
	}
	t.Parallel()

	path := capturetest.Clip(t, t.TempDir(), 1920, 1080, 300, 30)

	c, err := capture.NewFFmpeg(nil).Open(path)
	require.NoError(t, err)
	defer c.Close()

	meta := c.Metadata()
	assert.Equal(t, 300, meta.FrameCount)
	assert.Equal(t, 1920, meta.Width)
	assert.Equal(t, 1080, meta.Height)
	assert.InDelta(t, 30.0, meta.FrameRate, 0.01)

	require.NoError(t, c.Seek(150))
	img, err := c.Read()
	require.NoError(t, err)
	assert.Equal(t, 1920, img.Bounds().Dx())
	assert.Equal(t, 1080, img.Bounds().Dy())

	// Reads continue sequentially after a seek.
	require.NoError(t, c.Seek(298))
	for i := 0; i < 2; i++ {
		_, err = c.Read()
		require.NoError(t, err)
	}
	_, err = c.Read()
	assert.ErrorIs(t, err, io.EOF)

	require.NoError(t, c.Seek(300))
	_, err = c.Read()
	assert.ErrorIs(t, err, io.EOF)

	assert.Error(t, c.Seek(-1))
}

func TestFFmpegOpenUnavailable(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	garbage := filepath.Join(dir, "garbage.mp4")
	require.NoError(t, os.WriteFile(garbage, []byte("definitely not a video"), 0o644))

	opener := capture.NewFFmpeg(nil)
	for _, path := range []string{filepath.Join(dir, "missing.mp4"), dir, garbage} {
		_, err := opener.Open(path)
		assert.True(t, errors.Is(err, capture.ErrUnavailable), "%s: %v", path, err)
	}
}
