package extract

import (
	"path/filepath"
	"testing"

	"framethumb/internal/capture"
	"framethumb/internal/capture/capturetest"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractWithFFmpeg(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping ffmpeg test in short mode")
	}
	t.Parallel()

	video := capturetest.Clip(t, t.TempDir(), 1920, 1080, 300, 30)
	out := filepath.Join(t.TempDir(), "thumbs")
	ex := New(capture.NewFFmpeg(nil), nil, Config{}, nil)

	meta, err := ex.LoadMetadata(video)
	require.NoError(t, err)
	require.Equal(t, 300, meta.FrameCount)

	res, err := ex.Extract(Request{VideoPath: video, OutputDir: out, FrameIndex: 150, Size: Size{320, 180}})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(out, "thumbnail_1150.jpg"), res.Path)

	img, err := imaging.Open(res.Path)
	require.NoError(t, err)
	assert.Equal(t, 320, img.Bounds().Dx())
	assert.Equal(t, 180, img.Bounds().Dy())

	_, err = ex.Extract(Request{VideoPath: video, OutputDir: out, FrameIndex: 300, Size: Size{320, 180}})
	assert.ErrorIs(t, err, ErrOutOfRange)
}
