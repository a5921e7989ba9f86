package extract

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"framethumb/internal/capture"
	"framethumb/internal/capture/capturetest"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var hd = capture.Metadata{
	FrameCount: 300,
	Width:      1920,
	Height:     1080,
	FrameRate:  30,
}

// newFixture registers a synthetic video at a real, empty file so that path
// checks pass.
func newFixture(t *testing.T, meta capture.Metadata, decodable int) (*Extractor, *capturetest.Opener, *capturetest.Previews, string) {
	t.Helper()

	video := filepath.Join(t.TempDir(), "clip.mp4")
	require.NoError(t, os.WriteFile(video, nil, 0o644))

	opener := capturetest.NewOpener()
	opener.Add(video, capturetest.Video{Meta: meta, Decodable: decodable})
	previews := &capturetest.Previews{}
	return New(opener, previews, Config{}, nil), opener, previews, video
}

func TestExtractScenario(t *testing.T) {
	t.Parallel()

	ex, opener, previews, video := newFixture(t, hd, 0)
	out := filepath.Join(t.TempDir(), "thumbs")

	size, err := NewSize(320, 180)
	require.NoError(t, err)

	res, err := ex.Extract(Request{
		VideoPath:  video,
		OutputDir:  out,
		FrameIndex: 150,
		Size:       size,
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(out, "thumbnail_1150.jpg"), res.Path)
	assert.Equal(t, 320, res.Width)
	assert.Equal(t, 180, res.Height)
	assert.Equal(t, hd, res.Source)
	assert.Empty(t, previews.Titles)

	img, err := imaging.Open(res.Path)
	require.NoError(t, err)
	assert.Equal(t, 320, img.Bounds().Dx())
	assert.Equal(t, 180, img.Bounds().Dy())

	// JPEG is lossy, so compare the decoded fill color loosely.
	want := capturetest.FrameColor(150)
	r, g, b, _ := img.At(160, 90).RGBA()
	assert.InDelta(t, want.R, uint8(r>>8), 6)
	assert.InDelta(t, want.G, uint8(g>>8), 6)
	assert.InDelta(t, want.B, uint8(b>>8), 6)

	opened, closed := opener.Counts()
	assert.Equal(t, 1, opened)
	assert.Equal(t, 1, closed)
}

func TestExtractRoundTripSizes(t *testing.T) {
	t.Parallel()

	sizes := []Size{{1, 1}, {64, 64}, {320, 180}, {100, 400}, {2000, 50}}
	ex, _, _, video := newFixture(t, capture.Metadata{FrameCount: 3, Width: 160, Height: 90, FrameRate: 25}, 0)
	out := t.TempDir()

	for _, size := range sizes {
		res, err := ex.Extract(Request{VideoPath: video, OutputDir: out, FrameIndex: 1, Size: size})
		require.NoError(t, err, size.String())

		img, err := imaging.Open(res.Path)
		require.NoError(t, err)
		assert.Equal(t, size.Width, img.Bounds().Dx(), size.String())
		assert.Equal(t, size.Height, img.Bounds().Dy(), size.String())
	}

	// Same frame index, so every call overwrote the same file.
	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "thumbnail_11.jpg", entries[0].Name())
}

func TestExtractErrors(t *testing.T) {
	t.Parallel()

	ex, _, _, video := newFixture(t, hd, 0)
	dir := t.TempDir()
	size := Size{Width: 320, Height: 180}

	cases := []struct {
		name string
		req  Request
		err  error
	}{
		{
			name: "last frame plus one",
			req:  Request{VideoPath: video, OutputDir: dir, FrameIndex: 300, Size: size},
			err:  ErrOutOfRange,
		},
		{
			name: "negative frame",
			req:  Request{VideoPath: video, OutputDir: dir, FrameIndex: -1, Size: size},
			err:  ErrOutOfRange,
		},
		{
			name: "missing video",
			req:  Request{VideoPath: filepath.Join(dir, "nope.mp4"), OutputDir: dir, Size: size},
			err:  ErrInvalidPath,
		},
		{
			name: "video is a directory",
			req:  Request{VideoPath: dir, OutputDir: dir, Size: size},
			err:  ErrInvalidPath,
		},
		{
			name: "zero size",
			req:  Request{VideoPath: video, OutputDir: dir, Size: Size{Width: 0, Height: 180}},
			err:  ErrInvalidSize,
		},
		{
			name: "missing parent of output dir",
			req:  Request{VideoPath: video, OutputDir: filepath.Join(dir, "a", "b"), Size: size},
			err:  ErrOutputDir,
		},
	}

	for i := range cases {
		c := cases[i]
		t.Run(c.name, func(t *testing.T) {
			_, err := ex.Extract(c.req)
			require.Error(t, err)
			assert.True(t, errors.Is(err, c.err), "got %v", err)
		})
	}
}

func TestExtractUnopenableSource(t *testing.T) {
	t.Parallel()

	video := filepath.Join(t.TempDir(), "corrupt.mp4")
	require.NoError(t, os.WriteFile(video, []byte("not a video"), 0o644))
	ex := New(capturetest.NewOpener(), nil, Config{}, nil)

	_, err := ex.Extract(Request{VideoPath: video, OutputDir: t.TempDir(), Size: Size{10, 10}})
	assert.ErrorIs(t, err, ErrSourceUnavailable)
}

func TestExtractDecodeFailure(t *testing.T) {
	t.Parallel()

	// The container claims 300 frames but only 120 decode.
	ex, opener, _, video := newFixture(t, hd, 120)
	out := t.TempDir()

	_, err := ex.Extract(Request{VideoPath: video, OutputDir: out, FrameIndex: 200, Size: Size{32, 18}})
	assert.ErrorIs(t, err, ErrDecode)
	assert.NoFileExists(t, filepath.Join(out, ThumbnailName(200)))

	opened, closed := opener.Counts()
	assert.Equal(t, opened, closed)
}

func TestExtractPreview(t *testing.T) {
	t.Parallel()

	ex, _, previews, video := newFixture(t, hd, 0)
	res, err := ex.Extract(Request{
		VideoPath:  video,
		OutputDir:  t.TempDir(),
		FrameIndex: 7,
		Size:       Size{64, 36},
		Preview:    true,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"thumbnail_17"}, previews.Titles)
	assert.Equal(t, []string{res.Path}, previews.Paths)
}

func TestExtractPreviewFailureKeepsFile(t *testing.T) {
	t.Parallel()

	ex, _, previews, video := newFixture(t, hd, 0)
	previews.Err = errors.New("no display")

	res, err := ex.Extract(Request{VideoPath: video, OutputDir: t.TempDir(), Size: Size{8, 8}, Preview: true})
	require.Error(t, err)
	assert.FileExists(t, res.Path)
}

func TestLoadMetadata(t *testing.T) {
	t.Parallel()

	ex, opener, _, video := newFixture(t, hd, 0)

	meta, err := ex.LoadMetadata(video)
	require.NoError(t, err)
	assert.Equal(t, hd, meta)

	_, err = ex.LoadMetadata(filepath.Join(t.TempDir(), "missing.mp4"))
	assert.ErrorIs(t, err, ErrSourceUnavailable)

	opened, closed := opener.Counts()
	assert.Equal(t, 1, opened)
	assert.Equal(t, 1, closed)
}

func TestEnsureOutputDirIdempotent(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "out")
	require.NoError(t, EnsureOutputDir(dir))
	require.DirExists(t, dir)
	require.NoError(t, EnsureOutputDir(dir))
}

func TestEnsureOutputDirRejectsFile(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	assert.ErrorIs(t, EnsureOutputDir(file), ErrOutputDir)
	assert.ErrorIs(t, EnsureOutputDir(""), ErrOutputDir)
}

func TestCheckVideoPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "v.mp4")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	assert.NoError(t, CheckVideoPath(file))
	assert.ErrorIs(t, CheckVideoPath(filepath.Join(dir, "x.mp4")), ErrInvalidPath)
	assert.ErrorIs(t, CheckVideoPath(dir), ErrInvalidPath)
	assert.ErrorIs(t, CheckVideoPath(" "), ErrInvalidPath)
}

func TestDumpFrames(t *testing.T) {
	t.Parallel()

	meta := capture.Metadata{FrameCount: 10, Width: 16, Height: 9, FrameRate: 10}
	ex, _, _, video := newFixture(t, meta, 0)
	var progress bytes.Buffer
	ex.cfg.Progress = &progress

	cases := []struct {
		step  int
		saved int
	}{
		{1, 10},
		{3, 3},
		{4, 2},
		{11, 0},
	}
	for _, c := range cases {
		out := filepath.Join(t.TempDir(), "frames")
		saved, err := ex.DumpFrames(video, out, c.step)
		require.NoError(t, err)
		assert.Equal(t, c.saved, saved, "step %d", c.step)

		entries, err := os.ReadDir(out)
		require.NoError(t, err)
		require.Len(t, entries, c.saved)
		for i, e := range entries {
			assert.Equal(t, DumpName(i), e.Name())
		}
	}
	assert.NotEmpty(t, progress.String())
}

func TestDumpFramesReportsProgress(t *testing.T) {
	t.Parallel()

	meta := capture.Metadata{FrameCount: 10, Width: 4, Height: 4, FrameRate: 10}
	ex, _, _, video := newFixture(t, meta, 0)
	out := t.TempDir()

	// Files from an earlier dump must not count towards this one.
	for i := 0; i < 50; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(out, DumpName(i)), nil, 0o644))
	}

	type tick struct{ decoded, saved int }
	var ticks []tick
	ex.cfg.OnProgress = func(decoded, saved int) {
		ticks = append(ticks, tick{decoded, saved})
	}

	saved, err := ex.DumpFrames(video, out, 4)
	require.NoError(t, err)
	assert.Equal(t, 2, saved)
	require.Len(t, ticks, 10)
	assert.Equal(t, tick{1, 0}, ticks[0])
	assert.Equal(t, tick{4, 1}, ticks[3])
	assert.Equal(t, tick{10, 2}, ticks[9])
}

func TestDumpFramesStopsAtEndOfDecodableStream(t *testing.T) {
	t.Parallel()

	meta := capture.Metadata{FrameCount: 10, Width: 4, Height: 4, FrameRate: 10}
	ex, _, _, video := newFixture(t, meta, 5)

	saved, err := ex.DumpFrames(video, t.TempDir(), 2)
	require.NoError(t, err)
	assert.Equal(t, 2, saved)
}

func TestDumpFramesInvalidStep(t *testing.T) {
	t.Parallel()

	ex, _, _, video := newFixture(t, hd, 0)
	for _, step := range []int{0, -1} {
		_, err := ex.DumpFrames(video, t.TempDir(), step)
		assert.ErrorIs(t, err, ErrInvalidStep)
	}
}
