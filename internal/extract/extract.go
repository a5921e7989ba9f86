package extract

import (
	"errors"
	"fmt"
	"image"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"framethumb/internal/capture"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"
)

const DefaultJPEGQuality = 95

type Config struct {
	JPEGQuality int `json:"jpeg_quality" example:"95"`

	// Progress receives a progress bar while frames are dumped. Nil disables
	// it.
	Progress io.Writer `json:"-"`

	// OnProgress, when set, is called by DumpFrames after every decoded
	// frame with the number of frames decoded and saved so far.
	OnProgress func(decoded, saved int) `json:"-"`
}

// Result describes a saved thumbnail.
type Result struct {
	Path       string           `json:"path" example:"thumbnails/thumbnail_1150.jpg"`
	FrameIndex int              `json:"frame_index" example:"150"`
	Width      int              `json:"width" example:"320"`
	Height     int              `json:"height" example:"180"`
	Source     capture.Metadata `json:"source"`
}

// Extractor turns single video frames into resized JPEG thumbnails. Every
// call opens and closes its own capture.
type Extractor struct {
	opener  capture.Opener
	preview capture.Previewer
	cfg     Config
	logger  *zap.Logger
}

func New(opener capture.Opener, preview capture.Previewer, cfg Config, logger *zap.Logger) *Extractor {
	if cfg.JPEGQuality <= 0 || cfg.JPEGQuality > 100 {
		cfg.JPEGQuality = DefaultJPEGQuality
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{opener: opener, preview: preview, cfg: cfg, logger: logger}
}

// CheckVideoPath reports ErrInvalidPath unless path is an existing regular
// file.
func CheckVideoPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidPath, path)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrInvalidPath, path)
	}
	return nil
}

// EnsureOutputDir creates dir if it is missing. Parents are not created.
// Calling it again for an existing directory is a no-op.
func EnsureOutputDir(dir string) error {
	if strings.TrimSpace(dir) == "" {
		return fmt.Errorf("%w: empty path", ErrOutputDir)
	}
	if err := os.Mkdir(dir, 0o755); err != nil && !errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("%w: create %s: %v", ErrOutputDir, dir, err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrOutputDir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrOutputDir, dir)
	}

	probe, err := os.CreateTemp(dir, ".write-check-*")
	if err != nil {
		return fmt.Errorf("%w: %s is not writable: %v", ErrOutputDir, dir, err)
	}
	probe.Close()
	_ = os.Remove(probe.Name())
	return nil
}

// LoadMetadata opens the video and returns its stream metadata.
func (e *Extractor) LoadMetadata(path string) (capture.Metadata, error) {
	c, err := e.open(path)
	if err != nil {
		return capture.Metadata{}, err
	}
	defer c.Close()

	meta := c.Metadata()
	e.logger.Info("video metadata",
		zap.String("video", path),
		zap.Int("frames", meta.FrameCount),
		zap.Int("width", meta.Width),
		zap.Int("height", meta.Height),
		zap.Float64("fps", meta.FrameRate),
	)
	return meta, nil
}

// Extract decodes req.FrameIndex, resizes it to req.Size with bilinear
// interpolation and saves it as ThumbnailName(req.FrameIndex) in
// req.OutputDir. An existing file of that name is overwritten.
func (e *Extractor) Extract(req Request) (Result, error) {
	if err := CheckVideoPath(req.VideoPath); err != nil {
		return Result{}, err
	}
	if err := req.Size.Validate(); err != nil {
		return Result{}, err
	}
	if err := EnsureOutputDir(req.OutputDir); err != nil {
		return Result{}, err
	}

	c, err := e.open(req.VideoPath)
	if err != nil {
		return Result{}, err
	}
	defer c.Close()

	meta := c.Metadata()
	if err := req.Validate(meta); err != nil {
		return Result{}, err
	}

	if err := c.Seek(req.FrameIndex); err != nil {
		return Result{}, fmt.Errorf("%w: seek to frame %d: %v", ErrDecode, req.FrameIndex, err)
	}
	frame, err := c.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Result{}, fmt.Errorf("%w: frame %d: end of stream", ErrDecode, req.FrameIndex)
		}
		return Result{}, fmt.Errorf("%w: frame %d: %v", ErrDecode, req.FrameIndex, err)
	}

	thumb := imaging.Resize(frame, req.Size.Width, req.Size.Height, imaging.Linear)
	path := filepath.Join(req.OutputDir, ThumbnailName(req.FrameIndex))
	if err := e.save(thumb, path); err != nil {
		return Result{}, err
	}
	e.logger.Info("thumbnail saved",
		zap.String("video", req.VideoPath),
		zap.Int("frame", req.FrameIndex),
		zap.Stringer("size", req.Size),
		zap.String("path", path),
	)

	res := Result{
		Path:       path,
		FrameIndex: req.FrameIndex,
		Width:      thumb.Bounds().Dx(),
		Height:     thumb.Bounds().Dy(),
		Source:     meta,
	}

	if req.Preview {
		if e.preview == nil {
			return res, fmt.Errorf("preview thumbnail: no previewer configured")
		}
		title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		if err := e.preview.Preview(title, path, thumb); err != nil {
			return res, fmt.Errorf("preview thumbnail: %w", err)
		}
	}
	return res, nil
}

// DumpFrames decodes the whole video and saves every step-th frame, counting
// frames from one, as DumpName(0), DumpName(1), ... in outDir. It stops at
// the end of the stream and returns the number of files written.
func (e *Extractor) DumpFrames(path, outDir string, step int) (int, error) {
	if step <= 0 {
		return 0, fmt.Errorf("%w: step must be positive, got %d", ErrInvalidStep, step)
	}
	if err := EnsureOutputDir(outDir); err != nil {
		return 0, err
	}

	c, err := e.open(path)
	if err != nil {
		return 0, err
	}
	defer c.Close()

	bar := newProgressBar(e.cfg.Progress, c.Metadata().FrameCount)
	defer bar.Finish()

	saved := 0
	for n := 1; ; n++ {
		frame, err := c.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return saved, fmt.Errorf("%w: frame %d: %v", ErrDecode, n-1, err)
		}
		_ = bar.Add(1)

		if n%step == 0 {
			out := filepath.Join(outDir, DumpName(saved))
			if err := e.save(frame, out); err != nil {
				return saved, err
			}
			e.logger.Debug("frame saved", zap.Int("frame", n), zap.String("path", out))
			saved++
		}
		if e.cfg.OnProgress != nil {
			e.cfg.OnProgress(n, saved)
		}
	}

	e.logger.Info("frames dumped",
		zap.String("video", path),
		zap.Int("step", step),
		zap.Int("saved", saved),
	)
	return saved, nil
}

func (e *Extractor) open(path string) (capture.Capture, error) {
	c, err := e.opener.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, path, err)
	}
	return c, nil
}

func (e *Extractor) save(img image.Image, path string) error {
	if err := imaging.Save(img, path, imaging.JPEGQuality(e.cfg.JPEGQuality)); err != nil {
		return fmt.Errorf("%w: save %s: %v", ErrOutputDir, path, err)
	}
	return nil
}
