package capture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"os/exec"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"
	"go.uber.org/zap"
)

// FFmpeg opens captures backed by the ffprobe and ffmpeg binaries.
type FFmpeg struct {
	logger *zap.Logger
}

func NewFFmpeg(logger *zap.Logger) *FFmpeg {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FFmpeg{logger: logger}
}

func (f *FFmpeg) Open(path string) (Capture, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrUnavailable, path)
	}

	meta, err := Probe(path)
	if err != nil {
		return nil, err
	}
	return &ffmpegCapture{
		path:   path,
		meta:   meta,
		logger: f.logger.With(zap.String("video", path)),
	}, nil
}

// ffmpegCapture decodes frames lazily: the decoder process is started on the
// first Read after a Seek and streams rgb24 frames through a pipe.
type ffmpegCapture struct {
	path   string
	meta   Metadata
	logger *zap.Logger

	next   int
	cmd    *exec.Cmd
	out    io.ReadCloser
	stderr bytes.Buffer
	buf    []byte
}

func (c *ffmpegCapture) Metadata() Metadata {
	return c.meta
}

func (c *ffmpegCapture) Seek(index int) error {
	if index < 0 {
		return fmt.Errorf("seek to negative frame %d", index)
	}
	c.stop()
	c.next = index
	return nil
}

func (c *ffmpegCapture) Read() (image.Image, error) {
	if c.cmd == nil {
		if err := c.start(); err != nil {
			return nil, err
		}
	}

	if _, err := io.ReadFull(c.out, c.buf); err != nil {
		if !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("read frame %d: %w", c.next, err)
		}
		if waitErr := c.wait(); waitErr != nil {
			return nil, fmt.Errorf("decode frame %d: %w: %s", c.next, waitErr, strings.TrimSpace(c.stderr.String()))
		}
		return nil, io.EOF
	}

	img := rgb24ToRGBA(c.buf, c.meta.Width, c.meta.Height)
	c.next++
	return img, nil
}

func (c *ffmpegCapture) Close() error {
	c.stop()
	return nil
}

// decoderCommand builds the ffmpeg process that writes rgb24 frames of path,
// starting at frame from, to its stdout.
func decoderCommand(path string, from int) *exec.Cmd {
	kwargs := ffmpeg.KwArgs{
		"format":  "rawvideo",
		"pix_fmt": "rgb24",
		"vsync":   "passthrough",
	}
	if from > 0 {
		kwargs["vf"] = fmt.Sprintf(`select=gte(n\,%d)`, from)
	}
	return ffmpeg.Input(path).
		Output("pipe:", kwargs).
		GlobalArgs("-loglevel", "error", "-nostdin").
		Compile()
}

func (c *ffmpegCapture) start() error {
	cmd := decoderCommand(c.path, c.next)
	c.stderr.Reset()
	cmd.Stderr = &c.stderr

	out, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("open decoder pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: start ffmpeg: %v", ErrUnavailable, err)
	}
	c.logger.Debug("decoder started", zap.Int("from_frame", c.next), zap.Strings("args", cmd.Args))

	c.cmd = cmd
	c.out = out
	c.buf = make([]byte, c.meta.Width*c.meta.Height*3)
	return nil
}

func (c *ffmpegCapture) wait() error {
	if c.cmd == nil {
		return nil
	}
	err := c.cmd.Wait()
	c.cmd = nil
	c.out = nil
	return err
}

func (c *ffmpegCapture) stop() {
	if c.cmd == nil {
		return
	}
	if c.cmd.Process != nil {
		_ = c.cmd.Process.Kill()
	}
	_ = c.wait()
}

func rgb24ToRGBA(buf []byte, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i, j := 0, 0; i+2 < len(buf); i, j = i+3, j+4 {
		img.Pix[j] = buf[i]
		img.Pix[j+1] = buf[i+1]
		img.Pix[j+2] = buf[i+2]
		img.Pix[j+3] = 0xff
	}
	return img
}

// FFplay shows images in an ffplay window. The call returns once the window
// is closed or quit with q/Esc.
type FFplay struct{}

func (FFplay) Preview(title, path string, _ image.Image) error {
	cmd := exec.Command("ffplay", "-loglevel", "error", "-window_title", title, path)
	cmd.Stdin = os.Stdin
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffplay: %w: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}
