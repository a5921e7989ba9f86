// Package capture wraps the video decoding libraries behind a small
// open/seek/read/close surface.
package capture

import (
	"errors"
	"fmt"
	"image"
	"time"
)

// ErrUnavailable denotes a source that could not be opened or has no
// decodable video stream.
var ErrUnavailable = errors.New("video source unavailable")

// Metadata describes the first video stream of an opened source.
type Metadata struct {
	FrameCount int           `json:"frame_count" example:"300"`
	Width      int           `json:"width" example:"1920"`
	Height     int           `json:"height" example:"1080"`
	FrameRate  float64       `json:"frame_rate" example:"30"`
	Duration   time.Duration `json:"duration" swaggertype:"integer" example:"10000000000"`
	Codec      string        `json:"codec,omitempty" example:"h264"`

	// Rotation is the display rotation in degrees. Width and Height already
	// describe the rotated, displayed frame.
	Rotation int `json:"rotation,omitempty" example:"90"`
}

func (m Metadata) String() string {
	return fmt.Sprintf("frame: %d, width: %d, height: %d, fps: %g",
		m.FrameCount, m.Width, m.Height, m.FrameRate)
}

// Capture is an open, exclusively owned decoding session.
type Capture interface {
	Metadata() Metadata

	// Seek positions the capture so that the next Read returns the frame with
	// the given zero-based index.
	Seek(index int) error

	// Read decodes the next frame. It returns io.EOF once the stream is
	// exhausted.
	Read() (image.Image, error)

	Close() error
}

// Opener opens captures for a file path.
type Opener interface {
	Open(path string) (Capture, error)
}

// Previewer displays an image and blocks until the operator dismisses it.
type Previewer interface {
	Preview(title, path string, img image.Image) error
}

// OpenerFunc adapts a function to the Opener interface.
type OpenerFunc func(path string) (Capture, error)

func (f OpenerFunc) Open(path string) (Capture, error) {
	return f(path)
}
