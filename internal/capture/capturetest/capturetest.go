// Package capturetest provides an in-memory capture backend for tests.
package capturetest

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"sync"

	"framethumb/internal/capture"
)

// Video is a synthetic source whose frames are filled with FrameColor(index).
type Video struct {
	Meta capture.Metadata

	// Decodable caps how many frames can actually be read. Zero means every
	// frame reported by Meta.FrameCount.
	Decodable int
}

// FrameColor is the fill color of the frame at index.
func FrameColor(index int) color.RGBA {
	return color.RGBA{R: uint8(index), G: uint8(index >> 8), B: 0x80, A: 0xff}
}

// Opener serves registered videos and counts open and close calls.
type Opener struct {
	mu     sync.Mutex
	videos map[string]Video
	opened int
	closed int
}

func NewOpener() *Opener {
	return &Opener{videos: make(map[string]Video)}
}

func (o *Opener) Add(path string, v Video) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.videos[path] = v
}

func (o *Opener) Open(path string) (capture.Capture, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	v, ok := o.videos[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", capture.ErrUnavailable, path)
	}
	o.opened++
	limit := v.Decodable
	if limit <= 0 {
		limit = v.Meta.FrameCount
	}
	return &fakeCapture{owner: o, meta: v.Meta, limit: limit}, nil
}

// Counts returns how many captures were opened and closed.
func (o *Opener) Counts() (opened, closed int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.opened, o.closed
}

type fakeCapture struct {
	owner  *Opener
	meta   capture.Metadata
	limit  int
	next   int
	closed bool
}

func (c *fakeCapture) Metadata() capture.Metadata {
	return c.meta
}

func (c *fakeCapture) Seek(index int) error {
	if index < 0 {
		return fmt.Errorf("seek to negative frame %d", index)
	}
	c.next = index
	return nil
}

func (c *fakeCapture) Read() (image.Image, error) {
	if c.closed {
		return nil, fmt.Errorf("read from closed capture")
	}
	if c.next >= c.limit {
		return nil, io.EOF
	}
	img := image.NewRGBA(image.Rect(0, 0, c.meta.Width, c.meta.Height))
	fill := FrameColor(c.next)
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = fill.R
		img.Pix[i+1] = fill.G
		img.Pix[i+2] = fill.B
		img.Pix[i+3] = fill.A
	}
	c.next++
	return img, nil
}

func (c *fakeCapture) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	c.owner.mu.Lock()
	c.owner.closed++
	c.owner.mu.Unlock()
	return nil
}

// Previews records Preview calls instead of opening a window.
type Previews struct {
	mu     sync.Mutex
	Titles []string
	Paths  []string
	Err    error
}

func (p *Previews) Preview(title, path string, _ image.Image) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Titles = append(p.Titles, title)
	p.Paths = append(p.Paths, path)
	return p.Err
}
