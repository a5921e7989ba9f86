//go:build gocv

package capture

import (
	"fmt"
	"image"
	"io"
	"os"

	"gocv.io/x/gocv"
)

// GoCV opens captures through OpenCV. Build with -tags gocv.
type GoCV struct{}

func (GoCV) Open(path string) (Capture, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	vc, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if !vc.IsOpened() {
		vc.Close()
		return nil, fmt.Errorf("%w: could not open %s", ErrUnavailable, path)
	}

	meta := Metadata{
		FrameCount: int(vc.Get(gocv.VideoCaptureFrameCount)),
		Width:      int(vc.Get(gocv.VideoCaptureFrameWidth)),
		Height:     int(vc.Get(gocv.VideoCaptureFrameHeight)),
		FrameRate:  vc.Get(gocv.VideoCaptureFPS),
		Codec:      vc.CodecString(),
	}
	if meta.Width <= 0 || meta.Height <= 0 || meta.FrameRate <= 0 {
		vc.Close()
		return nil, fmt.Errorf("%w: no decodable video stream", ErrUnavailable)
	}
	return &gocvCapture{vc: vc, meta: meta, mat: gocv.NewMat()}, nil
}

type gocvCapture struct {
	vc   *gocv.VideoCapture
	meta Metadata
	mat  gocv.Mat
}

func (c *gocvCapture) Metadata() Metadata {
	return c.meta
}

func (c *gocvCapture) Seek(index int) error {
	if index < 0 {
		return fmt.Errorf("seek to negative frame %d", index)
	}
	c.vc.Set(gocv.VideoCapturePosFrames, float64(index))
	return nil
}

func (c *gocvCapture) Read() (image.Image, error) {
	if ok := c.vc.Read(&c.mat); !ok || c.mat.Empty() {
		return nil, io.EOF
	}
	return c.mat.ToImage()
}

func (c *gocvCapture) Close() error {
	c.mat.Close()
	return c.vc.Close()
}

// Window shows images in an OpenCV HighGUI window and waits for a key press.
type Window struct{}

func (Window) Preview(title, _ string, img image.Image) error {
	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return fmt.Errorf("convert preview image: %w", err)
	}
	defer mat.Close()

	w := gocv.NewWindow(title)
	defer w.Close()
	w.IMShow(mat)
	w.WaitKey(0)
	return nil
}
