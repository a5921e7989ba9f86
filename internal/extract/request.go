package extract

import (
	"fmt"
	"strconv"
	"strings"

	"framethumb/internal/capture"
)

// Size is the exact pixel size of a thumbnail.
type Size struct {
	Width  int `json:"width" example:"320"`
	Height int `json:"height" example:"180"`
}

// NewSize accepts exactly two positive values: width and height.
func NewSize(values ...int) (Size, error) {
	if len(values) != 2 {
		return Size{}, fmt.Errorf("%w: expected width and height, got %d values", ErrInvalidSize, len(values))
	}
	s := Size{Width: values[0], Height: values[1]}
	if err := s.Validate(); err != nil {
		return Size{}, err
	}
	return s, nil
}

// ParseSize parses a size given as two whitespace separated integers, e.g.
// "320 180".
func ParseSize(s string) (Size, error) {
	return ParseSizeValues(strings.Fields(s)...)
}

// ParseSizeValues parses each value as an integer and passes them to NewSize.
func ParseSizeValues(values ...string) (Size, error) {
	ints := make([]int, 0, len(values))
	for _, v := range values {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return Size{}, fmt.Errorf("%w: %q is not an integer", ErrInvalidSize, v)
		}
		ints = append(ints, n)
	}
	return NewSize(ints...)
}

func (s Size) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: width and height must be positive, got %dx%d", ErrInvalidSize, s.Width, s.Height)
	}
	return nil
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Request describes a single thumbnail to extract.
type Request struct {
	VideoPath  string
	OutputDir  string
	FrameIndex int
	Size       Size

	// Preview shows the saved thumbnail and blocks until it is dismissed.
	Preview bool
}

// Validate checks every field of the request against the source metadata.
func (r Request) Validate(meta capture.Metadata) error {
	if strings.TrimSpace(r.VideoPath) == "" {
		return fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	if strings.TrimSpace(r.OutputDir) == "" {
		return fmt.Errorf("%w: empty path", ErrOutputDir)
	}
	if err := r.Size.Validate(); err != nil {
		return err
	}
	return ValidateFrame(r.FrameIndex, meta)
}

// ParseFrame parses a zero-based frame index. Range checks are left to
// ValidateFrame.
func ParseFrame(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrInvalidFrame, s)
	}
	return n, nil
}

// ValidateFrame checks that index addresses an existing frame.
func ValidateFrame(index int, meta capture.Metadata) error {
	if index < 0 || index >= meta.FrameCount {
		return fmt.Errorf("%w: frame %d, video has %d frames", ErrOutOfRange, index, meta.FrameCount)
	}
	return nil
}

// ThumbnailName is the file name a thumbnail of the given frame is saved as.
func ThumbnailName(index int) string {
	return fmt.Sprintf("thumbnail_1%d.jpg", index)
}

// DumpName is the file name of the count-th frame written by DumpFrames.
func DumpName(count int) string {
	return fmt.Sprintf("1%03d.jpg", count)
}

// IsDumpName reports whether name could have been produced by DumpName.
func IsDumpName(name string) bool {
	digits, ok := strings.CutSuffix(name, ".jpg")
	if !ok || len(digits) < 4 || digits[0] != '1' {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
