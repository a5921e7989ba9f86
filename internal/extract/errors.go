package extract

import "errors"

var (
	// ErrInvalidPath denotes a video path that does not reference a file.
	ErrInvalidPath = errors.New("video file does not exist")

	// ErrOutputDir denotes an output directory that could not be created or
	// written to.
	ErrOutputDir = errors.New("output directory unavailable")

	// ErrSourceUnavailable denotes a video that could not be opened or decoded
	// at all.
	ErrSourceUnavailable = errors.New("could not open video")

	// ErrOutOfRange denotes a frame index outside [0, frame count).
	ErrOutOfRange = errors.New("frame index out of range")

	// ErrInvalidFrame denotes a frame index that is not an integer.
	ErrInvalidFrame = errors.New("invalid frame index")

	// ErrInvalidSize denotes a malformed thumbnail size.
	ErrInvalidSize = errors.New("invalid thumbnail size")

	// ErrDecode denotes a frame that could not be read despite passing range
	// validation.
	ErrDecode = errors.New("failed to decode frame")

	ErrInvalidStep = errors.New("invalid frame step")
)
