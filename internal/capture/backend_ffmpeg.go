//go:build !gocv

package capture

import "go.uber.org/zap"

// Backend is the name of the decoding library compiled into the binary.
const Backend = "ffmpeg"

// Default returns the opener and previewer of the compiled-in backend.
func Default(logger *zap.Logger) (Opener, Previewer) {
	return NewFFmpeg(logger), FFplay{}
}
