//go:build gocv

package capture

import "go.uber.org/zap"

const Backend = "gocv"

func Default(_ *zap.Logger) (Opener, Previewer) {
	return GoCV{}, Window{}
}
