package capturetest

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"testing"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Clip renders an ffmpeg testsrc video into dir and returns its path. The
// test is skipped when ffmpeg or ffprobe are not installed.
func Clip(t testing.TB, dir string, width, height, frames, fps int) string {
	t.Helper()

	for _, bin := range []string{"ffmpeg", "ffprobe"} {
		if _, err := exec.LookPath(bin); err != nil {
			t.Skipf("%s not found in PATH", bin)
		}
	}

	path := filepath.Join(dir, fmt.Sprintf("testsrc_%dx%d_%d.mp4", width, height, frames))
	err := ffmpeg.
		Input(fmt.Sprintf("testsrc=size=%dx%d:rate=%d", width, height, fps), ffmpeg.KwArgs{"f": "lavfi"}).
		Output(path, ffmpeg.KwArgs{
			"frames:v": frames,
			"c:v":      "mpeg4",
			"q:v":      5,
			"pix_fmt":  "yuv420p",
		}).
		OverWriteOutput().
		Silent(true).
		Run()
	if err != nil {
		t.Fatalf("render test clip: %v", err)
	}
	return path
}
