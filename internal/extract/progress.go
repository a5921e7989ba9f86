package extract

import (
	"fmt"
	"io"

	"github.com/schollz/progressbar/v3"
)

func newProgressBar(w io.Writer, frames int) *progressbar.ProgressBar {
	total := int64(frames)
	if total <= 0 {
		// Unknown length renders as a spinner.
		total = -1
	}
	if w == nil {
		return progressbar.DefaultSilent(total, "frames")
	}
	return progressbar.NewOptions64(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("frames"),
		progressbar.OptionShowCount(),
		progressbar.OptionThrottle(0),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(w)
		}),
	)
}
