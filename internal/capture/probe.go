package capture

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

type probeStream struct {
	CodecName    string `json:"codec_name"`
	CodecType    string `json:"codec_type"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	RFrameRate   string `json:"r_frame_rate"`
	AvgFrameRate string `json:"avg_frame_rate"`
	Duration     string `json:"duration"`
	NbFrames     string `json:"nb_frames"`
	Tags         struct {
		Rotate string `json:"rotate"`
	} `json:"tags"`
	SideDataList []struct {
		Rotation float64 `json:"rotation"`
	} `json:"side_data_list"`
}

// rotation returns the display rotation in degrees within [0, 360). Newer
// ffprobe versions report it as display matrix side data, older ones as a
// stream tag.
func (s probeStream) rotation() int {
	deg := 0
	for _, sd := range s.SideDataList {
		if sd.Rotation != 0 {
			deg = int(math.Round(sd.Rotation))
			break
		}
	}
	if deg == 0 {
		deg, _ = strconv.Atoi(strings.TrimSpace(s.Tags.Rotate))
	}
	return ((deg % 360) + 360) % 360
}

type probeOutput struct {
	Streams []probeStream `json:"streams"`
	Format  struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// Probe reads the metadata of the first video stream with ffprobe.
func Probe(path string) (Metadata, error) {
	out, err := ffmpeg.Probe(path, ffmpeg.KwArgs{"select_streams": "v:0"})
	if err != nil {
		return Metadata{}, fmt.Errorf("%w: ffprobe %s: %v", ErrUnavailable, path, err)
	}
	return parseProbe(out)
}

func parseProbe(data string) (Metadata, error) {
	var out probeOutput
	if err := json.Unmarshal([]byte(data), &out); err != nil {
		return Metadata{}, fmt.Errorf("%w: decode ffprobe output: %v", ErrUnavailable, err)
	}

	var stream *probeStream
	for i := range out.Streams {
		if out.Streams[i].CodecType == "video" {
			stream = &out.Streams[i]
			break
		}
	}
	if stream == nil {
		return Metadata{}, fmt.Errorf("%w: no video stream", ErrUnavailable)
	}
	if stream.Width <= 0 || stream.Height <= 0 {
		return Metadata{}, fmt.Errorf("%w: invalid dimensions %dx%d", ErrUnavailable, stream.Width, stream.Height)
	}

	fps := parseRate(stream.AvgFrameRate)
	if fps <= 0 {
		fps = parseRate(stream.RFrameRate)
	}
	if fps <= 0 {
		return Metadata{}, fmt.Errorf("%w: unknown frame rate", ErrUnavailable)
	}

	seconds := parseSeconds(stream.Duration)
	if seconds <= 0 {
		seconds = parseSeconds(out.Format.Duration)
	}

	// Matroska and WebM do not store a frame count.
	frames, err := strconv.Atoi(stream.NbFrames)
	if err != nil || frames <= 0 {
		frames = int(math.Round(seconds * fps))
	}

	// ffmpeg applies the rotation while decoding, so decoded frames have the
	// displayed size.
	width, height := stream.Width, stream.Height
	rotation := stream.rotation()
	if rotation == 90 || rotation == 270 {
		width, height = height, width
	}

	return Metadata{
		FrameCount: frames,
		Width:      width,
		Height:     height,
		FrameRate:  fps,
		Duration:   time.Duration(seconds * float64(time.Second)),
		Codec:      stream.CodecName,
		Rotation:   rotation,
	}, nil
}

// parseRate parses ffprobe rationals such as "30000/1001".
func parseRate(s string) float64 {
	num, den, found := strings.Cut(strings.TrimSpace(s), "/")
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0
	}
	if !found {
		return n
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil || d == 0 {
		return 0
	}
	return n / d
}

func parseSeconds(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}
