package daemon

import (
	"errors"
	"time"

	"framethumb/internal/capture"
	"framethumb/internal/extract"
)

// Settings holds the defaults applied to thumbnail and dump requests.
type Settings struct {
	OutputDir   string `json:"output_dir" example:"thumbnails"`
	JPEGQuality int    `json:"jpeg_quality" example:"95"`
	DefaultSize [2]int `json:"default_size" swaggertype:"array,integer" example:"320,180"`
	Backend     string `json:"backend" example:"ffmpeg"`
}

// Thumbnail records a thumbnail produced by the daemon.
type Thumbnail struct {
	ID         string           `json:"thumbnail_id" example:"thm_abcd1234"`
	VideoPath  string           `json:"video_path" example:"/videos/sample.mp4"`
	FrameIndex int              `json:"frame_index" example:"150"`
	Width      int              `json:"width" example:"320"`
	Height     int              `json:"height" example:"180"`
	Path       string           `json:"path" example:"thumbnails/thumbnail_1150.jpg"`
	Source     capture.Metadata `json:"source"`
	CreatedAt  time.Time        `json:"created_at" example:"2024-01-01T12:00:00Z"`
}

// Job tracks a background frame dump.
type Job struct {
	ID          string     `json:"job_id" example:"job_abcd1234"`
	VideoPath   string     `json:"video_path" example:"/videos/sample.mp4"`
	OutputDir   string     `json:"output_dir" example:"thumbnails/sample"`
	Type        string     `json:"type" example:"dump_frames"`
	Step        int        `json:"step" example:"30"`
	Status      string     `json:"status" example:"running"`
	Progress    float64    `json:"progress" example:"0.42"`
	Decoded     int        `json:"frames_decoded" example:"126"`
	TotalFrames int        `json:"frames_total" example:"300"`
	FramesSaved int        `json:"frames_saved" example:"4"`
	Expected    int        `json:"frames_expected" example:"10"`
	LastError   *string    `json:"last_error" example:"failed to decode frame"`
	CreatedAt   time.Time  `json:"created_at" example:"2024-01-01T12:00:00Z"`
	UpdatedAt   time.Time  `json:"updated_at" example:"2024-01-01T12:05:00Z"`
	FinishedAt  *time.Time `json:"finished_at" example:"2024-01-01T12:05:00Z"`
}

// ErrorResponse represents a standard error payload.
type ErrorResponse struct {
	Error string `json:"error" example:"description of the error"`
}

// HealthResponse describes the health endpoint payload.
type HealthResponse struct {
	Status  string `json:"status" example:"ok"`
	Version string `json:"version" example:"0.1.0"`
}

// SettingsUpdateRequest allows partial settings updates.
type SettingsUpdateRequest struct {
	OutputDir   *string `json:"output_dir" example:"thumbnails"`
	JPEGQuality *int    `json:"jpeg_quality" example:"90"`
	DefaultSize *[2]int `json:"default_size" swaggertype:"array,integer" example:"640,360"`
}

// StatusResponse is a generic status wrapper.
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

// MetadataRequest names a video to probe.
type MetadataRequest struct {
	Path string `json:"path" example:"/videos/sample.mp4"`
}

// ThumbnailRequest asks for one resized frame. Size defaults to the
// configured default size and OutputDir to the configured output directory.
type ThumbnailRequest struct {
	VideoPath  string `json:"video_path" example:"/videos/sample.mp4"`
	FrameIndex int    `json:"frame_index" example:"150"`
	Size       []int  `json:"size,omitempty" example:"320,180"`
	OutputDir  string `json:"output_dir,omitempty" example:"thumbnails"`
}

// DumpRequest starts a background dump of every step-th frame.
type DumpRequest struct {
	VideoPath string `json:"video_path" example:"/videos/sample.mp4"`
	Step      int    `json:"step" example:"30"`
	OutputDir string `json:"output_dir,omitempty" example:"thumbnails/sample"`
}

// StartJobResponse provides the started job ID.
type StartJobResponse struct {
	Status string `json:"status" example:"started"`
	JobID  string `json:"job_id" example:"job_abcd1234"`
}

var (
	errNotFound    = errors.New("not found")
	errOutputInUse = errors.New("output directory in use")
)

// Version is reported by the health endpoint.
const Version = "0.1.0"

func (s Settings) size() extract.Size {
	return extract.Size{Width: s.DefaultSize[0], Height: s.DefaultSize[1]}
}
