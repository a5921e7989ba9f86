package daemon

import (
	"encoding/json"
	"net/http"
	"sort"
	"strings"
	"time"

	"framethumb/internal/extract"
	"framethumb/internal/metrics"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// handleThumbnails godoc
// @Summary List or create thumbnails
// @Description GET lists thumbnails created by this daemon; POST extracts one frame, resizes it and saves it as a JPEG.
// @Tags thumbnails
// @Accept json
// @Produce json
// @Param request body ThumbnailRequest true "Thumbnail to create (POST only)"
// @Success 200 {array} Thumbnail
// @Success 200 {object} Thumbnail
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /thumbnails [get]
// @Router /thumbnails [post]
func (s *Server) handleThumbnails(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.mu.RLock()
		list := make([]Thumbnail, 0, len(s.thumbnails))
		for _, t := range s.thumbnails {
			list = append(list, *t)
		}
		s.mu.RUnlock()
		sort.Slice(list, func(i, j int) bool {
			return list[i].CreatedAt.Before(list[j].CreatedAt)
		})
		writeJSON(w, http.StatusOK, list)
	case http.MethodPost:
		s.createThumbnail(w, r)
	}
}

func (s *Server) createThumbnail(w http.ResponseWriter, r *http.Request) {
	var req struct {
		VideoPath  string        `json:"video_path"`
		FrameIndex *int          `json:"frame_index"`
		Size       []json.Number `json:"size"`
		OutputDir  string        `json:"output_dir"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json payload")
		return
	}
	if strings.TrimSpace(req.VideoPath) == "" {
		writeError(w, http.StatusBadRequest, "video_path is required")
		return
	}
	if req.FrameIndex == nil {
		writeError(w, http.StatusBadRequest, "frame_index is required")
		return
	}

	s.mu.RLock()
	settings := s.settings
	s.mu.RUnlock()

	size := settings.size()
	if req.Size != nil {
		values := make([]string, len(req.Size))
		for i, n := range req.Size {
			values[i] = n.String()
		}
		var err error
		if size, err = extract.ParseSizeValues(values...); err != nil {
			s.thumbnailFailed(w, err)
			return
		}
	}
	outputDir := req.OutputDir
	if strings.TrimSpace(outputDir) == "" {
		outputDir = settings.OutputDir
	}

	start := time.Now()
	res, err := s.extractor().Extract(extract.Request{
		VideoPath:  req.VideoPath,
		OutputDir:  outputDir,
		FrameIndex: *req.FrameIndex,
		Size:       size,
	})
	if err != nil {
		s.thumbnailFailed(w, err)
		return
	}
	metrics.ExtractionDuration.Observe(time.Since(start).Seconds())
	metrics.ThumbnailsTotal.WithLabelValues("ok").Inc()

	thumb := &Thumbnail{
		ID:         newID("thm_"),
		VideoPath:  req.VideoPath,
		FrameIndex: res.FrameIndex,
		Width:      res.Width,
		Height:     res.Height,
		Path:       res.Path,
		Source:     res.Source,
		CreatedAt:  time.Now().UTC(),
	}
	s.mu.Lock()
	s.thumbnails[thumb.ID] = thumb
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, thumb)
}

func (s *Server) thumbnailFailed(w http.ResponseWriter, err error) {
	status, kind := classify(err)
	metrics.ThumbnailsTotal.WithLabelValues(kind).Inc()
	if status >= http.StatusInternalServerError {
		s.logger.Error("thumbnail failed", zap.Error(err))
	}
	writeError(w, status, err.Error())
}

// handleGetThumbnail godoc
// @Summary Get thumbnail details
// @Description Returns the stored record of a thumbnail.
// @Tags thumbnails
// @Produce json
// @Param thumbnailID path string true "Thumbnail ID"
// @Success 200 {object} Thumbnail
// @Failure 404 {object} ErrorResponse
// @Router /thumbnails/{thumbnailID} [get]
func (s *Server) handleGetThumbnail(w http.ResponseWriter, r *http.Request) {
	thumb, err := s.lookupThumbnail(chi.URLParam(r, "thumbnailID"))
	if err != nil {
		writeError(w, http.StatusNotFound, "thumbnail not found")
		return
	}
	writeJSON(w, http.StatusOK, thumb)
}

// handleThumbnailFile godoc
// @Summary Download thumbnail
// @Description Streams the JPEG file of a thumbnail.
// @Tags thumbnails
// @Produce jpeg
// @Param thumbnailID path string true "Thumbnail ID"
// @Success 200 {file} file
// @Failure 404 {object} ErrorResponse
// @Router /thumbnails/{thumbnailID}/file [get]
func (s *Server) handleThumbnailFile(w http.ResponseWriter, r *http.Request) {
	thumb, err := s.lookupThumbnail(chi.URLParam(r, "thumbnailID"))
	if err != nil {
		writeError(w, http.StatusNotFound, "thumbnail not found")
		return
	}
	http.ServeFile(w, r, thumb.Path)
}

func (s *Server) lookupThumbnail(id string) (Thumbnail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	thumb, ok := s.thumbnails[id]
	if !ok {
		return Thumbnail{}, errNotFound
	}
	return *thumb, nil
}
