package daemon

import (
	"net/http"
	"strings"

	"framethumb/internal/extract"
	"framethumb/internal/metrics"
)

// handleMetadata godoc
// @Summary Probe video metadata
// @Description Opens the video and returns its frame count, resolution and frame rate.
// @Tags videos
// @Accept json
// @Produce json
// @Param request body MetadataRequest true "Video to probe"
// @Success 200 {object} capture.Metadata
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /videos/metadata [post]
func (s *Server) handleMetadata(w http.ResponseWriter, r *http.Request) {
	var req MetadataRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json payload")
		return
	}
	if strings.TrimSpace(req.Path) == "" {
		writeError(w, http.StatusBadRequest, "path is required")
		return
	}

	if err := extract.CheckVideoPath(req.Path); err != nil {
		s.probeFailed(w, err)
		return
	}
	meta, err := s.extractor().LoadMetadata(req.Path)
	if err != nil {
		s.probeFailed(w, err)
		return
	}
	metrics.MetadataProbesTotal.WithLabelValues("ok").Inc()
	writeJSON(w, http.StatusOK, meta)
}

func (s *Server) probeFailed(w http.ResponseWriter, err error) {
	status, kind := classify(err)
	metrics.MetadataProbesTotal.WithLabelValues(kind).Inc()
	writeError(w, status, err.Error())
}
