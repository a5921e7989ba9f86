package daemon

import (
	"net/http"
	"strings"

	"framethumb/internal/extract"
)

// handleHealth godoc
// @Summary Health check
// @Description Returns service health and version.
// @Tags system
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": Version,
	})
}

// handleConfig godoc
// @Summary Get or update settings
// @Description Returns the current settings on GET and updates selected fields on PUT.
// @Tags config
// @Accept json
// @Produce json
// @Param request body SettingsUpdateRequest false "Fields to update (PUT only)"
// @Success 200 {object} Settings
// @Success 200 {object} StatusResponse "Update acknowledgment"
// @Failure 400 {object} ErrorResponse
// @Router /config [get]
// @Router /config [put]
func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.mu.RLock()
		settings := s.settings
		s.mu.RUnlock()
		writeJSON(w, http.StatusOK, settings)
	case http.MethodPut:
		var req SettingsUpdateRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json payload")
			return
		}
		if req.OutputDir != nil && strings.TrimSpace(*req.OutputDir) == "" {
			writeError(w, http.StatusBadRequest, "output_dir must not be empty")
			return
		}
		if req.JPEGQuality != nil && (*req.JPEGQuality < 1 || *req.JPEGQuality > 100) {
			writeError(w, http.StatusBadRequest, "jpeg_quality must be within [1,100]")
			return
		}
		if req.DefaultSize != nil {
			if _, err := extract.NewSize(req.DefaultSize[:]...); err != nil {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
		}

		s.mu.Lock()
		if req.OutputDir != nil {
			s.settings.OutputDir = *req.OutputDir
		}
		if req.JPEGQuality != nil {
			s.settings.JPEGQuality = *req.JPEGQuality
		}
		if req.DefaultSize != nil {
			s.settings.DefaultSize = *req.DefaultSize
		}
		s.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
