package daemon

import (
	"net/http"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"
)

// handleDump godoc
// @Summary Start a frame dump job
// @Description Decodes the whole video in the background and saves every step-th frame as 1000.jpg, 1001.jpg, ... Without output_dir the frames go to <output_dir>/<video name>/<job_id>. An output_dir that already holds dumped frames or is used by a running job is rejected.
// @Tags videos
// @Accept json
// @Produce json
// @Param request body DumpRequest true "Dump options"
// @Success 200 {object} StartJobResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /videos/dump [post]
func (s *Server) handleDump(w http.ResponseWriter, r *http.Request) {
	var req DumpRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json payload")
		return
	}
	if strings.TrimSpace(req.VideoPath) == "" {
		writeError(w, http.StatusBadRequest, "video_path is required")
		return
	}
	if req.Step == 0 {
		req.Step = 1
	}

	job, err := s.startDumpJob(req.VideoPath, strings.TrimSpace(req.OutputDir), req.Step)
	if err != nil {
		status, _ := classify(err)
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, StartJobResponse{Status: "started", JobID: job.ID})
}

// handleJobs godoc
// @Summary List jobs
// @Description Returns all frame dump jobs with progress.
// @Tags jobs
// @Produce json
// @Success 200 {array} Job
// @Router /jobs [get]
func (s *Server) handleJobs(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	list := make([]Job, 0, len(s.jobs))
	for _, j := range s.jobs {
		list = append(list, *j)
	}
	s.mu.RUnlock()
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
	writeJSON(w, http.StatusOK, list)
}

// handleGetJob godoc
// @Summary Get job details
// @Description Returns the status and progress of a frame dump job.
// @Tags jobs
// @Produce json
// @Param jobID path string true "Job ID"
// @Success 200 {object} Job
// @Failure 404 {object} ErrorResponse
// @Router /jobs/{jobID} [get]
func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	s.mu.RLock()
	job, ok := s.jobs[jobID]
	if ok {
		copyJob := *job
		s.mu.RUnlock()
		writeJSON(w, http.StatusOK, copyJob)
		return
	}
	s.mu.RUnlock()
	writeError(w, http.StatusNotFound, "job not found")
}

func framesDirForVideo(root, videoPath string) string {
	base := filepath.Base(videoPath)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(root, name)
}
