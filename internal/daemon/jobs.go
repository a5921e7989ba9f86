package daemon

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"framethumb/internal/extract"
	"framethumb/internal/metrics"

	"go.uber.org/zap"
)

// startDumpJob validates the request and schedules a background frame dump.
// An empty outputDir selects a fresh directory for the job under the
// configured output directory.
func (s *Server) startDumpJob(videoPath, outputDir string, step int) (*Job, error) {
	if err := extract.CheckVideoPath(videoPath); err != nil {
		return nil, err
	}
	if step <= 0 {
		return nil, fmt.Errorf("%w: step must be positive, got %d", extract.ErrInvalidStep, step)
	}
	meta, err := s.extractor().LoadMetadata(videoPath)
	if err != nil {
		return nil, err
	}

	id := newID("job_")
	if outputDir == "" {
		if outputDir, err = s.jobOutputDir(id, videoPath); err != nil {
			return nil, err
		}
	} else if err := checkDumpDir(outputDir); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	job := &Job{
		ID:          id,
		VideoPath:   videoPath,
		OutputDir:   outputDir,
		Type:        "dump_frames",
		Step:        step,
		Status:      "queued",
		TotalFrames: meta.FrameCount,
		Expected:    meta.FrameCount / step,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	s.mu.Lock()
	for _, other := range s.jobs {
		if other.OutputDir == outputDir && (other.Status == "queued" || other.Status == "running") {
			s.mu.Unlock()
			return nil, fmt.Errorf("%w: %s is used by %s", errOutputInUse, outputDir, other.ID)
		}
	}
	s.jobs[job.ID] = job
	s.mu.Unlock()

	go s.runDumpJob(job.ID)
	return job, nil
}

// jobOutputDir creates <output dir>/<video name> and returns the job's own
// directory below it. The job directory itself is created by DumpFrames.
func (s *Server) jobOutputDir(jobID, videoPath string) (string, error) {
	s.mu.RLock()
	root := s.settings.OutputDir
	s.mu.RUnlock()

	videoDir := framesDirForVideo(root, videoPath)
	for _, dir := range []string{root, videoDir} {
		if err := extract.EnsureOutputDir(dir); err != nil {
			return "", err
		}
	}
	return filepath.Join(videoDir, jobID), nil
}

// checkDumpDir rejects a directory that already holds dumped frames, which
// a new dump would overwrite.
func checkDumpDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("%w: %v", extract.ErrOutputDir, err)
	}
	for _, entry := range entries {
		if !entry.IsDir() && extract.IsDumpName(entry.Name()) {
			return fmt.Errorf("%w: %s already holds dumped frames", errOutputInUse, dir)
		}
	}
	return nil
}

// runDumpJob dumps frames, recording progress after every decoded frame.
func (s *Server) runDumpJob(jobID string) {
	s.mu.Lock()
	job, ok := s.jobs[jobID]
	if !ok {
		s.mu.Unlock()
		return
	}
	videoPath, outputDir, step := job.VideoPath, job.OutputDir, job.Step
	job.Status = "running"
	job.UpdatedAt = time.Now().UTC()
	s.mu.Unlock()

	ex := s.extractorWith(func(decoded, saved int) {
		s.recordProgress(jobID, decoded, saved)
	})
	saved, err := ex.DumpFrames(videoPath, outputDir, step)
	if err != nil {
		s.failJob(jobID, saved, fmt.Errorf("dump frames: %w", err))
		return
	}
	s.completeJob(jobID, saved)
}

// recordProgress stores the counters reported by DumpFrames. Progress stays
// below 1 until the job completes.
func (s *Server) recordProgress(jobID string, decoded, saved int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[jobID]
	if !ok || job.Status != "running" {
		return
	}
	job.Decoded = decoded
	job.FramesSaved = saved

	total := job.TotalFrames
	if total <= 0 {
		total = 1
	}
	progress := float64(decoded) / float64(total)
	if progress >= 1 {
		progress = math.Nextafter(1, 0)
	}
	if progress > job.Progress {
		job.Progress = progress
	}
	job.UpdatedAt = time.Now().UTC()
}

func (s *Server) completeJob(jobID string, saved int) {
	now := time.Now().UTC()
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[jobID]
	if !ok {
		return
	}
	job.Status = "done"
	job.Progress = 1
	job.FramesSaved = saved
	job.Expected = saved
	job.LastError = nil
	job.UpdatedAt = now
	job.FinishedAt = &now
	metrics.DumpJobsTotal.WithLabelValues("done").Inc()
	metrics.FramesDumpedTotal.Add(float64(saved))
	s.logger.Info("dump job finished", zap.String("job_id", jobID), zap.Int("frames_saved", saved))
}

func (s *Server) failJob(jobID string, saved int, err error) {
	msg := err.Error()
	now := time.Now().UTC()
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[jobID]
	if !ok {
		return
	}
	job.Status = "failed"
	job.FramesSaved = saved
	job.LastError = &msg
	job.UpdatedAt = now
	job.FinishedAt = &now
	_, kind := classify(err)
	metrics.DumpJobsTotal.WithLabelValues(kind).Inc()
	metrics.FramesDumpedTotal.Add(float64(saved))
	s.logger.Warn("dump job failed", zap.String("job_id", jobID), zap.Error(err))
}
