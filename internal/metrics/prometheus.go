package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ThumbnailsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "framethumb_thumbnails_total",
		Help: "Total number of thumbnail requests, by outcome",
	}, []string{"status"})

	ExtractionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "framethumb_extraction_duration_seconds",
		Help:    "Time spent decoding, resizing and saving a thumbnail",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	})

	MetadataProbesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "framethumb_metadata_probes_total",
		Help: "Total number of metadata probes, by outcome",
	}, []string{"status"})

	DumpJobsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "framethumb_dump_jobs_total",
		Help: "Total number of finished frame dump jobs, by outcome",
	}, []string{"status"})

	FramesDumpedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "framethumb_frames_dumped_total",
		Help: "Total number of frames written by dump jobs",
	})
)
