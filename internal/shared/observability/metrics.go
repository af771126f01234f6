package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	ParsingDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "doccomplete_parsing_seconds",
		Help:    "Time spent parsing a source file.",
		Buckets: prometheus.DefBuckets,
	})

	CheckDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "doccomplete_check_seconds",
		Help:    "Time spent checking the docstrings of a file.",
		Buckets: prometheus.DefBuckets,
	})

	FilesChecked = promauto.NewCounter(prometheus.CounterOpts{
		Name: "doccomplete_files_checked_total",
		Help: "Total number of files checked.",
	})

	ProblemsFound = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "doccomplete_problems_found_total",
		Help: "Total number of docstring problems found, by code.",
	}, []string{"code"})

	WatcherEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "doccomplete_watcher_events_total",
		Help: "Total number of file system events received by the watcher.",
	})

	CurrentProblems = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "doccomplete_current_problems",
		Help: "Number of problems found by the most recent scan.",
	})
)
