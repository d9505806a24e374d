package metrics

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"uilibs/internal/db"
)

var (
	libraryViewDesc = prometheus.NewDesc(
		"uilibs_library_views_total",
		"Total detail-page views per library",
		[]string{"library_id", "name"},
		nil,
	)
	submissionStatusDesc = prometheus.NewDesc(
		"uilibs_submissions",
		"Submission count by status",
		[]string{"status"},
		nil,
	)
)

// DirectoryCollector is a custom Prometheus collector that reads view and
// submission counts from the database on each scrape.
type DirectoryCollector struct {
	db *db.DB
}

// Describe sends the metric descriptors to the channel.
func (c *DirectoryCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- libraryViewDesc
	ch <- submissionStatusDesc
}

// Collect queries the database and emits view counters and submission gauges.
func (c *DirectoryCollector) Collect(ch chan<- prometheus.Metric) {
	views, err := c.db.GetAllLibraryViews(context.Background())
	if err != nil {
		slog.Error("failed to collect library view metrics", "error", err)
	} else {
		for _, v := range views {
			ch <- prometheus.MustNewConstMetric(
				libraryViewDesc,
				prometheus.CounterValue,
				float64(v.Count),
				v.LibraryID.String(),
				v.Name,
			)
		}
	}

	counts, err := c.db.GetSubmissionStatusCounts(context.Background())
	if err != nil {
		slog.Error("failed to collect submission metrics", "error", err)
		return
	}
	for status, count := range counts {
		ch <- prometheus.MustNewConstMetric(
			submissionStatusDesc,
			prometheus.GaugeValue,
			float64(count),
			status,
		)
	}
}

// Recorder provides async view recording.
type Recorder struct {
	db *db.DB
}

var (
	recorder     *Recorder
	recorderOnce sync.Once
)

// Init registers the custom collector and initializes the recorder.
// Must be called once at startup.
func Init(database *db.DB) {
	recorderOnce.Do(func() {
		recorder = &Recorder{db: database}
		prometheus.MustRegister(&DirectoryCollector{db: database})
	})
}

// RecordLibraryView asynchronously bumps a library's view counter.
func RecordLibraryView(libraryID uuid.UUID) {
	if recorder == nil {
		return
	}
	go func() {
		if err := recorder.db.IncrementLibraryView(context.Background(), libraryID); err != nil {
			slog.Error("failed to record library view", "library_id", libraryID, "error", err)
		}
	}()
}
