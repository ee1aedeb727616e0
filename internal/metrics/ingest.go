package metrics

import "github.com/prometheus/client_golang/prometheus"

// Ingestion Prometheus metrics.
var (
	IngestFilesProcessed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "shopdex",
			Name:      "ingest_files_processed_total",
			Help:      "Total number of PDF files successfully ingested",
		},
	)

	IngestFilesFailed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "shopdex",
			Name:      "ingest_files_failed_total",
			Help:      "Total number of PDF files that failed extraction",
		},
	)

	SuggestionCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shopdex",
			Name:      "suggestion_cache_total",
			Help:      "Suggestion cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

var ingestRegistered = false

// RegisterIngestMetrics registers ingestion and cache metrics explicitly
// (no init()) so CLI tools can opt in.
func RegisterIngestMetrics() {
	if ingestRegistered {
		return
	}
	ingestRegistered = true
	prometheus.MustRegister(IngestFilesProcessed)
	prometheus.MustRegister(IngestFilesFailed)
	prometheus.MustRegister(SuggestionCacheTotal)
}
