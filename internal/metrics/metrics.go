package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameHTTPRequestsTotal,
			Help:      HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      MetricNameHTTPRequestDuration,
			Help:      HelpTextHTTPRequestDuration,
			Buckets:   HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)
)

// Catalog Metrics
var (
	ItemsAdded = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameItemsAdded,
			Help:      HelpTextItemsAdded,
		},
	)

	ItemsUpdated = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameItemsUpdated,
			Help:      HelpTextItemsUpdated,
		},
	)

	ItemsRemoved = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameItemsRemoved,
			Help:      HelpTextItemsRemoved,
		},
	)

	Searches = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameSearches,
			Help:      HelpTextSearches,
		},
	)

	StorageErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameStorageErrors,
			Help:      HelpTextStorageErrors,
		},
		[]string{LabelOp},
	)
)

// Gateway Metrics
var (
	GatewayCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameGatewayCalls,
			Help:      HelpTextGatewayCalls,
		},
		[]string{LabelCall, LabelResult},
	)
)
