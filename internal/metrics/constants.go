package metrics

// Namespace prefixes every metric name.
const Namespace = "vitrina"

// Metric names
const (
	MetricNameHTTPRequestsTotal   = "http_requests_total"
	MetricNameHTTPRequestDuration = "http_request_duration_seconds"
	MetricNameItemsAdded          = "items_added_total"
	MetricNameItemsUpdated        = "items_updated_total"
	MetricNameItemsRemoved        = "items_removed_total"
	MetricNameSearches            = "searches_total"
	MetricNameStorageErrors       = "storage_errors_total"
	MetricNameGatewayCalls        = "gateway_calls_total"
)

// Metric help text
const (
	HelpTextHTTPRequestsTotal   = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration = "HTTP request latency in seconds"
	HelpTextItemsAdded          = "Total number of items added to the catalog"
	HelpTextItemsUpdated        = "Total number of items updated"
	HelpTextItemsRemoved        = "Total number of items removed"
	HelpTextSearches            = "Total number of non-empty search queries"
	HelpTextStorageErrors       = "Total number of failed durable store operations"
	HelpTextGatewayCalls        = "Total number of notification gateway calls"
)

// Label names
const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelOp     = "op"
	LabelCall   = "call"
	LabelResult = "result"
)

// Label values
const (
	OpRead  = "read"
	OpWrite = "write"

	CallEnquiry = "enquiry"
	CallUpload  = "upload"

	ResultSuccess = "success"
	ResultFailure = "failure"
)

// HTTPLatencyBuckets covers fast JSON responses up to the simulated gateway delays.
var HTTPLatencyBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}
