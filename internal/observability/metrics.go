package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce          sync.Once
	clientRequestsTotal   *prometheus.CounterVec
	clientRequestSeconds  *prometheus.HistogramVec
	realtimeEventsTotal   *prometheus.CounterVec
	realtimeDroppedEvents *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors for the study client.
func RegisterMetrics() {
	registerOnce.Do(func() {
		clientRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "barprep_client_requests_total",
			Help: "Total number of API requests issued by the client.",
		}, []string{"resource", "operation", "status"})

		clientRequestSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "barprep_client_request_seconds",
			Help:    "Latency distribution of API requests issued by the client.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
		}, []string{"resource", "operation"})

		realtimeEventsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "barprep_realtime_events_total",
			Help: "Total number of realtime events received, labeled by outcome.",
		}, []string{"outcome"})

		realtimeDroppedEvents = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "barprep_realtime_undecodable_events_total",
			Help: "Total number of realtime payloads that could not be decoded.",
		}, []string{"transport"})

		prometheus.MustRegister(clientRequestsTotal, clientRequestSeconds, realtimeEventsTotal, realtimeDroppedEvents)
	})
}

// ClientRequests exposes the counter for API requests.
func ClientRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return clientRequestsTotal
}

// ClientRequestLatency exposes the latency histogram for API requests.
func ClientRequestLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return clientRequestSeconds
}

// RealtimeEvents exposes the counter for received realtime events. Outcome is
// "delivered" for events forwarded to a handler and "filtered" for events the
// subscription predicate rejected.
func RealtimeEvents() *prometheus.CounterVec {
	RegisterMetrics()
	return realtimeEventsTotal
}

// RealtimeUndecodable exposes the counter for undecodable realtime payloads.
func RealtimeUndecodable() *prometheus.CounterVec {
	RegisterMetrics()
	return realtimeDroppedEvents
}
