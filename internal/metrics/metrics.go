// Package metrics holds the Prometheus instrumentation for the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus collectors for the service.
type Metrics struct {
	SweepsTotal           prometheus.Counter // quickshare_sweeps_total
	SweepScanFailures     prometheus.Counter // quickshare_sweep_scan_failures_total
	RoomsExpired          prometheus.Counter // quickshare_rooms_expired_total
	RoomDeleteFailures    prometheus.Counter // quickshare_room_delete_failures_total
	StorageDeleteFailures prometheus.Counter // quickshare_storage_delete_failures_total
}

// New registers all collectors with the given registry. A nil registry
// falls back to the default registerer.
func New(registry prometheus.Registerer) *Metrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	return &Metrics{
		SweepsTotal: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "quickshare_sweeps_total",
			Help: "Completed expiry sweep ticks",
		}),
		SweepScanFailures: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "quickshare_sweep_scan_failures_total",
			Help: "Sweep ticks skipped because the expired-room scan failed",
		}),
		RoomsExpired: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "quickshare_rooms_expired_total",
			Help: "Rooms deleted by the expiry sweeper",
		}),
		RoomDeleteFailures: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "quickshare_room_delete_failures_total",
			Help: "Per-room cascade-delete failures during sweeps",
		}),
		StorageDeleteFailures: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "quickshare_storage_delete_failures_total",
			Help: "Best-effort object deletions that failed and were logged",
		}),
	}
}
