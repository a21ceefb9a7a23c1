// Package monitoring exports ordering activity as Prometheus metrics.
package monitoring

import (
	"context"
	"net/http"
	"time"

	"quickbite/internal/models"
	"quickbite/internal/ordering"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "quickbite"

// Monitor collects ordering metrics on its own registry.
type Monitor struct {
	registry *prometheus.Registry

	ordersPlaced      *prometheus.CounterVec
	placementRejected *prometheus.CounterVec
	slotOccupancy     *prometheus.GaugeVec
	slotCapacity      prometheus.Gauge
	estimatedPrep     prometheus.Histogram
	statusTransitions *prometheus.CounterVec
	readyDelay        prometheus.Histogram
}

// NewMonitor creates a Monitor for slots holding at most capacity orders.
func NewMonitor(capacity int) *Monitor {
	m := &Monitor{
		registry: prometheus.NewRegistry(),
		ordersPlaced: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "orders_placed_total",
				Help:      "Orders placed, by pickup slot",
			},
			[]string{"slot"},
		),
		placementRejected: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "placement_rejected_total",
				Help:      "Placements refused, by pickup slot and reason",
			},
			[]string{"slot", "reason"},
		),
		slotOccupancy: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "slot_occupancy",
				Help:      "Orders currently held by each pickup slot",
			},
			[]string{"slot"},
		),
		slotCapacity: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "slot_capacity",
			Help:      "Maximum orders per pickup slot",
		}),
		estimatedPrep: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "estimated_prep_minutes",
			Help:      "Promised preparation time of placed orders",
			Buckets:   prometheus.LinearBuckets(5, 5, 12),
		}),
		statusTransitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "status_transitions_total",
				Help:      "Preparation status updates, by target status",
			},
			[]string{"to"},
		),
		readyDelay: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ready_delay_minutes",
			Help:      "Actual ready time minus promised ready time, on first arrival in ready",
			Buckets:   prometheus.LinearBuckets(-20, 5, 13),
		}),
	}

	m.registry.MustRegister(
		m.ordersPlaced,
		m.placementRejected,
		m.slotOccupancy,
		m.slotCapacity,
		m.estimatedPrep,
		m.statusTransitions,
		m.readyDelay,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m.slotCapacity.Set(float64(capacity))
	return m
}

// Observe updates the metrics for one ordering event.
func (m *Monitor) Observe(_ context.Context, e ordering.Event) {
	switch e.Type {
	case ordering.EventOrderPlaced:
		m.ordersPlaced.WithLabelValues(e.Slot).Inc()
		m.slotOccupancy.WithLabelValues(e.Slot).Set(float64(e.SlotCount))
		if o := e.Order; o != nil && o.EstimatedReadyAt != nil {
			m.estimatedPrep.Observe(o.EstimatedReadyAt.Sub(o.CreatedAt).Minutes())
		}
	case ordering.EventPlacementRejected:
		m.placementRejected.WithLabelValues(e.Slot, e.Reason).Inc()
		m.slotOccupancy.WithLabelValues(e.Slot).Set(float64(e.SlotCount))
	case ordering.EventStatusChanged:
		m.statusTransitions.WithLabelValues(string(e.To)).Inc()
		o := e.Order
		if o == nil || e.To != models.PrepStatusReady || o.ActualReadyAt == nil || o.EstimatedReadyAt == nil {
			return
		}
		// Later moves into ready keep the first stamp.
		if o.ActualReadyAt.Equal(e.At) {
			m.readyDelay.Observe(o.ActualReadyAt.Sub(*o.EstimatedReadyAt).Minutes())
		}
	}
}

// Handler serves the metrics in the Prometheus exposition format.
func (m *Monitor) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		Registry: m.registry,
		Timeout:  10 * time.Second,
	})
}
