package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/dragonslaya84/IgnoranceNG/pkg/types"
)

// Prometheus 基于 client_golang 的 Reporter 实现
type Prometheus struct {
	events            *prometheus.CounterVec
	connectionsActive prometheus.Gauge
	connectionsOpened prometheus.Counter
	connectionsClosed *prometheus.CounterVec
	messagesQueued    prometheus.Counter
	bytesQueued       prometheus.Counter
	packetsDropped    *prometheus.CounterVec
	tickDuration      prometheus.Histogram
	tickEvents        prometheus.Histogram
	panics            prometheus.Counter
}

// NewPrometheus 创建并注册所有指标
//
// reg 为 nil 时使用 prometheus.DefaultRegisterer。
func NewPrometheus(namespace string, reg prometheus.Registerer) *Prometheus {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)

	p := &Prometheus{
		events: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Total number of transport events processed by the dispatch loop",
		}, []string{"type"}),
		connectionsActive: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "connections_active",
			Help:      "Current number of registered connections",
		}),
		connectionsOpened: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "connections_opened_total",
			Help:      "Total number of connections accepted",
		}),
		connectionsClosed: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "connections_closed_total",
			Help:      "Total number of connections removed from the registry",
		}, []string{"reason"}),
		messagesQueued: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_queued_total",
			Help:      "Total number of messages delivered to inbound queues",
		}),
		bytesQueued: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "message_bytes_queued_total",
			Help:      "Total payload bytes delivered to inbound queues",
		}),
		packetsDropped: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "packets_dropped_total",
			Help:      "Total number of received packets discarded",
		}, []string{"reason"}),
		tickDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tick_duration_seconds",
			Help:      "Time spent draining and dispatching events per tick",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10), // 10µs to ~2.6s
		}),
		tickEvents: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tick_events",
			Help:      "Number of events dispatched per tick",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12), // 1 to 2048
		}),
		panics: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dispatch_panics_total",
			Help:      "Total number of panics recovered while dispatching events",
		}),
	}

	// 预先创建标签，便于查询时得到 0 而不是缺失
	for _, r := range AllDropReasons() {
		p.packetsDropped.WithLabelValues(r.String())
	}
	for _, t := range []types.EventType{types.EventConnect, types.EventDisconnect, types.EventReceive, types.EventTimeout} {
		p.events.WithLabelValues(t.String())
	}
	p.connectionsClosed.WithLabelValues(types.EventDisconnect.String())
	p.connectionsClosed.WithLabelValues(types.EventTimeout.String())

	return p
}

// EventProcessed 实现 Reporter
func (p *Prometheus) EventProcessed(t types.EventType) {
	p.events.WithLabelValues(t.String()).Inc()
}

// ConnectionOpened 实现 Reporter
func (p *Prometheus) ConnectionOpened() {
	p.connectionsOpened.Inc()
	p.connectionsActive.Inc()
}

// ConnectionClosed 实现 Reporter
func (p *Prometheus) ConnectionClosed(reason types.EventType) {
	p.connectionsClosed.WithLabelValues(reason.String()).Inc()
	p.connectionsActive.Dec()
}

// MessageQueued 实现 Reporter
func (p *Prometheus) MessageQueued(_ uint8, bytes int) {
	p.messagesQueued.Inc()
	p.bytesQueued.Add(float64(bytes))
}

// PacketDropped 实现 Reporter
func (p *Prometheus) PacketDropped(reason DropReason) {
	p.packetsDropped.WithLabelValues(reason.String()).Inc()
}

// TickCompleted 实现 Reporter
func (p *Prometheus) TickCompleted(events int, d time.Duration) {
	p.tickDuration.Observe(d.Seconds())
	if events > 0 {
		p.tickEvents.Observe(float64(events))
	}
}

// PanicRecovered 实现 Reporter
func (p *Prometheus) PanicRecovered() {
	p.panics.Inc()
}
