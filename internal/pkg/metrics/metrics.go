package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics はアプリケーションのメトリクスを管理する
type Metrics struct {
	// HTTPリクエストの総数（method, path, status_code）
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPリクエストのレイテンシ（method, path）
	HTTPRequestDuration *prometheus.HistogramVec

	// イベント変更の総数（action: CREATE, UPDATE, DELETE）
	EventMutationsTotal *prometheus.CounterVec

	// オブザーバーへの通知失敗数（action）
	ObserverFailuresTotal *prometheus.CounterVec

	// リマインダーの処理数（status: sent, failed, skipped）
	RemindersTotal *prometheus.CounterVec

	// リマインダーが追跡しているイベント数
	ReminderMirrorSize prometheus.Gauge

	// リマインダー走査の所要時間
	ReminderScanDuration prometheus.Histogram
}

// New は新しいMetricsインスタンスを作成し、デフォルトレジストリに登録する
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry は指定したレジストリにメトリクスを登録する
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		EventMutationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "event_mutations_total",
				Help: "Total number of committed event mutations",
			},
			[]string{"action"},
		),
		ObserverFailuresTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "event_observer_failures_total",
				Help: "Total number of failed observer notifications",
			},
			[]string{"action"},
		),
		RemindersTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reminders_total",
				Help: "Total number of reminders processed",
			},
			[]string{"status"},
		),
		ReminderMirrorSize: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "reminder_tracked_events",
				Help: "Current number of events tracked by the reminder service",
			},
		),
		ReminderScanDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "reminder_scan_duration_seconds",
				Help:    "Time spent scanning for due reminders",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
		),
	}

	// レジストリに登録
	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.EventMutationsTotal,
		m.ObserverFailuresTotal,
		m.RemindersTotal,
		m.ReminderMirrorSize,
		m.ReminderScanDuration,
	)

	return m
}

// デフォルトのメトリクスインスタンス
var defaultMetrics *Metrics

// Init はデフォルトのメトリクスインスタンスを初期化する
func Init() *Metrics {
	defaultMetrics = New()
	return defaultMetrics
}

// Get はデフォルトのメトリクスインスタンスを返す
func Get() *Metrics {
	return defaultMetrics
}
