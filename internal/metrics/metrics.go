// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector はメトリクス収集のインターフェース。
// ハンドラーやサービス層から利用する。
type MetricsCollector interface {
	RecordSubmitSuccess()
	RecordSubmitFailure(reason string)
	RecordGeocodeFailure()
	RecordGateDecision(route string)
	RecordHTTPStatus(statusCode int)
	RecordSubmitLatency(duration time.Duration)
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	submitSuccess prometheus.Counter
	submitFail    *prometheus.CounterVec
	geocodeFail   prometheus.Counter
	gateDecision  *prometheus.CounterVec
	httpStatus    *prometheus.CounterVec
	submitLatency prometheus.Histogram
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		submitSuccess: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "coworkhub_submit_success_total",
			Help: "オンボーディング送信成功の合計数",
		}),
		submitFail: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "coworkhub_submit_fail_total",
			Help: "オンボーディング送信失敗の理由別合計数",
		}, []string{"reason"}),
		geocodeFail: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "coworkhub_geocode_fail_total",
			Help: "ジオコーディング失敗の合計数",
		}),
		gateDecision: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "coworkhub_gate_decision_total",
			Help: "完了ゲートの遷移先別判定数",
		}, []string{"route"}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "coworkhub_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
		submitLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "coworkhub_submit_latency_seconds",
			Help:    "オンボーディング送信のレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		c.submitSuccess,
		c.submitFail,
		c.geocodeFail,
		c.gateDecision,
		c.httpStatus,
		c.submitLatency,
	)

	return c
}

// RecordSubmitSuccess は送信成功を記録する。
func (c *Collector) RecordSubmitSuccess() {
	c.submitSuccess.Inc()
}

// RecordSubmitFailure は送信失敗を理由付きで記録する。
func (c *Collector) RecordSubmitFailure(reason string) {
	c.submitFail.WithLabelValues(reason).Inc()
}

// RecordGeocodeFailure はジオコーディング失敗を記録する。
func (c *Collector) RecordGeocodeFailure() {
	c.geocodeFail.Inc()
}

// RecordGateDecision はゲートの判定結果を記録する。
func (c *Collector) RecordGateDecision(route string) {
	c.gateDecision.WithLabelValues(route).Inc()
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordSubmitLatency は送信のレイテンシを記録する。
func (c *Collector) RecordSubmitLatency(duration time.Duration) {
	c.submitLatency.Observe(duration.Seconds())
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// SetupMetricsRoute は/metricsエンドポイントを提供するHTTPハンドラーを返す。
// Prometheusスクレイプに対応する。
func SetupMetricsRoute(gatherer prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(gatherer))
	return mux
}
