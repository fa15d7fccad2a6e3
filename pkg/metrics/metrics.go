// Package metrics 提供基于Prometheus的指标收集框架
//
// 可观测性三支柱之一（Tracing、Metrics、Logging）：
// - **Tracing（追踪）**: 回答"为什么慢？"（见pkg/tracing）
// - **Metrics（指标）**: 回答"有多少？多快？"（本模块）
// - **Logging（日志）**: 回答"发生了什么？"
//
// 指标类型：
// 1. **Counter（计数器）**：只增不减的累计值（请求总数、订单总数）
// 2. **Gauge（仪表盘）**：可增可减的瞬时值（处理中的请求数）
// 3. **Histogram（直方图）**：观测值的分布，自动计算分位数（请求耗时P99）
//
// 使用示例：
//
//	// 1. 程序启动时初始化
//	metrics.InitMetrics()
//
//	// 2. 暴露/metrics端点（Prometheus每15秒抓取）
//	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
//
//	// 3. 在业务代码中记录
//	metrics.IncCounter(metrics.OrdersCreatedTotal)
//	metrics.ObserveHistogram(metrics.OrderCreationDuration, time.Since(start).Seconds())
//
// 命名规范：
// - Counter以`_total`结尾（orders_created_total）
// - Histogram以单位结尾（order_creation_duration_seconds）
// - 避免高基数标签（不要用customer_id做标签）
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// initialized 标记是否已初始化（防止重复注册panic）
	initialized bool

	// HTTP请求相关指标

	// HTTPRequestsTotal HTTP请求总数（Counter）
	// 标签：method（GET/POST）、path（/api/v1/orders）、status（200/500）
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时（Histogram）
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数（Gauge）
	HTTPRequestsInProgress prometheus.Gauge

	// 订单业务指标

	// OrdersCreatedTotal 订单创建总数（Counter）
	OrdersCreatedTotal prometheus.Counter

	// OrdersFailedTotal 订单创建失败总数（Counter）
	// 标签：reason（customer_not_found/product_unavailable/insufficient_stock/internal）
	OrdersFailedTotal *prometheus.CounterVec

	// OrderCreationDuration 订单创建耗时（Histogram）
	OrderCreationDuration prometheus.Histogram

	// StockDeductedTotal 累计扣减库存数量（Counter）
	StockDeductedTotal prometheus.Counter

	// 熔断器指标

	// CircuitBreakerState 熔断器状态（Gauge）
	// 0=CLOSED, 1=OPEN, 2=HALF_OPEN
	CircuitBreakerState *prometheus.GaugeVec

	// CircuitBreakerRequests 熔断器请求总数（Counter）
	// 标签：name（熔断器名称）、result（success/failure/rejected）
	CircuitBreakerRequests *prometheus.CounterVec

	// 消息队列指标

	// MessagesPublishedTotal 消息发布总数（Counter）
	// 标签：exchange（交换机）、routing_key（路由键）
	MessagesPublishedTotal *prometheus.CounterVec

	// 缓存指标

	// CacheRequestsTotal 订单缓存请求总数（Counter）
	// 标签：result（hit/miss/error）
	CacheRequestsTotal *prometheus.CounterVec
)

// InitMetrics 初始化所有Prometheus指标
// 必须在程序启动时调用一次，使用promauto自动注册到默认Registry
func InitMetrics() {
	if initialized {
		return
	}
	initialized = true

	// HTTP请求指标
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP请求总数",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "HTTP请求耗时（秒）",
			// 覆盖大部分HTTP请求耗时范围
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_progress",
			Help: "正在处理的HTTP请求数",
		},
	)

	// 订单业务指标
	OrdersCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_created_total",
			Help: "订单创建总数",
		},
	)

	OrdersFailedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_failed_total",
			Help: "订单创建失败总数",
		},
		[]string{"reason"},
	)

	OrderCreationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "order_creation_duration_seconds",
			Help: "订单创建耗时（秒）",
			// 下单涉及事务内多次数据库往返，耗时偏长
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10},
		},
	)

	StockDeductedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stock_deducted_total",
			Help: "累计扣减库存数量",
		},
	)

	// 熔断器指标
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "熔断器状态（0=CLOSED, 1=OPEN, 2=HALF_OPEN）",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "熔断器请求总数",
		},
		[]string{"name", "result"},
	)

	// 消息队列指标
	MessagesPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_published_total",
			Help: "消息发布总数",
		},
		[]string{"exchange", "routing_key"},
	)

	// 缓存指标
	CacheRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_requests_total",
			Help: "订单缓存请求总数",
		},
		[]string{"result"},
	)
}

// IncCounter 递增Counter（便捷函数）
// 指标未初始化时（如单元测试）为nil，直接跳过
func IncCounter(counter prometheus.Counter) {
	if counter == nil {
		return
	}
	counter.Inc()
}

// AddCounter Counter增加指定值
func AddCounter(counter prometheus.Counter, value float64) {
	if counter == nil {
		return
	}
	counter.Add(value)
}

// IncCounterVec 递增CounterVec（带标签）
func IncCounterVec(counter *prometheus.CounterVec, labels map[string]string) {
	if counter == nil {
		return
	}
	counter.With(labels).Inc()
}

// IncGauge 递增Gauge
func IncGauge(gauge prometheus.Gauge) {
	if gauge == nil {
		return
	}
	gauge.Inc()
}

// DecGauge 递减Gauge
func DecGauge(gauge prometheus.Gauge) {
	if gauge == nil {
		return
	}
	gauge.Dec()
}

// SetGaugeVec 设置GaugeVec值（带标签）
func SetGaugeVec(gauge *prometheus.GaugeVec, labels map[string]string, value float64) {
	if gauge == nil {
		return
	}
	gauge.With(labels).Set(value)
}

// ObserveHistogram 记录Histogram观测值
func ObserveHistogram(histogram prometheus.Histogram, value float64) {
	if histogram == nil {
		return
	}
	histogram.Observe(value)
}

// ObserveHistogramVec 记录HistogramVec观测值（带标签）
func ObserveHistogramVec(histogram *prometheus.HistogramVec, labels map[string]string, value float64) {
	if histogram == nil {
		return
	}
	histogram.With(labels).Observe(value)
}
