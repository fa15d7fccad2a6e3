package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/eshop/pkg/metrics"
)

// Metrics HTTP请求指标采集中间件
// 设计说明：
// 1. 记录请求总数（按方法、路径、状态码分维度）
// 2. 记录请求耗时分布（Histogram，用于P99告警）
// 3. 记录正在处理的请求数（Gauge，用于观察并发量）
// 4. 路径使用路由模板（c.FullPath）而非实际URL，避免/orders/:id产生无限维度
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		metrics.IncGauge(metrics.HTTPRequestsInProgress)
		// handler panic时也要恢复计数(Recovery中间件在外层)
		defer metrics.DecGauge(metrics.HTTPRequestsInProgress)

		c.Next()

		// 使用路由模板作为path标签(如/api/v1/orders/:id)
		path := c.FullPath()
		if path == "" {
			path = "unmatched" // 404等未匹配路由
		}

		labels := map[string]string{
			"method": c.Request.Method,
			"path":   path,
			"status": strconv.Itoa(c.Writer.Status()),
		}

		metrics.IncCounterVec(metrics.HTTPRequestsTotal, labels)
		metrics.ObserveHistogramVec(metrics.HTTPRequestDuration, map[string]string{
			"method": c.Request.Method,
			"path":   path,
		}, time.Since(start).Seconds())
	}
}
