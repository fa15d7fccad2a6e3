package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// TestInitMetrics 测试指标初始化
func TestInitMetrics(t *testing.T) {
	InitMetrics()

	if HTTPRequestsTotal == nil {
		t.Error("HTTPRequestsTotal未初始化")
	}
	if HTTPRequestDuration == nil {
		t.Error("HTTPRequestDuration未初始化")
	}
	if OrdersCreatedTotal == nil {
		t.Error("OrdersCreatedTotal未初始化")
	}
	if OrdersFailedTotal == nil {
		t.Error("OrdersFailedTotal未初始化")
	}
	if CircuitBreakerState == nil {
		t.Error("CircuitBreakerState未初始化")
	}
	if CacheRequestsTotal == nil {
		t.Error("CacheRequestsTotal未初始化")
	}
}

// TestInitMetrics_Idempotent 测试重复初始化不会panic
// promauto重复注册同名指标会panic，initialized标记必须拦截第二次调用
func TestInitMetrics_Idempotent(t *testing.T) {
	InitMetrics()
	InitMetrics()
}

// TestCounter 测试Counter指标
func TestCounter(t *testing.T) {
	InitMetrics()

	before := getCounterValue(t, OrdersCreatedTotal)

	IncCounter(OrdersCreatedTotal)
	IncCounter(OrdersCreatedTotal)
	IncCounter(OrdersCreatedTotal)

	after := getCounterValue(t, OrdersCreatedTotal)
	if after-before != 3 {
		t.Errorf("Counter递增错误: expected=+3, got=+%f", after-before)
	}
}

// TestCounterAdd 测试Counter批量累加
func TestCounterAdd(t *testing.T) {
	InitMetrics()

	before := getCounterValue(t, StockDeductedTotal)
	AddCounter(StockDeductedTotal, 5)

	after := getCounterValue(t, StockDeductedTotal)
	if after-before != 5 {
		t.Errorf("Counter累加错误: expected=+5, got=+%f", after-before)
	}
}

// TestCounterVec 测试带标签的Counter指标
func TestCounterVec(t *testing.T) {
	InitMetrics()

	labels := map[string]string{"reason": "insufficient_stock"}

	before := getCounterVecValue(t, OrdersFailedTotal, labels)
	IncCounterVec(OrdersFailedTotal, labels)
	IncCounterVec(OrdersFailedTotal, labels)

	after := getCounterVecValue(t, OrdersFailedTotal, labels)
	if after-before != 2 {
		t.Errorf("CounterVec递增错误: expected=+2, got=+%f", after-before)
	}
}

// TestGaugeVec 测试熔断器状态Gauge
func TestGaugeVec(t *testing.T) {
	InitMetrics()

	labels := map[string]string{"name": "order-cache"}
	SetGaugeVec(CircuitBreakerState, labels, 1)

	m := &dto.Metric{}
	if err := CircuitBreakerState.With(labels).Write(m); err != nil {
		t.Fatalf("读取Gauge失败: %v", err)
	}
	if m.GetGauge().GetValue() != 1 {
		t.Errorf("Gauge值错误: expected=1, got=%f", m.GetGauge().GetValue())
	}
}

// =========================================
// 测试辅助函数
// =========================================

func getCounterValue(t *testing.T, counter prometheus.Counter) float64 {
	t.Helper()
	m := &dto.Metric{}
	if err := counter.Write(m); err != nil {
		t.Fatalf("读取Counter失败: %v", err)
	}
	return m.GetCounter().GetValue()
}

func getCounterVecValue(t *testing.T, counter *prometheus.CounterVec, labels map[string]string) float64 {
	t.Helper()
	m := &dto.Metric{}
	if err := counter.With(labels).Write(m); err != nil {
		t.Fatalf("读取CounterVec失败: %v", err)
	}
	return m.GetCounter().GetValue()
}
