package tracing

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// TestInitTracer 测试Tracer初始化
// 说明：OTLP gRPC连接是惰性建立的，本地没有Collector也能初始化成功；
// shutdown的刷新错误不做断言（测试环境无Collector时刷新必然失败）
func TestInitTracer(t *testing.T) {
	shutdown, err := InitTracer("eshop-test", "localhost:4317")
	if err != nil {
		t.Fatalf("初始化Tracer失败: %v", err)
	}
	defer func() { _ = shutdown(context.Background()) }()

	tracer := otel.Tracer("test")
	if tracer == nil {
		t.Error("全局TracerProvider未设置")
	}
}

// TestStartSpan 测试Span创建
func TestStartSpan(t *testing.T) {
	shutdown, err := InitTracer("eshop-test", "localhost:4317")
	if err != nil {
		t.Fatalf("初始化Tracer失败: %v", err)
	}
	defer func() { _ = shutdown(context.Background()) }()

	t.Run("创建根Span", func(t *testing.T) {
		ctx, span := StartSpan(context.Background(), "eshop-test", "TestOperation")
		defer span.End()

		if !span.SpanContext().IsValid() {
			t.Error("Span无效")
		}

		traceID := span.SpanContext().TraceID().String()
		if traceID == "00000000000000000000000000000000" {
			t.Errorf("TraceID无效: %s", traceID)
		}
		_ = ctx
	})

	t.Run("子Span共享TraceID", func(t *testing.T) {
		ctx, rootSpan := StartSpan(context.Background(), "eshop-test", "RootOperation")
		defer rootSpan.End()

		_, childSpan := StartSpan(ctx, "eshop-test", "ChildOperation")
		defer childSpan.End()

		childSpan.SetAttributes(attribute.String("customer_id", "c-1"))

		if rootSpan.SpanContext().TraceID() != childSpan.SpanContext().TraceID() {
			t.Error("子Span应与根Span共享TraceID")
		}
		if rootSpan.SpanContext().SpanID() == childSpan.SpanContext().SpanID() {
			t.Error("子Span的SpanID不应与根Span相同")
		}
	})
}
