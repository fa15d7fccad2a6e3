// Package tracing 提供基于OpenTelemetry的分布式追踪框架
//
// 核心概念：
// 1. **Trace（追踪）**：一个完整的请求链路（如一次下单）
// 2. **Span（跨度）**：一个操作单元（如批量查询商品、创建订单记录）
// 3. **SpanContext**：跨调用传递的元数据（TraceID、SpanID、ParentSpanID）
//
// 下单链路示例：
//
//	Trace: CreateOrder（TraceID=abc123）
//	├─ Span: 查询客户
//	├─ Span: 批量查询商品
//	├─ Span: 写入订单
//	└─ Span: 批量更新库存
//
// 使用OTLP协议导出（厂商中立，可对接Jaeger、Zipkin、Datadog）。
package tracing

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

// InitTracer 初始化全局Tracer Provider
//
// 参数：
//   - serviceName: 服务名称（在Jaeger UI中显示）
//   - endpoint: Collector的OTLP gRPC端点（如 localhost:4317）
//
// 返回：
//   - shutdown: 关闭函数（程序退出时调用，刷新未发送的Span）
//
// 采样策略：当前AlwaysSample（100%采样），适合开发/测试环境；
// 生产环境建议改为 sdktrace.TraceIDRatioBased(0.01)。
func InitTracer(serviceName, endpoint string) (func(context.Context) error, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// 1. 创建OTLP gRPC Exporter
	// gRPC传输（默认端口4317），连接是惰性建立的，Collector不可达不影响启动
	exporter, err := otlptracegrpc.New(
		ctx,
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithInsecure(), // 禁用TLS（生产环境应启用）
	)
	if err != nil {
		return nil, fmt.Errorf("创建OTLP exporter失败: %w", err)
	}

	// 2. 创建Resource（资源属性）
	// service.name会附加到所有Span上，用于在UI中筛选和分组
	res, err := resource.New(
		ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("创建资源属性失败: %w", err)
	}

	// 3. 创建Tracer Provider
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		// BatchSpanProcessor批量发送（每2秒或512个Span一批）
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	// 4. 设置全局TracerProvider
	// 业务代码直接用otel.Tracer()获取，无需层层传递
	otel.SetTracerProvider(tp)

	// 5. 设置全局Propagator（W3C Trace Context + Baggage）
	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		),
	)

	// 6. 返回关闭函数，退出前必须调用，否则丢失最后一批Span
	shutdown := func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return tp.Shutdown(ctx)
	}

	return shutdown, nil
}

// StartSpan 创建一个新的Span（便捷函数）
//
// 必须使用返回的ctx调用下游函数，否则无法构建调用树。
// Span命名使用操作名（CreateOrder），动态值放属性里
// （span.SetAttributes(attribute.String("customer_id", id))）。
func StartSpan(ctx context.Context, tracerName, spanName string) (context.Context, trace.Span) {
	tracer := otel.Tracer(tracerName)
	return tracer.Start(ctx, spanName)
}
