package circuitbreaker

import (
	"errors"
	"testing"
	"time"
)

var errMock = errors.New("mock failure")

func newTestBreaker(timeout time.Duration) *CircuitBreaker {
	return NewCircuitBreaker("test", Config{
		MaxRequests: 2,
		Interval:    time.Minute,
		Timeout:     timeout,
		ReadyToTrip: func(counts Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	})
}

// TestCircuitBreaker_ClosedAllowsRequests 测试关闭状态正常放行
func TestCircuitBreaker_ClosedAllowsRequests(t *testing.T) {
	cb := newTestBreaker(time.Second)

	for i := 0; i < 5; i++ {
		err := cb.Execute(func() error { return nil })
		if err != nil {
			t.Fatalf("关闭状态下请求不应被拒绝: %v", err)
		}
	}

	if cb.State() != StateClosed {
		t.Errorf("期望状态CLOSED, 实际%v", cb.State())
	}
}

// TestCircuitBreaker_TripsToOpen 测试连续失败后熔断
func TestCircuitBreaker_TripsToOpen(t *testing.T) {
	cb := newTestBreaker(time.Second)

	// 连续3次失败触发熔断
	for i := 0; i < 3; i++ {
		_ = cb.Execute(func() error { return errMock })
	}

	if cb.State() != StateOpen {
		t.Fatalf("期望状态OPEN, 实际%v", cb.State())
	}

	// 熔断后快速失败，业务函数不会被调用
	called := false
	err := cb.Execute(func() error {
		called = true
		return nil
	})

	if !errors.Is(err, ErrOpenState) {
		t.Errorf("期望ErrOpenState, 实际%v", err)
	}
	if called {
		t.Error("熔断打开后业务函数不应被调用")
	}
}

// TestCircuitBreaker_HalfOpenRecovery 测试半开状态探测恢复
func TestCircuitBreaker_HalfOpenRecovery(t *testing.T) {
	cb := newTestBreaker(50 * time.Millisecond)

	for i := 0; i < 3; i++ {
		_ = cb.Execute(func() error { return errMock })
	}

	// 等待OPEN超时，转为HALF_OPEN
	time.Sleep(80 * time.Millisecond)

	if cb.State() != StateHalfOpen {
		t.Fatalf("期望状态HALF_OPEN, 实际%v", cb.State())
	}

	// 连续成功达到MaxRequests后恢复CLOSED
	for i := 0; i < 2; i++ {
		if err := cb.Execute(func() error { return nil }); err != nil {
			t.Fatalf("探测请求失败: %v", err)
		}
	}

	if cb.State() != StateClosed {
		t.Errorf("期望恢复CLOSED, 实际%v", cb.State())
	}
}

// TestCircuitBreaker_HalfOpenFailureReopens 测试探测失败后重新熔断
func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	cb := newTestBreaker(50 * time.Millisecond)

	for i := 0; i < 3; i++ {
		_ = cb.Execute(func() error { return errMock })
	}

	time.Sleep(80 * time.Millisecond)

	// 半开状态下探测失败，立即回到OPEN
	_ = cb.Execute(func() error { return errMock })

	if cb.State() != StateOpen {
		t.Errorf("期望回到OPEN, 实际%v", cb.State())
	}
}

// TestCircuitBreaker_StateChangeCallback 测试状态变化回调
func TestCircuitBreaker_StateChangeCallback(t *testing.T) {
	cb := newTestBreaker(time.Second)

	var transitions []string
	cb.SetStateChangeCallback(func(name string, from State, to State) {
		transitions = append(transitions, from.String()+"->"+to.String())
	})

	for i := 0; i < 3; i++ {
		_ = cb.Execute(func() error { return errMock })
	}

	if len(transitions) != 1 || transitions[0] != "CLOSED->OPEN" {
		t.Errorf("期望记录CLOSED->OPEN, 实际%v", transitions)
	}
}
