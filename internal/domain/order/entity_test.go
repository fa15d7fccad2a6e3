package order

import (
	"testing"
)

// TestOrder_CalculateTotal 测试订单总金额计算
// 金额以下单时的单价快照为准,总额 = Σ(单价×数量)
func TestOrder_CalculateTotal(t *testing.T) {
	items := []OrderItem{
		{ProductID: "p1", Quantity: 3, Price: 500}, // 3 × 5.00元
		{ProductID: "p2", Quantity: 2, Price: 300}, // 2 × 3.00元
	}
	o := NewOrder(GenerateOrderNo(), "c1", items, 0)

	total := o.CalculateTotal()
	if total != 2100 {
		t.Errorf("期望总金额2100分,实际%d分", total)
	}
}

// TestOrder_StatusTransition 测试订单状态机
func TestOrder_StatusTransition(t *testing.T) {
	o := NewOrder(GenerateOrderNo(), "c1", nil, 0)

	// 初始状态为待支付
	if o.Status != OrderStatusPending {
		t.Fatalf("新订单状态应为待支付,实际%s", o.Status)
	}

	// 待支付 → 已支付
	if err := o.Pay(); err != nil {
		t.Fatalf("支付失败: %v", err)
	}
	if o.Status != OrderStatusPaid {
		t.Errorf("支付后状态应为已支付,实际%s", o.Status)
	}

	// 已支付 → 已发货 → 已完成
	if err := o.Ship(); err != nil {
		t.Fatalf("发货失败: %v", err)
	}
	if err := o.Complete(); err != nil {
		t.Fatalf("完成订单失败: %v", err)
	}

	// 终态不允许再转换
	if err := o.Cancel(); err == nil {
		t.Error("已完成的订单不应允许取消")
	}
}

// TestOrder_InvalidTransition 测试非法状态跳转被拒绝
func TestOrder_InvalidTransition(t *testing.T) {
	o := NewOrder(GenerateOrderNo(), "c1", nil, 0)

	// 待支付不能直接发货
	if err := o.Ship(); err == nil {
		t.Error("待支付订单不应允许直接发货")
	}

	// 待支付可以取消
	if err := o.Cancel(); err != nil {
		t.Errorf("待支付订单取消失败: %v", err)
	}

	// 已取消是终态
	if err := o.Pay(); err == nil {
		t.Error("已取消的订单不应允许支付")
	}
}

// TestOrder_IsOwnedBy 测试订单归属校验
func TestOrder_IsOwnedBy(t *testing.T) {
	o := NewOrder(GenerateOrderNo(), "c1", nil, 0)

	if !o.IsOwnedBy("c1") {
		t.Error("订单应属于客户c1")
	}
	if o.IsOwnedBy("c2") {
		t.Error("订单不应属于客户c2")
	}
}
