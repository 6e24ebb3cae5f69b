package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOrderLifecycleHappyPath(t *testing.T) {
	order := Order{Status: OrderStatusSent}

	assert.NoError(t, order.StartPreparing())
	assert.Equal(t, OrderStatusPreparing, order.Status)

	assert.NoError(t, order.MarkReady())
	assert.Equal(t, OrderStatusReady, order.Status)

	now := time.Now()
	assert.NoError(t, order.Pay(PaymentPix, now))
	assert.Equal(t, OrderStatusFinished, order.Status)
	assert.True(t, order.IsPaid)
	assert.Equal(t, PaymentPix, *order.PaymentMethod)
	assert.Equal(t, now, *order.ClosedAt)
}

func TestOrderIllegalTransitions(t *testing.T) {
	order := Order{Status: OrderStatusSent}
	assert.ErrorIs(t, order.MarkReady(), ErrIllegalTransition)

	order.Status = OrderStatusReady
	assert.ErrorIs(t, order.StartPreparing(), ErrIllegalTransition)

	order.Status = OrderStatusFinished
	assert.ErrorIs(t, order.StartPreparing(), ErrIllegalTransition)
	assert.ErrorIs(t, order.MarkReady(), ErrIllegalTransition)
}

func TestOrderTransitionsAreIdempotent(t *testing.T) {
	order := Order{Status: OrderStatusPreparing}
	assert.NoError(t, order.StartPreparing())
	assert.Equal(t, OrderStatusPreparing, order.Status)

	order.Status = OrderStatusReady
	assert.NoError(t, order.MarkReady())
	assert.Equal(t, OrderStatusReady, order.Status)
}

// Kasir boleh menutup pesanan meski dapur belum memajukan statusnya.
func TestPayFromAnyUnpaidStatus(t *testing.T) {
	for _, status := range []OrderStatus{OrderStatusSent, OrderStatusPreparing, OrderStatusReady} {
		order := Order{Status: status}
		assert.NoError(t, order.Pay(PaymentCard, time.Now()), "status awal %s", status)
		assert.Equal(t, OrderStatusFinished, order.Status)
		assert.True(t, order.IsPaid)
	}
}

func TestPayPaidOrderIsNoOp(t *testing.T) {
	method := PaymentCash
	closed := time.Now().Add(-time.Hour)
	order := Order{
		Status:        OrderStatusFinished,
		IsPaid:        true,
		PaymentMethod: &method,
		ClosedAt:      &closed,
	}

	assert.NoError(t, order.Pay(PaymentCard, time.Now()))
	assert.Equal(t, PaymentCash, *order.PaymentMethod)
	assert.Equal(t, closed, *order.ClosedAt)
}

func TestPayValidation(t *testing.T) {
	order := Order{Status: OrderStatusSent}
	assert.ErrorIs(t, order.Pay("BITCOIN", time.Now()), ErrInvalidPayment)
	assert.False(t, order.IsPaid)

	// FINISHED tanpa is_paid tetap terminal
	order = Order{Status: OrderStatusFinished}
	assert.ErrorIs(t, order.Pay(PaymentCash, time.Now()), ErrIllegalTransition)
}

func TestComputeTotal(t *testing.T) {
	order := Order{
		DeliveryFee: 10.00,
		Items: []OrderItem{
			{Quantity: 2, Price: 35.00},
			{Quantity: 1, Price: 6.00},
		},
	}
	order.ComputeTotal()
	assert.Equal(t, 86.00, order.Total)
	assert.Equal(t, 76.00, order.ItemsTotal())
}

func TestInKitchenQueue(t *testing.T) {
	assert.True(t, (&Order{Status: OrderStatusSent}).InKitchenQueue())
	assert.True(t, (&Order{Status: OrderStatusPreparing}).InKitchenQueue())
	assert.False(t, (&Order{Status: OrderStatusReady}).InKitchenQueue())
	assert.False(t, (&Order{Status: OrderStatusFinished}).InKitchenQueue())
}
