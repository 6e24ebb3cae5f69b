package models

import (
	"time"
)

type OrderStatus string

const (
	OrderStatusSent      OrderStatus = "SENT"
	OrderStatusPreparing OrderStatus = "PREPARING"
	OrderStatusReady     OrderStatus = "READY"
	OrderStatusFinished  OrderStatus = "FINISHED"
)

type OrderType string

const (
	OrderTypeTable    OrderType = "TABLE"
	OrderTypeDelivery OrderType = "DELIVERY"
)

type PaymentMethod string

const (
	PaymentCash PaymentMethod = "CASH"
	PaymentPix  PaymentMethod = "PIX"
	PaymentCard PaymentMethod = "CARD"
)

// ValidPaymentMethod -> cek metode pembayaran yang dikenal.
func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentCash, PaymentPix, PaymentCard:
		return true
	}
	return false
}

// OrderItemCustomization menyimpan pilihan yang dibekukan saat item
// dikonfirmasi: ukuran, rasa (khusus kategori pizza), borda dan adicional.
// Semua opsi adalah salinan nilai dari katalog, bukan referensi.
type OrderItemCustomization struct {
	Size    string          `json:"size,omitempty"`
	Flavors []string        `json:"flavors,omitempty"`
	Crust   *ProductOption  `json:"crust,omitempty"`
	Addons  []ProductOption `json:"addons,omitempty"`
}

// OrderItem adalah satu baris pesanan. Price = harga dasar + borda + total
// adicional, dihitung sekali saat konfirmasi dan tidak pernah dihitung ulang
// dari katalog.
type OrderItem struct {
	ID            string                  `json:"id"`
	ProductID     string                  `json:"product_id"`
	ProductName   string                  `json:"product_name"`
	Quantity      int                     `json:"quantity"`
	Price         float64                 `json:"price"`
	Observation   string                  `json:"observation,omitempty"`
	Customization *OrderItemCustomization `json:"customization,omitempty"`
}

// Subtotal -> harga item dikali jumlah.
func (i OrderItem) Subtotal() float64 {
	return i.Price * float64(i.Quantity)
}

// Customer hanya bermakna untuk pesanan DELIVERY; address diabaikan saat
// pickup.
type Customer struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Order adalah unit persistensi: item, customer dan kustomisasi disimpan
// sebagai JSON di baris yang sama sehingga upsert/delete selalu atomik per
// pesanan.
type Order struct {
	ID            string         `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Type          OrderType      `gorm:"type:varchar(10);not null" json:"type"`
	TableID       *int           `gorm:"index" json:"table_id,omitempty"`
	Customer      *Customer      `gorm:"type:json;serializer:json" json:"customer,omitempty"`
	DeliveryFee   float64        `gorm:"type:decimal(10,2);not null;default:0" json:"delivery_fee"`
	Items         []OrderItem    `gorm:"type:json;serializer:json" json:"items"`
	Status        OrderStatus    `gorm:"type:varchar(20);not null;default:'SENT';index" json:"status"`
	Total         float64        `gorm:"type:decimal(10,2);not null;default:0" json:"total"`
	PaymentMethod *PaymentMethod `gorm:"type:varchar(10)" json:"payment_method,omitempty"`
	IsPaid        bool           `gorm:"not null;default:false;index" json:"is_paid"`
	CreatedAt     time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"not null" json:"updated_at"`
	ClosedAt      *time.Time     `json:"closed_at,omitempty"`
}

// ItemsTotal -> jumlah subtotal seluruh item.
func (o *Order) ItemsTotal() float64 {
	var sum float64
	for _, item := range o.Items {
		sum += item.Subtotal()
	}
	return sum
}

// ComputeTotal menghitung ulang total dari item + ongkir. Total tidak pernah
// dipercaya dari luar.
func (o *Order) ComputeTotal() {
	o.Total = o.ItemsTotal() + o.DeliveryFee
}

// StartPreparing -> dapur mulai memasak. Hanya dari SENT; mengulang status
// yang sama adalah no-op.
func (o *Order) StartPreparing() error {
	if o.Status == OrderStatusPreparing {
		return nil
	}
	if o.Status != OrderStatusSent {
		return ErrIllegalTransition
	}
	o.Status = OrderStatusPreparing
	return nil
}

// MarkReady -> dapur menandai pesanan siap. Hanya dari PREPARING.
func (o *Order) MarkReady() error {
	if o.Status == OrderStatusReady {
		return nil
	}
	if o.Status != OrderStatusPreparing {
		return ErrIllegalTransition
	}
	o.Status = OrderStatusReady
	return nil
}

// Pay menutup pesanan dari status unpaid manapun: kasir boleh menyelesaikan
// pembayaran meskipun dapur belum memajukan statusnya. FINISHED bersifat
// terminal; membayar pesanan yang sudah lunas adalah no-op.
func (o *Order) Pay(method PaymentMethod, now time.Time) error {
	if o.IsPaid {
		return nil
	}
	if o.Status == OrderStatusFinished {
		return ErrIllegalTransition
	}
	if !ValidPaymentMethod(method) {
		return ErrInvalidPayment
	}
	o.Status = OrderStatusFinished
	o.IsPaid = true
	o.PaymentMethod = &method
	o.ClosedAt = &now
	return nil
}

// InKitchenQueue -> tampil di monitor dapur (READY/FINISHED disembunyikan).
func (o *Order) InKitchenQueue() bool {
	return o.Status == OrderStatusSent || o.Status == OrderStatusPreparing
}
