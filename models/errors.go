package models

import "errors"

var (
	// ErrEmptyOrder -> pesanan disimpan tanpa item.
	ErrEmptyOrder = errors.New("order must have at least one item")
	// ErrMissingTable -> pesanan TABLE tanpa nomor meja.
	ErrMissingTable = errors.New("table order requires a table number")
	// ErrMissingCustomer -> pesanan DELIVERY tanpa data pelanggan.
	ErrMissingCustomer = errors.New("delivery order requires customer name, phone and address")
	// ErrIllegalTransition -> transisi status yang tidak diizinkan.
	ErrIllegalTransition = errors.New("illegal order status transition")
	// ErrInvalidPayment -> metode pembayaran tidak dikenal.
	ErrInvalidPayment = errors.New("invalid payment method")
	// ErrOrderPaid -> pesanan lunas tidak bisa dihapus/diubah.
	ErrOrderPaid = errors.New("order is already paid")
)
