package services

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cozinha360/pos-backend/models"
)

// ErrNoDraft -> konfirmasi dipanggil tanpa kustomisasi yang sedang berjalan.
var ErrNoDraft = errors.New("no item customization in progress")

// CartConfig menentukan kategori spesial: kategori rasa (pizza) dan kategori
// tanpa kolom catatan (minuman).
type CartConfig struct {
	FlavorCategory        string
	NoObservationCategory string
}

func DefaultCartConfig() CartConfig {
	return CartConfig{
		FlavorCategory:        "Pizzas",
		NoObservationCategory: "Bebidas",
	}
}

// MaxFlavors -> batas rasa simultan berdasarkan ukuran.
func MaxFlavors(size string) int {
	switch strings.ToUpper(size) {
	case "P":
		return 1
	case "M":
		return 2
	case "G":
		return 3
	case "GG":
		return 4
	default:
		return 1
	}
}

type itemDraft struct {
	product       models.Product
	customization models.OrderItemCustomization
	quantity      int
}

// Cart adalah objek sesi yang merakit item pesanan untuk satu pelanggan.
// Satu kustomisasi berjalan pada satu waktu; produk polos langsung masuk ke
// daftar item dengan penggabungan kuantitas.
type Cart struct {
	cfg   CartConfig
	items []models.OrderItem
	draft *itemDraft
}

func NewCart(cfg CartConfig) *Cart {
	return &Cart{cfg: cfg}
}

// Items mengembalikan salinan daftar item saat ini.
func (c *Cart) Items() []models.OrderItem {
	return append([]models.OrderItem(nil), c.items...)
}

// Customizing -> true selama ada kustomisasi yang belum dikonfirmasi.
func (c *Cart) Customizing() bool {
	return c.draft != nil
}

// RequiresCustomization -> produk perlu layar kustomisasi jika punya opsi
// ukuran/borda/adicional atau termasuk kategori rasa.
func (c *Cart) RequiresCustomization(p models.Product) bool {
	return p.HasOptions() || p.Category == c.cfg.FlavorCategory
}

// Add memasukkan produk ke keranjang. Produk polos digabung dengan item
// identik tanpa kustomisasi (kuantitas bertambah); produk dengan opsi membuka
// draft kustomisasi berisi nilai default: ukuran pertama yang tersedia (M jika
// produk tidak punya daftar ukuran) dan nama produk sebagai rasa pertama.
func (c *Cart) Add(p models.Product) {
	if !c.RequiresCustomization(p) {
		c.addDirectly(p)
		return
	}

	draft := &itemDraft{product: p, quantity: 1}
	draft.customization.Size = "M"
	if len(p.AvailableSizes) > 0 {
		draft.customization.Size = p.AvailableSizes[0]
	}
	if p.Category == c.cfg.FlavorCategory {
		draft.customization.Flavors = []string{p.Name}
	}
	c.draft = draft
}

func (c *Cart) addDirectly(p models.Product) {
	for i := range c.items {
		if c.items[i].ProductID == p.ID && c.items[i].Customization == nil {
			c.items[i].Quantity++
			return
		}
	}
	c.items = append(c.items, models.OrderItem{
		ID:          uuid.NewString(),
		ProductID:   p.ID,
		ProductName: p.Name,
		Quantity:    1,
		Price:       p.Price,
	})
}

// SelectSize mengganti ukuran pada draft. Ukuran di luar daftar produk
// diabaikan; rasa yang melebihi batas ukuran baru dipangkas dari belakang.
func (c *Cart) SelectSize(size string) {
	if c.draft == nil {
		return
	}
	found := false
	for _, s := range c.draft.product.AvailableSizes {
		if s == size {
			found = true
			break
		}
	}
	if !found {
		return
	}
	c.draft.customization.Size = size

	if max := MaxFlavors(size); len(c.draft.customization.Flavors) > max {
		c.draft.customization.Flavors = c.draft.customization.Flavors[:max]
	}
}

// ToggleFlavor memilih/melepas rasa. Pilihan di atas batas ukuran ditolak
// diam-diam, begitu juga melepas rasa terakhir: item berkategori rasa selalu
// punya minimal satu rasa.
func (c *Cart) ToggleFlavor(name string) {
	if c.draft == nil || c.draft.customization.Flavors == nil {
		return
	}
	flavors := c.draft.customization.Flavors

	for i, f := range flavors {
		if f == name {
			if len(flavors) > 1 {
				c.draft.customization.Flavors = append(flavors[:i], flavors[i+1:]...)
			}
			return
		}
	}

	if len(flavors) < MaxFlavors(c.draft.customization.Size) {
		c.draft.customization.Flavors = append(flavors, name)
	}
}

// ToggleCrust memilih borda (maksimal satu); memilih borda yang sama
// melepasnya.
func (c *Cart) ToggleCrust(opt models.ProductOption) {
	if c.draft == nil {
		return
	}
	if cur := c.draft.customization.Crust; cur != nil && cur.Name == opt.Name {
		c.draft.customization.Crust = nil
		return
	}
	crust := opt
	c.draft.customization.Crust = &crust
}

// ToggleAddon menambah/melepas adicional; tanpa duplikat nama.
func (c *Cart) ToggleAddon(opt models.ProductOption) {
	if c.draft == nil {
		return
	}
	addons := c.draft.customization.Addons
	for i, a := range addons {
		if a.Name == opt.Name {
			c.draft.customization.Addons = append(addons[:i], addons[i+1:]...)
			return
		}
	}
	c.draft.customization.Addons = append(addons, opt)
}

// SetDraftQuantity mengatur kuantitas item yang sedang dikustomisasi.
func (c *Cart) SetDraftQuantity(qty int) {
	if c.draft == nil || qty < 1 {
		return
	}
	c.draft.quantity = qty
}

// Confirm membekukan draft menjadi OrderItem baru: harga = dasar + borda +
// total adicional, dihitung sekali di sini. Nama item kategori rasa disintesis
// dari ukuran dan daftar rasa. Catatan dibuang untuk kategori minuman.
func (c *Cart) Confirm(observation string) (models.OrderItem, error) {
	if c.draft == nil {
		return models.OrderItem{}, ErrNoDraft
	}
	d := c.draft

	price := d.product.Price
	if d.customization.Crust != nil {
		price += d.customization.Crust.Price
	}
	for _, a := range d.customization.Addons {
		price += a.Price
	}

	name := d.product.Name
	if d.product.Category == c.cfg.FlavorCategory && len(d.customization.Flavors) > 0 {
		name = "Pizza " + d.customization.Size + " - " + strings.Join(d.customization.Flavors, " / ")
	}

	if d.product.Category == c.cfg.NoObservationCategory {
		observation = ""
	}

	custom := models.OrderItemCustomization{
		Size:    d.customization.Size,
		Flavors: append([]string(nil), d.customization.Flavors...),
		Addons:  append([]models.ProductOption(nil), d.customization.Addons...),
	}
	if d.customization.Crust != nil {
		crust := *d.customization.Crust
		custom.Crust = &crust
	}

	item := models.OrderItem{
		ID:            uuid.NewString(),
		ProductID:     d.product.ID,
		ProductName:   name,
		Quantity:      d.quantity,
		Price:         price,
		Observation:   observation,
		Customization: &custom,
	}
	c.items = append(c.items, item)
	c.draft = nil
	return item, nil
}

// RemoveItem menghapus item dari keranjang.
func (c *Cart) RemoveItem(id string) {
	for i := range c.items {
		if c.items[i].ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// SetQuantity mengganti kuantitas sebuah item; minimal 1.
func (c *Cart) SetQuantity(id string, qty int) {
	if qty < 1 {
		return
	}
	for i := range c.items {
		if c.items[i].ID == id {
			c.items[i].Quantity = qty
			return
		}
	}
}

// ParseAmount membaca angka yang diketik pengguna (jarak/tarif). Input tidak
// valid atau negatif dibaca 0; koma desimal diterima.
func ParseAmount(s string) float64 {
	v, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", "."), 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// DeliveryFee -> ongkir = jarak x tarif; 0 untuk pickup atau pesanan non
// delivery. Dihitung ulang setiap perubahan input, baru dibekukan saat
// pesanan disimpan.
func DeliveryFee(orderType models.OrderType, distanceKm, ratePerKm float64, pickup bool) float64 {
	if orderType != models.OrderTypeDelivery || pickup {
		return 0
	}
	if distanceKm < 0 || ratePerKm < 0 {
		return 0
	}
	return distanceKm * ratePerKm
}

// OrderDraft adalah masukan Order Builder.
type OrderDraft struct {
	Type          models.OrderType
	TableID       *int
	Customer      *models.Customer
	DistanceKm    float64
	RatePerKm     float64
	Pickup        bool
	Items         []models.OrderItem
	PaymentMethod *models.PaymentMethod
	Existing      *models.Order
}

// BuildOrder merakit Order final dari draft. Saat mengedit pesanan lama,
// id/createdAt/status dipertahankan; selain itu pesanan baru dimulai di SENT
// dengan id baru. Total selalu dihitung ulang dari item + ongkir.
func BuildOrder(d OrderDraft, now time.Time) (models.Order, error) {
	if len(d.Items) == 0 {
		return models.Order{}, models.ErrEmptyOrder
	}

	switch d.Type {
	case models.OrderTypeTable:
		if d.TableID == nil {
			return models.Order{}, models.ErrMissingTable
		}
	case models.OrderTypeDelivery:
		if d.Customer == nil || strings.TrimSpace(d.Customer.Name) == "" || strings.TrimSpace(d.Customer.Phone) == "" {
			return models.Order{}, models.ErrMissingCustomer
		}
		if !d.Pickup && strings.TrimSpace(d.Customer.Address) == "" {
			return models.Order{}, models.ErrMissingCustomer
		}
	default:
		return models.Order{}, errors.New("unknown order type: " + string(d.Type))
	}

	if d.PaymentMethod != nil && !models.ValidPaymentMethod(*d.PaymentMethod) {
		return models.Order{}, models.ErrInvalidPayment
	}

	order := models.Order{
		ID:        uuid.NewString(),
		Type:      d.Type,
		Status:    models.OrderStatusSent,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if d.Existing != nil {
		order.ID = d.Existing.ID
		order.Status = d.Existing.Status
		order.CreatedAt = d.Existing.CreatedAt
	}

	if d.Type == models.OrderTypeTable {
		order.TableID = d.TableID
	} else {
		customer := *d.Customer
		order.Customer = &customer
	}

	order.DeliveryFee = DeliveryFee(d.Type, d.DistanceKm, d.RatePerKm, d.Pickup)
	order.Items = append([]models.OrderItem(nil), d.Items...)
	order.PaymentMethod = d.PaymentMethod
	order.ComputeTotal()

	return order, nil
}
