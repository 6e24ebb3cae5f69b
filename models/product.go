package models

import (
	"time"

	"gorm.io/datatypes"
)

// ProductOption adalah opsi berbayar (borda/adicional) milik sebuah produk.
// Saat masuk ke pesanan, opsi selalu disalin by value agar perubahan katalog
// tidak mengubah pesanan yang sudah dibuat.
type ProductOption struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type Product struct {
	ID              string                             `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name            string                             `gorm:"type:varchar(255);not null" json:"name"`
	Price           float64                            `gorm:"type:decimal(10,2);not null" json:"price"`
	Category        string                             `gorm:"type:varchar(100);not null;index" json:"category"`
	Description     string                             `gorm:"type:text" json:"description,omitempty"`
	ImageURL        string                             `gorm:"type:varchar(255)" json:"image,omitempty"`
	AvailableSizes  datatypes.JSONSlice[string]        `json:"available_sizes,omitempty"`
	AvailableCrusts datatypes.JSONSlice[ProductOption] `json:"available_crusts,omitempty"`
	AvailableAddons datatypes.JSONSlice[ProductOption] `json:"available_addons,omitempty"`
	CreatedAt       time.Time                          `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time                          `gorm:"not null" json:"updated_at"`
}

// HasOptions -> true jika produk punya pilihan ukuran/borda/adicional.
func (p *Product) HasOptions() bool {
	return len(p.AvailableSizes) > 0 || len(p.AvailableCrusts) > 0 || len(p.AvailableAddons) > 0
}

// FindCrust mencari opsi borda berdasarkan nama.
func (p *Product) FindCrust(name string) (ProductOption, bool) {
	for _, opt := range p.AvailableCrusts {
		if opt.Name == name {
			return opt, true
		}
	}
	return ProductOption{}, false
}

// FindAddon mencari opsi adicional berdasarkan nama.
func (p *Product) FindAddon(name string) (ProductOption, bool) {
	for _, opt := range p.AvailableAddons {
		if opt.Name == name {
			return opt, true
		}
	}
	return ProductOption{}, false
}
