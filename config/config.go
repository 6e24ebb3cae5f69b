package config

import (
	"fmt"
	"os"
	"strconv"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Getenv mengambil env var dengan nilai default.
func Getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func GetenvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func GetenvFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

// TableCount -> jumlah meja restoran (id 1..N).
func TableCount() int {
	return GetenvInt("TABLE_COUNT", 15)
}

// FlavorCategory -> kategori dengan rasa yang bisa dikombinasikan.
func FlavorCategory() string {
	return Getenv("FLAVOR_CATEGORY", "Pizzas")
}

// NoObservationCategory -> kategori tanpa kolom catatan (minuman).
func NoObservationCategory() string {
	return Getenv("NO_OBSERVATION_CATEGORY", "Bebidas")
}

// DefaultRatePerKm -> tarif ongkir default per km.
func DefaultRatePerKm() float64 {
	return GetenvFloat("DELIVERY_RATE_PER_KM", 2.0)
}

// InitDB membuka koneksi database sesuai DB_DRIVER. Default mysql; sqlite
// dipakai untuk pengembangan lokal tanpa server database.
func InitDB() (*gorm.DB, error) {
	driver := Getenv("DB_DRIVER", "mysql")

	switch driver {
	case "sqlite":
		dsn := Getenv("DATABASE_DSN", "cozinha360.db")
		return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	case "mysql":
		dsn := os.Getenv("DATABASE_DSN")
		if dsn == "" {
			dsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
				Getenv("DB_USER", "root"),
				os.Getenv("DB_PASSWORD"),
				Getenv("DB_HOST", "127.0.0.1"),
				Getenv("DB_PORT", "3306"),
				Getenv("DB_NAME", "cozinha360"),
			)
		}
		return gorm.Open(mysql.Open(dsn), &gorm.Config{})
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER: %s", driver)
	}
}
