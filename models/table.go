package models

type TableStatus string

const (
	TableStatusFree     TableStatus = "FREE"
	TableStatusOccupied TableStatus = "OCCUPIED"
)

// Table tidak pernah disimpan: status selalu diturunkan dari himpunan
// pesanan yang belum dibayar pada saat dibaca.
type Table struct {
	ID     int         `json:"id"`
	Status TableStatus `json:"status"`
}
