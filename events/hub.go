package events

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/cozinha360/pos-backend/models"
)

// Event types
const (
	EventOrderUpdate   = "order_update"
	EventOrderDelete   = "order_delete"
	EventTableUpdate   = "table_update"
	EventProductUpdate = "product_update"
	EventStaffNotif    = "staff_notification"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub menampung seluruh client websocket (waiter, kitchen, cashier, admin).
// Setiap mutasi pesanan/produk disiarkan ke semua client agar tiap layar
// mengambil ulang state terbaru, menggantikan channel realtime database.
type Hub struct {
	clients map[*websocket.Conn]string // conn -> role
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]string),
}

// RegisterClient -> menambahkan connection ke set dengan role
func RegisterClient(conn *websocket.Conn, role string) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = role
}

// UnregisterClient -> melepaskan connection
func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// BroadcastOrderUpdate -> menyiarkan pesanan yang dibuat/diubah.
func BroadcastOrderUpdate(order models.Order) {
	broadcast(Message{
		Event: EventOrderUpdate,
		Data:  order,
	})
}

// BroadcastOrderDelete -> pesanan dibatalkan/dihapus.
func BroadcastOrderDelete(orderID string) {
	broadcast(Message{
		Event: EventOrderDelete,
		Data:  map[string]string{"order_id": orderID},
	})
}

// BroadcastTableUpdate -> proyeksi okupansi meja terbaru.
func BroadcastTableUpdate(tables []models.Table) {
	broadcast(Message{
		Event: EventTableUpdate,
		Data:  tables,
	})
}

// BroadcastProductUpdate -> katalog berubah.
func BroadcastProductUpdate(product models.Product) {
	broadcast(Message{
		Event: EventProductUpdate,
		Data:  product,
	})
}

// BroadcastStaffNotification -> notifikasi teks untuk staff.
func BroadcastStaffNotification(message string) {
	broadcast(Message{
		Event: EventStaffNotif,
		Data:  message,
	})
}

// BroadcastMessage -> broadcast pesan umum
func BroadcastMessage(msg Message) {
	broadcast(msg)
}

func broadcast(msg Message) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling message: %v", err)
		return
	}

	for conn := range hub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("Error sending message to client: %v", err)
			continue
		}
	}
}
