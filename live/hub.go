package live

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/yeremiapane/stall-pos/models"
)

// Event types pushed to board viewers.
const (
	EventBoardUpdate = "board_update"
	EventOrderUpdate = "order_update"
	EventOrderDelete = "order_delete"
	EventMenuUpdate  = "menu_update"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub holds every connected viewer (board screens, the stall counter)
// and a mutex serializing broadcasts.
type Hub struct {
	clients map[*websocket.Conn]string // conn -> role
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]string),
}

// RegisterClient -> add a connection with its viewer role
func RegisterClient(conn *websocket.Conn, role string) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = role
}

// UnregisterClient -> drop a connection and close it
func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// ClientCount -> how many viewers are connected right now
func ClientCount() int {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	return len(hub.clients)
}

// BroadcastBoardUpdate -> full board snapshot after a refetch
func BroadcastBoardUpdate(snapshot interface{}) {
	broadcast(Message{
		Event: EventBoardUpdate,
		Data:  snapshot,
	})
}

// BroadcastOrderUpdate -> one order was inserted or updated
func BroadcastOrderUpdate(order models.Order) {
	broadcast(Message{
		Event: EventOrderUpdate,
		Data:  order,
	})
}

// BroadcastOrderDelete -> an order row was removed (served)
func BroadcastOrderDelete(recordID int64) {
	broadcast(Message{
		Event: EventOrderDelete,
		Data:  map[string]interface{}{"id": recordID},
	})
}

// BroadcastMenuUpdate -> the menu rows changed (rare; manual edits)
func BroadcastMenuUpdate(items []models.MenuItem) {
	broadcast(Message{
		Event: EventMenuUpdate,
		Data:  items,
	})
}

// broadcast -> send one message to every connected viewer
func broadcast(msg Message) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling message: %v", err)
		return
	}

	log.Printf("Broadcasting %s to %d clients", msg.Event, len(hub.clients))

	for conn, role := range hub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("Error sending %s to %s client: %v", msg.Event, role, err)
			continue
		}
	}
}
