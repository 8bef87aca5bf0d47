package chat

import (
	"encoding/json"
	"sync"

	"github.com/AhmetUtkuPelen/Restaurant-App-sub001/models"
	"github.com/AhmetUtkuPelen/Restaurant-App-sub001/utils"
	"github.com/gorilla/websocket"
)

// Event types pushed to connected chat clients.
const (
	EventMessageNew     = "message_new"
	EventMessageDeleted = "message_deleted"
	EventReactionAdded  = "reaction_added"
	EventReactionRemove = "reaction_removed"
)

type Event struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub holds every connected chat client keyed by user ID.
type Hub struct {
	clients map[*websocket.Conn]uint
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]uint),
}

// RegisterClient adds a connection to the broadcast set.
func RegisterClient(conn *websocket.Conn, userID uint) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = userID
}

// UnregisterClient drops and closes a connection.
func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

func BroadcastMessage(message models.ChatMessage) {
	broadcast(Event{Event: EventMessageNew, Data: message})
}

func BroadcastMessageDeleted(messageID uint) {
	broadcast(Event{Event: EventMessageDeleted, Data: map[string]uint{"message_id": messageID}})
}

func BroadcastReaction(reaction models.ChatReaction) {
	broadcast(Event{Event: EventReactionAdded, Data: reaction})
}

func BroadcastReactionRemoved(messageID, userID uint, emoji string) {
	broadcast(Event{Event: EventReactionRemove, Data: map[string]interface{}{
		"message_id": messageID,
		"user_id":    userID,
		"emoji":      emoji,
	}})
}

func broadcast(event Event) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	data, err := json.Marshal(event)
	if err != nil {
		utils.ErrorLogger.Printf("Error marshaling chat event: %v", err)
		return
	}

	for conn := range hub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			utils.ErrorLogger.Printf("Error sending chat event: %v", err)
		}
	}
}
