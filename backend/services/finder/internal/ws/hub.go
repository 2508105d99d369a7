package ws

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"echargefinder/backend/services/finder/internal/models"
)

// MessageTypeStations tags catalog snapshots sent to clients.
const MessageTypeStations = "stations"

// Message is the JSON envelope pushed to clients.
type Message struct {
	Type     string           `json:"type"`
	Sent     time.Time        `json:"sent"`
	Stations []models.Station `json:"stations"`
}

// Hub tracks client connections and fans catalog snapshots out to them.
type Hub struct {
	mu          sync.RWMutex
	connections map[string]*Connection
	logger      *zap.Logger
}

// NewHub builds connection hub.
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		connections: make(map[string]*Connection),
		logger:      logger,
	}
}

// Add registers new connection.
func (h *Hub) Add(conn *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.connections[conn.ID()] = conn
}

// Remove removes connection.
func (h *Hub) Remove(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.connections, id)
}

// Count returns the number of connected clients.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}

// CatalogChanged broadcasts the snapshot to every client without blocking.
func (h *Hub) CatalogChanged(stations []models.Station) {
	payload, err := Encode(stations)
	if err != nil {
		h.logger.Error("failed to encode stations message", zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, conn := range h.connections {
		conn.Send(payload)
	}
}

// Run blocks until ctx is done and then closes all connections.
func (h *Hub) Run(ctx context.Context) {
	<-ctx.Done()

	h.mu.Lock()
	conns := make([]*Connection, 0, len(h.connections))
	for _, c := range h.connections {
		conns = append(conns, c)
	}
	h.mu.Unlock()

	for _, c := range conns {
		c.Close()
	}
}

// Encode builds the wire form of a stations message.
func Encode(stations []models.Station) ([]byte, error) {
	return json.Marshal(Message{
		Type:     MessageTypeStations,
		Sent:     time.Now().UTC(),
		Stations: stations,
	})
}
