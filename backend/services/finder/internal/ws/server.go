package ws

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"echargefinder/backend/services/finder/internal/models"
)

// SnapshotSource supplies the catalog state sent right after a client connects.
type SnapshotSource interface {
	Snapshot() []models.Station
}

// Server upgrades HTTP connections to WebSockets for the stations feed.
type Server struct {
	hub          *Hub
	stations     SnapshotSource
	logger       *zap.Logger
	writeTimeout time.Duration
	upgrader     websocket.Upgrader
	baseCtx      context.Context
}

// NewServer builds ws server. Connections are closed when ctx is done.
func NewServer(ctx context.Context, hub *Hub, stations SnapshotSource, writeTimeout time.Duration, logger *zap.Logger) *Server {
	if writeTimeout <= 0 {
		writeTimeout = 10 * time.Second
	}
	return &Server{
		hub:          hub,
		stations:     stations,
		logger:       logger,
		writeTimeout: writeTimeout,
		baseCtx:      ctx,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// HandleWS is HTTP handler for the /api/stations/ws endpoint.
func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	id := uuid.NewString()
	connection := NewConnection(id, conn, s.writeTimeout, s.logger, func(id string) {
		s.hub.Remove(id)
		s.logger.Info("stations feed client disconnected", zap.String("client_id", id))
	})

	if payload, err := Encode(s.stations.Snapshot()); err == nil {
		connection.Send(payload)
	}
	s.hub.Add(connection)

	go connection.Start(s.baseCtx)
	s.logger.Info("stations feed client connected", zap.String("client_id", id))
}
