package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"havenchat/internal/service"
)

// EventsHandler empuja snapshots de estado por websocket para colaboradores
// que prefieren suscribirse en lugar de hacer polling.
type EventsHandler struct {
	logger   *zap.Logger
	store    *service.SessionStore
	upgrader websocket.Upgrader
}

func NewEventsHandler(logger *zap.Logger, store *service.SessionStore) *EventsHandler {
	return &EventsHandler{
		logger: logger,
		store:  store,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// Stream maneja GET /sessions/:id/events.
func (h *EventsHandler) Stream(c *gin.Context) {
	engine, err := h.store.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	snapshots, cancel := engine.Watch()
	defer cancel()

	// El cliente no manda datos; el read pump solo detecta el cierre.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if err := h.writeSnapshot(conn, engine.Snapshot()); err != nil {
		return
	}

	for {
		select {
		case snap, ok := <-snapshots:
			if !ok {
				return
			}
			if err := h.writeSnapshot(conn, snap); err != nil {
				return
			}
		case <-done:
			return
		case <-c.Request.Context().Done():
			return
		}
	}
}

func (h *EventsHandler) writeSnapshot(conn *websocket.Conn, snap service.StateSnapshot) error {
	_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	if err := conn.WriteJSON(snap); err != nil {
		h.logger.Warn("websocket write failed", zap.Error(err))
		return err
	}
	return nil
}
