package websocket

import (
	"context"
	"net/http"
	"time"

	"chat-animation/internal/events"
	"chat-animation/internal/services"
	"chat-animation/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Handler streams settings events to read-only websocket clients. Each
// client first receives a snapshot of every slot.
type Handler struct {
	settings *services.AnimationSettingsService
	hub      *Hub
	logger   *logger.Logger
	upgrader websocket.Upgrader
}

func NewHandler(settings *services.AnimationSettingsService, hub *Hub, l *logger.Logger) *Handler {
	if l == nil {
		l = logger.GetGlobalLogger()
	}
	return &Handler{
		settings: settings,
		hub:      hub,
		logger:   l,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (h *Handler) Connect(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.WithContext(c.Request.Context()).Warnf("websocket upgrade: %v", err)
		return
	}

	client := NewClient(conn)
	snapshot, err := events.NewEnvelope(events.EventTypeSettingsSnapshot, nil, h.settings.List(c.Request.Context()))
	if err != nil {
		h.logger.Errorf("encode settings snapshot: %v", err)
	} else {
		client.SendMessage(snapshot)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h.hub.Register(client, events.ChannelAnimationSettings)
	go client.WriteLoop(ctx)

	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	}

	h.hub.Unregister(client)
}
