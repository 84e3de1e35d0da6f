package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/fieldops-id/fieldops-backend-go/internal/handler/http/response"
	"github.com/fieldops-id/fieldops-backend-go/internal/pkg/jwt"
	"github.com/fieldops-id/fieldops-backend-go/internal/pkg/sse"
)

const defaultHeartbeat = 30 * time.Second

type EventHandler interface {
	Stream(w http.ResponseWriter, r *http.Request)
}

type eventHandlerImpl struct {
	jwtService jwt.Service
	hub        *sse.Hub
	heartbeat  time.Duration
}

func NewEventHandler(jwtService jwt.Service, hub *sse.Hub) EventHandler {
	return &eventHandlerImpl{
		jwtService: jwtService,
		hub:        hub,
		heartbeat:  defaultHeartbeat,
	}
}

// Stream implements EventHandler. The token comes from the query string because
// EventSource cannot send headers.
func (h *eventHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		response.Unauthorized(w, "Missing token")
		return
	}

	userID, err := h.jwtService.ValidateSSEToken(tokenStr)
	if err != nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	rc := http.NewResponseController(w)
	// the stream outlives the server write timeout
	if err := rc.SetWriteDeadline(time.Time{}); err != nil && !errors.Is(err, http.ErrNotSupported) {
		slog.Warn("Stream write deadline error", "error", err)
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	events, cleanup := h.hub.Subscribe(userID)
	defer cleanup()

	fmt.Fprintf(w, "event: connected\ndata: {\"user_id\":%q}\n\n", userID)
	if err := rc.Flush(); err != nil {
		slog.Error("Stream flush error", "error", err)
		return
	}
	slog.Debug("Event stream opened", "user_id", userID)

	heartbeat := time.NewTicker(h.heartbeat)
	defer heartbeat.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				slog.Error("Stream marshal error", "error", err, "event", event.Event)
				continue
			}
			fmt.Fprintf(w, "id: %d\nevent: %s\ndata: %s\n\n", event.ID, event.Event, data)
			if err := rc.Flush(); err != nil {
				return
			}

		case <-heartbeat.C:
			fmt.Fprintf(w, ": ping %d\n\n", time.Now().Unix())
			if err := rc.Flush(); err != nil {
				return
			}

		case <-r.Context().Done():
			slog.Debug("Event stream closed", "user_id", userID)
			return
		}
	}
}
