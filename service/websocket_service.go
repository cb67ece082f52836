package service

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/developer4fun/Knowledge-Explorer/types"
)

// WebSocketService streams session snapshots to the UI so it can render
// recommendations without polling.
type WebSocketService struct {
	session  *SessionService
	upgrader websocket.Upgrader
}

func NewWebSocketService(session *SessionService) *WebSocketService {
	return &WebSocketService{
		session: session,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins (adjust for production)
			},
		},
	}
}

// HandleSession upgrades the connection, sends the current snapshot and
// then pushes a new snapshot on every session change until the client
// disconnects. Incoming ping messages are answered with pong.
func (s *WebSocketService) HandleSession(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	conn.SetReadLimit(64 * 1024)
	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	updates, cancel := s.session.Subscribe()
	defer cancel()

	// Reader goroutine: answers pings and detects disconnects.
	done := make(chan struct{})
	pings := make(chan struct{}, 1)
	go func() {
		defer close(done)
		for {
			_, payload, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					log.Debug().Err(err).Msg("websocket read error")
				}
				return
			}
			conn.SetReadDeadline(time.Now().Add(60 * time.Second))
			var req types.WebsocketRequest
			if err := json.Unmarshal(payload, &req); err != nil {
				continue
			}
			if req.Type == types.TypeWebsocketPing {
				select {
				case pings <- struct{}{}:
				default:
				}
			}
		}
	}()

	if err := s.writeSnapshot(conn, s.session.Snapshot()); err != nil {
		return
	}
	for {
		select {
		case <-done:
			return
		case <-pings:
			pong := types.WebSocketResponse{Type: types.TypeWebsocketPong}
			if err := conn.WriteJSON(pong); err != nil {
				log.Debug().Err(err).Msg("websocket write error")
				return
			}
		case snapshot := <-updates:
			if err := s.writeSnapshot(conn, snapshot); err != nil {
				return
			}
		}
	}
}

func (s *WebSocketService) writeSnapshot(conn *websocket.Conn, snapshot types.SessionSnapshot) error {
	res := types.WebSocketResponse{
		Type:    types.TypeWebsocketSession,
		Payload: snapshot,
	}
	if err := conn.WriteJSON(res); err != nil {
		log.Debug().Err(err).Msg("websocket write error")
		return err
	}
	return nil
}
