package types

const (
	TypeWebsocketPing    = "ping"
	TypeWebsocketPong    = "pong"
	TypeWebsocketSession = "session"
	TypeWebsocketError   = "error"
)

type WebsocketRequest struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type WebSocketResponse struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}
