package ws

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"ShelfGuardian/entity"
	"ShelfGuardian/internal/lib/sl"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	maxMessageSize = 512
)

// Client is a single WebSocket connection of an authenticated user.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	userID int64
}

// readPump only drains the connection; clients do not send commands. It
// keeps the read deadline fresh on pong and detects disconnects.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

type Authenticator interface {
	AuthenticateByToken(ctx context.Context, token string) (*entity.User, error)
}

// Server upgrades authenticated requests and attaches them to the hub.
type Server struct {
	hub      *Hub
	auth     Authenticator
	upgrader websocket.Upgrader
	log      *slog.Logger
}

// NewServer accepts connections from allowedOrigins; requests without an
// Origin header (non-browser clients) are always accepted.
func NewServer(hub *Hub, auth Authenticator, allowedOrigins []string, log *slog.Logger) *Server {
	origins := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		origins[o] = true
	}

	return &Server{
		hub:  hub,
		auth: auth,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || origins[origin]
			},
		},
		log: log.With(sl.Module("ws.server")),
	}
}

// ServeWs authenticates with the token query parameter, since browsers
// cannot set headers on WebSocket handshakes.
func (s *Server) ServeWs(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	user, err := s.auth.AuthenticateByToken(r.Context(), token)
	if err != nil {
		s.log.With(sl.Secret("token", token), sl.Err(err)).Debug("websocket auth failed")
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	select {
	case <-s.hub.done:
		http.Error(w, "Server shutting down", http.StatusServiceUnavailable)
		return
	default:
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error("websocket upgrade failed", sl.Err(err))
		return
	}

	client := &Client{
		hub:    s.hub,
		conn:   conn,
		send:   make(chan []byte, 256),
		userID: user.ID,
	}

	select {
	case s.hub.register <- client:
	case <-s.hub.done:
		_ = conn.Close()
		return
	}
	s.log.With(slog.Int64("user_id", user.ID)).Debug("websocket client connected")

	go client.writePump()
	go client.readPump()
}
