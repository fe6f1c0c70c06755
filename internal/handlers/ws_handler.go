package handlers

import (
	"log"
	"net/http"
	"sync"
	"time"

	"train-task-tracker/internal/middleware"
	"train-task-tracker/internal/realtime"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	wsWriteWait  = 5 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = 30 * time.Second
	wsReadLimit  = 1024
)

// dashboardSocket is a realtime.Client over one websocket connection.
// gorilla connections allow one writer at a time.
type dashboardSocket struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (s *dashboardSocket) Send(message []byte) bool {
	if s == nil || s.conn == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = s.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	return s.conn.WriteMessage(websocket.TextMessage, message) == nil
}

func (s *dashboardSocket) Close() {
	if s != nil && s.conn != nil {
		_ = s.conn.Close()
	}
}

// heartbeat pings until done is closed or a ping fails.
func (s *dashboardSocket) heartbeat(done <-chan struct{}) {
	ticker := time.NewTicker(wsPingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait)); err != nil {
				return
			}
		}
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// CORS is handled by middleware.CORS.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WebSocketHandler handles GET /ws
// Clients receive dataset_refreshed and completion_updated events; anything
// they send is discarded. Requires JWTAuthMiddleware.
func WebSocketHandler(c *gin.Context) {
	userID, _ := middleware.CurrentUser(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authorized"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Println("websocket upgrade error:", err)
		return
	}

	socket := &dashboardSocket{conn: conn}
	hub := realtime.GetHub()
	hub.Register(userID, socket)
	log.Printf("realtime: %s connected (%d clients)", userID, hub.ClientCount())

	done := make(chan struct{})
	go socket.heartbeat(done)
	defer func() {
		close(done)
		hub.Unregister(userID, socket)
		socket.Close()
	}()

	conn.SetReadLimit(wsReadLimit)
	_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
