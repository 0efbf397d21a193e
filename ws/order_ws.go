package ws

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"hotelfood/entity"
	"hotelfood/utils"
)

const writeWait = 5 * time.Second

// OrderHub คือศูนย์กลาง live feed ของออเดอร์ผ่าน WebSocket (ครัว + แดชบอร์ด)
type OrderHub struct {
	clients    map[*websocket.Conn]Subscription
	broadcast  chan entity.OrderEvent
	register   chan Subscription
	unregister chan Subscription
	done       chan struct{} // ปิดเมื่อ Run จบ
	mu         sync.Mutex
	log        *logrus.Logger
}

// Subscription = การเชื่อมต่อ 1 อันของ staff
type Subscription struct {
	Conn *websocket.Conn
	Role string
}

func NewOrderHub(log *logrus.Logger) *OrderHub {
	return &OrderHub{
		clients:    make(map[*websocket.Conn]Subscription),
		broadcast:  make(chan entity.OrderEvent, 64),
		register:   make(chan Subscription),
		unregister: make(chan Subscription),
		done:       make(chan struct{}),
		log:        log,
	}
}

// Publish never blocks the caller; events are dropped when the hub is backed up.
func (h *OrderHub) Publish(ev entity.OrderEvent) {
	select {
	case h.broadcast <- ev:
	default:
		h.log.WithField("order_id", ev.OrderID).Warn("ws broadcast buffer full, event dropped")
	}
}

// Clients returns the number of open connections.
func (h *OrderHub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// คอยฟัง register/unregister/broadcast จนกว่า ctx จะจบ
func (h *OrderHub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for conn := range h.clients {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutdown"),
					time.Now().Add(writeWait))
				conn.Close()
				delete(h.clients, conn)
			}
			h.mu.Unlock()
			return

			// มี client ใหม่
		case sub := <-h.register:
			h.mu.Lock()
			h.clients[sub.Conn] = sub
			h.mu.Unlock()

			// client ออก
		case sub := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[sub.Conn]; ok {
				delete(h.clients, sub.Conn)
				sub.Conn.Close()
			}
			h.mu.Unlock()

			// มี event ใหม่ → กระจายให้ทุกคน
		case ev := <-h.broadcast:
			h.mu.Lock()
			for conn := range h.clients {
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteJSON(ev); err != nil {
					h.log.WithError(err).Warn("ws write error")
					conn.Close()
					delete(h.clients, conn)
				}
			}
			h.mu.Unlock()
		}
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WS route: /kitchen/ws, /dashboard/ws (role ถูกตรวจโดย WSAuthMiddleware แล้ว)
func (h *OrderHub) HandleWebSocket(c *gin.Context) {
	// --- Upgrade HTTP → WebSocket
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.WithError(err).Warn("ws upgrade error")
		return
	}

	sub := Subscription{Conn: conn, Role: utils.CurrentRole(c)}
	select {
	case h.register <- sub:
	case <-h.done:
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutdown"),
			time.Now().Add(writeWait))
		conn.Close()
		return
	}

	go h.listen(sub)
}

// listen อ่านจนกว่า client จะปิด; feed นี้ส่งทางเดียว ข้อความขาเข้าถูกทิ้ง
func (h *OrderHub) listen(sub Subscription) {
	defer func() {
		select {
		case h.unregister <- sub:
		case <-h.done:
		}
	}()

	for {
		if _, _, err := sub.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.WithError(err).Debug("ws read error")
			}
			return
		}
	}
}
