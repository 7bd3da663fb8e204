package booking

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

var (
	subscribers = make(map[string][]*websocket.Conn)
	mu          sync.Mutex
)

// HandleWS subscribes the shop dashboard to live booking events for
// one shop. GET /ws/bookings/:shopid?token=...
func HandleWS(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	shopID := ps.ByName("shopid")

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, "WebSocket upgrade failed", http.StatusBadRequest)
		return
	}

	mu.Lock()
	subscribers[shopID] = append(subscribers[shopID], conn)
	mu.Unlock()

	for {
		// Keep the connection open until the client disconnects.
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	mu.Lock()
	conns := subscribers[shopID]
	newList := make([]*websocket.Conn, 0, len(conns))
	for _, c := range conns {
		if c != conn {
			newList = append(newList, c)
		}
	}
	subscribers[shopID] = newList
	mu.Unlock()

	conn.Close()
}

// Broadcast pushes an event payload to every dashboard watching the
// shop. Used as the sink for the Redis booking worker.
func Broadcast(shopID string, payload []byte) {
	mu.Lock()
	defer mu.Unlock()

	conns := subscribers[shopID]
	newList := conns[:0]

	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err == nil {
			newList = append(newList, conn)
		} else {
			conn.Close()
		}
	}

	subscribers[shopID] = newList
}
