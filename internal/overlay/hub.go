package overlay

import (
	"log"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// WSPath is where the page bootstrap connects.
const WSPath = "/__inspector/ws"

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub owns the live page sessions. Every open browser tab holds one
// websocket connection and one Machine; the hub fans live-reload out to
// all of them.
type Hub struct {
	opts Options
	open OpenFunc

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewHub(opts Options, open OpenFunc) *Hub {
	return &Hub{
		opts:     opts,
		open:     open,
		sessions: make(map[string]*Session),
	}
}

// RegisterRoutes mounts the websocket endpoint.
func (h *Hub) RegisterRoutes(r chi.Router) {
	r.Get(WSPath, h.handleWebSocket)
}

func (h *Hub) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("overlay: websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	s := &Session{
		id:   uuid.NewString(),
		conn: conn,
		open: h.open,
	}
	s.machine = NewMachine(h.opts, s)

	h.add(s)
	defer h.remove(s.id)

	s.run()
}

func (h *Hub) add(s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sessions[s.id] = s
}

func (h *Hub) remove(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.sessions, id)
}

// SessionCount reports how many pages are connected.
func (h *Hub) SessionCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

// BroadcastReload tells every connected page to reload itself. The watcher
// calls this after a source file changes; the bootstrap script is present
// on every served page, so the overlay socket doubles as the live-reload
// channel.
func (h *Hub) BroadcastReload() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, s := range h.sessions {
		s.send(serverMessage{Type: "reload"})
	}
}
