package overlay

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/baiwusanyu-c/vinspect/internal/source"
)

// OpenFunc launches the editor at a location. The hub wires it to the
// editor bridge; sessions call it fire-and-forget.
type OpenFunc func(file string, line, column int)

// clientEvent is the incoming message format from the page bootstrap. One
// flat shape covers all event types; unused fields stay zero.
type clientEvent struct {
	Type    string  `json:"type"` // "key", "pointermove", "click", "toggle", "updated"
	Key     string  `json:"key,omitempty"`
	Control bool    `json:"control,omitempty"`
	Meta    bool    `json:"meta,omitempty"`
	Shift   bool    `json:"shift,omitempty"`
	Alt     bool    `json:"alt,omitempty"`
	X       float64 `json:"x,omitempty"`
	Y       float64 `json:"y,omitempty"`
	Target  *Target `json:"target,omitempty"`
}

// serverMessage is the outgoing message format. Enabled is meaningful for
// "state" messages, Target for "highlight"; "clear" and "reload" carry
// only the type.
type serverMessage struct {
	Type    string  `json:"type"`
	Enabled bool    `json:"enabled"`
	Target  *Target `json:"target,omitempty"`
}

// Session drives one connected page. A single read loop feeds the page's
// event stream into the machine in arrival order; machine actions write
// back on the same connection.
type Session struct {
	id      string
	conn    *websocket.Conn
	machine *Machine
	open    OpenFunc

	// Reload broadcasts arrive from the watcher goroutine while the read
	// loop may be writing an action, so writes are serialized.
	writeMu sync.Mutex
}

// ID returns the session's identifier.
func (s *Session) ID() string { return s.id }

func (s *Session) run() {
	// Push the initial state so the page renders the toggle button and
	// overlay chrome correctly before any input arrives.
	s.StateChanged(s.machine.Enabled())

	for {
		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("overlay: session %s: websocket read: %v", s.id, err)
			}
			return
		}

		var ev clientEvent
		if err := json.Unmarshal(msg, &ev); err != nil {
			log.Printf("overlay: session %s: invalid event: %v", s.id, err)
			continue
		}
		s.dispatch(ev)
	}
}

func (s *Session) dispatch(ev clientEvent) {
	switch ev.Type {
	case "key":
		s.machine.KeyDown(KeyEvent{
			Key:     ev.Key,
			Control: ev.Control,
			Meta:    ev.Meta,
			Shift:   ev.Shift,
			Alt:     ev.Alt,
		})
	case "pointermove":
		s.machine.PointerMove(ev.X, ev.Y, ev.Target)
	case "click":
		s.machine.Click()
	case "toggle":
		s.machine.Toggle()
	case "updated":
		s.machine.DOMUpdated()
	default:
		log.Printf("overlay: session %s: unknown event type %q", s.id, ev.Type)
	}
}

func (s *Session) send(msg serverMessage) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if err := s.conn.WriteJSON(msg); err != nil {
		log.Printf("overlay: session %s: websocket write: %v", s.id, err)
	}
}

// Highlight, ClearHighlight, and StateChanged render machine actions to
// the page. OpenEditor hands off to the launcher on its own goroutine so a
// slow editor start never stalls the event loop.

func (s *Session) Highlight(t Target) {
	s.send(serverMessage{Type: "highlight", Target: &t})
}

func (s *Session) ClearHighlight() {
	s.send(serverMessage{Type: "clear"})
}

func (s *Session) StateChanged(enabled bool) {
	s.send(serverMessage{Type: "state", Enabled: enabled})
}

func (s *Session) OpenEditor(loc source.Location) {
	if s.open == nil {
		return
	}
	go s.open(loc.File, loc.Line, loc.Column)
}
