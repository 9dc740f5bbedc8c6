// Package overlay implements the inspector's interaction brain: a state
// machine that tracks whether inspection is active, which rendered element
// is under the pointer, and when a click should land in the editor. Each
// connected page gets its own machine, advanced one event at a time by the
// websocket session's read loop, so the browser's serialized input timeline
// is preserved end to end.
package overlay

import "github.com/baiwusanyu-c/vinspect/internal/source"

// Options fixes a session's initial state and toggle shortcut. Resolved
// once at server start from the configuration; read-only afterwards.
type Options struct {
	EnabledByDefault bool
	Combo            *Combo // nil means no keyboard shortcut is installed
}

// Point is a pointer position in page coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is a target's bounding box, echoed back to the page when drawing
// the highlight.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Target is the location-bearing element currently under the pointer, as
// reported by the page from the compiler's injected attributes.
type Target struct {
	Loc  source.Location `json:"loc"`
	Rect Rect            `json:"rect"`
	Name string          `json:"name,omitempty"`
}

// KeyEvent is a keyboard event as reported by the page: the logical key
// plus the modifier set held with it.
type KeyEvent struct {
	Key     string
	Control bool
	Meta    bool
	Shift   bool
	Alt     bool
}

// State is the per-page inspector state. It lives exactly as long as the
// page session and resets to the configured default on every full load.
type State struct {
	Enabled bool
	Pointer Point
	Target  *Target
	Link    *source.Location
}

// Actions receives the machine's outward effects. The websocket session
// renders them to the page; tests record them.
type Actions interface {
	Highlight(t Target)
	ClearHighlight()
	StateChanged(enabled bool)
	OpenEditor(loc source.Location)
}

// Machine advances the per-page State. It is not safe for concurrent use:
// the single event stream delivered by the session's read loop is the
// ordering guarantee, so no locking happens here.
type Machine struct {
	state State
	combo *Combo
	out   Actions
}

func NewMachine(opts Options, out Actions) *Machine {
	return &Machine{
		state: State{Enabled: opts.EnabledByDefault},
		combo: opts.Combo,
		out:   out,
	}
}

// State returns a snapshot of the current state.
func (m *Machine) State() State { return m.state }

// Enabled reports whether inspection is active.
func (m *Machine) Enabled() bool { return m.state.Enabled }

func (m *Machine) Enable() {
	if m.state.Enabled {
		return
	}
	m.state.Enabled = true
	m.out.StateChanged(true)
}

// Disable turns inspection off and clears the current target, pending
// link, and any highlight. Clicks are ignored until re-enabled.
func (m *Machine) Disable() {
	if !m.state.Enabled {
		return
	}
	m.state.Enabled = false
	m.clearTarget()
	m.state.Link = nil
	m.out.StateChanged(false)
}

func (m *Machine) Toggle() {
	if m.state.Enabled {
		m.Disable()
	} else {
		m.Enable()
	}
}

// KeyDown runs the combo matcher. With the shortcut disabled no key event
// ever changes Enabled.
func (m *Machine) KeyDown(ev KeyEvent) {
	if m.combo == nil {
		return
	}
	if m.combo.Matches(ev) {
		m.Toggle()
	}
}

// PointerMove updates the pointer and decides the current target. While
// disabled the event is ignored entirely.
func (m *Machine) PointerMove(x, y float64, target *Target) {
	if !m.state.Enabled {
		return
	}
	m.state.Pointer = Point{X: x, Y: y}
	if target == nil {
		m.clearTarget()
		return
	}
	m.state.Target = target
	m.out.Highlight(*target)
}

// Click captures the current target's location triple into Link and fires
// OpenEditor exactly once. The launch result never flows back into the
// state; the pointer may move on immediately.
func (m *Machine) Click() {
	if !m.state.Enabled || m.state.Target == nil {
		return
	}
	loc := m.state.Target.Loc
	m.state.Link = &loc
	m.out.OpenEditor(loc)
}

// DOMUpdated handles hot updates and DOM mutations: the remembered target
// may no longer exist, so it is dropped and the highlight cleared. Enabled
// survives so the user keeps inspecting across hot reloads.
func (m *Machine) DOMUpdated() {
	m.clearTarget()
}

func (m *Machine) clearTarget() {
	if m.state.Target == nil {
		return
	}
	m.state.Target = nil
	m.out.ClearHighlight()
}
