package controller

import "errors"

// Kind is the type of a user event.
type Kind int

const (
	Click Kind = iota
	KeyPress
)

func (k Kind) String() string {
	switch k {
	case Click:
		return "click"
	case KeyPress:
		return "keypress"
	default:
		return "unknown"
	}
}

// Event targets.
const (
	TargetAdd   = "add"
	TargetInput = "input"
)

// KeyEnter is the key name carried by an Enter key press.
const KeyEnter = "enter"

// Event is a discrete user action on a target.
type Event struct {
	Kind   Kind
	Target string
	Key    string // key name for KeyPress, empty otherwise
}

// Listener handles one event.
type Listener func(Event) error

type listenerKey struct {
	target string
	kind   Kind
}

// Dispatcher routes events to the listeners registered for their
// (target, kind) pair.
type Dispatcher struct {
	listeners map[listenerKey][]Listener
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{listeners: make(map[listenerKey][]Listener)}
}

// On registers fn for events of kind on target.
func (d *Dispatcher) On(target string, kind Kind, fn Listener) {
	k := listenerKey{target, kind}
	d.listeners[k] = append(d.listeners[k], fn)
}

// Dispatch runs every matching listener in registration order and joins
// their errors. Events nobody listens for are dropped.
func (d *Dispatcher) Dispatch(ev Event) error {
	var errs []error
	for _, fn := range d.listeners[listenerKey{ev.Target, ev.Kind}] {
		if err := fn(ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
