// Package controller wires user input to the task store and the view.
// It owns the in-memory task list through TaskStore; the view only mirrors it.
package controller

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/Makepad-fr/tasklist/internal/logging"
	"github.com/Makepad-fr/tasklist/internal/model"
	"github.com/Makepad-fr/tasklist/internal/view"
)

// EmptyTaskMessage is the alert shown when an add resolves to empty text.
const EmptyTaskMessage = "Please enter a task!"

// Input is the text field tasks are typed into.
type Input interface {
	Value() string
	SetValue(string)
}

// Notifier shows a blocking message to the user.
type Notifier interface {
	Alert(msg string)
}

// Renderer displays rows. *view.View implements it.
type Renderer interface {
	Render(text string, onRemove func()) view.Handle
	Detach(h view.Handle) bool
}

// TaskStore is the persisted task list. *taskstore.Store implements it.
type TaskStore interface {
	Load() []string
	Append(text string) error
	RemoveFirstMatch(text string) (bool, error)
}

// Controller handles add, remove and startup load.
type Controller struct {
	store  TaskStore
	view   Renderer
	input  Input
	notify Notifier
	logger *log.Logger
	onErr  func(error)
}

// New returns a controller. logger may be nil.
func New(store TaskStore, r Renderer, in Input, n Notifier, logger *log.Logger) *Controller {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Controller{store: store, view: r, input: in, notify: n, logger: logger}
}

// OnError sets the handler for failures raised from a row's remove control,
// which has no caller to return them to.
func (c *Controller) OnError(fn func(error)) {
	c.onErr = fn
}

// Bind registers the add control click and the input Enter key on d.
func (c *Controller) Bind(d *Dispatcher) {
	d.On(TargetAdd, Click, func(Event) error {
		return c.Submit()
	})
	d.On(TargetInput, KeyPress, func(ev Event) error {
		if ev.Key != KeyEnter {
			return nil
		}
		return c.Submit()
	})
}

// Submit adds the task currently typed into the input field.
func (c *Controller) Submit() error {
	return c.add(c.input.Value())
}

// AddTask adds text as a task, ignoring the input field's content.
func (c *Controller) AddTask(text string) error {
	return c.add(text)
}

func (c *Controller) add(raw string) error {
	text, ok := model.Normalize(raw)
	if !ok {
		c.logger.Debug("add rejected: empty text")
		c.notify.Alert(EmptyTaskMessage)
		return nil
	}

	c.render(text)
	if err := c.store.Append(text); err != nil {
		return fmt.Errorf("add %q: %w", text, err)
	}
	c.input.SetValue("")
	c.logger.Debug("task added", "text", text)
	return nil
}

// RemoveTask detaches the row and drops the first stored task equal to text.
// With duplicate texts the stored entry removed may belong to another row.
func (c *Controller) RemoveTask(text string, h view.Handle) error {
	c.view.Detach(h)
	removed, err := c.store.RemoveFirstMatch(text)
	if err != nil {
		return fmt.Errorf("remove %q: %w", text, err)
	}
	c.logger.Debug("task removed", "text", text, "stored", removed)
	return nil
}

// LoadAtStartup renders every persisted task without writing the store back.
func (c *Controller) LoadAtStartup() int {
	tasks := c.store.Load()
	for _, t := range tasks {
		c.render(t)
	}
	c.logger.Debug("startup load", "count", len(tasks))
	return len(tasks)
}

// render shows text without touching the store. The row's remove control
// routes back through RemoveTask.
func (c *Controller) render(text string) view.Handle {
	var h view.Handle
	h = c.view.Render(text, func() {
		if err := c.RemoveTask(text, h); err != nil {
			c.logger.Error("remove failed", "err", err)
			if c.onErr != nil {
				c.onErr(err)
			}
		}
	})
	return h
}
