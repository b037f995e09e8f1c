// Package view is the in-memory display model: an ordered list of rows, each
// carrying a task's text and a remove control. Whatever draws the screen
// projects Rows(); the view never reads or writes the task store.
package view

// Handle identifies a rendered row. Handles are never reused.
type Handle uint64

// Row is one displayed task.
type Row struct {
	Handle Handle
	Text   string
}

type row struct {
	Row
	onRemove func()
	fired    bool
}

// View holds the rows currently on display.
type View struct {
	rows     []*row
	next     Handle
	onChange []func()
}

func New() *View {
	return &View{}
}

// Render appends a row for text. onRemove runs when the row's remove control
// is activated; it may be nil.
func (v *View) Render(text string, onRemove func()) Handle {
	v.next++
	v.rows = append(v.rows, &row{
		Row:      Row{Handle: v.next, Text: text},
		onRemove: onRemove,
	})
	v.changed()
	return v.next
}

// Activate triggers the remove control of the row. The callback fires at most
// once per row; activating a detached or already-fired row does nothing.
func (v *View) Activate(h Handle) bool {
	i := v.index(h)
	if i < 0 || v.rows[i].fired {
		return false
	}
	r := v.rows[i]
	r.fired = true
	if r.onRemove != nil {
		r.onRemove()
	}
	return true
}

// Detach removes the row from the display.
func (v *View) Detach(h Handle) bool {
	i := v.index(h)
	if i < 0 {
		return false
	}
	v.rows = append(v.rows[:i], v.rows[i+1:]...)
	v.changed()
	return true
}

// Rows returns the displayed rows in order.
func (v *View) Rows() []Row {
	out := make([]Row, len(v.rows))
	for i, r := range v.rows {
		out[i] = r.Row
	}
	return out
}

func (v *View) Len() int { return len(v.rows) }

// Find returns the first row displaying text.
func (v *View) Find(text string) (Handle, bool) {
	for _, r := range v.rows {
		if r.Text == text {
			return r.Handle, true
		}
	}
	return 0, false
}

// OnChange registers fn to run after every Render or Detach.
func (v *View) OnChange(fn func()) {
	v.onChange = append(v.onChange, fn)
}

func (v *View) index(h Handle) int {
	for i, r := range v.rows {
		if r.Handle == h {
			return i
		}
	}
	return -1
}

func (v *View) changed() {
	for _, fn := range v.onChange {
		fn()
	}
}
