package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/tasklist/internal/controller"
	"github.com/Makepad-fr/tasklist/internal/store/kv"
	"github.com/Makepad-fr/tasklist/internal/store/taskstore"
)

func newTestModel(t *testing.T, snapshot string) (*Model, *kv.MemoryStore) {
	t.Helper()
	mem := kv.NewMemoryStore()
	if snapshot != "" {
		if err := mem.Set(taskstore.Key, snapshot); err != nil {
			t.Fatal(err)
		}
	}
	m := New(taskstore.New(mem), Options{Theme: "mono"})
	t.Cleanup(m.zones.Close)
	return m, mem
}

func send(m *Model, msgs ...tea.Msg) {
	for _, msg := range msgs {
		m.Update(msg)
	}
}

func typeText(s string) tea.Msg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	tab   = tea.KeyMsg{Type: tea.KeyTab}
)

func stored(t *testing.T, mem *kv.MemoryStore) string {
	t.Helper()
	v, _, err := mem.Get(taskstore.Key)
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func rowTexts(m *Model) []string {
	var out []string
	for _, it := range m.list.Items() {
		out = append(out, it.(rowItem).text)
	}
	return out
}

func TestStartupRendersStoredRows(t *testing.T) {
	m, mem := newTestModel(t, `["A","B","C"]`)

	if got := strings.Join(rowTexts(m), ","); got != "A,B,C" {
		t.Errorf("rows = %s", got)
	}
	if mem.Writes() != 1 {
		t.Error("startup load rewrote the snapshot")
	}
	out := m.View()
	for _, want := range []string{"A", "B", "C", removeLabel, addLabel, "(3)"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestEnterInInputAddsTask(t *testing.T) {
	m, mem := newTestModel(t, "")

	send(m, typeText("  Buy milk "), enter)

	if got := stored(t, mem); got != `["Buy milk"]` {
		t.Errorf("snapshot = %s", got)
	}
	if got := rowTexts(m); len(got) != 1 || got[0] != "Buy milk" {
		t.Errorf("rows = %v", got)
	}
	if m.input.Value() != "" {
		t.Errorf("input not cleared: %q", m.input.Value())
	}
}

func TestAddButtonAddsTask(t *testing.T) {
	m, mem := newTestModel(t, "")

	send(m, typeText("Walk dog"), tab)
	if m.focus != focusAdd {
		t.Fatalf("focus = %v, want add button", m.focus)
	}
	send(m, enter)

	if got := stored(t, mem); got != `["Walk dog"]` {
		t.Errorf("snapshot = %s", got)
	}
}

func TestEmptyAddShowsBlockingAlert(t *testing.T) {
	m, mem := newTestModel(t, "")

	send(m, typeText("   "), enter)

	if !m.alert.active() {
		t.Fatal("alert not shown")
	}
	if !strings.Contains(m.View(), controller.EmptyTaskMessage) {
		t.Errorf("view does not show the alert:\n%s", m.View())
	}
	if _, ok, _ := mem.Get(taskstore.Key); ok {
		t.Error("empty add wrote the snapshot")
	}

	// The dismissing key is swallowed.
	send(m, typeText("z"))
	if m.alert.active() {
		t.Error("alert still active after a key press")
	}
	if strings.Contains(m.input.Value(), "z") {
		t.Errorf("dismissing key reached the input: %q", m.input.Value())
	}
	if len(m.list.Items()) != 0 {
		t.Error("row added on empty input")
	}
}

func TestRemoveSelectedRow(t *testing.T) {
	m, mem := newTestModel(t, `["Buy milk","Walk dog"]`)

	send(m, tab, tab)
	if m.focus != focusList {
		t.Fatalf("focus = %v, want list", m.focus)
	}
	send(m, typeText("x"))

	if got := stored(t, mem); got != `["Walk dog"]` {
		t.Errorf("snapshot = %s", got)
	}
	if got := rowTexts(m); len(got) != 1 || got[0] != "Walk dog" {
		t.Errorf("rows = %v", got)
	}
}

func TestRemoveKeyIgnoredOutsideList(t *testing.T) {
	m, mem := newTestModel(t, `["A"]`)

	send(m, typeText("x"))

	if got := stored(t, mem); got != `["A"]` {
		t.Errorf("snapshot = %s", got)
	}
	if m.input.Value() != "x" {
		t.Errorf("input = %q, want the typed key", m.input.Value())
	}
}

func TestFocusCycles(t *testing.T) {
	m, _ := newTestModel(t, "")
	shiftTab := tea.KeyMsg{Type: tea.KeyShiftTab}

	send(m, shiftTab)
	if m.focus != focusList {
		t.Errorf("shift+tab from input = %v, want list", m.focus)
	}
	send(m, tab)
	if m.focus != focusInput || !m.input.Focused() {
		t.Errorf("tab from list = %v, want focused input", m.focus)
	}
}

type brokenKV struct{ *kv.MemoryStore }

func (brokenKV) Set(string, string) error { return errors.New("read-only profile") }

func TestWriteFailureShowsStatus(t *testing.T) {
	mem := kv.NewMemoryStore()
	m := New(taskstore.New(brokenKV{mem}), Options{})
	t.Cleanup(m.zones.Close)

	send(m, typeText("Buy milk"), enter)

	if !strings.Contains(m.status, "read-only profile") {
		t.Errorf("status = %q", m.status)
	}
	if !strings.Contains(m.View(), "read-only profile") {
		t.Error("status line not rendered")
	}
}

// clickZone renders the screen and left-clicks the top-left cell of zone id.
func clickZone(t *testing.T, m *Model, id string) {
	t.Helper()
	m.zones.Clear(id)
	m.View()

	deadline := time.Now().Add(time.Second)
	for {
		if z := m.zones.Get(id); z != nil && !z.IsZero() {
			send(m, tea.MouseMsg{X: z.StartX, Y: z.StartY, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease})
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("zone %q never registered", id)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestMouseClicks(t *testing.T) {
	m, mem := newTestModel(t, `["A","B","C"]`)

	h, ok := m.view.Find("B")
	if !ok {
		t.Fatal("row B not rendered")
	}
	clickZone(t, m, removeZoneID(h))
	if got := stored(t, mem); got != `["A","C"]` {
		t.Fatalf("after remove click: snapshot = %s", got)
	}
	if got := strings.Join(rowTexts(m), ","); got != "A,C" {
		t.Errorf("rows = %s", got)
	}

	clickZone(t, m, zoneInput)
	if m.focus != focusInput {
		t.Fatalf("focus = %v, want input", m.focus)
	}
	send(m, typeText("D"))
	clickZone(t, m, zoneAdd)
	if got := stored(t, mem); got != `["A","C","D"]` {
		t.Fatalf("after add click: snapshot = %s", got)
	}

	writes := mem.Writes()
	clickZone(t, m, zoneAdd)
	if !m.alert.active() || m.alert.msg != controller.EmptyTaskMessage {
		t.Fatalf("alert = %q, want %q", m.alert.msg, controller.EmptyTaskMessage)
	}
	send(m, tea.MouseMsg{X: 0, Y: 0, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease})
	if m.alert.active() {
		t.Error("click did not dismiss the alert")
	}
	if mem.Writes() != writes || stored(t, mem) != `["A","C","D"]` {
		t.Errorf("dismissing click changed the snapshot: %s", stored(t, mem))
	}
	if len(m.list.Items()) != 3 {
		t.Errorf("rows = %v", rowTexts(m))
	}
}

func TestWindowResize(t *testing.T) {
	m, _ := newTestModel(t, "")
	send(m, tea.WindowSizeMsg{Width: 120, Height: 40})

	if m.list.Width() != 116 || m.list.Height() != 40-chromeHeight {
		t.Errorf("list size = %dx%d", m.list.Width(), m.list.Height())
	}
}

// quits reports whether cmd, possibly a batch, produces tea.QuitMsg.
func quits(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	switch msg := cmd().(type) {
	case tea.QuitMsg:
		return true
	case tea.BatchMsg:
		for _, c := range msg {
			if quits(c) {
				return true
			}
		}
	}
	return false
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t, "")

	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC}); !quits(cmd) {
		t.Error("ctrl+c did not quit")
	}

	if _, cmd := m.Update(typeText("q")); quits(cmd) {
		t.Error("q typed into the input quit the program")
	}

	send(m, tab)
	if _, cmd := m.Update(typeText("q")); !quits(cmd) {
		t.Error("q on the add button did not quit")
	}
}
