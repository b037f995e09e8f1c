// Package tui is the interactive terminal front end. It projects the view
// model onto the screen and turns keys and clicks into controller events.
package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	zone "github.com/lrstanley/bubblezone"

	"github.com/Makepad-fr/tasklist/internal/controller"
	"github.com/Makepad-fr/tasklist/internal/logging"
	"github.com/Makepad-fr/tasklist/internal/ui"
	"github.com/Makepad-fr/tasklist/internal/view"
)

const (
	zoneAdd   = "add"
	zoneInput = "input"

	addLabel    = "[ Add Task ]"
	removeLabel = "[Remove]"

	defaultWidth, defaultHeight = 80, 24
)

type focus int

const (
	focusInput focus = iota
	focusAdd
	focusList
	focusCount
)

// Options configure the terminal UI.
type Options struct {
	Theme  string
	Logger *log.Logger
}

// rowItem adapts a view row to bubbles/list.Item.
type rowItem struct {
	handle view.Handle
	text   string
}

func (i rowItem) Title() string       { return i.text }
func (i rowItem) Description() string { return "" }
func (i rowItem) FilterValue() string { return i.text }

// alert is the blocking notification. While msg is set every key or click
// only dismisses it.
type alert struct{ msg string }

func (a *alert) Alert(msg string) { a.msg = msg }
func (a *alert) active() bool     { return a.msg != "" }
func (a *alert) dismiss()         { a.msg = "" }

type keyMap struct {
	next, prev, remove, press, quit key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		next:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next")),
		prev:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev")),
		remove: key.NewBinding(key.WithKeys("x", "delete", "backspace"), key.WithHelp("x", "remove")),
		press:  key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "add")),
		quit:   key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q", "quit")),
	}
}

// Model is the Bubble Tea model for the task list screen.
type Model struct {
	ctrl   *controller.Controller
	events *controller.Dispatcher
	view   *view.View
	input  textinput.Model
	alert  alert
	list   list.Model
	zones  *zone.Manager
	keys   keyMap
	styles styles
	logger *log.Logger

	focus         focus
	status        string
	dirty         bool
	width, height int
}

// New builds the screen over store and renders the persisted tasks.
func New(store controller.TaskStore, opts Options) *Model {
	m := &Model{
		view:   view.New(),
		events: controller.NewDispatcher(),
		zones:  zone.New(),
		keys:   newKeyMap(),
		styles: newStyles(opts.Theme),
		logger: opts.Logger,
		width:  defaultWidth,
		height: defaultHeight,
	}
	if m.logger == nil {
		m.logger = logging.Discard()
	}

	m.input = textinput.New()
	m.input.Prompt = "> "
	m.input.Placeholder = "What needs doing?"
	m.input.CharLimit = 200
	m.input.Focus()

	l := list.New(nil, itemDelegate{m: m}, 0, 0)
	l.SetShowTitle(true)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = m.styles.title
	l.Styles.HelpStyle = m.styles.help
	l.Styles.PaginationStyle = m.styles.help
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("task", "tasks")
	extra := func() []key.Binding { return []key.Binding{m.keys.next, m.keys.remove, m.keys.press} }
	l.AdditionalShortHelpKeys = extra
	l.AdditionalFullHelpKeys = extra
	m.list = l

	m.ctrl = controller.New(store, m.view, &m.input, &m.alert, m.logger)
	m.ctrl.OnError(m.setError)
	m.ctrl.Bind(m.events)
	m.view.OnChange(func() { m.dirty = true })

	m.ctrl.LoadAtStartup()
	m.syncRows()
	m.resize()
	return m
}

// Run starts the program and blocks until the user quits. Every change is
// already persisted by then.
func Run(store controller.TaskStore, opts Options) error {
	m := New(store, opts)
	defer m.zones.Close()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

func (m *Model) Init() tea.Cmd { return textinput.Blink }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.alert.active() {
			m.alert.dismiss()
			return m, nil
		}
		cmds = append(cmds, m.handleKey(msg))

	case tea.MouseMsg:
		if m.alert.active() {
			if isLeftClick(msg) {
				m.alert.dismiss()
			}
			return m, nil
		}
		cmds = append(cmds, m.handleMouse(msg))

	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
		m.list, cmd = m.list.Update(msg)
		cmds = append(cmds, cmd)
	}

	if m.dirty {
		cmds = append(cmds, m.syncRows())
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	filtering := m.focus == focusList && m.list.FilterState() == list.Filtering

	if !filtering {
		switch {
		case key.Matches(msg, m.keys.next):
			m.setFocus((m.focus + 1) % focusCount)
			return nil
		case key.Matches(msg, m.keys.prev):
			m.setFocus((m.focus + focusCount - 1) % focusCount)
			return nil
		}
	}

	switch m.focus {
	case focusInput:
		m.dispatch(controller.Event{Kind: controller.KeyPress, Target: controller.TargetInput, Key: msg.String()})
		if msg.String() == controller.KeyEnter {
			return nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return cmd

	case focusAdd:
		switch {
		case key.Matches(msg, m.keys.press):
			m.dispatch(controller.Event{Kind: controller.Click, Target: controller.TargetAdd})
		case key.Matches(msg, m.keys.quit):
			return tea.Quit
		}
		return nil

	default:
		if !filtering && key.Matches(msg, m.keys.remove) {
			if it, ok := m.list.SelectedItem().(rowItem); ok {
				m.status = ""
				m.view.Activate(it.handle)
			}
			return nil
		}
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return cmd
	}
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if !isLeftClick(msg) {
		if m.focus == focusList {
			var cmd tea.Cmd
			m.list, cmd = m.list.Update(msg)
			return cmd
		}
		return nil
	}

	switch {
	case m.hit(zoneAdd, msg):
		m.setFocus(focusAdd)
		m.dispatch(controller.Event{Kind: controller.Click, Target: controller.TargetAdd})
		return nil
	case m.hit(zoneInput, msg):
		m.setFocus(focusInput)
		return nil
	}
	for _, r := range m.view.Rows() {
		if m.hit(removeZoneID(r.Handle), msg) {
			m.setFocus(focusList)
			m.status = ""
			m.view.Activate(r.Handle)
			return nil
		}
	}
	return nil
}

func (m *Model) dispatch(ev controller.Event) {
	m.status = ""
	if err := m.events.Dispatch(ev); err != nil {
		m.setError(err)
	}
}

func (m *Model) setError(err error) {
	m.logger.Error("store write failed", "err", err)
	m.status = err.Error()
}

func (m *Model) setFocus(f focus) {
	m.focus = f
	if f == focusInput {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
}

func (m *Model) hit(id string, msg tea.MouseMsg) bool {
	z := m.zones.Get(id)
	return z != nil && z.InBounds(msg)
}

// syncRows rebuilds the list items from the view model.
func (m *Model) syncRows() tea.Cmd {
	m.dirty = false
	rows := m.view.Rows()
	items := make([]list.Item, 0, len(rows))
	for _, r := range rows {
		items = append(items, rowItem{handle: r.Handle, text: r.Text})
	}
	m.list.Title = fmt.Sprintf("Tasks %s", m.styles.count.Render(fmt.Sprintf("(%d)", len(rows))))
	return m.list.SetItems(items)
}

// chromeHeight is the number of lines outside the list: panel border,
// input box, add button and status line.
const chromeHeight = 2 + 3 + 1 + 1

func (m *Model) resize() {
	w := m.width - 4
	if w < 20 {
		w = 20
	}
	h := m.height - chromeHeight
	if h < 3 {
		h = 3
	}
	m.list.SetSize(w, h)
	m.input.Width = w - 6
}

func (m *Model) View() string {
	if m.alert.active() {
		return m.zones.Scan(m.alertView())
	}

	inputStyle := m.styles.input
	if m.focus == focusInput {
		inputStyle = m.styles.inputFocused
	}
	inputBox := m.zones.Mark(zoneInput, inputStyle.Width(m.list.Width()-2).Render(m.input.View()))

	btnStyle := m.styles.button
	if m.focus == focusAdd {
		btnStyle = m.styles.buttonFocused
	}
	button := m.zones.Mark(zoneAdd, btnStyle.Render(addLabel))

	status := m.styles.muted.Render(" ")
	if m.status != "" {
		status = m.styles.errorMsg.Render("✖ " + m.status)
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		m.list.View(),
		inputBox,
		button,
		status,
	)
	return m.zones.Scan(m.styles.panel.Render(content))
}

func (m *Model) alertView() string {
	body := lipgloss.JoinVertical(lipgloss.Center,
		m.styles.errorMsg.Render(m.alert.msg),
		"",
		m.styles.help.Render("press any key"),
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.styles.alert.Render(body))
}

// Custom delegate to control how rows render (single line).
type itemDelegate struct{ m *Model }

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, lm list.Model, index int, item list.Item) {
	it, ok := item.(rowItem)
	if !ok {
		return
	}
	st := d.m.styles

	textWidth := lm.Width() - len(removeLabel) - 6
	if textWidth < 8 {
		textWidth = 8
	}
	text := ui.Truncate(it.text, textWidth)

	prefix := "  "
	if index == lm.Index() && d.m.focus == focusList {
		prefix = st.selected.Render("> ")
		text = st.selected.Render(text)
	}
	remove := d.m.zones.Mark(removeZoneID(it.handle), st.remove.Render(removeLabel))
	fmt.Fprintf(w, "%s%s %s  %s", prefix, st.muted.Render(st.bullet), text, remove)
}

func removeZoneID(h view.Handle) string { return fmt.Sprintf("remove-%d", h) }

func isLeftClick(msg tea.MouseMsg) bool {
	return msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionRelease
}
