package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/Makepad-fr/tasklist/internal/controller"
	"github.com/Makepad-fr/tasklist/internal/export"
	"github.com/Makepad-fr/tasklist/internal/logging"
	"github.com/Makepad-fr/tasklist/internal/store/kv"
	"github.com/Makepad-fr/tasklist/internal/store/taskstore"
	"github.com/Makepad-fr/tasklist/internal/tui"
	"github.com/Makepad-fr/tasklist/internal/ui"
	"github.com/Makepad-fr/tasklist/internal/view"
)

// Options carry what the subcommands need from main.
type Options struct {
	Store  kv.Store
	Theme  string
	Logger *log.Logger // CLI logger, usually stderr
	// UILogger is used while the terminal UI owns the screen.
	UILogger *log.Logger

	Stdout, Stderr io.Writer

	// RunUI starts the terminal UI; nil means tui.Run.
	RunUI func(controller.TaskStore, tui.Options) error
}

func (o *Options) defaults() {
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
	if o.Logger == nil {
		o.Logger = logging.Discard()
	}
	if o.UILogger == nil {
		o.UILogger = logging.Discard()
	}
	if o.RunUI == nil {
		o.RunUI = tui.Run
	}
}

// ---------------------------------------------------
// CLI router
// ---------------------------------------------------

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	opt.defaults()
	if len(args) == 0 {
		PrintHelp(opt.Stderr)
		return 2
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp(opt.Stdout)
		return 0

	case "ls":
		return doList(opt)

	case "add":
		if len(a) == 0 {
			ui.Fail(opt.Stderr, "usage: tasklist add <text...>")
			return 2
		}
		return doAdd(opt, strings.Join(a, " "))

	case "rm":
		if len(a) == 0 {
			ui.Fail(opt.Stderr, "usage: tasklist rm <text...>")
			return 2
		}
		return doRemove(opt, strings.TrimSpace(strings.Join(a, " ")))

	case "export":
		return doExport(opt, a)

	case "ui":
		return doUI(opt)
	}

	ui.Fail(opt.Stderr, "unknown subcommand: "+cmd)
	fmt.Fprintln(opt.Stderr)
	PrintHelp(opt.Stderr)
	return 2
}

func PrintHelp(w io.Writer) {
	fmt.Fprint(w, `tasklist - a tiny to-do list

Usage:
  tasklist [flags] <subcommand> [args]

Subcommands:
  ui                     Interactive list (add with Enter, remove with x)
  add <text...>          Add a task (text can be multiple words)
  ls                     List tasks
  rm <text...>           Remove the first task with exactly this text
  export [-format f] [-out file]
                         Export as json, md, html or pdf (default md)

Flags:
  --data-dir dir         Where the task list is stored
  --theme name           classic, neon or mono
  --color mode           auto, always or never
  --log-level level      debug, info, warn or error
  --log-format fmt       text, json or logfmt
  --log-file path        Write logs to a file
  --ephemeral            Keep tasks in memory only

Examples:
  tasklist add "Buy milk"
  tasklist ls
  tasklist rm Buy milk
  tasklist export -format html -out tasks.html
`)
}

// session is a controller over a headless view, loaded from storage.
type session struct {
	ctrl   *controller.Controller
	view   *view.View
	store  *taskstore.Store
	input  *controller.Field
	alerts *printNotifier
}

func openSession(opt Options, text string) *session {
	s := &session{
		view:   view.New(),
		store:  taskstore.New(opt.Store, taskstore.WithLogger(opt.Logger)),
		input:  &controller.Field{Text: text},
		alerts: &printNotifier{w: opt.Stderr},
	}
	s.ctrl = controller.New(s.store, s.view, s.input, s.alerts, opt.Logger)
	s.ctrl.LoadAtStartup()
	return s
}

// printNotifier prints alerts as failures.
type printNotifier struct {
	w     io.Writer
	count int
}

func (n *printNotifier) Alert(msg string) {
	n.count++
	ui.Fail(n.w, msg)
}

// ---------------------------------------------------
// Subcommands
// ---------------------------------------------------

func doList(opt Options) int {
	s := openSession(opt, "")
	rows := s.view.Rows()
	t := ui.Current()

	header := fmt.Sprintf("%s  %s %d",
		ui.C(t.Title, "Tasks"),
		ui.C(t.Accent, "Total"), len(rows),
	)
	lines := []string{header, ""}
	if len(rows) == 0 {
		lines = append(lines, ui.C(t.Muted, "no tasks"))
	}
	for i, r := range rows {
		idx := fmt.Sprintf("%2d.", i+1)
		lines = append(lines, fmt.Sprintf("%s %s %s",
			ui.C(t.Index, idx), ui.C(t.Muted, t.Bullet), ui.Truncate(r.Text, 80)))
	}
	lines = append(lines, "")
	lines = append(lines, ui.C(t.Muted, "Tip: add with `tasklist add \"Buy milk\"`"))
	ui.Panel(opt.Stdout, lines)
	return 0
}

func doAdd(opt Options, text string) int {
	s := openSession(opt, text)
	if err := s.ctrl.Submit(); err != nil {
		ui.Fail(opt.Stderr, "save: "+err.Error())
		return 1
	}
	if s.alerts.count > 0 {
		return 2
	}
	ui.OK(opt.Stdout, "added")
	return 0
}

func doRemove(opt Options, text string) int {
	s := openSession(opt, text)

	var failed error
	s.ctrl.OnError(func(err error) { failed = err })

	h, found := s.view.Find(text)
	if !found {
		ui.Fail(opt.Stderr, fmt.Sprintf("no task named %q", text))
		ui.Hint(opt.Stderr, "Hint: run `tasklist ls` to see your tasks")
		return 1
	}
	s.view.Activate(h)
	if failed != nil {
		ui.Fail(opt.Stderr, "save: "+failed.Error())
		return 1
	}
	ui.OK(opt.Stdout, "removed")
	return 0
}

func doExport(opt Options, args []string) int {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.SetOutput(opt.Stderr)
	format := fs.String("format", "md", "json, md, html or pdf")
	out := fs.String("out", "", "write to this file instead of stdout")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	tasks := taskstore.New(opt.Store, taskstore.WithLogger(opt.Logger)).Load()
	data, err := export.Export(tasks, *format)
	if err != nil {
		ui.Fail(opt.Stderr, "export: "+err.Error())
		if errors.Is(err, export.ErrUnknownFormat) {
			return 2
		}
		return 1
	}

	if *out == "" {
		if _, err := opt.Stdout.Write(data); err != nil {
			ui.Fail(opt.Stderr, "write: "+err.Error())
			return 1
		}
		return 0
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		ui.Fail(opt.Stderr, "write: "+err.Error())
		return 1
	}
	opt.Logger.Info("exported", "format", *format, "path", *out, "count", len(tasks))
	ui.OK(opt.Stdout, fmt.Sprintf("exported %d tasks to %s", len(tasks), *out))
	return 0
}

func doUI(opt Options) int {
	store := taskstore.New(opt.Store, taskstore.WithLogger(opt.UILogger))
	if err := opt.RunUI(store, tui.Options{Theme: opt.Theme, Logger: opt.UILogger}); err != nil {
		ui.Fail(opt.Stderr, "tui: "+err.Error())
		return 1
	}
	return 0
}
