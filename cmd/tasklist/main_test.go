package main

import (
	"os"
	"path/filepath"
	"testing"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	for _, k := range []string{"TASKLIST_CONFIG", "TASKLIST_DATA_DIR", "TASKLIST_THEME", "TASKLIST_COLOR", "TASKLIST_LOG_LEVEL", "TASKLIST_LOG_FORMAT", "TASKLIST_LOG_FILE", "NO_COLOR"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	return home
}

func TestRunPersistsToDataDir(t *testing.T) {
	home := isolate(t)
	dataDir := filepath.Join(home, "profile")

	if code := run([]string{"--data-dir", dataDir, "--color", "never", "add", "Buy", "milk"}); code != 0 {
		t.Fatalf("add exit %d", code)
	}
	b, err := os.ReadFile(filepath.Join(dataDir, "tasks.json"))
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `["Buy milk"]` {
		t.Errorf("snapshot = %s", b)
	}
}

func TestRunEphemeralWritesNothing(t *testing.T) {
	home := isolate(t)
	dataDir := filepath.Join(home, "profile")

	if code := run([]string{"--data-dir", dataDir, "--ephemeral", "add", "x"}); code != 0 {
		t.Fatalf("add exit %d", code)
	}
	if _, err := os.Stat(dataDir); !os.IsNotExist(err) {
		t.Errorf("data dir created in ephemeral mode: %v", err)
	}
}

func TestRunLogFile(t *testing.T) {
	home := isolate(t)
	logFile := filepath.Join(home, "logs", "tasklist.log")

	code := run([]string{"--ephemeral", "--log-level", "debug", "--log-file", logFile, "ls"})
	if code != 0 {
		t.Fatalf("ls exit %d", code)
	}
	info, err := os.Stat(logFile)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Error("debug log file is empty")
	}
}

func TestRunBadFlags(t *testing.T) {
	isolate(t)
	if code := run([]string{"--theme", "rainbow", "ls"}); code != 2 {
		t.Errorf("exit code = %d, want 2", code)
	}
	if code := run(nil); code != 2 {
		t.Errorf("exit code without subcommand = %d, want 2", code)
	}
}
