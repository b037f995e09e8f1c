package model

import "strings"

// Task is a single to-do entry. It has no identity beyond its text;
// two tasks with the same text are indistinguishable.
type Task = string

// Normalize trims surrounding whitespace. The result is the text that gets
// rendered and persisted; an empty result is not a valid task.
func Normalize(text string) (Task, bool) {
	t := strings.TrimSpace(text)
	return t, t != ""
}
