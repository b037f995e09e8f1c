// Package kv is a string key-value store scoped to one profile directory.
// It plays the part browser local storage plays for a page: values are
// opaque strings and every Set replaces the whole value.
package kv

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrInvalidKey is returned for keys that cannot be used as a file name.
var ErrInvalidKey = errors.New("invalid key")

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// Store is the storage contract the task store persists through.
type Store interface {
	// Get returns ok == false with a nil error when the key is absent.
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Delete(key string) error
}

func validKey(key string) error {
	if key == "." || key == ".." || !keyPattern.MatchString(key) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}
