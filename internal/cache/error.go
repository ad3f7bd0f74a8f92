package cache

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("cache file not found")
	ErrParse    = errors.New("cache file is not valid json")
	ErrIO       = errors.New("cache file i/o failed")
)

// Error describes a failed load or save of one cache file.
// Kind is one of ErrNotFound, ErrParse or ErrIO.
type Error struct {
	Op   string // "load" or "save"
	Name string // file name within the cache directory
	Kind error
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Name, e.Kind)
	}
	return fmt.Sprintf("%s %s: %v: %v", e.Op, e.Name, e.Kind, e.Err)
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
