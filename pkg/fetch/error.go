package fetch

import (
	"errors"
	"fmt"
)

// Kind classifies why a fetch failed.
type Kind int

const (
	KindNetwork Kind = iota // request could not be built or sent, or the body could not be read
	KindHTTP                // server answered with a non-2xx status
	KindDecode              // body was not the expected JSON
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindHTTP:
		return "http"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// Error is the single error type returned by every REST client in this repo.
type Error struct {
	Kind   Kind
	URL    string
	Status int    // set for KindHTTP
	Detail string // server supplied message, if any
	Err    error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindHTTP:
		if e.Detail != "" {
			return fmt.Sprintf("%s: http %d: %s", e.URL, e.Status, e.Detail)
		}
		return fmt.Sprintf("%s: http %d", e.URL, e.Status)
	default:
		return fmt.Sprintf("%s: %s error: %v", e.URL, e.Kind, e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// IsKind reports whether err is a *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var fe *Error
	return errors.As(err, &fe) && fe.Kind == kind
}
