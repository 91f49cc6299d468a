package addonsync

import "errors"

// ErrorKind classifies sync failures.
type ErrorKind int

const (
	KindMissingManifest ErrorKind = iota + 1
	KindParse
	KindMissingField
	KindWrite
)

func (k ErrorKind) String() string {
	switch k {
	case KindMissingManifest:
		return "missing manifest"
	case KindParse:
		return "parse error"
	case KindMissingField:
		return "missing field"
	case KindWrite:
		return "write error"
	}
	return "unknown"
}

// Error is the sync error type.
type Error interface {
	Error() string
	Unwrap() error
	ErrorKind() ErrorKind
	ErrorPath() string // File the error relates to. Empty when not file-specific.
}

type DefaultError struct {
	err  error
	kind ErrorKind
	path string
	msg  string
}

func (se *DefaultError) Error() string {
	out := se.msg
	if se.path != "" {
		out = se.path + ": " + out
	}
	if se.err != nil {
		out += ": " + se.err.Error()
	}
	return out
}

func (se *DefaultError) Unwrap() error {
	return se.err
}

func (se *DefaultError) ErrorKind() ErrorKind {
	return se.kind
}

func (se *DefaultError) ErrorPath() string {
	return se.path
}

func newSyncError(kind ErrorKind, path string, msg string, err error) error {
	return &DefaultError{kind: kind, path: path, msg: msg, err: err}
}

// Kind returns the ErrorKind of err, or 0 when err is not a sync error.
func Kind(err error) ErrorKind {
	var se Error
	if errors.As(err, &se) {
		return se.ErrorKind()
	}
	return 0
}
