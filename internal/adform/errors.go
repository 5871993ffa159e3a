package adform

import (
	"errors"
	"maps"
)

var (
	// ErrUnknownField is returned for names outside ScalarFields
	ErrUnknownField = errors.New("unknown form field")

	// ErrSlotOutOfRange is returned for image indexes outside [0, MaxImages)
	ErrSlotOutOfRange = errors.New("image slot out of range")

	// ErrInvalidTab is returned for location tabs other than list and current
	ErrInvalidTab = errors.New("invalid location tab")

	// ErrNoFile marks an upload with nothing selected
	ErrNoFile = errors.New("no file selected")
)

// Errors maps a failing field to its message. A missing key means the
// field is currently valid.
type Errors map[Field]string

// Has reports whether f currently has an error
func (e Errors) Has(f Field) bool {
	_, ok := e[f]
	return ok
}

// Message returns the error text of f, or ""
func (e Errors) Message(f Field) string {
	return e[f]
}

// Clone returns an independent copy
func (e Errors) Clone() Errors {
	if e == nil {
		return Errors{}
	}
	return maps.Clone(e)
}
