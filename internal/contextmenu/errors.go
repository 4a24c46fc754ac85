package contextmenu

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyAttached is matched by AlreadyAttachedError.
	ErrAlreadyAttached = errors.New("contextmenu: already attached")
	// ErrUnknownMethod is matched by UnknownMethodError.
	ErrUnknownMethod = errors.New("contextmenu: unknown method")
	// ErrInvalidSpec is returned when a menu spec breaks an item invariant.
	ErrInvalidSpec = errors.New("contextmenu: invalid menu spec")
)

// AlreadyAttachedError reports an Attach on an element that still has a live
// zone. The caller must Detach first.
type AlreadyAttachedError struct {
	Element Node
}

func (e *AlreadyAttachedError) Error() string {
	return fmt.Sprintf("contextmenu: element %d already initialized", e.Element.NodeID())
}

func (e *AlreadyAttachedError) Is(target error) bool { return target == ErrAlreadyAttached }

// UnknownMethodError reports an Invoke with an unrecognised method name.
type UnknownMethodError struct {
	Method string
}

func (e *UnknownMethodError) Error() string {
	return fmt.Sprintf("contextmenu: method %q does not exist", e.Method)
}

func (e *UnknownMethodError) Is(target error) bool { return target == ErrUnknownMethod }
