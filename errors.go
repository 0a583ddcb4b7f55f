package decor

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
var (
	ErrPresenterNotFound = errors.New("presenter type not found")
	ErrAttributeNotFound = errors.New("attribute not found")
	ErrDuplicateType     = errors.New("presenter type already registered")
	ErrInvalidDefinition = errors.New("invalid presenter definition")
	ErrInvalidArgument   = errors.New("invalid argument")
)

// AttributeError reports an attribute that neither the presenter type nor
// the wrapped target can answer. It unwraps to [ErrAttributeNotFound].
type AttributeError struct {
	Name   string
	Target string
}

func (e *AttributeError) Error() string {
	return fmt.Sprintf("%s: %q on %s", ErrAttributeNotFound, e.Name, e.Target)
}

func (e *AttributeError) Unwrap() error { return ErrAttributeNotFound }

// NotFoundError reports a qualified presenter type name that is not
// registered. It unwraps to [ErrPresenterNotFound].
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	if e.Name == "" {
		return ErrPresenterNotFound.Error()
	}
	return fmt.Sprintf("%s: %q", ErrPresenterNotFound, e.Name)
}

func (e *NotFoundError) Unwrap() error { return ErrPresenterNotFound }

func attributeError(target any, name string) error {
	return &AttributeError{Name: name, Target: fmt.Sprintf("%T", target)}
}
