package widget

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is returned (wrapped) for every parameter the widget
// builder refuses to accept.
var ErrInvalidArgument = errors.New("invalid argument")

// ArgumentError names offending parameter and constraint it violates.
type ArgumentError struct {
	Param      string
	Constraint string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s: `%s` %s", ErrInvalidArgument, e.Param, e.Constraint)
}

func (e *ArgumentError) Unwrap() error {
	return ErrInvalidArgument
}

func invalidArgument(param, constraint string) error {
	return &ArgumentError{Param: param, Constraint: constraint}
}
