package domhelper

import (
	"errors"
	"fmt"
)

var (
	// ErrContainerNotFound is returned when AddElementToDOM has no container.
	ErrContainerNotFound = errors.New("domhelper: container not found")

	// ErrElementNotFound is returned when RemoveElementFromDOM has no target.
	ErrElementNotFound = errors.New("domhelper: element not found")

	// ErrEmptyInput is returned when HandleFormSubmit has no form, no input,
	// or only whitespace to submit.
	ErrEmptyInput = errors.New("domhelper: input cannot be empty")

	// ErrNoErrorDisplay is returned when the error-display element is missing
	// and a message could not be shown.
	ErrNoErrorDisplay = errors.New("domhelper: error display element not found")
)

// OpError describes a failed operation. Message is the text shown to the user.
type OpError struct {
	Op      string
	ID      string
	Message string
	Err     error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("%s %q: %s", e.Op, e.ID, e.Message)
}

func (e *OpError) Unwrap() error {
	return e.Err
}
