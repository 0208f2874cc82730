package errors

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"os"

	"github.com/vango-dev/domhelper/pkg/domhelper"
)

// Category represents the type of error.
type Category string

const (
	CategoryOperation Category = "operation"
	CategoryFixture   Category = "fixture"
	CategoryConfig    Category = "config"
	CategoryScript    Category = "script"
	CategoryCLI       Category = "cli"
)

// Location is a position in a fixture or script file.
type Location struct {
	File   string
	Line   int
	Column int
}

// String returns the location as a formatted string.
func (l *Location) String() string {
	if l == nil {
		return ""
	}
	if l.Column > 0 {
		return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// DomError is a structured error with an optional location and hint.
type DomError struct {
	// Code is a unique error identifier (e.g., "D001").
	Code string

	Category Category
	Message  string
	Detail   string

	// Location points into the file that caused the error, if any.
	Location *Location

	// Context holds the lines around Location.
	Context []string

	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *DomError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *DomError) Unwrap() error {
	return e.Wrapped
}

// WithLocation adds a file location and reads the surrounding lines.
func (e *DomError) WithLocation(file string, line, column int) *DomError {
	e.Location = &Location{File: file, Line: line, Column: column}
	e.Context = readContextLines(file, line, 5)
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *DomError) WithSuggestion(s string) *DomError {
	e.Suggestion = s
	return e
}

// WithDetail replaces the detailed explanation.
func (e *DomError) WithDetail(d string) *DomError {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *DomError) Wrap(err error) *DomError {
	e.Wrapped = err
	return e
}

// readContextLines reads lines around the specified line number from a file.
func readContextLines(filename string, targetLine, contextSize int) []string {
	file, err := os.Open(filename)
	if err != nil {
		return nil
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	lineNum := 0
	startLine := targetLine - contextSize/2
	endLine := targetLine + contextSize/2

	for scanner.Scan() {
		lineNum++
		if lineNum >= startLine && lineNum <= endLine {
			lines = append(lines, scanner.Text())
		}
		if lineNum > endLine {
			break
		}
	}

	return lines
}

// New creates a DomError from a registered error code.
func New(code string) *DomError {
	template, ok := registry[code]
	if !ok {
		return &DomError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &DomError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
	}
}

// Newf creates a new DomError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *DomError {
	return &DomError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a DomError. Helper operation errors are
// mapped with FromOpError first.
func FromError(err error, code string) *DomError {
	if err == nil {
		return nil
	}
	var de *DomError
	if stderrors.As(err, &de) {
		return de
	}
	if mapped := FromOpError(err); mapped != nil {
		return mapped
	}
	return New(code).Wrap(err)
}

// FromOpError maps a helper failure to its code. The page message becomes the
// detail. It returns nil for errors that did not come from a helper operation.
func FromOpError(err error) *DomError {
	var code string
	switch {
	case stderrors.Is(err, domhelper.ErrContainerNotFound):
		code = "D001"
	case stderrors.Is(err, domhelper.ErrElementNotFound):
		code = "D002"
	case stderrors.Is(err, domhelper.ErrEmptyInput):
		code = "D003"
	case stderrors.Is(err, domhelper.ErrNoErrorDisplay):
		code = "D004"
	default:
		return nil
	}

	de := New(code).Wrap(err)
	var opErr *domhelper.OpError
	if stderrors.As(err, &opErr) {
		de.Detail = opErr.Message
		if stderrors.Is(err, domhelper.ErrNoErrorDisplay) && code != "D004" {
			de.Suggestion = "The page has no error display element, so this message was not shown"
		}
	}
	return de
}
