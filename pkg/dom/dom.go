package dom

import (
	"errors"
	"fmt"
)

// ErrNotFound is wrapped by every failed lookup.
var ErrNotFound = errors.New("dom: not found")

// ErrForeignNode is returned when an element from one implementation is
// appended to an element of another.
var ErrForeignNode = errors.New("dom: node belongs to a different document implementation")

// Document is a host document tree.
type Document interface {
	// GetElementByID returns the single element with the given id.
	GetElementByID(id string) (Element, bool)

	// CreateElement returns a new detached element.
	CreateElement(tag string) Element
}

// Element is a single element in a Document.
type Element interface {
	TagName() string
	ID() string

	Attribute(name string) (string, bool)
	SetAttribute(name, value string)
	RemoveAttribute(name string)

	HasClass(class string) bool
	AddClass(class string)
	RemoveClass(class string)

	// TextContent returns the concatenated text of all descendants.
	TextContent() string
	// SetTextContent replaces all children with a single text node.
	// An empty string leaves the element without children.
	SetTextContent(text string)

	// Value is the form-control value (inputs, textareas).
	Value() string
	SetValue(value string)

	// AppendChild moves child to the end of this element's children.
	AppendChild(child Element) error
	// Remove detaches the element from its parent. It is a no-op when
	// the element is already detached.
	Remove()

	// FirstByTag returns the first descendant element with the given tag,
	// in document order.
	FirstByTag(tag string) (Element, bool)
	// Children returns the child elements, skipping text and comments.
	Children() []Element
}

// LookupError reports a failed lookup.
type LookupError struct {
	// What names the kind of target ("element", "input", ...).
	What string
	// Key is the id or tag that was looked up.
	Key string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("dom: %s %q not found", e.What, e.Key)
}

// Unwrap makes errors.Is(err, ErrNotFound) hold.
func (e *LookupError) Unwrap() error {
	return ErrNotFound
}

// Find looks up an element by id and reports absence as an error.
func Find(doc Document, id string) (Element, error) {
	if doc == nil {
		return nil, &LookupError{What: "element", Key: id}
	}
	el, ok := doc.GetElementByID(id)
	if !ok || el == nil {
		return nil, &LookupError{What: "element", Key: id}
	}
	return el, nil
}

// FindFirst looks up the first descendant of parent with the given tag.
func FindFirst(parent Element, tag string) (Element, error) {
	if parent == nil {
		return nil, &LookupError{What: "descendant", Key: tag}
	}
	el, ok := parent.FirstByTag(tag)
	if !ok || el == nil {
		return nil, &LookupError{What: "descendant", Key: tag}
	}
	return el, nil
}
