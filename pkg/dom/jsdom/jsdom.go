//go:build js && wasm

package jsdom

import (
	"syscall/js"

	"github.com/vango-dev/domhelper/pkg/dom"
)

// Document wraps a browser document object.
type Document struct {
	document js.Value
}

var _ dom.Document = (*Document)(nil)

// Global returns the page's document.
func Global() *Document {
	return &Document{document: js.Global().Get("document")}
}

// Wrap returns a Document for an arbitrary document object, such as one
// created with document.implementation.createHTMLDocument.
func Wrap(document js.Value) *Document {
	return &Document{document: document}
}

// GetElementByID calls document.getElementById.
func (d *Document) GetElementByID(id string) (dom.Element, bool) {
	v := d.document.Call("getElementById", id)
	if !present(v) {
		return nil, false
	}
	return &Element{value: v}, true
}

// CreateElement calls document.createElement.
func (d *Document) CreateElement(tag string) dom.Element {
	return &Element{value: d.document.Call("createElement", tag)}
}

// Element wraps a browser element.
type Element struct {
	value js.Value
}

var _ dom.Element = (*Element)(nil)

// JSValue returns the wrapped js.Value.
func (e *Element) JSValue() js.Value {
	return e.value
}

func (e *Element) TagName() string {
	return e.value.Get("localName").String()
}

func (e *Element) ID() string {
	return e.value.Get("id").String()
}

func (e *Element) Attribute(name string) (string, bool) {
	v := e.value.Call("getAttribute", name)
	if !present(v) {
		return "", false
	}
	return v.String(), true
}

func (e *Element) SetAttribute(name, value string) {
	e.value.Call("setAttribute", name, value)
}

func (e *Element) RemoveAttribute(name string) {
	e.value.Call("removeAttribute", name)
}

func (e *Element) HasClass(class string) bool {
	return e.value.Get("classList").Call("contains", class).Bool()
}

func (e *Element) AddClass(class string) {
	e.value.Get("classList").Call("add", class)
}

func (e *Element) RemoveClass(class string) {
	e.value.Get("classList").Call("remove", class)
}

func (e *Element) TextContent() string {
	return e.value.Get("textContent").String()
}

func (e *Element) SetTextContent(text string) {
	e.value.Set("textContent", text)
}

// Value reads the value property, which reflects what the user typed.
func (e *Element) Value() string {
	v := e.value.Get("value")
	if !present(v) {
		return ""
	}
	return v.String()
}

func (e *Element) SetValue(value string) {
	e.value.Set("value", value)
}

func (e *Element) AppendChild(child dom.Element) error {
	c, ok := child.(*Element)
	if !ok || c == nil {
		return dom.ErrForeignNode
	}
	e.value.Call("appendChild", c.value)
	return nil
}

func (e *Element) Remove() {
	e.value.Call("remove")
}

func (e *Element) FirstByTag(tag string) (dom.Element, bool) {
	v := e.value.Call("querySelector", tag)
	if !present(v) {
		return nil, false
	}
	return &Element{value: v}, true
}

func (e *Element) Children() []dom.Element {
	coll := e.value.Get("children")
	n := coll.Length()
	out := make([]dom.Element, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, &Element{value: coll.Index(i)})
	}
	return out
}

func present(v js.Value) bool {
	return !v.IsNull() && !v.IsUndefined()
}
