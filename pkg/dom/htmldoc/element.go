package htmldoc

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/vango-dev/domhelper/pkg/dom"
)

// Element wraps an element node of a Document.
// Two Elements are the same element when their Node pointers are equal.
type Element struct {
	doc  *Document
	node *html.Node
}

var _ dom.Element = (*Element)(nil)

// Node returns the underlying html node.
func (e *Element) Node() *html.Node {
	return e.node
}

// TagName returns the lowercase tag name.
func (e *Element) TagName() string {
	return e.node.Data
}

// ID returns the id attribute.
func (e *Element) ID() string {
	return attrValue(e.node, "id")
}

// Attribute returns the value of name and whether it is set.
func (e *Element) Attribute(name string) (string, bool) {
	for _, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttribute sets name to value, replacing any previous value.
func (e *Element) SetAttribute(name, value string) {
	e.setAttr(name, value)
	e.emit(dom.Patch{Op: dom.PatchSetAttr, Target: dom.Target(e), Key: name, Value: value})
}

// RemoveAttribute removes name if present.
func (e *Element) RemoveAttribute(name string) {
	for i, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == name {
			e.node.Attr = append(e.node.Attr[:i], e.node.Attr[i+1:]...)
			e.emit(dom.Patch{Op: dom.PatchRemoveAttr, Target: dom.Target(e), Key: name})
			return
		}
	}
}

// HasClass reports whether class is one of the element's classes.
func (e *Element) HasClass(class string) bool {
	for _, c := range e.classes() {
		if c == class {
			return true
		}
	}
	return false
}

// AddClass adds class unless it is already present.
func (e *Element) AddClass(class string) {
	if class == "" || e.HasClass(class) {
		return
	}
	e.SetAttribute("class", strings.Join(append(e.classes(), class), " "))
}

// RemoveClass removes every occurrence of class. The class attribute stays,
// possibly empty, as classList.remove leaves it.
func (e *Element) RemoveClass(class string) {
	if !e.HasClass(class) {
		return
	}
	kept := e.classes()[:0]
	for _, c := range e.classes() {
		if c != class {
			kept = append(kept, c)
		}
	}
	e.SetAttribute("class", strings.Join(kept, " "))
}

func (e *Element) classes() []string {
	v, _ := e.Attribute("class")
	return strings.Fields(v)
}

// TextContent returns the text of all descendant text nodes.
func (e *Element) TextContent() string {
	var b strings.Builder
	collectText(&b, e.node)
	return b.String()
}

// SetTextContent replaces the children with one text node.
func (e *Element) SetTextContent(text string) {
	e.replaceText(text)
	e.emit(dom.Patch{Op: dom.PatchSetText, Target: dom.Target(e), Value: text})
}

// Value returns the control value: the value attribute for inputs, the text
// for textareas.
func (e *Element) Value() string {
	if e.node.DataAtom == atom.Textarea {
		return e.TextContent()
	}
	v, _ := e.Attribute("value")
	return v
}

// SetValue sets the control value.
func (e *Element) SetValue(value string) {
	if e.node.DataAtom == atom.Textarea {
		e.replaceText(value)
	} else {
		e.setAttr("value", value)
	}
	e.emit(dom.Patch{Op: dom.PatchSetValue, Target: dom.Target(e), Value: value})
}

// AppendChild moves child to the end of e's children. child must come from
// the same Document.
func (e *Element) AppendChild(child dom.Element) error {
	c, ok := child.(*Element)
	if !ok || c == nil || c.doc != e.doc {
		return dom.ErrForeignNode
	}
	for n := e.node; n != nil; n = n.Parent {
		if n == c.node {
			return ErrHierarchy
		}
	}
	if c.node.Parent != nil {
		c.Remove()
	}
	e.node.AppendChild(c.node)
	e.emit(dom.Patch{Op: dom.PatchInsertNode, Target: dom.Target(e), Value: c.OuterHTML()})
	return nil
}

// Remove detaches e from its parent.
func (e *Element) Remove() {
	parent := e.node.Parent
	if parent == nil {
		return
	}
	connected := e.doc.connected(e.node)
	parent.RemoveChild(e.node)
	if connected {
		e.doc.emit(dom.Patch{Op: dom.PatchRemoveNode, Target: dom.Target(e)})
	}
}

// FirstByTag returns the first descendant with the given tag.
func (e *Element) FirstByTag(tag string) (dom.Element, bool) {
	tag = strings.ToLower(tag)
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		n := findNode(c, func(n *html.Node) bool {
			return n.Type == html.ElementNode && n.Data == tag
		})
		if n != nil {
			return e.doc.wrap(n), true
		}
	}
	return nil, false
}

// Children returns the element children of e.
func (e *Element) Children() []dom.Element {
	var out []dom.Element
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, e.doc.wrap(c))
		}
	}
	return out
}

// OuterHTML renders e including its own tags.
func (e *Element) OuterHTML() string {
	var buf bytes.Buffer
	if err := render(&buf, e.node); err != nil {
		return ""
	}
	return buf.String()
}

// InnerHTML renders e's children.
func (e *Element) InnerHTML() string {
	var buf bytes.Buffer
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if err := render(&buf, c); err != nil {
			return ""
		}
	}
	return buf.String()
}

func (e *Element) setAttr(name, value string) {
	for i, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == name {
			e.node.Attr[i].Val = value
			return
		}
	}
	e.node.Attr = append(e.node.Attr, html.Attribute{Key: name, Val: value})
}

func (e *Element) replaceText(text string) {
	for c := e.node.FirstChild; c != nil; {
		next := c.NextSibling
		e.node.RemoveChild(c)
		c = next
	}
	if text != "" {
		e.node.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	}
}

// emit reports p only while e is attached to the document.
func (e *Element) emit(p dom.Patch) {
	if e.doc.connected(e.node) {
		e.doc.emit(p)
	}
}

func collectText(b *strings.Builder, n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			b.WriteString(c.Data)
		case html.ElementNode:
			collectText(b, c)
		}
	}
}
