package htmldoc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/vango-dev/domhelper/pkg/dom"
)

// ErrHierarchy is returned when appending an element to itself or to one of
// its own descendants.
var ErrHierarchy = errors.New("htmldoc: the new child is an ancestor of the parent")

const emptyPage = "<!DOCTYPE html><html><head></head><body></body></html>"

// Document is an in-memory HTML document.
type Document struct {
	root    *html.Node
	onPatch dom.PatchFunc
}

var _ dom.Document = (*Document)(nil)

// New returns an empty HTML5 document.
func New() *Document {
	doc, err := ParseString(emptyPage)
	if err != nil {
		// The constant page always parses.
		panic(err)
	}
	return doc
}

// Parse reads an HTML document. Fragments are accepted; the parser wraps them
// in html/head/body like a browser does.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("htmldoc: parse: %w", err)
	}
	return &Document{root: root}, nil
}

// ParseString is Parse over a string.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// OnPatch registers fn to receive mutations. A nil fn disables reporting.
func (d *Document) OnPatch(fn dom.PatchFunc) {
	d.onPatch = fn
}

// Root returns the underlying document node.
func (d *Document) Root() *html.Node {
	return d.root
}

// Body returns the body element, or nil if the tree has none.
func (d *Document) Body() *Element {
	n := findNode(d.root, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.DataAtom == atom.Body
	})
	if n == nil {
		return nil
	}
	return d.wrap(n)
}

// GetElementByID returns the first element in tree order whose id matches.
func (d *Document) GetElementByID(id string) (dom.Element, bool) {
	if id == "" {
		return nil, false
	}
	n := findNode(d.root, func(n *html.Node) bool {
		return n.Type == html.ElementNode && attrValue(n, "id") == id
	})
	if n == nil {
		return nil, false
	}
	return d.wrap(n), true
}

// CreateElement returns a new detached element. Tag names are lowercased.
func (d *Document) CreateElement(tag string) dom.Element {
	tag = strings.ToLower(tag)
	return d.wrap(&html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	})
}

// Render writes the whole document as HTML.
func (d *Document) Render(w io.Writer) error {
	return render(w, d.root)
}

// String renders the whole document.
func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}

// BodyHTML renders the children of body, which is what fixtures usually
// compare against.
func (d *Document) BodyHTML() string {
	body := d.Body()
	if body == nil {
		return ""
	}
	return body.InnerHTML()
}

func (d *Document) wrap(n *html.Node) *Element {
	return &Element{doc: d, node: n}
}

func (d *Document) emit(p dom.Patch) {
	if d.onPatch != nil {
		d.onPatch(p)
	}
}

// connected reports whether n is attached to the document root.
func (d *Document) connected(n *html.Node) bool {
	for ; n != nil; n = n.Parent {
		if n == d.root {
			return true
		}
	}
	return false
}

// findNode walks the tree in document order and returns the first match.
func findNode(n *html.Node, match func(*html.Node) bool) *html.Node {
	if n == nil {
		return nil
	}
	if match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findNode(c, match); found != nil {
			return found
		}
	}
	return nil
}

func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}
