package htmldoc

import (
	"io"

	"golang.org/x/net/html"
)

// voidElements never serialize children. html.Render refuses to write one
// that has any, while browsers write the tags and drop the children.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"keygen": true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// render writes n as HTML, leaving out the children of void elements.
func render(w io.Writer, n *html.Node) error {
	if hasVoidContent(n) {
		n = serializable(n)
	}
	return html.Render(w, n)
}

func hasVoidContent(n *html.Node) bool {
	if n.Type == html.ElementNode && voidElements[n.Data] && n.FirstChild != nil {
		return true
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if hasVoidContent(c) {
			return true
		}
	}
	return false
}

// serializable returns a detached copy of n without void element children.
func serializable(n *html.Node) *html.Node {
	out := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
		Attr:      append([]html.Attribute(nil), n.Attr...),
	}
	if n.Type == html.ElementNode && voidElements[n.Data] {
		return out
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out.AppendChild(serializable(c))
	}
	return out
}
