// Package htmldoc implements dom.Document over a golang.org/x/net/html tree.
//
// Documents are parsed from HTML fixtures and rendered back with html.Render,
// so a test or a CLI run can inspect exactly what a browser would receive.
// Every mutation of an element connected to the document is reported to the
// function registered with OnPatch. Mutations of detached elements are not
// reported; the InsertNode patch that attaches them carries their outer HTML.
//
//	doc, err := htmldoc.ParseString(`<div id="list"></div>`)
//	rec := &dom.Recorder{}
//	doc.OnPatch(rec.Record)
package htmldoc
