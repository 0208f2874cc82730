// Package preview serves an HTML fixture over HTTP and applies helper
// operations to it, so a page can be driven from a browser or curl while
// watching the resulting patches.
//
// Routes:
//
//	GET  /         the current document
//	POST /ops      run script steps (form field "step"), returns JSON
//	GET  /live     websocket stream: a snapshot, then patches as they happen
//	GET  /metrics  Prometheus metrics for the helper
//
// All operations on the document run under one mutex, which plays the part
// of the browser event loop.
package preview
