// Package dom defines the contract between the helpers and a host document tree.
//
// A Document is addressed by element id and builds new elements by tag name.
// Lookups never return nil interfaces: they report absence with a boolean,
// or with an error wrapping ErrNotFound when the caller prefers Find.
//
// # Implementations
//
//   - htmldoc: an in-memory tree parsed from HTML, used by tests, the CLI and
//     the preview server.
//   - jsdom: the live browser document, available in js/wasm builds.
//
// Neither implementation is safe for concurrent use. Callers serialize access
// the way a browser event loop does.
package dom
