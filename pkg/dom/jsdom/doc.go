// Package jsdom implements dom.Document over the browser document through
// syscall/js. It is only built for js/wasm.
package jsdom
