// Package errors provides coded, formatted errors for the domhelper CLI and
// preview server.
//
// Every error has a code (e.g. "D001") registered with a category, a short
// message and a longer detail. Operation failures returned by the helpers are
// mapped onto codes with FromOpError so the terminal shows the same message a
// user would see on the page.
//
// # Categories
//
//   - operation: a helper could not find its target
//   - fixture: an HTML fixture could not be read or parsed
//   - config: domhelper.json could not be read or parsed
//   - script: an operation script is malformed
//
// # Usage
//
//	err := errors.New("D030").
//	    WithLocation("steps.txt", 3, 1).
//	    WithSuggestion("Known operations: add, click, remove, submit, error, value, create")
//
//	errors.PrintError(err)
package errors
