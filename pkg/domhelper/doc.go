// Package domhelper builds, inserts and removes elements in a dom.Document and
// reports failures as inline messages on the page.
//
// A Helper is the context every operation runs in: the document, the id of
// the error-display element, the class that hides it, and the shape of the
// items it inserts.
//
//	doc, _ := htmldoc.ParseString(page)
//	h := domhelper.New(doc, domhelper.WithLogger(logger))
//	h.AddElementToDOM("list", "hello")
//	h.HandleFormSubmit("new-item", "list")
//
// # Failures
//
// A missing container, element, form or input, or an input that is empty after
// trimming, is shown to the user by writing a message into the error-display
// element and removing its hidden class. The operation also returns an
// *OpError so callers and tests can branch on it. Operations never panic on a
// missing target.
//
// If the error-display element itself is missing, ShowError logs a warning,
// counts it in Metrics, and returns ErrNoErrorDisplay.
package domhelper
