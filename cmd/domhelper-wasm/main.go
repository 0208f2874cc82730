//go:build js && wasm

// Command domhelper-wasm exposes the DOM helpers on window when loaded in a
// browser.
//
// Each binding returns null on success and the error message otherwise.
// createElement returns the new element. Page conventions can be overridden
// by defining window.domhelperConfig before the module starts.
package main

import (
	"log/slog"
	"syscall/js"

	"github.com/vango-dev/domhelper/pkg/dom/jsdom"
	"github.com/vango-dev/domhelper/pkg/domhelper"
)

func main() {
	window := js.Global()
	h := domhelper.New(jsdom.Global(),
		domhelper.WithConfig(readConfig(window.Get("domhelperConfig"))),
		domhelper.WithLogger(slog.Default().With("component", "domhelper")),
	)

	bind(window, "addElementToDOM", func(a args) error { return h.AddElementToDOM(a.str(0), a.text(1)) })
	bind(window, "removeElementFromDOM", func(a args) error { return h.RemoveElementFromDOM(a.str(0)) })
	bind(window, "simulateClick", func(a args) error { return h.SimulateClick(a.str(0), a.text(1)) })
	bind(window, "handleFormSubmit", func(a args) error { return h.HandleFormSubmit(a.str(0), a.str(1)) })
	bind(window, "showError", func(a args) error { return h.ShowError(a.str(0)) })

	window.Set("createElement", js.FuncOf(func(this js.Value, in []js.Value) any {
		a := args(in)
		tag := a.str(0)
		if tag == "" {
			return js.Null()
		}
		el := h.CreateElement(tag, a.attrs(1), a.text(2))
		return el.(*jsdom.Element).JSValue()
	}))

	select {}
}

func bind(window js.Value, name string, fn func(args) error) {
	window.Set(name, js.FuncOf(func(this js.Value, in []js.Value) any {
		if err := fn(args(in)); err != nil {
			return err.Error()
		}
		return js.Null()
	}))
}

func readConfig(v js.Value) domhelper.Config {
	cfg := domhelper.DefaultConfig()
	if v.Type() != js.TypeObject {
		return cfg
	}
	set := func(key string, dst *string) {
		if f := v.Get(key); f.Type() == js.TypeString && f.String() != "" {
			*dst = f.String()
		}
	}
	set("errorElementId", &cfg.ErrorElementID)
	set("hiddenClass", &cfg.HiddenClass)
	set("itemTag", &cfg.ItemTag)
	set("itemClass", &cfg.ItemClass)
	set("inputTag", &cfg.InputTag)
	return cfg
}
