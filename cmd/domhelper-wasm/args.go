//go:build js && wasm

package main

import "syscall/js"

// args converts call arguments the way the browser would when a script
// passes them to the DOM.
type args []js.Value

func (a args) at(i int) js.Value {
	if i >= len(a) {
		return js.Undefined()
	}
	return a[i]
}

// str converts an id or message. A missing, undefined or null argument is "".
func (a args) str(i int) string {
	v := a.at(i)
	switch v.Type() {
	case js.TypeUndefined, js.TypeNull:
		return ""
	case js.TypeString:
		return v.String()
	}
	return stringify(v)
}

// text converts item text. Falsy values mean no text.
func (a args) text(i int) string {
	v := a.at(i)
	if !v.Truthy() {
		return ""
	}
	return a.str(i)
}

// attrs reads an attribute object. Values are stringified as setAttribute
// does, so null becomes "null".
func (a args) attrs(i int) map[string]string {
	obj := a.at(i)
	if obj.Type() != js.TypeObject {
		return nil
	}
	keys := js.Global().Get("Object").Call("keys", obj)
	out := make(map[string]string, keys.Length())
	for j := 0; j < keys.Length(); j++ {
		k := keys.Index(j).String()
		out[k] = stringify(obj.Get(k))
	}
	return out
}

func stringify(v js.Value) string {
	if v.Type() == js.TypeString {
		return v.String()
	}
	return js.Global().Call("String", v).String()
}
