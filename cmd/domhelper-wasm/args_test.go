//go:build js && wasm

package main

import (
	"syscall/js"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestArgs_Str(t *testing.T) {
	a := args{
		js.ValueOf("list"),
		js.ValueOf(5),
		js.Null(),
		js.Undefined(),
		js.ValueOf(true),
		js.ValueOf(0),
	}
	tests := []struct {
		i    int
		want string
	}{
		{0, "list"},
		{1, "5"},
		{2, ""},
		{3, ""},
		{4, "true"},
		{5, "0"},
		{9, ""},
	}
	for _, tt := range tests {
		if got := a.str(tt.i); got != tt.want {
			t.Errorf("str(%d) = %q, want %q", tt.i, got, tt.want)
		}
	}
}

func TestArgs_Text(t *testing.T) {
	a := args{js.ValueOf(5), js.ValueOf(0), js.ValueOf(""), js.Null(), js.ValueOf("hi")}
	want := []string{"5", "", "", "", "hi"}
	for i, w := range want {
		if got := a.text(i); got != w {
			t.Errorf("text(%d) = %q, want %q", i, got, w)
		}
	}
}

func TestArgs_Attrs(t *testing.T) {
	obj := js.ValueOf(map[string]any{
		"tabindex": 0,
		"class":    "item",
		"hidden":   true,
		"title":    nil,
	})
	got := args{js.ValueOf("div"), obj}.attrs(1)
	want := map[string]string{
		"tabindex": "0",
		"class":    "item",
		"hidden":   "true",
		"title":    "null",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("attrs mismatch (-want +got):\n%s", diff)
	}

	if got := (args{js.ValueOf("div"), js.Null()}).attrs(1); got != nil {
		t.Errorf("attrs(null) = %v, want nil", got)
	}
	if got := (args{js.ValueOf("div")}).attrs(1); got != nil {
		t.Errorf("attrs(missing) = %v, want nil", got)
	}
}
