package domhelper

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/domhelper/pkg/dom"
	"github.com/vango-dev/domhelper/pkg/dom/htmldoc"
)

const page = `<div id="list"><p id="itemA">A</p><p id="itemB">B</p></div>` +
	`<form id="f"><input type="text" value=""></form>` +
	`<form id="bare"></form>` +
	`<div id="error-message" class="hidden"></div>`

type fixture struct {
	doc    *htmldoc.Document
	helper *Helper
	logs   *bytes.Buffer
	rec    *dom.Recorder
}

func newFixture(t *testing.T, html string, opts ...Option) *fixture {
	t.Helper()
	doc, err := htmldoc.ParseString(html)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	logs := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	rec := &dom.Recorder{}
	doc.OnPatch(rec.Record)
	opts = append([]Option{WithLogger(logger)}, opts...)
	return &fixture{doc: doc, helper: New(doc, opts...), logs: logs, rec: rec}
}

func (f *fixture) element(t *testing.T, id string) *htmldoc.Element {
	t.Helper()
	el, ok := f.doc.GetElementByID(id)
	if !ok {
		t.Fatalf("element %q not found", id)
	}
	return el.(*htmldoc.Element)
}

func (f *fixture) errorText(t *testing.T) string {
	t.Helper()
	return f.element(t, DefaultErrorElementID).TextContent()
}

func (f *fixture) setInput(t *testing.T, formID, value string) dom.Element {
	t.Helper()
	in, ok := f.element(t, formID).FirstByTag("input")
	if !ok {
		t.Fatalf("form %q has no input", formID)
	}
	in.SetValue(value)
	f.rec.Drain()
	return in
}

func TestNew_Defaults(t *testing.T) {
	h := New(htmldoc.New())
	if diff := cmp.Diff(DefaultConfig(), h.Config()); diff != "" {
		t.Errorf("Config() mismatch (-want +got):\n%s", diff)
	}
	if h.logger == nil {
		t.Error("logger = nil, want slog.Default()")
	}
}

func TestWithConfig_FillsEmptyFields(t *testing.T) {
	h := New(htmldoc.New(), WithConfig(Config{ErrorElementID: "errors", ItemTag: "li"}))
	want := DefaultConfig()
	want.ErrorElementID = "errors"
	want.ItemTag = "li"
	if diff := cmp.Diff(want, h.Config()); diff != "" {
		t.Errorf("Config() mismatch (-want +got):\n%s", diff)
	}
}

func TestCreateElement(t *testing.T) {
	tests := []struct {
		name  string
		tag   string
		attrs map[string]string
		text  string
	}{
		{"bare", "div", nil, ""},
		{"text only", "span", nil, "hello"},
		{"attributes", "a", map[string]string{"href": "/x", "class": "link", "data-id": "7"}, "go"},
		{"empty attribute value", "input", map[string]string{"disabled": ""}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, page)
			el := f.helper.CreateElement(tt.tag, tt.attrs, tt.text)

			if el.TagName() != tt.tag {
				t.Errorf("TagName() = %q, want %q", el.TagName(), tt.tag)
			}
			for k, want := range tt.attrs {
				got, ok := el.Attribute(k)
				if !ok || got != want {
					t.Errorf("Attribute(%q) = %q, %v; want %q", k, got, ok, want)
				}
			}
			if got := len(el.(*htmldoc.Element).Node().Attr); got != len(tt.attrs) {
				t.Errorf("attribute count = %d, want %d", got, len(tt.attrs))
			}
			if el.TextContent() != tt.text {
				t.Errorf("TextContent() = %q, want %q", el.TextContent(), tt.text)
			}
			if len(f.rec.Patches()) != 0 {
				t.Errorf("detached element emitted patches: %v", f.rec.Patches())
			}
		})
	}
}

func TestCreateElement_AttributeOrderIsStable(t *testing.T) {
	f := newFixture(t, page)
	attrs := map[string]string{"c": "3", "a": "1", "b": "2"}
	for i := 0; i < 10; i++ {
		el := f.helper.CreateElement("div", attrs, "")
		if got := el.(*htmldoc.Element).OuterHTML(); got != `<div a="1" b="2" c="3"></div>` {
			t.Fatalf("OuterHTML() = %q", got)
		}
	}
}

func TestShowError(t *testing.T) {
	f := newFixture(t, page)

	if err := f.helper.ShowError("first"); err != nil {
		t.Fatalf("ShowError() error = %v", err)
	}
	if err := f.helper.ShowError("second"); err != nil {
		t.Fatalf("ShowError() error = %v", err)
	}

	box := f.element(t, DefaultErrorElementID)
	if box.TextContent() != "second" {
		t.Errorf("error text = %q, want second", box.TextContent())
	}
	if box.HasClass(DefaultHiddenClass) {
		t.Error("error display still hidden")
	}
}

func TestShowError_MissingDisplay(t *testing.T) {
	f := newFixture(t, `<div id="list"></div>`)
	before := f.doc.String()

	err := f.helper.ShowError("boom")
	if !errors.Is(err, ErrNoErrorDisplay) {
		t.Fatalf("ShowError() err = %v, want ErrNoErrorDisplay", err)
	}
	if f.doc.String() != before {
		t.Error("document changed")
	}
	if !strings.Contains(f.logs.String(), "error display missing") {
		t.Errorf("expected warning log, got %q", f.logs.String())
	}
	if !strings.Contains(f.logs.String(), "boom") {
		t.Errorf("expected dropped message in log, got %q", f.logs.String())
	}
}

func TestShowError_CustomConventions(t *testing.T) {
	f := newFixture(t, `<p id="flash" class="is-hidden big"></p>`,
		WithConfig(Config{ErrorElementID: "flash", HiddenClass: "is-hidden"}))

	if err := f.helper.ShowError("oops"); err != nil {
		t.Fatal(err)
	}
	box := f.element(t, "flash")
	if box.TextContent() != "oops" || box.HasClass("is-hidden") || !box.HasClass("big") {
		t.Errorf("flash = %q", box.OuterHTML())
	}
}

func TestAddElementToDOM(t *testing.T) {
	f := newFixture(t, page)

	if err := f.helper.AddElementToDOM("list", "hello"); err != nil {
		t.Fatalf("AddElementToDOM() error = %v", err)
	}

	want := `<p id="itemA">A</p><p id="itemB">B</p><p class="dynamic-item">hello</p>`
	if got := f.element(t, "list").InnerHTML(); got != want {
		t.Errorf("list = %q, want %q", got, want)
	}
	if f.errorText(t) != "" {
		t.Errorf("unexpected error text %q", f.errorText(t))
	}

	wantPatches := []dom.Patch{
		{Op: dom.PatchInsertNode, Target: "list", Value: `<p class="dynamic-item">hello</p>`},
	}
	if diff := cmp.Diff(wantPatches, f.rec.Patches()); diff != "" {
		t.Errorf("patches mismatch (-want +got):\n%s", diff)
	}
}

func TestAddElementToDOM_EmptyText(t *testing.T) {
	f := newFixture(t, page)
	if err := f.helper.AddElementToDOM("list", ""); err != nil {
		t.Fatal(err)
	}
	children := f.element(t, "list").Children()
	if len(children) != 3 {
		t.Fatalf("children = %d, want 3", len(children))
	}
	if got := children[2].(*htmldoc.Element).OuterHTML(); got != `<p class="dynamic-item"></p>` {
		t.Errorf("item = %q", got)
	}
}

func TestAddElementToDOM_MissingContainer(t *testing.T) {
	f := newFixture(t, page)
	listBefore := f.element(t, "list").OuterHTML()

	err := f.helper.AddElementToDOM("missing", "x")

	var opErr *OpError
	if !errors.As(err, &opErr) {
		t.Fatalf("err = %v, want *OpError", err)
	}
	if !errors.Is(err, ErrContainerNotFound) {
		t.Errorf("err = %v, want ErrContainerNotFound", err)
	}
	if opErr.Op != OpAdd || opErr.ID != "missing" {
		t.Errorf("OpError = %+v", opErr)
	}

	wantMsg := `Container with ID "missing" not found.`
	if f.errorText(t) != wantMsg {
		t.Errorf("error text = %q, want %q", f.errorText(t), wantMsg)
	}
	if f.element(t, "list").OuterHTML() != listBefore {
		t.Error("list changed")
	}

	wantPatches := []dom.Patch{
		{Op: dom.PatchSetText, Target: "error-message", Value: wantMsg},
		{Op: dom.PatchSetAttr, Target: "error-message", Key: "class", Value: ""},
	}
	if diff := cmp.Diff(wantPatches, f.rec.Patches()); diff != "" {
		t.Errorf("patches mismatch (-want +got):\n%s", diff)
	}
}

func TestAddElementToDOM_MissingContainerAndDisplay(t *testing.T) {
	f := newFixture(t, `<div id="list"></div>`)

	err := f.helper.AddElementToDOM("missing", "x")
	if !errors.Is(err, ErrContainerNotFound) {
		t.Errorf("err = %v, want ErrContainerNotFound", err)
	}
	if !errors.Is(err, ErrNoErrorDisplay) {
		t.Errorf("err = %v, want ErrNoErrorDisplay", err)
	}
}

func TestSimulateClick(t *testing.T) {
	f := newFixture(t, page)

	if err := f.helper.SimulateClick("list", "clicked"); err != nil {
		t.Fatal(err)
	}
	children := f.element(t, "list").Children()
	if last := children[len(children)-1]; last.TextContent() != "clicked" || !last.HasClass(DefaultItemClass) {
		t.Errorf("last child = %q", last.(*htmldoc.Element).OuterHTML())
	}

	err := f.helper.SimulateClick("nowhere", "x")
	var opErr *OpError
	if !errors.As(err, &opErr) || opErr.Op != OpClick {
		t.Errorf("err = %v, want OpError from %s", err, OpClick)
	}
	if f.errorText(t) != `Container with ID "nowhere" not found.` {
		t.Errorf("error text = %q", f.errorText(t))
	}
}

func TestRemoveElementFromDOM(t *testing.T) {
	f := newFixture(t, page)

	if err := f.helper.RemoveElementFromDOM("itemA"); err != nil {
		t.Fatalf("first remove error = %v", err)
	}
	if _, ok := f.doc.GetElementByID("itemA"); ok {
		t.Fatal("itemA still present")
	}
	if f.errorText(t) != "" {
		t.Errorf("unexpected error text %q", f.errorText(t))
	}

	err := f.helper.RemoveElementFromDOM("itemA")
	if !errors.Is(err, ErrElementNotFound) {
		t.Fatalf("second remove err = %v, want ErrElementNotFound", err)
	}
	if f.errorText(t) != `Element with ID "itemA" not found.` {
		t.Errorf("error text = %q", f.errorText(t))
	}
	if got := f.element(t, "list").InnerHTML(); got != `<p id="itemB">B</p>` {
		t.Errorf("list = %q", got)
	}
}

func TestHandleFormSubmit(t *testing.T) {
	f := newFixture(t, page)
	in := f.setInput(t, "f", "  hi  ")

	if err := f.helper.HandleFormSubmit("f", "list"); err != nil {
		t.Fatalf("HandleFormSubmit() error = %v", err)
	}

	children := f.element(t, "list").Children()
	if len(children) != 3 || children[2].TextContent() != "hi" {
		t.Errorf("list = %q", f.element(t, "list").InnerHTML())
	}
	if in.Value() != "" {
		t.Errorf("input value = %q, want empty", in.Value())
	}

	wantPatches := []dom.Patch{
		{Op: dom.PatchInsertNode, Target: "list", Value: `<p class="dynamic-item">hi</p>`},
		{Op: dom.PatchSetValue, Target: "<input>", Value: ""},
	}
	if diff := cmp.Diff(wantPatches, f.rec.Patches()); diff != "" {
		t.Errorf("patches mismatch (-want +got):\n%s", diff)
	}
}

func TestHandleFormSubmit_Empty(t *testing.T) {
	tests := []struct {
		name   string
		formID string
		value  string
	}{
		{"empty value", "f", ""},
		{"whitespace value", "f", " \t\n "},
		{"missing form", "nope", ""},
		{"form without input", "bare", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, page)
			if tt.formID == "f" {
				f.setInput(t, "f", tt.value)
			}
			listBefore := f.element(t, "list").InnerHTML()

			err := f.helper.HandleFormSubmit(tt.formID, "list")
			if !errors.Is(err, ErrEmptyInput) {
				t.Fatalf("err = %v, want ErrEmptyInput", err)
			}
			if f.errorText(t) != EmptyInputMessage {
				t.Errorf("error text = %q, want %q", f.errorText(t), EmptyInputMessage)
			}
			if f.element(t, "list").InnerHTML() != listBefore {
				t.Error("list changed")
			}
		})
	}
}

func TestHandleFormSubmit_MissingContainer(t *testing.T) {
	f := newFixture(t, page)
	in := f.setInput(t, "f", "lost")

	err := f.helper.HandleFormSubmit("f", "missing")
	if !errors.Is(err, ErrContainerNotFound) {
		t.Fatalf("err = %v, want ErrContainerNotFound", err)
	}
	var opErr *OpError
	if errors.As(err, &opErr) && opErr.Op != OpSubmit {
		t.Errorf("Op = %q, want %q", opErr.Op, OpSubmit)
	}
	if f.errorText(t) != `Container with ID "missing" not found.` {
		t.Errorf("error text = %q", f.errorText(t))
	}
	if in.Value() != "" {
		t.Errorf("input value = %q, want cleared", in.Value())
	}
}

func TestIndependentFixtures(t *testing.T) {
	a := newFixture(t, page)
	b := newFixture(t, page)

	if err := a.helper.AddElementToDOM("list", "only in a"); err != nil {
		t.Fatal(err)
	}
	if err := b.helper.RemoveElementFromDOM("missing"); err == nil {
		t.Fatal("expected error")
	}

	if len(b.element(t, "list").Children()) != 2 {
		t.Error("b list changed by a")
	}
	if a.errorText(t) != "" {
		t.Errorf("a error text = %q, changed by b", a.errorText(t))
	}
}

func TestOpError_Error(t *testing.T) {
	err := &OpError{Op: OpRemove, ID: "x", Message: `Element with ID "x" not found.`, Err: ErrElementNotFound}
	want := `removeElementFromDOM "x": Element with ID "x" not found.`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestNotFoundMessages_KeepIDVerbatim(t *testing.T) {
	tests := []struct {
		name string
		run  func(h *Helper) error
		want string
	}{
		{
			name: "container with quotes",
			run:  func(h *Helper) error { return h.AddElementToDOM(`my "list"`, "x") },
			want: `Container with ID "my "list"" not found.`,
		},
		{
			name: "click with backslash",
			run:  func(h *Helper) error { return h.SimulateClick(`a\b`, "x") },
			want: `Container with ID "a\b" not found.`,
		},
		{
			name: "element with tab",
			run:  func(h *Helper) error { return h.RemoveElementFromDOM("a\tb") },
			want: "Element with ID \"a\tb\" not found.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, page)
			err := tt.run(f.helper)

			var opErr *OpError
			if !errors.As(err, &opErr) {
				t.Fatalf("err = %v, want *OpError", err)
			}
			if opErr.Message != tt.want {
				t.Errorf("Message = %q, want %q", opErr.Message, tt.want)
			}
			if f.errorText(t) != tt.want {
				t.Errorf("error text = %q, want %q", f.errorText(t), tt.want)
			}
		})
	}
}

func TestAddElementToDOM_VoidItemTag(t *testing.T) {
	f := newFixture(t, `<div id="list"></div>`, WithConfig(Config{ItemTag: "input"}))

	if err := f.helper.AddElementToDOM("list", "hello"); err != nil {
		t.Fatal(err)
	}

	wantHTML := `<div id="list"><input class="dynamic-item"/></div>`
	if got := f.doc.BodyHTML(); got != wantHTML {
		t.Errorf("BodyHTML() = %q, want %q", got, wantHTML)
	}
	want := []dom.Patch{{Op: dom.PatchInsertNode, Target: "list", Value: `<input class="dynamic-item"/>`}}
	if diff := cmp.Diff(want, f.rec.Patches()); diff != "" {
		t.Errorf("patches mismatch (-want +got):\n%s", diff)
	}
}
