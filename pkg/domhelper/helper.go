package domhelper

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/vango-dev/domhelper/pkg/dom"
)

const (
	// DefaultErrorElementID is the id of the error-display element.
	DefaultErrorElementID = "error-message"

	// DefaultHiddenClass hides the error-display element while it has no message.
	DefaultHiddenClass = "hidden"

	// DefaultItemTag is the tag of items inserted by AddElementToDOM.
	DefaultItemTag = "p"

	// DefaultItemClass marks items inserted by AddElementToDOM.
	DefaultItemClass = "dynamic-item"

	// DefaultInputTag is the form control read by HandleFormSubmit.
	DefaultInputTag = "input"

	// EmptyInputMessage is shown when a submitted form has nothing to add.
	EmptyInputMessage = "Input cannot be empty"
)

// Operation names used in errors, logs and metrics.
const (
	OpCreateElement = "createElement"
	OpShowError     = "showError"
	OpAdd           = "addElementToDOM"
	OpRemove        = "removeElementFromDOM"
	OpClick         = "simulateClick"
	OpSubmit        = "handleFormSubmit"
)

// Config holds the page conventions a Helper relies on.
type Config struct {
	ErrorElementID string
	HiddenClass    string
	ItemTag        string
	ItemClass      string
	InputTag       string
}

// DefaultConfig returns the conventional page layout.
func DefaultConfig() Config {
	return Config{
		ErrorElementID: DefaultErrorElementID,
		HiddenClass:    DefaultHiddenClass,
		ItemTag:        DefaultItemTag,
		ItemClass:      DefaultItemClass,
		InputTag:       DefaultInputTag,
	}
}

// withDefaults fills empty fields from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.ErrorElementID == "" {
		c.ErrorElementID = d.ErrorElementID
	}
	if c.HiddenClass == "" {
		c.HiddenClass = d.HiddenClass
	}
	if c.ItemTag == "" {
		c.ItemTag = d.ItemTag
	}
	if c.ItemClass == "" {
		c.ItemClass = d.ItemClass
	}
	if c.InputTag == "" {
		c.InputTag = d.InputTag
	}
	return c
}

// Helper runs the DOM operations against one document.
// It is not safe for concurrent use; neither is the document.
type Helper struct {
	doc     dom.Document
	config  Config
	logger  *slog.Logger
	metrics *Metrics
}

// Option configures a Helper.
type Option func(*Helper)

// WithConfig sets the page conventions. Empty fields keep their defaults.
func WithConfig(config Config) Option {
	return func(h *Helper) {
		h.config = config.withDefaults()
	}
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(h *Helper) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithMetrics enables Prometheus counters.
func WithMetrics(m *Metrics) Option {
	return func(h *Helper) {
		h.metrics = m
	}
}

// New returns a Helper operating on doc.
func New(doc dom.Document, opts ...Option) *Helper {
	h := &Helper{
		doc:    doc,
		config: DefaultConfig(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Document returns the document the helper operates on.
func (h *Helper) Document() dom.Document {
	return h.doc
}

// Config returns the effective page conventions.
func (h *Helper) Config() Config {
	return h.config
}

// CreateElement builds a detached element. Attributes are applied in key
// order; text is set only when non-empty.
func (h *Helper) CreateElement(tag string, attributes map[string]string, text string) dom.Element {
	el := h.doc.CreateElement(tag)

	keys := make([]string, 0, len(attributes))
	for k := range attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		el.SetAttribute(k, attributes[k])
	}

	if text != "" {
		el.SetTextContent(text)
	}
	return el
}

// ShowError writes message into the error-display element and unhides it,
// replacing any previous message.
func (h *Helper) ShowError(message string) error {
	box, ok := h.doc.GetElementByID(h.config.ErrorElementID)
	if !ok {
		h.metrics.missingDisplay()
		h.logger.Warn("error display missing, message dropped",
			"element_id", h.config.ErrorElementID,
			"message", message)
		return ErrNoErrorDisplay
	}

	box.SetTextContent(message)
	box.RemoveClass(h.config.HiddenClass)
	h.metrics.shown()
	return nil
}

// AddElementToDOM appends a new item holding text to the container.
func (h *Helper) AddElementToDOM(containerID, text string) error {
	err := h.add(OpAdd, containerID, text)
	h.metrics.observe(OpAdd, err)
	return err
}

// SimulateClick is the click-triggered form of AddElementToDOM.
func (h *Helper) SimulateClick(containerID, text string) error {
	err := h.add(OpClick, containerID, text)
	h.metrics.observe(OpClick, err)
	return err
}

func (h *Helper) add(op, containerID, text string) error {
	container, ok := h.doc.GetElementByID(containerID)
	if !ok {
		return h.fail(op, containerID, ErrContainerNotFound,
			"Container with ID \""+containerID+"\" not found.")
	}

	item := h.CreateElement(h.config.ItemTag, map[string]string{"class": h.config.ItemClass}, text)
	if err := container.AppendChild(item); err != nil {
		h.logger.Error("append item failed", "op", op, "container", containerID, "error", err)
		return fmt.Errorf("domhelper: append to %q: %w", containerID, err)
	}

	h.logger.Debug("item added", "op", op, "container", containerID, "text", text)
	return nil
}

// RemoveElementFromDOM detaches the element with the given id.
func (h *Helper) RemoveElementFromDOM(elementID string) error {
	err := h.remove(elementID)
	h.metrics.observe(OpRemove, err)
	return err
}

func (h *Helper) remove(elementID string) error {
	el, ok := h.doc.GetElementByID(elementID)
	if !ok {
		return h.fail(OpRemove, elementID, ErrElementNotFound,
			"Element with ID \""+elementID+"\" not found.")
	}
	el.Remove()
	h.logger.Debug("element removed", "id", elementID)
	return nil
}

// HandleFormSubmit adds the trimmed value of the form's first input to the
// container and clears the input.
func (h *Helper) HandleFormSubmit(formID, containerID string) error {
	err := h.submit(formID, containerID)
	h.metrics.observe(OpSubmit, err)
	return err
}

func (h *Helper) submit(formID, containerID string) error {
	var input dom.Element
	form, err := dom.Find(h.doc, formID)
	if err == nil {
		input, err = dom.FindFirst(form, h.config.InputTag)
	}
	if err != nil {
		h.logger.Debug("form input unavailable", "form", formID, "error", err)
		return h.fail(OpSubmit, formID, ErrEmptyInput, EmptyInputMessage)
	}

	value := strings.TrimSpace(input.Value())
	if value == "" {
		return h.fail(OpSubmit, formID, ErrEmptyInput, EmptyInputMessage)
	}

	addErr := h.add(OpSubmit, containerID, value)
	input.SetValue("")
	return addErr
}

// fail shows message and returns the matching OpError, joined with
// ErrNoErrorDisplay when the message could not be shown.
func (h *Helper) fail(op, id string, sentinel error, message string) error {
	opErr := &OpError{Op: op, ID: id, Message: message, Err: sentinel}
	if err := h.ShowError(message); err != nil {
		return errors.Join(opErr, err)
	}
	return opErr
}
