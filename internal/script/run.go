package script

import (
	"fmt"
	"log/slog"

	"github.com/vango-dev/domhelper/pkg/dom"
	"github.com/vango-dev/domhelper/pkg/domhelper"
)

// Result is the outcome of one step.
type Result struct {
	Step Step
	Err  error
}

// Runner executes steps against a Helper.
type Runner struct {
	helper *domhelper.Helper
	logger *slog.Logger
}

// NewRunner returns a Runner for h. A nil logger uses slog.Default().
func NewRunner(h *domhelper.Helper, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{helper: h, logger: logger}
}

// Run executes steps in order and returns one Result per step.
func (r *Runner) Run(steps []Step) []Result {
	results := make([]Result, 0, len(steps))
	for _, step := range steps {
		err := r.Exec(step)
		if err != nil {
			r.logger.Info("step failed", "step", step.String(), "line", step.Line, "error", err)
		} else {
			r.logger.Debug("step done", "step", step.String(), "line", step.Line)
		}
		results = append(results, Result{Step: step, Err: err})
	}
	return results
}

// Exec executes a single step.
func (r *Runner) Exec(step Step) error {
	spec, ok := ops[step.Op]
	if !ok {
		return fmt.Errorf("script: unknown operation %q", step.Op)
	}
	if len(step.Args) < spec.arity {
		return fmt.Errorf("script: %s needs %d arguments, got %d", step.Op, spec.arity, len(step.Args))
	}

	h := r.helper
	a := step.Args
	switch step.Op {
	case OpAdd:
		return h.AddElementToDOM(a[0], a[1])
	case OpClick:
		return h.SimulateClick(a[0], a[1])
	case OpRemove:
		return h.RemoveElementFromDOM(a[0])
	case OpSubmit:
		return h.HandleFormSubmit(a[0], a[1])
	case OpError:
		return h.ShowError(a[0])
	case OpValue:
		el, err := dom.Find(h.Document(), a[0])
		if err != nil {
			return err
		}
		// A form id stands for the input HandleFormSubmit would read.
		if tag := h.Config().InputTag; el.TagName() != tag && el.TagName() != "textarea" {
			if el, err = dom.FindFirst(el, tag); err != nil {
				return err
			}
		}
		el.SetValue(a[1])
		return nil
	case OpCreate:
		container, err := dom.Find(h.Document(), a[0])
		if err != nil {
			return err
		}
		return container.AppendChild(h.CreateElement(a[1], step.Attrs, a[2]))
	}
	return nil
}

// Failed returns the results that carry an error.
func Failed(results []Result) []Result {
	var out []Result
	for _, res := range results {
		if res.Err != nil {
			out = append(out, res)
		}
	}
	return out
}
