package script

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/vango-dev/domhelper/internal/errors"
)

// Op names.
const (
	OpAdd    = "add"
	OpClick  = "click"
	OpRemove = "remove"
	OpSubmit = "submit"
	OpError  = "error"
	OpValue  = "value"
	OpCreate = "create"
)

type opSpec struct {
	arity int
	usage string
	// attrs allows trailing key=value arguments.
	attrs bool
}

var ops = map[string]opSpec{
	OpAdd:    {arity: 2, usage: "add <container> <text>"},
	OpClick:  {arity: 2, usage: "click <container> <text>"},
	OpRemove: {arity: 1, usage: "remove <id>"},
	OpSubmit: {arity: 2, usage: "submit <form> <container>"},
	OpError:  {arity: 1, usage: "error <message>"},
	OpValue:  {arity: 2, usage: "value <id> <text>"},
	OpCreate: {arity: 3, usage: "create <container> <tag> <text> [name=value...]", attrs: true},
}

// Step is one operation with its arguments.
type Step struct {
	Op    string
	Args  []string
	Attrs map[string]string
	// Line is the 1-based script line, or 0 for command-line steps.
	Line int
}

// String renders the step back into script syntax.
func (s Step) String() string {
	parts := []string{s.Op}
	for _, a := range s.Args {
		parts = append(parts, quote(a))
	}
	keys := make([]string, 0, len(s.Attrs))
	for k := range s.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts = append(parts, quote(k+"="+s.Attrs[k]))
	}
	return strings.Join(parts, " ")
}

// Ops returns the usage line of every operation, sorted.
func Ops() []string {
	out := make([]string, 0, len(ops))
	for _, spec := range ops {
		out = append(out, spec.usage)
	}
	sort.Strings(out)
	return out
}

// Parse groups already-split arguments into steps.
func Parse(args []string) ([]Step, error) {
	var steps []Step
	for i := 0; i < len(args); {
		step, n, err := parseStep(args[i:])
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)
		i += n
	}
	return steps, nil
}

// ParseScript reads one step per line. name is used in error locations.
func ParseScript(r io.Reader, name string) ([]Step, error) {
	var steps []Step
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		tokens, err := Tokenize(text)
		if err != nil {
			return nil, locate(err, name, line)
		}
		step, n, err := parseStep(tokens)
		if err != nil {
			return nil, locate(err, name, line)
		}
		if n != len(tokens) {
			return nil, errors.New("D031").
				WithDetail(fmt.Sprintf("%s takes %d arguments, got %d", step.Op, ops[step.Op].arity, len(tokens)-1)).
				WithSuggestion("Usage: " + ops[step.Op].usage).
				WithLocation(name, line, 1)
		}
		step.Line = line
		steps = append(steps, step)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.New("D033").WithDetail("Failed to read " + name).Wrap(err)
	}
	return steps, nil
}

// parseStep reads one step from the front of tokens and reports how many
// tokens it consumed.
func parseStep(tokens []string) (Step, int, error) {
	name := tokens[0]
	spec, ok := ops[name]
	if !ok {
		return Step{}, 0, errors.New("D030").
			WithDetail(fmt.Sprintf("%q is not an operation", name)).
			WithSuggestion("Known operations: " + strings.Join(Ops(), ", "))
	}
	if len(tokens)-1 < spec.arity {
		return Step{}, 0, errors.New("D031").
			WithDetail(fmt.Sprintf("%s takes %d arguments, got %d", name, spec.arity, len(tokens)-1)).
			WithSuggestion("Usage: " + spec.usage)
	}

	step := Step{Op: name, Args: append([]string(nil), tokens[1:1+spec.arity]...)}
	n := 1 + spec.arity
	if spec.attrs {
		for ; n < len(tokens); n++ {
			k, v, ok := strings.Cut(tokens[n], "=")
			if !ok || k == "" {
				break
			}
			if step.Attrs == nil {
				step.Attrs = make(map[string]string)
			}
			step.Attrs[k] = v
		}
	}
	return step, n, nil
}

// Tokenize splits a line on whitespace. Double quotes group words and
// backslash escapes a quote or backslash inside them.
func Tokenize(line string) ([]string, error) {
	var (
		tokens  []string
		current strings.Builder
		inQuote bool
		started bool
	)

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case inQuote && c == '\\' && i+1 < len(line) && (line[i+1] == '"' || line[i+1] == '\\'):
			i++
			current.WriteByte(line[i])
		case c == '"':
			inQuote = !inQuote
			started = true
		case !inQuote && (c == ' ' || c == '\t'):
			if started {
				tokens = append(tokens, current.String())
				current.Reset()
				started = false
			}
		default:
			current.WriteByte(c)
			started = true
		}
	}

	if inQuote {
		return nil, errors.New("D032").WithSuggestion(`Close the argument with "`)
	}
	if started {
		tokens = append(tokens, current.String())
	}
	return tokens, nil
}

func quote(s string) string {
	if s != "" && !strings.ContainsAny(s, " \t\"\\") {
		return s
	}
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return `"` + r.Replace(s) + `"`
}

func locate(err error, name string, line int) error {
	if de, ok := err.(*errors.DomError); ok {
		return de.WithLocation(name, line, 1)
	}
	return err
}
