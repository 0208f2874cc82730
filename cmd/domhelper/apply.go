package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/domhelper/internal/errors"
	"github.com/vango-dev/domhelper/internal/script"
	"github.com/vango-dev/domhelper/pkg/dom"
	"github.com/vango-dev/domhelper/pkg/domhelper"
)

type applyOptions struct {
	fixture    string
	scriptPath string
	steps      []string
	patches    bool
	bodyOnly   bool
	strict     bool
}

func applyCmd(flags *globalFlags) *cobra.Command {
	opts := applyOptions{}

	cmd := &cobra.Command{
		Use:   "apply <fixture.html> [steps...]",
		Short: "Run operations against a fixture and print the result",
		Long: `Parse an HTML fixture, run the given steps in order and print the
resulting document.

Steps are given as arguments, or one per line with --script.
Run 'domhelper ops' for the list of operations.

Examples:
  domhelper apply page.html add list "hello world"
  domhelper apply page.html value new-item "  milk  " submit new-item list
  domhelper apply page.html --script steps.txt --patches`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.fixture = args[0]
			opts.steps = args[1:]
			return runApply(flags, opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVarP(&opts.scriptPath, "script", "s", "", "Read steps from a file, one per line (- for stdin)")
	cmd.Flags().BoolVarP(&opts.patches, "patches", "p", false, "Print the patch log as JSON lines after the document")
	cmd.Flags().BoolVarP(&opts.bodyOnly, "body", "b", false, "Print only the contents of <body>")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Exit with an error if any step fails")

	return cmd
}

func runApply(flags *globalFlags, opts applyOptions, out, errOut io.Writer) error {
	cfg, err := flags.loadConfig()
	if err != nil {
		return err
	}
	logger := cfg.Logger(errOut)

	doc, err := loadFixture(opts.fixture)
	if err != nil {
		return err
	}

	steps, err := script.Parse(opts.steps)
	if err != nil {
		return err
	}
	if opts.scriptPath != "" {
		more, err := readScript(opts.scriptPath)
		if err != nil {
			return err
		}
		steps = append(steps, more...)
	}

	rec := &dom.Recorder{}
	doc.OnPatch(rec.Record)

	h := domhelper.New(doc, domhelper.WithConfig(cfg.Helper()), domhelper.WithLogger(logger))
	results := script.NewRunner(h, logger).Run(steps)

	if opts.bodyOnly {
		fmt.Fprintln(out, doc.BodyHTML())
	} else {
		if err := doc.Render(out); err != nil {
			return errors.New("D012").WithDetail("Cannot render " + opts.fixture).Wrap(err)
		}
		fmt.Fprintln(out)
	}

	if opts.patches {
		enc := json.NewEncoder(out)
		enc.SetEscapeHTML(false)
		for _, p := range rec.Patches() {
			if err := enc.Encode(p); err != nil {
				return err
			}
		}
	}

	failed := script.Failed(results)
	for _, res := range failed {
		de := errors.FromError(res.Err, "D002")
		if res.Step.Line > 0 && opts.scriptPath != "" && opts.scriptPath != "-" {
			de.Location = &errors.Location{File: opts.scriptPath, Line: res.Step.Line}
		}
		fmt.Fprintf(errOut, "%s  (%s)\n", de.FormatCompact(), res.Step)
	}
	if opts.strict && len(failed) > 0 {
		return errors.Newf(errors.CategoryCLI, "%d of %d steps failed", len(failed), len(results))
	}
	return nil
}

func readScript(path string) ([]script.Step, error) {
	if path == "-" {
		return script.ParseScript(os.Stdin, "<stdin>")
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.New("D011").
			WithDetail("Cannot open script " + path).
			Wrap(err)
	}
	defer file.Close()
	return script.ParseScript(file, path)
}
