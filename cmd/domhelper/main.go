package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/domhelper/internal/config"
	"github.com/vango-dev/domhelper/internal/errors"
	"github.com/vango-dev/domhelper/pkg/dom/htmldoc"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	noColor    bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		errors.PrintError(err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "domhelper",
		Short: "Drive DOM helper operations against HTML fixtures",
		Long: `domhelper applies element helpers to an HTML document: add items to a
container, remove elements, submit forms and show inline errors.

Run a script against a fixture and print the result, or serve the
fixture and drive it over HTTP while watching the patches.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flags.noColor {
				errors.DisableColors()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Path to domhelper.json (default: ./domhelper.json if present)")
	rootCmd.PersistentFlags().BoolVar(&flags.noColor, "no-color", false, "Disable colored error output")

	rootCmd.AddCommand(
		applyCmd(flags),
		serveCmd(flags),
		opsCmd(),
		versionCmd(),
	)
	return rootCmd
}

func (f *globalFlags) loadConfig() (*config.Config, error) {
	if f.configPath != "" {
		return config.LoadFile(f.configPath)
	}
	return config.LoadFromWorkingDir()
}

// loadFixture parses an HTML file.
func loadFixture(path string) (*htmldoc.Document, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.New("D011").
			WithDetail("Cannot open " + path).
			Wrap(err)
	}
	defer file.Close()

	doc, err := htmldoc.Parse(file)
	if err != nil {
		return nil, errors.New("D010").
			WithDetail("Cannot parse " + path).
			Wrap(err)
	}
	return doc, nil
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}
