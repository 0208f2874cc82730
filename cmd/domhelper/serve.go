package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/vango-dev/domhelper/internal/preview"
)

const shutdownTimeout = 5 * time.Second

type serveOptions struct {
	fixture string
	host    string
	port    int
	anyOrig bool
}

func serveCmd(flags *globalFlags) *cobra.Command {
	opts := serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve <fixture.html>",
		Short: "Serve a fixture and drive it over HTTP",
		Long: `Serve a fixture and apply operations to it over HTTP.

Routes:
  GET  /         current document
  POST /ops      run the steps in form field "step"
  GET  /live     websocket stream of the document and its patches
  GET  /metrics  Prometheus metrics

Examples:
  domhelper serve page.html
  domhelper serve page.html --port 8080
  curl --data-urlencode 'step=add list "hello world"' localhost:3000/ops`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.fixture = args[0]
			return runServe(flags, opts)
		},
	}

	cmd.Flags().StringVar(&opts.host, "host", "", "Host to bind to (overrides config)")
	cmd.Flags().IntVarP(&opts.port, "port", "p", 0, "Port to listen on (overrides config)")
	cmd.Flags().BoolVar(&opts.anyOrig, "any-origin", false, "Accept /live connections from any origin")

	return cmd
}

func runServe(flags *globalFlags, opts serveOptions) error {
	cfg, err := flags.loadConfig()
	if err != nil {
		return err
	}

	// Flags override config
	if opts.host != "" {
		cfg.Preview.Host = opts.host
	}
	if opts.port != 0 {
		cfg.Preview.Port = opts.port
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := cfg.Logger(os.Stderr)

	doc, err := loadFixture(opts.fixture)
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	previewOpts := preview.Options{
		Helper:   cfg.Helper(),
		Logger:   logger,
		Registry: registry,
	}
	if opts.anyOrig {
		previewOpts.CheckOrigin = func(*http.Request) bool { return true }
	}
	srv := preview.New(doc, previewOpts)
	defer srv.Close()

	httpServer := &http.Server{
		Addr:              cfg.PreviewAddress(),
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	success("Serving %s", opts.fixture)
	info("http://%s", cfg.PreviewAddress())
	logger.Info("preview listening", "address", cfg.PreviewAddress(), "fixture", opts.fixture)

	select {
	case err := <-errCh:
		if err != http.ErrServerClosed {
			return err
		}
		return nil
	case <-shutdown:
		fmt.Println()
		info("Shutting down...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	srv.Close()
	return httpServer.Shutdown(ctx)
}
