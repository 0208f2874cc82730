package preview

import (
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/domhelper/internal/errors"
	"github.com/vango-dev/domhelper/internal/script"
	"github.com/vango-dev/domhelper/pkg/dom"
	"github.com/vango-dev/domhelper/pkg/dom/htmldoc"
	"github.com/vango-dev/domhelper/pkg/domhelper"
)

// TracerName is the OpenTelemetry instrumentation name.
const TracerName = "github.com/vango-dev/domhelper/internal/preview"

// Options configures a Server.
type Options struct {
	// Helper holds the page conventions.
	Helper domhelper.Config

	// Logger defaults to slog.Default().
	Logger *slog.Logger

	// Registry receives the helper metrics and backs /metrics.
	// Default: a new private registry.
	Registry *prometheus.Registry

	// CheckOrigin is passed to the websocket upgrader.
	// Default: same-origin only.
	CheckOrigin func(r *http.Request) bool
}

// Server serves one document.
type Server struct {
	mu     sync.Mutex
	doc    *htmldoc.Document
	helper *domhelper.Helper
	runner *script.Runner
	rec    dom.Recorder
	seq    uint64

	hub      *hub
	upgrader websocket.Upgrader
	registry *prometheus.Registry
	tracer   trace.Tracer
	logger   *slog.Logger
}

// New returns a Server for doc. The server takes ownership of doc's patch
// reporting.
func New(doc *htmldoc.Document, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}
	logger := opts.Logger.With("component", "preview")

	s := &Server{
		doc:      doc,
		registry: opts.Registry,
		tracer:   otel.Tracer(TracerName),
		logger:   logger,
		hub:      newHub(logger),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     opts.CheckOrigin,
		},
	}
	s.helper = domhelper.New(doc,
		domhelper.WithConfig(opts.Helper),
		domhelper.WithLogger(logger),
		domhelper.WithMetrics(domhelper.NewMetrics(domhelper.MetricsConfig{Registry: opts.Registry})),
	)
	s.runner = script.NewRunner(s.helper, logger)
	doc.OnPatch(s.rec.Record)
	return s
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleDocument)
	r.Post("/ops", s.handleOps)
	r.Get("/live", s.handleLive)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	return r
}

// Close disconnects all live clients.
func (s *Server) Close() {
	s.hub.closeAll()
}

func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	page := s.doc.String()
	s.mu.Unlock()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(page))
}

// StepResult is the outcome of one step in an /ops response.
type StepResult struct {
	Step  string `json:"step"`
	Code  string `json:"code,omitempty"`
	Error string `json:"error,omitempty"`
}

// OpsResponse is the body returned by POST /ops.
type OpsResponse struct {
	Results []StepResult `json:"results"`
	Patches []dom.Patch  `json:"patches"`
}

func (s *Server) handleOps(w http.ResponseWriter, r *http.Request) {
	tokens, err := script.Tokenize(r.FormValue("step"))
	if err == nil && len(tokens) == 0 {
		err = errors.Newf(errors.CategoryScript, "form field %q is required", "step")
	}
	var steps []script.Step
	if err == nil {
		steps, err = script.Parse(tokens)
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	resp := s.apply(r, steps)
	writeJSON(w, http.StatusOK, resp)
}

// apply runs steps as one event and broadcasts the resulting patches to the
// clients connected when the event finished.
func (s *Server) apply(r *http.Request, steps []script.Step) OpsResponse {
	s.mu.Lock()
	resp, msg, clients := s.applyLocked(r, steps)
	s.mu.Unlock()

	s.hub.broadcast(clients, msg)
	return resp
}

func (s *Server) applyLocked(r *http.Request, steps []script.Step) (OpsResponse, liveMessage, []*client) {
	resp := OpsResponse{Results: make([]StepResult, 0, len(steps))}
	for _, step := range steps {
		_, span := s.tracer.Start(r.Context(), "domhelper."+step.Op,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("domhelper.op", step.Op),
				attribute.String("domhelper.step", step.String()),
			),
		)

		res := StepResult{Step: step.String()}
		if err := s.runner.Exec(step); err != nil {
			res.Error = err.Error()
			if de := errors.FromOpError(err); de != nil {
				res.Code = de.Code
			}
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.SetAttributes(attribute.Int("domhelper.patch_count", len(s.rec.Patches())))
		span.End()

		resp.Results = append(resp.Results, res)
	}

	resp.Patches = s.rec.Drain()
	if resp.Patches == nil {
		resp.Patches = []dom.Patch{}
	}
	s.seq++
	return resp, liveMessage{Seq: s.seq, Patches: resp.Patches}, s.hub.snapshot()
}

func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		s.logger.Debug("websocket upgrade failed", "error", err)
		return
	}
	c := &client{conn: conn}

	// Snapshot and registration happen under the document lock so no patch
	// falls between them.
	s.mu.Lock()
	err = c.send(liveMessage{Seq: s.seq, HTML: s.doc.String()})
	if err == nil {
		s.hub.add(c)
	}
	s.mu.Unlock()
	if err != nil {
		s.logger.Debug("live snapshot failed", "error", err)
		conn.Close()
		return
	}

	// Drain client frames until it goes away; the stream is one-way.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	s.hub.remove(c)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	var de *errors.DomError
	if !stderrors.As(err, &de) {
		de = errors.Newf(errors.CategoryCLI, "%s", err.Error())
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(de.FormatJSON() + "\n"))
}
