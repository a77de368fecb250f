package plot

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/raykavin/fvgview"
	"github.com/raykavin/fvgview/pkg/logger"
	"github.com/raykavin/fvgview/pkg/store"
)

// Static assets embedded in the binary
var (
	//go:embed assets
	staticFiles embed.FS
)

// PageSource computes event pages, usually a *fvgview.Viewer
type PageSource interface {
	Page(id string) (*fvgview.Page, error)
	Events(filters ...store.EntryFilter) ([]store.Entry, error)
}

// Server serves the event viewer page and the chart descriptions it renders
type Server struct {
	port          int
	debug         bool
	source        PageSource
	scriptContent string
	indexHTML     *template.Template
	startedAt     time.Time
	log           logger.Logger
}

// Option defines a function type for configuring a Server instance
type Option func(*Server)

// WithPort sets the HTTP server port
func WithPort(port int) Option {
	return func(s *Server) {
		s.port = port
	}
}

// WithDebug enables debug mode (disables minification)
func WithDebug() Option {
	return func(s *Server) {
		s.debug = true
	}
}

// NewServer creates a new viewer server with the provided options
func NewServer(source PageSource, log logger.Logger, options ...Option) (*Server, error) {
	server := &Server{
		port:      8080,
		source:    source,
		log:       log,
		startedAt: time.Now(),
	}

	for _, option := range options {
		option(server)
	}

	var err error
	server.indexHTML, err = template.ParseFS(staticFiles, "assets/chart.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse chart template: %w", err)
	}

	chartJS, err := staticFiles.ReadFile("assets/chart.js")
	if err != nil {
		return nil, fmt.Errorf("failed to read chart.js: %w", err)
	}

	transpileChartJS := api.Transform(string(chartJS), api.TransformOptions{
		Loader:            api.LoaderJS,
		Target:            api.ES2015,
		MinifySyntax:      !server.debug,
		MinifyIdentifiers: !server.debug,
		MinifyWhitespace:  !server.debug,
	})

	if len(transpileChartJS.Errors) > 0 {
		return nil, fmt.Errorf("chart script failed with: %v", transpileChartJS.Errors)
	}

	server.scriptContent = string(transpileChartJS.Code)

	return server, nil
}

// Handler returns the routes of the viewer
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/assets/chart.js", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/javascript")
		fmt.Fprint(w, s.scriptContent)
	})
	mux.Handle("/assets/", http.FileServer(http.FS(staticFiles)))

	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/events", s.handleEvents)
	mux.HandleFunc("/data", s.handleData)
	mux.HandleFunc("/trades", s.handleTrades)
	mux.HandleFunc("/", s.handleIndex)

	return s.withRequestID(mux)
}

// Start runs the HTTP server until it fails
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.log.Infof("Viewer available at http://localhost:%d", s.port)

	server := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return server.ListenAndServe()
}
