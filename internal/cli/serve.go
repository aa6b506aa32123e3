package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/binheat/pkg/errors"
	"github.com/matzehuels/binheat/pkg/observability"
	"github.com/matzehuels/binheat/pkg/pipeline"
)

const (
	defaultAddr        = ":8080"
	defaultMaxBody     = 10 << 20
	defaultServeFormat = pipeline.FormatSVG
	shutdownTimeout    = 5 * time.Second
	requestIDHeader    = "X-Request-ID"
)

// serveCommand creates the serve command for the HTTP rendering service.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr       string
		font       string
		maxBody    int64
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve relation rendering over HTTP",
		Long: `Serve relation rendering over HTTP.

POST /render accepts either a JSON document

  {"relation": "a\tx\n", "row_labels": ["a"], "format": "svg"}

or the raw relation as text/plain, with options as query parameters
(transpose, multiline, sort, format, font_size). The response body is
the rendered artifact. GET /healthz reports liveness.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("addr") && cfg.Serve.Addr != "" {
				addr = cfg.Serve.Addr
			}
			base := serveDefaults(cfg)
			if cmd.Flags().Changed("font") {
				base.FontFile = font
			}
			if err := base.ValidateAndSetDefaults(); err != nil {
				return err
			}

			srv := newServer(loggerFromContext(cmd.Context()), base, maxBody)
			return srv.listenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	cmd.Flags().StringVarP(&font, "font", "F", "", "typeset labels in a TrueType font `TTF_FILE`")
	cmd.Flags().Int64Var(&maxBody, "max-body", defaultMaxBody, "maximum request body size in bytes")
	cmd.Flags().StringVar(&configPath, "config", "", "config file (default: ~/.config/binheat/config.toml)")
	registerCompletions(cmd)

	return cmd
}

// serveDefaults builds the per-request base options from the config file.
func serveDefaults(cfg Config) pipeline.Options {
	opts := pipeline.Options{
		Sort:        true,
		FontFile:    cfg.Font,
		FontSize:    cfg.FontSize,
		Multiline:   cfg.Multiline,
		Format:      cfg.Format,
		Scale:       cfg.Scale,
		ColumnColor: cfg.Colors.ColumnBand,
		RowColor:    cfg.Colors.RowBand,
	}
	if cfg.Sort != nil {
		opts.Sort = *cfg.Sort
	}
	if opts.Format == "" {
		opts.Format = defaultServeFormat
	}
	return opts
}

// =============================================================================
// Server
// =============================================================================

// server renders one relation per request. Each request builds its own
// index, so handlers share nothing mutable.
type server struct {
	logger  *log.Logger
	runner  *pipeline.Runner
	base    pipeline.Options
	maxBody int64
}

func newServer(logger *log.Logger, base pipeline.Options, maxBody int64) *server {
	if maxBody <= 0 {
		maxBody = defaultMaxBody
	}
	return &server{
		logger:  logger,
		runner:  pipeline.NewRunner(logger),
		base:    base,
		maxBody: maxBody,
	}
}

// routes builds the HTTP handler.
func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestID)
	r.Use(s.observe)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = io.WriteString(w, "ok\n")
	})
	r.Post("/render", s.handleRender)

	return r
}

// listenAndServe serves until ctx is canceled, then shuts down gracefully.
func (s *server) listenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.serve(ctx, ln)
}

func (s *server) serve(ctx context.Context, ln net.Listener) error {
	httpSrv := &http.Server{
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.Serve(ln) }()

	printInfo("Listening on %s", StyleHighlight.Render(ln.Addr().String()))
	s.logger.Info("server started", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// =============================================================================
// Middleware
// =============================================================================

// requestID tags every request with a fresh ID, echoed in X-Request-ID and
// attached to the request's logger.
func (s *server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set(requestIDHeader, id)
		ctx := withLogger(r.Context(), s.logger.With("request_id", id))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// observe reports requests and responses to the HTTP hooks.
func (s *server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		dur := time.Since(start)
		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, status, dur)
		loggerFromContext(r.Context()).Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"duration", dur)
	})
}

// =============================================================================
// Handlers
// =============================================================================

// renderRequest is the JSON body of POST /render. Absent fields take the
// server defaults; a present but empty label list fixes an empty axis.
type renderRequest struct {
	Relation     string   `json:"relation"`
	RowLabels    []string `json:"row_labels,omitempty"`
	ColumnLabels []string `json:"column_labels,omitempty"`
	Transpose    bool     `json:"transpose,omitempty"`
	Multiline    *bool    `json:"multiline,omitempty"`
	Sort         *bool    `json:"sort,omitempty"`
	Format       string   `json:"format,omitempty"`
	FontSize     float64  `json:"font_size,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func (s *server) handleRender(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r.Context())
	body := http.MaxBytesReader(w, r.Body, s.maxBody)

	req, err := decodeRenderRequest(r, body)
	if err != nil {
		writeError(w, err)
		return
	}

	opts := s.base
	opts.Logger = logger
	opts.Transpose = req.Transpose
	if req.Multiline != nil {
		opts.Multiline = *req.Multiline
	}
	if req.Sort != nil {
		opts.Sort = *req.Sort
	}
	if req.Format != "" {
		opts.Format = req.Format
	}
	if req.FontSize != 0 {
		opts.FontSize = req.FontSize
	}

	src := pipeline.Sources{
		Input:           strings.NewReader(req.Relation),
		RowLabelList:    req.RowLabels,
		ColumnLabelList: req.ColumnLabels,
	}

	result, err := s.runner.Execute(r.Context(), src, opts)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", pipeline.ContentType(result.Format))
	w.Header().Set("Content-Length", strconv.Itoa(len(result.Artifact)))
	if result.Stats.Dropped > 0 {
		w.Header().Set("X-Dropped-Pairs", strconv.Itoa(result.Stats.Dropped))
	}
	if _, err := w.Write(result.Artifact); err != nil {
		logger.Warn("write response", "err", err)
	}
}

// decodeRenderRequest reads a JSON body, or a raw relation with options in
// the query string.
func decodeRenderRequest(r *http.Request, body io.Reader) (renderRequest, error) {
	var req renderRequest

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		dec := json.NewDecoder(body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			return req, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request")
		}
		return req, nil
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return req, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request")
	}
	req.Relation = string(data)

	q := r.URL.Query()
	if req.Transpose, err = queryBool(q.Get("transpose")); err != nil {
		return req, err
	}
	for name, dst := range map[string]**bool{"multiline": &req.Multiline, "sort": &req.Sort} {
		if v := q.Get(name); v != "" {
			b, err := queryBool(v)
			if err != nil {
				return req, err
			}
			*dst = &b
		}
	}
	req.Format = q.Get("format")
	if v := q.Get("font_size"); v != "" {
		if req.FontSize, err = strconv.ParseFloat(v, 64); err != nil {
			return req, errors.Wrap(errors.ErrCodeInvalidInput, err, "font_size %q", v)
		}
	}
	return req, nil
}

func queryBool(v string) (bool, error) {
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid boolean %q", v)
	}
	return b, nil
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidState, errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidConfig, errors.ErrCodeInvalidPath:
		status = http.StatusBadRequest
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{
		Error: errors.UserMessage(err),
		Code:  string(errors.GetCode(err)),
	})
}
