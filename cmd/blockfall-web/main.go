package main

import (
	"bufio"
	"errors"
	"flag"
	"html/template"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	httpadapter "svw.info/blockfall/internal/adapters/http"
	"svw.info/blockfall/internal/config"
	"svw.info/blockfall/internal/generator"
	"svw.info/blockfall/internal/hint"
	"svw.info/blockfall/internal/infrastructure/storage"
	"svw.info/blockfall/internal/infrastructure/tracelog"
	"svw.info/blockfall/internal/solver"
	"svw.info/blockfall/internal/usecase"
	"svw.info/blockfall/internal/validator"
	"svw.info/blockfall/web"
)

// statusWriter captures HTTP status and bytes written.
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// Hijack lets the websocket upgrade through the logger.
func (w *statusWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("hijack not supported")
	}
	w.status = http.StatusSwitchingProtocols
	return hj.Hijack()
}

// requestLogger logs method, path, status, bytes, and duration in a human-readable format.
func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r)
		dur := time.Since(start)
		logger.Info("http",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"bytes", sw.bytes,
			"dur", dur.Round(time.Millisecond),
			"req_id", middleware.GetReqID(r.Context()),
		)
	})
}

func main() {
	cfgPath := flag.String("config", "", "YAML config file")
	addr := flag.String("addr", "", "listen address (overrides config)")
	scenarioDir := flag.String("scenario-dir", "", "scenario directory (overrides config)")
	traceDir := flag.String("trace-dir", "", "turn trace directory (overrides config)")
	levelStr := flag.String("log-level", "", "debug|info|warn|error (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		slog.Error("config", "err", err)
		os.Exit(2)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *scenarioDir != "" {
		cfg.Server.ScenarioDir = *scenarioDir
	}
	if *traceDir != "" {
		cfg.Server.TraceDir = *traceDir
	}
	if *levelStr != "" {
		cfg.LogLevel = *levelStr
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		slog.Error("config", "err", err)
		os.Exit(2)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Level()}))
	slog.SetDefault(logger)
	_ = os.MkdirAll(cfg.Server.ScenarioDir, 0o755)

	// Wire providers → use cases → HTTP adapter
	greedy := solver.NewGreedySolver()
	uc := usecase.NewService(
		greedy,
		solver.NewBacktrackingSolver(),
		generator.NewBatchGenerator(),
		validator.New(),
		hint.NewGreedy(greedy),
		storage.NewFS(cfg.Server.ScenarioDir),
	)
	uc.Logger = logger
	uc.MaxMoves = cfg.Search.MaxMoves
	if cfg.Server.TraceDir != "" {
		tw := tracelog.New(cfg.Server.TraceDir, "turns")
		defer tw.Close()
		uc.Tracer = tw
	}
	h := httpadapter.New(uc)
	h.Log = logger

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(web.StaticFS())))
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := web.RenderIndex(w, web.Page{Dimension: cfg.Dimension, Target: cfg.Target()}); err != nil {
			http.Error(w, template.HTMLEscapeString(err.Error()), http.StatusInternalServerError)
		}
	})
	h.Register(r)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           requestLogger(logger, r),
		ReadHeaderTimeout: 5 * time.Second,
	}
	logger.Info("listening", "addr", cfg.Server.Addr, "scenarios", cfg.Server.ScenarioDir, "trace", cfg.Server.TraceDir)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", "err", err)
		os.Exit(1)
	}
}
