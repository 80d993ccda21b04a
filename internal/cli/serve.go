package cli

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	fperrors "github.com/matzehuels/fareplan/pkg/errors"
)

const serveShutdownTimeout = 5 * time.Second

// newServeCmd creates the serve command exposing search results over HTTP.
func newServeCmd() *cobra.Command {
	var (
		opts searchOpts
		addr string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve search results over HTTP",
		Long: `Start a small HTTP API over the configured search.

Endpoints:
  GET /healthz           liveness check
  GET /api/summary       the window × inclusion summary matrix
  GET /api/itineraries   the ranked list; supports ?window=, ?optionals=with|without, ?top=

Searches run per request and go through the result cache, so repeated
queries with the same inputs are cheap.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), addr, opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVar(&addr, "addr", "localhost:8080", "listen address")

	return cmd
}

func runServe(ctx context.Context, addr string, opts searchOpts) error {
	logger := loggerFromContext(ctx)

	// Fail fast on broken inputs before binding the port.
	if _, err := runSearch(ctx, opts); err != nil {
		return err
	}

	srv := &server{opts: opts, logger: logger}

	r := chi.NewRouter()
	r.Use(srv.requestID)
	r.Get("/healthz", srv.handleHealth)
	r.Get("/api/summary", srv.handleSummary)
	r.Get("/api/itineraries", srv.handleItineraries)

	httpSrv := &http.Server{Addr: addr, Handler: r}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), serveShutdownTimeout)
		defer cancel()
		logger.Info("shutting down")
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	}
}

// server holds the request handlers' shared state.
type server struct {
	opts   searchOpts
	logger *log.Logger
}

// requestID tags every request with a fresh ID for log correlation.
func (s *server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-ID", id)

		start := time.Now()
		logger := s.logger.With("request_id", id)
		ctx := withLogger(r.Context(), logger)
		next.ServeHTTP(w, r.WithContext(ctx))

		logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"elapsed", time.Since(start).Round(time.Millisecond))
	})
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleSummary(w http.ResponseWriter, r *http.Request) {
	run, err := runSearch(r.Context(), s.opts)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"windows": run.results.Windows,
		"summary": run.results.Summary,
	})
}

func (s *server) handleItineraries(w http.ResponseWriter, r *http.Request) {
	opts := s.opts
	q := r.URL.Query()

	if window := q.Get("window"); window != "" {
		opts.window = window
	}
	switch q.Get("optionals") {
	case "with":
		opts.withOpt, opts.withoutOpt = true, false
	case "without":
		opts.withOpt, opts.withoutOpt = false, true
	case "":
	default:
		respondJSON(w, http.StatusBadRequest, map[string]string{
			"error": "optionals must be 'with' or 'without'",
		})
		return
	}
	if top := q.Get("top"); top != "" {
		n, err := strconv.Atoi(top)
		if err != nil || n <= 0 {
			respondJSON(w, http.StatusBadRequest, map[string]string{
				"error": "top must be a positive integer",
			})
			return
		}
		opts.topN = n
	}

	run, err := runSearch(r.Context(), opts)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"searched":    run.results.Searched,
		"itineraries": run.results.Ranked,
	})
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch fperrors.GetCode(err) {
	case fperrors.ErrCodeInvalidInput, fperrors.ErrCodeInvalidWindow,
		fperrors.ErrCodeInvalidConfig, fperrors.ErrCodeInvalidCity:
		status = http.StatusBadRequest
	case fperrors.ErrCodeNotFound, fperrors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	}
	respondJSON(w, status, map[string]string{"error": err.Error()})
}
