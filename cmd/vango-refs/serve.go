package main

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/vango-dev/vango-refs/internal/errors"
	"github.com/vango-dev/vango-refs/internal/fixture"
	"github.com/vango-dev/vango-refs/pkg/vango"
)

const shutdownTimeout = 5 * time.Second

func serveCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve [FIXTURE]",
		Short: "Serve the reference tables of a mounted fixture over HTTP",
		Long: `Mount the page of a fixture file and keep it mounted behind a small
HTTP API:

  GET    /refs              $refs tables of all mounted instances
  GET    /refs/{id}         $refs table of the instance with that id attribute
  GET    /refs/{id}/{name}  one reference of that instance
  DELETE /instances/{id}    unmount the instance with that id attribute
  GET    /metrics           Prometheus metrics
  GET    /healthz           liveness

Examples:
  vango-refs serve tree.yaml
  vango-refs serve tree.yaml --addr :7070`,
		Args: cobra.MaximumNArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			path, err := fixtureArg(a, args)
			if err != nil {
				return err
			}
			if addr == "" {
				addr = a.cfg.Serve.Addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			page, err := a.mount(ctx, path)
			if err != nil {
				return err
			}

			srv := &http.Server{
				Addr:              addr,
				Handler:           newHandler(a, page),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.ListenAndServe()
			}()
			success(a.stdout, "Serving %s on http://%s", page.Name(), addr)

			select {
			case err := <-errCh:
				if !stderrors.Is(err, http.ErrServerClosed) {
					return errors.New("R030").Wrap(err)
				}
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			page.Unmount(shutdownCtx)
			a.logger.Info("server stopped", "addr", addr)
			return srv.Shutdown(shutdownCtx)
		}),
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Address to listen on (default from config)")

	return cmd
}

// refsHandler serves one mounted page.
type refsHandler struct {
	a *app

	// mu serializes unmounts against report walks.
	mu   sync.RWMutex
	page *vango.Instance
}

func newHandler(a *app, page *vango.Instance) http.Handler {
	h := &refsHandler{a: a, page: page}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.Get("/refs", h.listRefs)
	r.Get("/refs/{id}", h.instanceRefs)
	r.Get("/refs/{id}/{name}", h.instanceRef)
	r.Delete("/instances/{id}", h.detach)
	r.Handle("/metrics", promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}))

	return r
}

func (h *refsHandler) listRefs(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	reports := fixture.Report(h.page)
	h.mu.RUnlock()
	writeJSON(w, http.StatusOK, reports)
}

func (h *refsHandler) instanceRefs(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	h.mu.RLock()
	inst := fixture.Find(h.page, id)
	var reports []fixture.InstanceReport
	if inst != nil {
		reports = fixture.Report(inst)
	}
	h.mu.RUnlock()

	if inst == nil {
		writeError(w, http.StatusNotFound, errors.New("R014").WithDetail("No mounted instance has id "+id+"."))
		return
	}
	writeJSON(w, http.StatusOK, reports[0])
}

func (h *refsHandler) instanceRef(w http.ResponseWriter, r *http.Request) {
	id, name := chi.URLParam(r, "id"), chi.URLParam(r, "name")

	h.mu.RLock()
	inst := fixture.Find(h.page, id)
	var (
		report fixture.RefReport
		err    error
	)
	if inst != nil {
		report, err = fixture.ReportRef(inst, name)
	}
	h.mu.RUnlock()

	switch {
	case inst == nil:
		writeError(w, http.StatusNotFound, errors.New("R014").WithDetail("No mounted instance has id "+id+"."))
	case err != nil:
		writeError(w, http.StatusNotFound, err)
	default:
		writeJSON(w, http.StatusOK, report)
	}
}

func (h *refsHandler) detach(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	h.mu.Lock()
	err := fixture.Detach(r.Context(), h.page, id)
	h.mu.Unlock()

	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	h.a.logger.Info("instance detached", "id", id, "request_id", middleware.GetReqID(r.Context()))
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(errors.FromError(err, "R030").FormatJSON()))
}
