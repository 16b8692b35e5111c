package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/specialistvlad/bbdeps/internal/ctxlog"
	"github.com/specialistvlad/bbdeps/internal/trigger"
)

const shutdownTimeout = 5 * time.Second

// Handler returns the read-only query API over the finalized graphs.
func (a *App) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", a.healthHandler)
	mux.HandleFunc("GET /platforms", a.platformsHandler)
	mux.HandleFunc("GET /platforms/{platform}/depends/{builder}", a.dependsHandler)
	mux.HandleFunc("GET /platforms/{platform}/rdepends/{builder}", a.reverseDependsHandler)
	mux.HandleFunc("GET /platforms/{platform}/order", a.orderHandler)
	mux.HandleFunc("GET /platforms/{platform}/trigger", a.triggerHandler)
	mux.HandleFunc("GET /platforms/{platform}/downstream", a.downstreamHandler)
	return mux
}

// serve runs the query server until ctx is cancelled, then shuts it down.
func (a *App) serve(ctx context.Context, port int) error {
	logger := ctxlog.FromContext(ctx)

	addr := fmt.Sprintf(":%d", port)
	a.httpServer = &http.Server{
		Addr:              addr,
		Handler:           a.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Query server starting.", "address", fmt.Sprintf("http://localhost%s", addr))
		// ListenAndServe returns ErrServerClosed on graceful shutdown.
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down query server...")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Query server shutdown failed.", "error", err)
		return err
	}
	logger.Debug("Query server shut down gracefully.")
	return nil
}

func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	a.logger.Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

func (a *App) platformsHandler(w http.ResponseWriter, _ *http.Request) {
	a.writeJSON(w, http.StatusOK, a.Platforms())
}

func (a *App) dependsHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := a.lookupPlatform(w, r)
	if !ok {
		return
	}
	builder := r.PathValue("builder")
	deps, ok := p.graph.Depends(builder)
	if !ok {
		a.writeError(w, http.StatusNotFound, fmt.Sprintf("builder %q is not a known target", builder))
		return
	}
	a.writeJSON(w, http.StatusOK, deps)
}

func (a *App) reverseDependsHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := a.lookupPlatform(w, r)
	if !ok {
		return
	}
	builder := r.PathValue("builder")
	rdeps, ok := p.graph.ReverseDepends(builder)
	if !ok {
		a.writeError(w, http.StatusNotFound, fmt.Sprintf("builder %q has no known dependents", builder))
		return
	}
	a.writeJSON(w, http.StatusOK, rdeps)
}

func (a *App) orderHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := a.lookupPlatform(w, r)
	if !ok {
		return
	}
	names, given := splitList(r.URL.Query().Get("names"))
	if !given {
		a.writeJSON(w, http.StatusOK, p.graph.BuildOrder())
		return
	}
	a.writeJSON(w, http.StatusOK, p.graph.InBuildOrder(names))
}

func (a *App) triggerHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := a.lookupPlatform(w, r)
	if !ok {
		return
	}
	names, _ := splitList(r.URL.Query().Get("names"))
	ctx := ctxlog.WithLogger(r.Context(), a.logger.With("platform", p.name))
	a.writeJSON(w, http.StatusOK, p.graph.InBuildOrderWithoutRepeats(ctx, names))
}

func (a *App) downstreamHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := a.lookupPlatform(w, r)
	if !ok {
		return
	}
	finished, _ := splitList(r.URL.Query().Get("finished"))
	ctx := ctxlog.WithLogger(r.Context(), a.logger.With("platform", p.name))
	a.writeJSON(w, http.StatusOK, trigger.Downstream(ctx, p.graph, finished...))
}

func (a *App) lookupPlatform(w http.ResponseWriter, r *http.Request) (*platformGraph, bool) {
	name := r.PathValue("platform")
	p, ok := a.platform(name)
	if !ok {
		a.writeError(w, http.StatusNotFound, fmt.Sprintf("unknown platform %q", name))
	}
	return p, ok
}

type errorBody struct {
	Error string `json:"error"`
}

func (a *App) writeError(w http.ResponseWriter, status int, msg string) {
	a.writeJSON(w, status, errorBody{Error: msg})
}

func (a *App) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		a.logger.Error("Failed to encode response.", "error", err)
	}
}

// splitList parses a comma separated query value. The boolean reports
// whether the parameter carried anything at all.
func splitList(raw string) ([]string, bool) {
	if strings.TrimSpace(raw) == "" {
		return []string{}, false
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out, true
}
