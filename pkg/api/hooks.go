package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/flowpack/pkg/observability"
)

// hooks reports every request to the registered HTTP hooks, labelled with
// the matched route pattern rather than the raw path.
func hooks(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := observability.HTTP()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		h.OnRequest(r.Context(), r.Method, route)
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		h.OnResponse(r.Context(), r.Method, route, status, time.Since(start))
		if status >= http.StatusInternalServerError {
			h.OnError(r.Context(), r.Method, route, fmt.Errorf("status %d", status))
		}
	})
}
