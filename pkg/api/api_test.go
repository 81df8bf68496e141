package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/flowpack/pkg/cache"
	"github.com/matzehuels/flowpack/pkg/errors"
	"github.com/matzehuels/flowpack/pkg/observability"
	"github.com/matzehuels/flowpack/pkg/pipeline"
	"github.com/matzehuels/flowpack/pkg/store"
)

const jsonScene = `{
	"scene": {
		"container": {"width": 20, "width_mode": "exact"},
		"items": [
			{"id": "a", "width": 8, "height": 2},
			{"id": "b", "width": 8, "height": 2},
			{"id": "c", "width": 8, "height": 2}
		]
	},
	"formats": ["svg", "txt"]
}`

func newTestServer(t *testing.T, opts ...Option) *httptest.Server {
	t.Helper()
	runner := pipeline.NewRunner(cache.NewNullCache(), nil, nil)
	srv := httptest.NewServer(New(runner, store.NewMemoryStore(), nil, opts...).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, srv *httptest.Server, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(srv.URL+"/v1/layout", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func get(t *testing.T, srv *httptest.Server, path string) *http.Response {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeError(t *testing.T, resp *http.Response) errorDetail {
	t.Helper()
	var body errorBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body.Error
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	resp := get(t, srv, "/healthz")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestLayoutRoundTrip(t *testing.T) {
	srv := newTestServer(t)

	resp := post(t, srv, jsonScene)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %+v", resp.StatusCode, decodeError(t, resp))
	}
	var created LayoutResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatal(err)
	}
	if _, err := uuid.Parse(created.ID); err != nil {
		t.Errorf("id %q is not a uuid", created.ID)
	}
	if n := len(created.Frame.Lines); n != 2 {
		t.Errorf("lines = %d, want 2", n)
	}
	if !strings.HasPrefix(created.Artifacts["svg"], "<svg") {
		t.Errorf("svg artifact = %.40q", created.Artifacts["svg"])
	}
	if _, ok := created.Artifacts["txt"]; !ok {
		t.Error("txt artifact missing")
	}

	got := get(t, srv, "/v1/layouts/"+created.ID)
	if got.StatusCode != http.StatusOK {
		t.Fatalf("GET status = %d, want 200", got.StatusCode)
	}
	var rec store.Record
	if err := json.NewDecoder(got.Body).Decode(&rec); err != nil {
		t.Fatal(err)
	}
	if rec.SceneHash != created.SceneHash || len(rec.Frame.Boxes) != 3 {
		t.Errorf("stored record = %+v, want hash %s with 3 boxes", rec, created.SceneHash)
	}

	svg := get(t, srv, "/v1/layouts/"+created.ID+"/svg?debug=1")
	if svg.StatusCode != http.StatusOK {
		t.Fatalf("render status = %d, want 200", svg.StatusCode)
	}
	if ct := svg.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q, want image/svg+xml", ct)
	}
}

func TestLayoutFromSource(t *testing.T) {
	srv := newTestServer(t)
	body, _ := json.Marshal(map[string]any{
		"source":       "[container]\nwidth = 10\n\n[[items]]\ntext = \"hi\"\n",
		"scene_format": "toml",
		"formats":      []string{"json"},
	})
	resp := post(t, srv, string(body))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %+v", resp.StatusCode, decodeError(t, resp))
	}
	var created LayoutResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatal(err)
	}
	if r := created.Frame.Boxes[0].Rect; r.Width != 2 || r.Height != 1 {
		t.Errorf("text item = %dx%d, want 2x1", r.Width, r.Height)
	}
}

func TestLayoutErrors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		code   errors.Code
	}{
		{"empty", `{}`, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"both", `{"scene": {}, "source": "x"}`, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"not json", `{`, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"unknown field", `{"scene": {}, "colour": 1}`, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"bad gravity", `{"scene": {"container": {"gravity": "up"}}}`, http.StatusBadRequest, errors.ErrCodeInvalidGravity},
		{"bad format", `{"scene": {}, "formats": ["gif"]}`, http.StatusBadRequest, errors.ErrCodeInvalidFormat},
		{"oversized container", `{"scene": {"container": {"width": 100000, "height": 100000, "width_mode": "exact", "height_mode": "exact"}}, "formats": ["txt"]}`, http.StatusBadRequest, errors.ErrCodeInvalidScene},
		{"text grid too large", `{"scene": {"container": {"width": 65536, "height": 65536, "width_mode": "exact", "height_mode": "exact"}}, "formats": ["txt"]}`, http.StatusBadRequest, errors.ErrCodeInvalidInput},
	}
	srv := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, srv, tt.body)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			if got := decodeError(t, resp); got.Code != tt.code {
				t.Errorf("code = %s, want %s (%s)", got.Code, tt.code, got.Message)
			}
		})
	}
}

func TestLayoutBodyTooLarge(t *testing.T) {
	srv := newTestServer(t, WithMaxBodyBytes(16))
	resp := post(t, srv, jsonScene)
	if resp.StatusCode != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", resp.StatusCode)
	}
}

func TestGetLayoutErrors(t *testing.T) {
	srv := newTestServer(t)
	tests := []struct {
		path   string
		status int
	}{
		{"/v1/layouts/" + uuid.NewString(), http.StatusNotFound},
		{"/v1/layouts/not-a-uuid", http.StatusBadRequest},
		{"/v1/layouts/" + uuid.NewString() + "/png", http.StatusBadRequest},
		{"/v1/nothing", http.StatusNotFound},
	}
	for _, tt := range tests {
		resp := get(t, srv, tt.path)
		if resp.StatusCode != tt.status {
			t.Errorf("GET %s status = %d, want %d", tt.path, resp.StatusCode, tt.status)
		}
		if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("GET %s Content-Type = %q, want application/json", tt.path, ct)
		}
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{errors.New(errors.ErrCodeInvalidScene, "x"), http.StatusBadRequest},
		{errors.New(errors.ErrCodeNotFound, "x"), http.StatusNotFound},
		{errors.New(errors.ErrCodeUnsupported, "x"), http.StatusUnsupportedMediaType},
		{errors.New(errors.ErrCodeInternal, "x"), http.StatusInternalServerError},
		{context.Canceled, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := StatusFor(tt.err); got != tt.want {
			t.Errorf("StatusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestHTTPHooksUseRoutePattern(t *testing.T) {
	observability.Reset()
	t.Cleanup(observability.Reset)
	rec := &routeRecorder{}
	observability.SetHTTPHooks(rec)

	srv := newTestServer(t)
	get(t, srv, "/v1/layouts/"+uuid.NewString())

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.routes) != 1 || rec.routes[0] != "GET /v1/layouts/{id} 404" {
		t.Errorf("recorded routes = %v", rec.routes)
	}
}

type routeRecorder struct {
	observability.NoopHTTPHooks
	mu     sync.Mutex
	routes []string
}

func (r *routeRecorder) OnResponse(_ context.Context, method, route string, status int, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes = append(r.routes, fmt.Sprintf("%s %s %d", method, route, status))
}
