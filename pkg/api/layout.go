package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/flowpack/pkg/buildinfo"
	"github.com/matzehuels/flowpack/pkg/errors"
	"github.com/matzehuels/flowpack/pkg/pipeline"
	"github.com/matzehuels/flowpack/pkg/scene"
	"github.com/matzehuels/flowpack/pkg/sink"
	"github.com/matzehuels/flowpack/pkg/store"
)

// LayoutRequest is the body of POST /v1/layout. Exactly one of Scene (a
// JSON scene object) and Source (scene text in SceneFormat) is required.
type LayoutRequest struct {
	Scene  json.RawMessage `json:"scene,omitempty"`
	Source string          `json:"source,omitempty"`

	pipeline.Options
}

// LayoutResponse is the body returned by POST /v1/layout.
type LayoutResponse struct {
	ID        string            `json:"id"`
	SceneHash string            `json:"scene_hash"`
	Frame     *scene.Frame      `json:"frame"`
	Artifacts map[string]string `json:"artifacts,omitempty"`
	Cached    bool              `json:"cached"`
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBodyBytes)

	var req LayoutRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, s.wrapBodyError(err))
		return
	}

	data, err := req.sceneData()
	if err != nil {
		writeError(w, err)
		return
	}

	opts := req.Options
	opts.Color = false
	opts.Logger = s.logger
	opts.Generator = buildinfo.Generator()

	res, err := s.runner.Execute(r.Context(), data, opts)
	if err != nil {
		s.logger.Debug("layout failed", "err", err)
		writeError(w, err)
		return
	}

	rec := store.NewRecord(res.SceneHash, res.Frame)
	if err := s.store.Save(r.Context(), rec); err != nil {
		s.logger.Error("store layout", "err", err)
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "store layout"))
		return
	}

	artifacts := make(map[string]string, len(res.Artifacts))
	for format, b := range res.Artifacts {
		artifacts[format] = string(b)
	}
	writeJSON(w, http.StatusCreated, LayoutResponse{
		ID:        rec.ID,
		SceneHash: res.SceneHash,
		Frame:     res.Frame,
		Artifacts: artifacts,
		Cached:    res.CacheInfo.LayoutHit,
	})
}

func (req *LayoutRequest) sceneData() ([]byte, error) {
	switch {
	case len(req.Scene) > 0 && req.Source != "":
		return nil, errors.New(errors.ErrCodeInvalidInput, "give either scene or source, not both")
	case len(req.Scene) > 0:
		req.SceneFormat = scene.FormatJSON
		return req.Scene, nil
	case req.Source != "":
		return []byte(req.Source), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "scene or source is required")
	}
}

func (s *Server) wrapBodyError(err error) error {
	return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request")
}

func (s *Server) handleGetLayout(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

var contentTypes = map[string]string{
	sink.FormatJSON: "application/json",
	sink.FormatSVG:  "image/svg+xml",
	sink.FormatText: "text/plain; charset=utf-8",
}

func (s *Server) handleRenderLayout(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		writeError(w, err)
		return
	}
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	q := r.URL.Query()
	opts := pipeline.Options{
		Formats:   []string{format},
		Debug:     q.Get("debug") == "true" || q.Get("debug") == "1",
		Logger:    s.logger,
		Generator: buildinfo.Generator(),
	}
	artifacts, err := s.runner.Render(r.Context(), rec.Frame, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifacts[format])
}
