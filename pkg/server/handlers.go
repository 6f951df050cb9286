package server

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	apperrors "github.com/matzehuels/apollon/pkg/errors"
	"github.com/matzehuels/apollon/pkg/pipeline"
	"github.com/matzehuels/apollon/pkg/render"
)

type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok\n"))
}

func (s *Server) handleSchemes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog.Info())
}

func (s *Server) handleGasket(w http.ResponseWriter, r *http.Request) {
	opts, err := parseGasketQuery(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Catalog = s.catalog
	opts.Logger = s.logger.With("request_id", RequestID(r.Context()))

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	format := render.Format(opts.Formats[0])
	h := w.Header()
	h.Set("Content-Type", format.ContentType())
	h.Set("X-Circles", strconv.Itoa(res.Stats.Circles))
	h.Set("X-Circles-Drawn", strconv.Itoa(res.Stats.Emitted))
	if res.Diagnostic != nil {
		h.Set("X-Diagnostic", string(apperrors.GetCode(res.Diagnostic)))
	}
	w.WriteHeader(http.StatusOK)
	w.Write(res.Artifacts[string(format)])
}

// parseGasketQuery turns query parameters into pipeline options. Unset
// parameters keep the pipeline defaults; depth defaults to 3 and format to
// svg. Exactly one format is always set.
func parseGasketQuery(q url.Values) (pipeline.Options, error) {
	opts := pipeline.Options{
		Depth:   pipeline.DefaultDepth,
		Formats: []string{string(render.FormatSVG)},
	}

	raw := q.Get("c")
	if raw == "" {
		return opts, apperrors.New(apperrors.ErrCodeInvalidInput, "query parameter c is required (e.g. c=1,1,1)")
	}
	parts := strings.Split(raw, ",")
	if len(parts) != 3 {
		return opts, apperrors.New(apperrors.ErrCodeInvalidInput, "c needs exactly 3 comma-separated numbers, got %d", len(parts))
	}
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return opts, apperrors.New(apperrors.ErrCodeInvalidInput, "c%d: %q is not a number", i+1, p)
		}
		opts.Curvatures[i] = v
	}

	var err error
	if v := q.Get("depth"); v != "" {
		if opts.Depth, err = strconv.Atoi(v); err != nil {
			return opts, apperrors.New(apperrors.ErrCodeInvalidInput, "depth: %q is not an integer", v)
		}
	}
	if v := q.Get("radii"); v != "" {
		if opts.Radii, err = strconv.ParseBool(v); err != nil {
			return opts, apperrors.New(apperrors.ErrCodeInvalidInput, "radii: %q is not a boolean", v)
		}
	}
	if v := q.Get("threshold"); v != "" {
		if opts.Threshold, err = strconv.ParseFloat(v, 64); err != nil {
			return opts, apperrors.New(apperrors.ErrCodeInvalidInput, "threshold: %q is not a number", v)
		}
	}
	if v := q.Get("resolution"); v != "" {
		if opts.Resolution, err = strconv.Atoi(v); err != nil {
			return opts, apperrors.New(apperrors.ErrCodeInvalidInput, "resolution: %q is not an integer", v)
		}
	}
	opts.Scheme = q.Get("color")
	opts.Mode = q.Get("mode")
	if v := q.Get("format"); v != "" {
		opts.Formats = []string{v}
	}
	return opts, nil
}

// StatusFor maps an error to an HTTP status code.
func StatusFor(err error) int {
	switch {
	case apperrors.IsInputError(err):
		return http.StatusBadRequest
	case apperrors.IsNotFound(err):
		return http.StatusNotFound
	case apperrors.Is(err, apperrors.ErrCodeUnsupported):
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	msg := apperrors.UserMessage(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "id", RequestID(r.Context()), "err", err)
		msg = "internal error"
	}
	writeJSON(w, status, errorResponse{
		Error:     msg,
		Code:      string(apperrors.GetCode(err)),
		RequestID: RequestID(r.Context()),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
