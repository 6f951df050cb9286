package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/apollon/pkg/colormap"
	apperrors "github.com/matzehuels/apollon/pkg/errors"
	"github.com/matzehuels/apollon/pkg/pipeline"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := log.New(io.Discard)
	s := New(pipeline.NewRunner(nil, nil, logger), logger)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, ts *httptest.Server, path string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(ts.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, body
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)
	resp, body := get(t, ts, "/healthz")
	if resp.StatusCode != http.StatusOK || string(body) != "ok\n" {
		t.Errorf("healthz = %d %q", resp.StatusCode, body)
	}
	if !strings.HasPrefix(resp.Header.Get("Server"), "apollon/") {
		t.Errorf("Server header = %q", resp.Header.Get("Server"))
	}
	if _, err := uuid.Parse(resp.Header.Get(RequestIDHeader)); err != nil {
		t.Errorf("response has no valid request ID: %q", resp.Header.Get(RequestIDHeader))
	}
}

func TestRequestIDPassthrough(t *testing.T) {
	ts := newTestServer(t)
	id := uuid.NewString()

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	req.Header.Set(RequestIDHeader, id)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := resp.Header.Get(RequestIDHeader); got != id {
		t.Errorf("request ID = %q, want %q", got, id)
	}

	req.Header.Set(RequestIDHeader, "not-a-uuid")
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := resp.Header.Get(RequestIDHeader); got == "not-a-uuid" {
		t.Error("invalid client request IDs should be replaced")
	}
}

func TestSchemes(t *testing.T) {
	ts := newTestServer(t)
	resp, body := get(t, ts, "/schemes")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var infos []colormap.Info
	if err := json.Unmarshal(body, &infos); err != nil {
		t.Fatalf("decode: %v", err)
	}
	found := false
	for _, in := range infos {
		if in.Name == "Blues" && in.Low == 3 && in.High == 9 {
			found = true
		}
	}
	if !found {
		t.Errorf("Blues 3 -- 9 not listed: %+v", infos)
	}
}

func TestGasket(t *testing.T) {
	ts := newTestServer(t)
	resp, body := get(t, ts, "/gasket?c=1,1,1&depth=2&color=Blues")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, body)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q", ct)
	}
	if resp.Header.Get("X-Circles") != "20" {
		t.Errorf("X-Circles = %q, want 20", resp.Header.Get("X-Circles"))
	}
	if !strings.HasPrefix(string(body), `<svg xmlns="http://www.w3.org/2000/svg" width="500" height="500"`) {
		t.Errorf("body is not an svg: %.80s", body)
	}
}

func TestGasketErrors(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name   string
		query  string
		status int
		code   apperrors.Code
	}{
		{"missing c", "", http.StatusBadRequest, apperrors.ErrCodeInvalidInput},
		{"two values", "c=1,1", http.StatusBadRequest, apperrors.ErrCodeInvalidInput},
		{"not a number", "c=1,x,1", http.StatusBadRequest, apperrors.ErrCodeInvalidInput},
		{"zero", "c=1,0,1", http.StatusBadRequest, apperrors.ErrCodeInvalidInput},
		{"collinear", "c=1,1,4", http.StatusBadRequest, apperrors.ErrCodeDegenerateConfiguration},
		{"depth too large", "c=1,1,1&depth=11", http.StatusBadRequest, apperrors.ErrCodeInvalidInput},
		{"bad format", "c=1,1,1&format=gif", http.StatusBadRequest, apperrors.ErrCodeInvalidFormat},
		{"unknown scheme", "c=1,1,1&color=Nope", http.StatusNotFound, apperrors.ErrCodeSchemeNotFound},
		{"unknown resolution", "c=1,1,1&color=Blues&resolution=42", http.StatusNotFound, apperrors.ErrCodeResolutionNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := get(t, ts, "/gasket?"+tt.query)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			var e errorResponse
			if err := json.Unmarshal(body, &e); err != nil {
				t.Fatalf("decode %s: %v", body, err)
			}
			if e.Code != string(tt.code) {
				t.Errorf("code = %q, want %s", e.Code, tt.code)
			}
			if e.RequestID == "" {
				t.Error("error body has no request ID")
			}
		})
	}
}

func TestParseGasketQuery(t *testing.T) {
	q, _ := url.ParseQuery("c=2,%203,4&depth=0&radii=true&threshold=0.01&resolution=5&color=Reds&mode=log&format=png")
	opts, err := parseGasketQuery(q)
	if err != nil {
		t.Fatal(err)
	}
	if opts.Curvatures != [3]float64{2, 3, 4} {
		t.Errorf("Curvatures = %v", opts.Curvatures)
	}
	if opts.Depth != 0 || !opts.Radii || opts.Threshold != 0.01 || opts.Resolution != 5 {
		t.Errorf("numeric options = %+v", opts)
	}
	if opts.Scheme != "Reds" || opts.Mode != "log" || opts.Formats[0] != "png" {
		t.Errorf("string options = %+v", opts)
	}

	q, _ = url.ParseQuery("c=1,1,1")
	opts, _ = parseGasketQuery(q)
	if opts.Depth != pipeline.DefaultDepth {
		t.Errorf("default depth = %d, want %d", opts.Depth, pipeline.DefaultDepth)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		code apperrors.Code
		want int
	}{
		{apperrors.ErrCodeInvalidInput, 400},
		{apperrors.ErrCodeArithmeticDegenerate, 400},
		{apperrors.ErrCodeSchemeNotFound, 404},
		{apperrors.ErrCodeUnsupported, 501},
		{apperrors.ErrCodeInternal, 500},
	}
	for _, tt := range tests {
		if got := StatusFor(apperrors.New(tt.code, "x")); got != tt.want {
			t.Errorf("StatusFor(%s) = %d, want %d", tt.code, got, tt.want)
		}
	}
}

func TestGasketDefaultsToSVG(t *testing.T) {
	q, _ := url.ParseQuery("c=1,1,1")
	opts, err := parseGasketQuery(q)
	if err != nil {
		t.Fatal(err)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != "svg" {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}

	ts := newTestServer(t)
	resp, body := get(t, ts, "/gasket?c=1,1,1&depth=1")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, body)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q", ct)
	}
	if resp.Header.Get("X-Circles") != "8" {
		t.Errorf("X-Circles = %q, want 8", resp.Header.Get("X-Circles"))
	}
	if !strings.HasPrefix(string(body), "<svg") {
		t.Errorf("body is not an svg: %.80s", body)
	}
}
