package skypoint

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/skypointsocial/skypoint/infra/auth"
	"github.com/skypointsocial/skypoint/infra/logging"
	"github.com/skypointsocial/skypoint/infra/querycache"
)

type handlerRoundTripper struct {
	h http.Handler
}

func (rt handlerRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	rec := newResponseRecorder()
	rt.h.ServeHTTP(rec, req)
	return rec.response(req), nil
}

type responseRecorder struct {
	header http.Header
	body   strings.Builder
	code   int
}

func newResponseRecorder() *responseRecorder {
	return &responseRecorder{header: make(http.Header), code: http.StatusOK}
}

func (r *responseRecorder) Header() http.Header         { return r.header }
func (r *responseRecorder) Write(p []byte) (int, error) { return r.body.Write(p) }
func (r *responseRecorder) WriteHeader(statusCode int)  { r.code = statusCode }

func (r *responseRecorder) response(req *http.Request) *http.Response {
	return &http.Response{
		StatusCode: r.code,
		Header:     r.header.Clone(),
		Body:       io.NopCloser(strings.NewReader(r.body.String())),
		Request:    req,
	}
}

type failingTransport struct{ err error }

func (f failingTransport) RoundTrip(*http.Request) (*http.Response, error) { return nil, f.err }

func newTestClient(h http.Handler, token string) *Client {
	c := NewClient("http://example.test/api", auth.StaticToken(token), logging.Discard())
	c.http = &http.Client{Transport: handlerRoundTripper{h: h}}
	return c
}

func newTestCache(t *testing.T) *querycache.Cache {
	t.Helper()
	c, err := querycache.New(64, logging.Discard())
	require.NoError(t, err)
	return c
}
