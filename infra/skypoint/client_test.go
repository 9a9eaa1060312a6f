package skypoint

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skypointsocial/skypoint/domain"
)

func TestClient_AttachesHeadersAndBody(t *testing.T) {
	var gotAuth, gotRequestID, gotContentType, gotPath string
	var gotBody map[string]string
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		gotContentType = r.Header.Get("Content-Type")
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = io.WriteString(w, `{"ok":"yes"}`)
	})

	var out map[string]string
	err := newTestClient(h, "tok").Post(context.Background(), "/post", map[string]string{"content": "hi"}, &out)
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok", gotAuth)
	_, parseErr := uuid.Parse(gotRequestID)
	assert.NoError(t, parseErr, "request id must be a uuid")
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "/api/post", gotPath)
	assert.Equal(t, "hi", gotBody["content"])
	assert.Equal(t, "yes", out["ok"])
}

func TestClient_OmitsAuthorizationWithoutToken(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
	})
	require.NoError(t, newTestClient(h, "").Get(context.Background(), "/feed", nil))
}

func TestClient_NonSuccessBecomesAPIError(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"message":"Invalid email or password"}`)
	})
	err := newTestClient(h, "tok").Post(context.Background(), "/login", map[string]string{}, nil)
	require.Error(t, err)

	var apiErr *domain.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Equal(t, "Invalid email or password", domain.ErrorMessage(err, "fallback"))
}

func TestClient_NonJSONErrorBodyUsesFallback(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, "<html>bad gateway</html>")
	})
	err := newTestClient(h, "").Get(context.Background(), "/feed", nil)

	var apiErr *domain.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "<html>bad gateway</html>", apiErr.Raw)
	assert.Equal(t, "fallback", domain.ErrorMessage(err, "fallback"))
}

func TestClient_ErrorBodyIsSanitized(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"errors":[{"code":"x","description":"bad\u001b[31m input"}]}`)
	})
	err := newTestClient(h, "").Get(context.Background(), "/feed", nil)
	assert.Equal(t, "bad input", domain.ErrorMessage(err, "fallback"))
}

func TestClient_TransportFailureIsTransportError(t *testing.T) {
	c := newTestClient(nil, "")
	c.http = &http.Client{Transport: failingTransport{err: errors.New("connection refused")}}

	err := c.Get(context.Background(), "/feed", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTransport)
	assert.Equal(t, domain.NetworkErrorMessage, domain.ErrorMessage(err, "fallback"))
}

func TestClient_EmptySuccessBodyIsFine(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	var out struct{ X int }
	require.NoError(t, newTestClient(h, "").Post(context.Background(), "/vote", nil, &out))
}
