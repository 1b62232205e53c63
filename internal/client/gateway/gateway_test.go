package gateway

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/example/reserva/internal/common"
	"github.com/example/reserva/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, logging.NewTextLogger(io.Discard)), srv
}

func TestDo_OKResponse(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"token":"abc"}`))
	})

	res, err := c.Do(context.Background(), http.MethodGet, "/api/x", nil, nil)
	require.NoError(t, err)
	assert.True(t, res.OK)
	assert.Equal(t, http.StatusOK, res.Status)

	var payload struct {
		Token string `json:"token"`
	}
	require.NoError(t, res.Decode(&payload))
	assert.Equal(t, "abc", payload.Token)
}

func TestDo_ErrorResponseIsNotAGoError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"erro":"espaço já reservado neste horário"}`))
	})

	res, err := c.Do(context.Background(), http.MethodPost, "/api/reservas", nil, map[string]string{"espaco_id": "1"})
	require.NoError(t, err)
	assert.False(t, res.OK)
	assert.Equal(t, http.StatusConflict, res.Status)
	assert.Equal(t, "espaço já reservado neste horário", res.ErrorMessage("fallback"))
}

func TestDo_ErrorMessageFallback(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`not json`))
	})

	res, err := c.Do(context.Background(), http.MethodGet, "/api/x", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "fallback", res.ErrorMessage("fallback"))
}

func TestDo_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	c := NewClient(srv.URL, logging.NewTextLogger(io.Discard))

	res, err := c.Do(context.Background(), http.MethodGet, "/api/x", nil, nil)
	assert.Nil(t, res)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestDo_AttachesToken(t *testing.T) {
	var got string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get(common.AccessTokenHeaderName)
		w.Write([]byte(`[]`))
	})
	c.SetTokenSource(TokenFunc(func() string { return "tok-123" }))

	_, err := c.Do(context.Background(), http.MethodGet, "/api/reservas", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "tok-123", got)
}

func TestDo_NoTokenHeaderWhenEmpty(t *testing.T) {
	var present bool
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, present = r.Header[http.CanonicalHeaderKey(common.AccessTokenHeaderName)]
		w.Write([]byte(`[]`))
	})
	c.SetTokenSource(TokenFunc(func() string { return "" }))

	_, err := c.Do(context.Background(), http.MethodGet, "/api/espacos", nil, nil)
	require.NoError(t, err)
	assert.False(t, present)
}

func TestDo_QueryEncoding(t *testing.T) {
	var gotQuery url.Values
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`[]`))
	})

	q := url.Values{}
	q.Set("status", "pendente,confirmada")
	q.Set("espaco_id", "42")
	_, err := c.Do(context.Background(), http.MethodGet, "/api/reservas", q, nil)
	require.NoError(t, err)
	assert.Equal(t, "pendente,confirmada", gotQuery.Get("status"))
	assert.Equal(t, "42", gotQuery.Get("espaco_id"))
}
