package transport_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bynder/bynder-go-sdk/pkg/configs"
	"github.com/Bynder/bynder-go-sdk/pkg/query"
	"github.com/Bynder/bynder-go-sdk/pkg/transport"
)

type brand struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestHTTPSender_SendJSON(t *testing.T) {
	// Arrange
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v4/brands/", r.URL.Path)
		assert.Equal(t, "limit=10&keyword=logo", r.URL.RawQuery)
		assert.Equal(t, "ua-test", r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", transport.ContentTypeJSON)
		_, _ = io.WriteString(w, `[{"id":"b1","name":"Main"}]`)
	}))
	defer srv.Close()

	s, err := transport.NewHTTPSender(srv.URL+"/", srv.Client(), transport.WithUserAgent("ua-test"))
	require.NoError(t, err)

	q := query.NewParams()
	q.Set("limit", "10")
	q.Set("keyword", "logo")

	// Act
	brands, err := transport.SendJSON[[]brand](context.Background(), s, transport.Get("/api/v4/brands/", q))

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []brand{{ID: "b1", Name: "Main"}}, brands)
}

func TestHTTPSender_FormBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)

		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, transport.ContentTypeForm, r.Header.Get("Content-Type"))
		assert.Equal(t, "filename=logo.png&chunkNumber=1", string(body))

		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	s, err := transport.NewHTTPSender(srv.URL, srv.Client())
	require.NoError(t, err)

	form := query.NewParams()
	form.Set("filename", "logo.png")
	form.Set("chunkNumber", "1")

	resp, err := s.Send(context.Background(), transport.PostForm("api/upload/init", form))

	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestHTTPSender_ExternalKeepsQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "a=1&b=2", r.URL.RawQuery)
		assert.Empty(t, r.Header.Get("Authorization"))
	}))
	defer srv.Close()

	s, err := transport.NewHTTPSender("https://api.example.com", http.DefaultClient,
		transport.WithStorageClient(srv.Client()))
	require.NoError(t, err)

	q := query.NewParams()
	q.Set("b", "2")

	_, err = s.Send(context.Background(), &transport.Request{
		Method:   http.MethodPost,
		Path:     srv.URL + "/bucket?a=1",
		Query:    q,
		External: true,
	})
	require.NoError(t, err)
}

func TestHTTPSender_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = io.WriteString(w, `{"message":"denied"}`)
	}))
	defer srv.Close()

	s, err := transport.NewHTTPSender(srv.URL, srv.Client())
	require.NoError(t, err)

	_, err = s.Send(context.Background(), transport.Delete("/api/v4/media/1/", nil))

	require.Error(t, err)
	assert.ErrorIs(t, err, transport.ErrRequestFailed)

	var reqErr *transport.RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, http.StatusForbidden, reqErr.StatusCode)
	assert.Contains(t, reqErr.Body, "denied")
	assert.False(t, reqErr.Temporary())
}

func TestHTTPSender_BreakerOpens(t *testing.T) {
	var calls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)

		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	cb := transport.NewBreaker(configs.CircuitBreakerConfig{
		Enabled:          true,
		FailureRatio:     0.5,
		MinRequests:      2,
		Window:           time.Minute,
		Cooldown:         time.Minute,
		HalfOpenRequests: 1,
	}, nil)
	require.NotNil(t, cb)

	s, err := transport.NewHTTPSender(srv.URL, srv.Client(), transport.WithBreaker(cb))
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err = s.Send(context.Background(), transport.Get("/x", nil))
		require.Error(t, err)
	}

	_, err = s.Send(context.Background(), transport.Get("/x", nil))

	require.Error(t, err)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.ErrorIs(t, err, transport.ErrRequestFailed)
	assert.Equal(t, int32(2), calls.Load())
}

func TestHTTPSender_ClientErrorsDoNotTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	cb := transport.NewBreaker(configs.CircuitBreakerConfig{
		Enabled: true, FailureRatio: 0.5, MinRequests: 1, Cooldown: time.Minute, HalfOpenRequests: 1,
	}, nil)

	s, err := transport.NewHTTPSender(srv.URL, srv.Client(), transport.WithBreaker(cb))
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err = s.Send(context.Background(), transport.Get("/missing", nil))
		require.Error(t, err)
		assert.NotErrorIs(t, err, gobreaker.ErrOpenState)
	}

	assert.Equal(t, gobreaker.StateClosed, cb.State())
}

func TestNewHTTPSender_InvalidBaseURL(t *testing.T) {
	_, err := transport.NewHTTPSender("example.com", nil)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "not absolute"))
}

func TestNewLimiter(t *testing.T) {
	assert.Nil(t, transport.NewLimiter(configs.RateLimitConfig{Enabled: false, RPS: 5}))
	assert.Nil(t, transport.NewLimiter(configs.RateLimitConfig{Enabled: true, RPS: 0}))

	l := transport.NewLimiter(configs.RateLimitConfig{Enabled: true, RPS: 5})
	require.NotNil(t, l)
	assert.Equal(t, 1, l.Burst())
}
