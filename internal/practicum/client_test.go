package practicum

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"homework-bot/internal/apperrors"
	"homework-bot/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		PracticumToken: "practicum-token",
		Endpoint:       srv.URL + "/api/user_api/homework_statuses/",
		HTTPTimeout:    2 * time.Second,
	}
	return NewClient(context.Background(), cfg), srv
}

func TestFetchSendsAuthAndCursor(t *testing.T) {
	var gotAuth, gotFrom, gotPath string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotFrom = r.URL.Query().Get("from_date")
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"homeworks": [], "current_date": 1700000000}`))
	})

	raw, err := client.Fetch(context.Background(), 1690000000)
	require.NoError(t, err)

	assert.Equal(t, "OAuth practicum-token", gotAuth)
	assert.Equal(t, "1690000000", gotFrom)
	assert.Equal(t, "/api/user_api/homework_statuses/", gotPath)
	assert.JSONEq(t, `{"homeworks": [], "current_date": 1700000000}`, string(raw))
}

func TestFetchErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    apperrors.Kind
	}{
		{
			name: "non-200 status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusServiceUnavailable)
			},
			want: apperrors.KindHTTPStatus,
		},
		{
			name: "unauthorized",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, `{"code": "not_authenticated"}`, http.StatusUnauthorized)
			},
			want: apperrors.KindHTTPStatus,
		},
		{
			name: "body is not JSON",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("<html>maintenance</html>"))
			},
			want: apperrors.KindMalformedPayload,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, tt.handler)

			_, err := client.Fetch(context.Background(), 0)
			require.Error(t, err)
			assert.Equal(t, tt.want, apperrors.KindOf(err))
		})
	}
}

func TestFetchTransportFailure(t *testing.T) {
	client, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	srv.Close()

	_, err := client.Fetch(context.Background(), 0)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindTransport, apperrors.KindOf(err))
}
