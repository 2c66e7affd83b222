package transport

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/mysanvi/pkg/apiErrors"
)

type payload struct {
	Value string `json:"value"`
}

func TestRequester_URL(t *testing.T) {
	r, err := NewRequester(nil, "http://10.0.2.2:8000")
	require.NoError(t, err)

	assert.Equal(t, "http://10.0.2.2:8000/api/sales/", r.URL("api/sales/", nil))
	assert.Equal(t, "http://10.0.2.2:8000/api/debts/?days=7", r.URL("/api/debts/", url.Values{"days": {"7"}}))
}

func TestRequester_Do(t *testing.T) {
	tests := []struct {
		name     string
		handler  http.HandlerFunc
		out      any
		validate func(t *testing.T, out any, err error)
	}{
		{
			name: "sucesso decodifica o corpo",
			handler: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "Bearer a1", r.Header.Get("Authorization"))
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
				body, _ := io.ReadAll(r.Body)
				assert.JSONEq(t, `{"value":"in"}`, string(body))
				_, _ = w.Write([]byte(`{"value":"out"}`))
			},
			out: &payload{},
			validate: func(t *testing.T, out any, err error) {
				require.NoError(t, err)
				assert.Equal(t, "out", out.(*payload).Value)
			},
		},
		{
			name: "status não-2xx vira HTTPError com detail",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"detail":"Invalid OTP"}`))
			},
			out: &payload{},
			validate: func(t *testing.T, out any, err error) {
				httpErr, ok := apiErrors.AsHTTPError(err)
				require.True(t, ok)
				assert.Equal(t, http.StatusBadRequest, httpErr.StatusCode)
				assert.Equal(t, "Invalid OTP", httpErr.Message)
				assert.Equal(t, "test.op", httpErr.Op)
			},
		},
		{
			name: "status sem corpo usa o texto padrão",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusServiceUnavailable)
			},
			out: &payload{},
			validate: func(t *testing.T, out any, err error) {
				httpErr, ok := apiErrors.AsHTTPError(err)
				require.True(t, ok)
				assert.Equal(t, "Service Unavailable", httpErr.Message)
			},
		},
		{
			name: "corpo fora do schema vira DecodeError",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"value":123}`))
			},
			out: &payload{},
			validate: func(t *testing.T, out any, err error) {
				var decErr *apiErrors.DecodeError
				require.ErrorAs(t, err, &decErr)
				assert.Equal(t, "payload", decErr.Target)
			},
		},
		{
			name: "corpo vazio com destino vira DecodeError",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			},
			out: &payload{},
			validate: func(t *testing.T, out any, err error) {
				var decErr *apiErrors.DecodeError
				require.ErrorAs(t, err, &decErr)
			},
		},
		{
			name: "sem destino ignora o corpo",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNoContent)
			},
			validate: func(t *testing.T, out any, err error) {
				require.NoError(t, err)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			r, err := NewRequester(server.Client(), server.URL)
			require.NoError(t, err)

			err = r.Do(context.Background(), Call{
				Op:         "test.op",
				Method:     http.MethodPost,
				Path:       "thing/",
				AuthHeader: "Bearer a1",
				Body:       payload{Value: "in"},
				Out:        tt.out,
			})
			tt.validate(t, tt.out, err)
		})
	}
}

func TestRequester_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := server.URL
	server.Close()

	r, err := NewRequester(nil, base)
	require.NoError(t, err)

	err = r.Do(context.Background(), Call{Op: "test.op", Method: http.MethodGet, Path: "x/"})
	assert.True(t, apiErrors.IsNetworkError(err))
}
