package transport

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/mysanvi/internal/config"
	"github.com/vfg2006/mysanvi/pkg/log"
)

func TestNew_Timeouts(t *testing.T) {
	client := New(config.HTTP{
		ConnectTimeout: 30 * time.Second,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
	})

	assert.Equal(t, 90*time.Second, client.Timeout)

	rt, ok := client.Transport.(*LoggingRoundTripper)
	require.True(t, ok)
	base, ok := rt.next.(*http.Transport)
	require.True(t, ok)
	assert.Equal(t, 30*time.Second, base.ResponseHeaderTimeout)
}

func TestLoggingRoundTripper_SetsRequestID(t *testing.T) {
	var got string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get(RequestIDHeader)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := &http.Client{Transport: NewLoggingRoundTripper(http.DefaultTransport, false)}
	resp, err := client.Get(server.URL)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Len(t, got, 12)
}

func TestLoggingRoundTripper_KeepsCallerRequestID(t *testing.T) {
	var got string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get(RequestIDHeader)
	}))
	defer server.Close()

	req, err := http.NewRequest(http.MethodGet, server.URL, nil)
	require.NoError(t, err)
	req.Header.Set(RequestIDHeader, "fixed-id")

	client := &http.Client{Transport: NewLoggingRoundTripper(nil, false)}
	resp, err := client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "fixed-id", got)
}

func TestLoggingRoundTripper_BodiesAreRedactedAndPreserved(t *testing.T) {
	log.SetupTestLogger()
	var buf bytes.Buffer
	logrus.SetOutput(&buf)
	defer logrus.SetOutput(io.Discard)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access":"a1","refresh":"r1"}`))
	}))
	defer server.Close()

	client := &http.Client{Transport: NewLoggingRoundTripper(http.DefaultTransport, true)}

	bodies := []struct {
		name string
		body string
	}{
		{name: "envio de OTP", body: `{"phone":"9876543210","otp":"135790"}`},
		{name: "verificação de OTP", body: `{"phone":"9876543210","code":"135790"}`},
	}

	for _, tt := range bodies {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()

			req, err := http.NewRequest(http.MethodPost, server.URL, bytes.NewBufferString(tt.body))
			require.NoError(t, err)
			req.Header.Set("Authorization", "Bearer secret")

			resp, err := client.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.JSONEq(t, `{"access":"a1","refresh":"r1"}`, string(body))

			logs := buf.String()
			assert.NotContains(t, logs, "135790")
			assert.NotContains(t, logs, "9876543210")
			assert.Contains(t, logs, "******3210")
			assert.NotContains(t, logs, "secret")
			assert.NotContains(t, logs, `"a1"`)
			assert.Contains(t, logs, "duration_ms")
		})
	}
}
