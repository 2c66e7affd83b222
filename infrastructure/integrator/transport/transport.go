package transport

import (
	"bytes"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/vfg2006/mysanvi/internal/config"
	"github.com/vfg2006/mysanvi/pkg/log"
	"github.com/vfg2006/mysanvi/pkg/utils"
)

// RequestIDHeader identifica cada chamada nos logs do cliente e do backend
const RequestIDHeader = "X-Request-ID"

// Campos de corpo nunca registrados em claro
var sensitiveKeys = []string{"otp", "code", "password", "access", "refresh", "token"}

// Campos registrados apenas parcialmente
var maskedKeys = map[string]utils.Mask{"phone": log.MaskPhone}

// New cria o http.Client compartilhado pelos gateways.
// Connect limita o dial, read limita a espera pelos headers e o timeout total é a soma dos três.
func New(cfg config.HTTP) *http.Client {
	dialer := &net.Dialer{
		Timeout:   cfg.ConnectTimeout,
		KeepAlive: 30 * time.Second,
	}

	base := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		ResponseHeaderTimeout: cfg.ReadTimeout,
		TLSHandshakeTimeout:   cfg.ConnectTimeout,
		MaxIdleConns:          20,
		IdleConnTimeout:       90 * time.Second,
	}

	return &http.Client{
		Transport: NewLoggingRoundTripper(base, cfg.LogBodies),
		Timeout:   cfg.ConnectTimeout + cfg.ReadTimeout + cfg.WriteTimeout,
	}
}

// LoggingRoundTripper registra cada requisição com id, status e duração
type LoggingRoundTripper struct {
	next      http.RoundTripper
	logBodies bool
}

func NewLoggingRoundTripper(next http.RoundTripper, logBodies bool) *LoggingRoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return &LoggingRoundTripper{next: next, logBodies: logBodies}
}

func (t *LoggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	if req.Header.Get(RequestIDHeader) == "" {
		if id, err := utils.GenerateID(); err == nil {
			req.Header.Set(RequestIDHeader, id)
		}
	}

	logger := log.ForContext(req.Context()).WithFields(log.Fields{
		"request_id": req.Header.Get(RequestIDHeader),
		"method":     req.Method,
		"url":        req.URL.Redacted(),
		"auth":       authState(req),
	})

	if t.logBodies && req.Body != nil && req.GetBody != nil {
		if body, err := readBody(req.GetBody); err == nil {
			logger.WithField("body", utils.MaskJSON(body, maskedKeys, sensitiveKeys...)).Debug("request body")
		}
	}

	start := time.Now()
	resp, err := t.next.RoundTrip(req)
	duration := time.Since(start).Milliseconds()

	if err != nil {
		logger.WithError(err).WithField("duration_ms", duration).Warn("request failed")
		return nil, err
	}

	logger = logger.WithFields(log.Fields{
		"status":      resp.StatusCode,
		"duration_ms": duration,
	})

	if t.logBodies && resp.Body != nil {
		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		resp.Body = io.NopCloser(bytes.NewReader(body))
		if readErr == nil {
			logger.WithField("body", utils.MaskJSON(body, maskedKeys, sensitiveKeys...)).Debug("response body")
		}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		logger.Warn("request completed with error status")
	} else {
		logger.Info("request completed")
	}

	return resp, nil
}

func authState(req *http.Request) string {
	if req.Header.Get("Authorization") == "" {
		return "none"
	}
	return "bearer [redacted]"
}

func readBody(getBody func() (io.ReadCloser, error)) ([]byte, error) {
	rc, err := getBody()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
