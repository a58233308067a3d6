package slogx

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/accounts/pkg/idx"
)

// Transport wraps an http.RoundTripper for SDK clients. Every outgoing
// request gets an X-Request-ID (unless the caller set one) and is logged at
// debug level once the response arrives. Only the method, path, status and
// timing are logged: headers and bodies carry tokens and key material.
func Transport(base http.RoundTripper, logger *slog.Logger) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &transport{base: base, logger: logger}
}

type transport struct {
	base   http.RoundTripper
	logger *slog.Logger
}

func (t *transport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	reqID := req.Header.Get(idx.RequestIDHeader)
	if reqID == "" {
		// RoundTrippers must not modify the caller's request.
		req = req.Clone(req.Context())
		reqID = idx.New().String()
		req.Header.Set(idx.RequestIDHeader, reqID)
	}

	log, ok := fromContext(req.Context())
	if !ok {
		log = t.logger
	}
	log = log.With("req_id", reqID, "method", req.Method, "path", req.URL.Path)

	resp, err := t.base.RoundTrip(req)
	elapsed := time.Since(start).Milliseconds()
	if err != nil {
		log.Debug("http_client_request", "error", err, "duration_ms", elapsed)
		return nil, err
	}

	log.Debug("http_client_request", "status", resp.StatusCode, "duration_ms", elapsed)
	return resp, nil
}
