package api

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/aymenbt/sportera/internal/logging"
	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
)

// Transport-level constants. The backend runs on a free tier that can take
// tens of seconds to wake up, so the wire timeouts are generous; callers
// bound each call with a context deadline instead.
const (
	dialTimeout           = 300 * time.Second
	tlsHandshakeTimeout   = 300 * time.Second
	responseHeaderTimeout = 300 * time.Second

	maxAttempts = 3
	backoffBase = 2 * time.Second
)

func newBaseTransport() *http.Transport {
	return &http.Transport{
		DialContext: (&net.Dialer{
			Timeout: dialTimeout,
		}).DialContext,
		TLSHandshakeTimeout:   tlsHandshakeTimeout,
		ResponseHeaderTimeout: responseHeaderTimeout,
	}
}

// newTransportChain assembles the fixed interceptor order:
// logging → retry → auth-injection → wire. Auth injection sits closest to
// the wire so a retried attempt always carries the freshest token.
func newTransportChain(tokens TokenSource, log logging.Logger) http.RoundTripper {
	var rt http.RoundTripper = newBaseTransport()
	rt = &authTransport{tokens: tokens, next: rt}
	rt = &retryTransport{base: backoffBase, next: rt}
	rt = &loggingTransport{log: log, next: rt}
	return rt
}

// --- auth injection ---

// TokenSource supplies the current bearer token. An empty token means the
// request goes out unauthenticated; the server answers 401 if it cared.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

type authTransport struct {
	tokens TokenSource
	next   http.RoundTripper
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// A failing token read must not block the request; it degrades to an
	// unauthenticated call.
	token, err := t.tokens.Token(req.Context())
	if err != nil || strings.TrimSpace(token) == "" {
		return t.next.RoundTrip(req)
	}

	out := req.Clone(req.Context())
	out.Header.Set("Authorization", "Bearer "+token)
	return t.next.RoundTrip(out)
}

// --- retry ---

type retryTransport struct {
	base time.Duration
	next http.RoundTripper
}

func (t *retryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Buffer the body once so every attempt can replay it.
	var body []byte
	if req.Body != nil {
		var err error
		body, err = io.ReadAll(req.Body)
		_ = req.Body.Close()
		if err != nil {
			return nil, err
		}
	}

	var resp *http.Response
	b := retry.WithMaxRetries(maxAttempts-1, retry.NewExponential(t.base))

	err := retry.Do(req.Context(), b, func(ctx context.Context) error {
		attempt := req.Clone(ctx)
		if body != nil {
			attempt.Body = io.NopCloser(bytes.NewReader(body))
			attempt.ContentLength = int64(len(body))
		}

		r, rerr := t.next.RoundTrip(attempt)
		if rerr != nil {
			if retryableError(rerr) {
				return retry.RetryableError(rerr)
			}
			return rerr
		}

		// Any response that reached the HTTP layer, 4xx/5xx included,
		// terminates the loop.
		resp = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// retryableError reports whether a transport failure is worth another
// attempt. Host-resolution failures and cancellation are terminal; every
// other I/O failure (connection reset, socket timeout, ...) retries.
func retryableError(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return true
}

// --- diagnostic logging ---

type loggingTransport struct {
	log  logging.Logger
	next http.RoundTripper
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	id := uuid.NewString()
	start := time.Now()

	var reqBody []byte
	if req.Body != nil {
		b, err := io.ReadAll(req.Body)
		_ = req.Body.Close()
		if err != nil {
			// Logging must never abort the request; carry on with what we got.
			t.log.Warn(ctx, "failed to read request body for logging", "request_id", id, "error", err)
		}
		reqBody = b
		req = req.Clone(ctx)
		req.Body = io.NopCloser(bytes.NewReader(b))
	}

	t.log.Debug(ctx, "http request",
		"request_id", id,
		"method", req.Method,
		"url", req.URL.String(),
		"body", string(reqBody),
	)

	resp, err := t.next.RoundTrip(req)
	elapsed := time.Since(start)

	if err != nil {
		t.log.Error(ctx, "http request failed",
			"request_id", id,
			"elapsed_ms", elapsed.Milliseconds(),
			"error", err,
		)
		return nil, err
	}

	var respBody []byte
	if resp.Body != nil {
		b, rerr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		resp.Body = io.NopCloser(bytes.NewReader(b))
		if rerr != nil {
			t.log.Warn(ctx, "failed to read response body for logging", "request_id", id, "error", rerr)
		}
		respBody = b
	}

	t.log.Debug(ctx, "http response",
		"request_id", id,
		"status", resp.StatusCode,
		"elapsed_ms", elapsed.Milliseconds(),
		"body", string(respBody),
	)

	return resp, nil
}
