package apperrors

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"regexp"
	"strings"

	"github.com/aymenbt/sportera/internal/client/api"
	"github.com/aymenbt/sportera/internal/client/models"
)

// User-facing messages for conditions where the server had nothing to say.
const (
	msgNetworkUnreachable = "Cannot reach the server. Check your internet connection and try again."
	msgWireTimeout        = "The server is slow to respond. Please try again."
	msgDeadline           = "The request took too long. Please try again."
	msgCancelled          = "The request was cancelled."
	msgSchemaMismatch     = "Unexpected response format from the server."
)

// rawMessagePattern extracts a "message" field from an error body that did
// not parse as structured JSON. Second tier of the fallback chain.
var rawMessagePattern = regexp.MustCompile(`"message"\s*:\s*"([^"]+)"`)

// Classify translates any raw failure into a taxonomy member. op names the
// calling operation and only surfaces in the Unknown fallback, where the
// original message would otherwise lack context.
//
// Already-classified errors pass through unchanged, so local validation and
// missing-context records survive a double Classify.
func Classify(op string, err error) *Error {
	if err == nil {
		return nil
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &Error{Kind: KindNetworkUnreachable, Message: msgNetworkUnreachable, cause: err}
	}

	if errors.Is(err, context.Canceled) {
		return &Error{Kind: KindCancelled, Message: msgCancelled, cause: err}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: KindTimeout, Message: msgDeadline, cause: err}
	}

	// Wire-level stall (dial/read timeout), as opposed to a caller-side
	// deadline handled above. The retry stage already took its attempts.
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &Error{Kind: KindTimeout, Message: msgWireTimeout, Retryable: true, cause: err}
	}

	var statusErr *api.StatusError
	if errors.As(err, &statusErr) {
		return fromStatus(statusErr)
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return &Error{Kind: KindSchemaMismatch, Message: msgSchemaMismatch, cause: err}
	}

	return &Error{
		Kind:    KindUnknown,
		Message: fmt.Sprintf("%s: %s", op, err.Error()),
		cause:   err,
	}
}

func fromStatus(err *api.StatusError) *Error {
	kind := KindClientError
	if err.Code >= 500 {
		kind = KindServerError
	}

	msg := extractServerMessage(err.Body)
	if msg == "" {
		msg = defaultStatusMessage(err.Code)
	}

	return &Error{Kind: kind, Message: msg, cause: err}
}

// extractServerMessage applies the ordered fallback chain for server error
// bodies: structured parse (message, then error field), then raw-text
// extraction of a "message" field. Returns "" when nothing is recoverable.
func extractServerMessage(body []byte) string {
	if len(strings.TrimSpace(string(body))) == 0 {
		return ""
	}

	var parsed models.ErrorResponse
	if jerr := json.Unmarshal(body, &parsed); jerr == nil {
		if parsed.Message != "" {
			return parsed.Message
		}
		if parsed.Error != "" {
			return parsed.Error
		}
	}

	if m := rawMessagePattern.FindSubmatch(body); m != nil {
		return string(m[1])
	}

	return ""
}

func defaultStatusMessage(code int) string {
	switch code {
	case http.StatusConflict:
		return "This email is already registered. Please use a different email or try logging in."
	case http.StatusBadRequest:
		return "Invalid request. Please check your input."
	case http.StatusUnauthorized:
		return "Authentication failed. Please check your credentials."
	case http.StatusForbidden:
		return "Access denied. You don't have permission to perform this action."
	case http.StatusNotFound:
		return "Resource not found."
	}
	if code >= 500 {
		return "Server error. Please try again later."
	}
	return fmt.Sprintf("Request failed with status %d.", code)
}
