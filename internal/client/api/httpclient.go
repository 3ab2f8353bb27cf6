package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/aymenbt/sportera/internal/client/models"
	"github.com/aymenbt/sportera/internal/logging"
)

// Endpoint paths, relative to the configured base URL.
const (
	pathRegister                 = "auth/register"
	pathLogin                    = "auth/login"
	pathVerifyCode               = "auth/verify-code"
	pathResendVerification       = "auth/resend-verification"
	pathForgotPassword           = "auth/forgot-password"
	pathForgotPasswordVerifyCode = "auth/forgot-password/verify-code"
	pathForgotPasswordReset      = "auth/forgot-password/reset"
	pathUsers                    = "users"
)

// HTTPClient talks JSON over HTTP to the Sportera backend through the
// logging → retry → auth-injection transport chain. Safe for concurrent use.
type HTTPClient struct {
	baseURL *url.URL
	http    *http.Client
}

// New builds an HTTPClient against baseURL. tokens supplies the bearer
// token injected into every request; log receives request/response
// diagnostics. The base URL must carry an http or https scheme.
func New(baseURL string, tokens TokenSource, log logging.Logger) (*HTTPClient, error) {
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		return nil, fmt.Errorf("base URL must start with http:// or https://, got %q", baseURL)
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	return &HTTPClient{
		baseURL: u,
		http: &http.Client{
			Transport: newTransportChain(tokens, log),
		},
	}, nil
}

func (c *HTTPClient) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.post(ctx, pathLogin, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.post(ctx, pathRegister, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) VerifyEmail(ctx context.Context, req models.VerifyRequest) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.post(ctx, pathVerifyCode, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) ResendVerification(ctx context.Context, req models.EmailRequest) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.post(ctx, pathResendVerification, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) ForgotPassword(ctx context.Context, req models.EmailRequest) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.post(ctx, pathForgotPassword, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) VerifyForgotPasswordCode(ctx context.Context, req models.VerifyRequest) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.post(ctx, pathForgotPasswordVerifyCode, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) ResetPassword(ctx context.Context, req models.ResetPasswordRequest) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.post(ctx, pathForgotPasswordReset, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := c.get(ctx, pathUsers+"/"+url.PathEscape(id), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// --- request plumbing ---

func (c *HTTPClient) post(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to encode request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.resolve(path), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

func (c *HTTPClient) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.resolve(path), nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *HTTPClient) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		// Unwrap the url.Error envelope; the classifier works on the
		// underlying condition.
		if uerr, ok := err.(*url.Error); ok {
			return uerr
		}
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Code: resp.StatusCode, Body: body}
	}

	// Some endpoints answer 2xx with an empty body; that is a valid
	// zero-value response.
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response body: %w", err)
	}
	return nil
}

func (c *HTTPClient) resolve(path string) string {
	// The base URL is normalized to end with "/" at construction time.
	return c.baseURL.String() + path
}
