package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/aymenbt/sportera/internal/client/api"
	"github.com/aymenbt/sportera/internal/client/apperrors"
	"github.com/aymenbt/sportera/internal/client/models"
	"github.com/aymenbt/sportera/internal/client/session"
	"github.com/aymenbt/sportera/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

// Caller-side deadlines per flow step. Login and register get the long
// budget because the backend's free tier can take 30-60 seconds to wake up
// from idle.
const (
	loginDeadline = 90 * time.Second
	stepDeadline  = 60 * time.Second
)

// Local and missing-context messages. These never come from the server.
const (
	msgFieldsRequired   = "All fields (Name, Email, Phone, Birth Date, Password) are required."
	msgInvalidEmail     = "Invalid email address format."
	msgPasswordRequired = "Password is required."
	msgPasswordMismatch = "Passwords do not match."

	msgNoPendingEmail = "Email address not found. Please register again."
	msgNoForgotEmail  = "Email address not found. Please restart the forgot password flow."
	msgNoResetContext = "Reset context missing. Please request a new code."
	msgServerWakingUp = "The server is taking a long time to wake up. The first request can take 30-60 seconds. Please try again in a moment."
)

// ErrNoSession is returned by RestoreSession when no remembered, unexpired
// session exists.
var ErrNoSession = errors.New("no restorable session")

// Session is what a successful login, register or restore hands the caller.
// Token may be empty after register when the account is gated behind email
// verification.
type Session struct {
	Token      string
	User       *models.User
	RememberMe bool
}

// RegisterParams carries the registration form. Role is optional; every
// other field is required.
type RegisterParams struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	BirthDate string
	Role      string
	Password  string
}

// AuthService drives the authentication flows against the backend and keeps
// the durable session state consistent with their outcomes. Safe for
// concurrent use; the in-memory flow markers (pending verification email,
// verified reset code) are mutex-guarded, and the store provides per-key
// atomicity underneath.
type AuthService struct {
	client api.Client
	store  *session.Store
	log    logging.Logger

	// test seams
	loginTimeout time.Duration
	stepTimeout  time.Duration

	mu           sync.Mutex
	pendingEmail string
	forgotEmail  string
	forgotCode   string
}

func NewAuthService(client api.Client, store *session.Store, log logging.Logger) *AuthService {
	return &AuthService{
		client:       client,
		store:        store,
		log:          log,
		loginTimeout: loginDeadline,
		stepTimeout:  stepDeadline,
	}
}

// Login exchanges credentials for a session. On success the token and the
// remember-me flag are persisted and the cached user is refreshed by id,
// falling back to the user embedded in the login response when the refresh
// fails. A tripped caller-side deadline yields a cold-start message distinct
// from the generic timeout.
func (s *AuthService) Login(ctx context.Context, email, password string, rememberMe bool) (*Session, error) {
	cctx, cancel := context.WithTimeout(ctx, s.loginTimeout)
	defer cancel()

	resp, err := s.client.Login(cctx, models.LoginRequest{Email: email, Password: password})
	if err != nil {
		if cctx.Err() == context.DeadlineExceeded && ctx.Err() == nil {
			return nil, apperrors.New(apperrors.KindTimeout, msgServerWakingUp)
		}
		return nil, apperrors.Classify("login", err)
	}

	token := strings.TrimSpace(resp.AccessToken)
	if token != "" {
		if err := s.store.SaveToken(ctx, token); err != nil {
			return nil, apperrors.Classify("login", err)
		}
		if err := s.store.SaveRememberMe(ctx, rememberMe); err != nil {
			return nil, apperrors.Classify("login", err)
		}
	} else {
		// Some deployments answer with session cookies instead; proceed.
		s.log.Warn(ctx, "login response carried no token", "email", email)
	}

	user := resp.User
	if err := s.store.SaveUser(ctx, user); err != nil {
		return nil, apperrors.Classify("login", err)
	}

	if fresh := s.refreshUser(ctx, user); fresh != nil {
		user = fresh
	}

	s.log.Info(ctx, "login succeeded", "email", email, "remember_me", rememberMe)
	return &Session{Token: token, User: user, RememberMe: rememberMe && token != ""}, nil
}

// refreshUser re-fetches the user by id and updates the cache. A failed
// refresh is logged and swallowed; the caller keeps the embedded user.
func (s *AuthService) refreshUser(ctx context.Context, u *models.User) *models.User {
	if u == nil || u.ID == "" {
		return nil
	}

	cctx, cancel := context.WithTimeout(ctx, s.stepTimeout)
	defer cancel()

	fresh, err := s.client.GetUserByID(cctx, u.ID)
	if err != nil {
		s.log.Warn(ctx, "failed to refresh user after login", "user_id", u.ID, "error", err)
		return nil
	}
	if err := s.store.SaveUser(ctx, fresh); err != nil {
		s.log.Warn(ctx, "failed to cache refreshed user", "user_id", u.ID, "error", err)
	}
	return fresh
}

// Register creates an account. All form fields except Role must be
// non-blank; validation failures never reach the network. A missing token in
// the response is expected for verification-gated accounts. The registered
// email becomes the pending verification email, preferring the address the
// server echoed back.
func (s *AuthService) Register(ctx context.Context, p RegisterParams) (*Session, error) {
	for _, v := range []string{p.FirstName, p.LastName, p.Email, p.Phone, p.BirthDate, p.Password} {
		if strings.TrimSpace(v) == "" {
			return nil, apperrors.New(apperrors.KindLocalValidation, msgFieldsRequired)
		}
	}
	if !validEmail(p.Email) {
		return nil, apperrors.New(apperrors.KindLocalValidation, msgInvalidEmail)
	}

	cctx, cancel := context.WithTimeout(ctx, s.loginTimeout)
	defer cancel()

	resp, err := s.client.Register(cctx, models.RegisterRequest{
		FirstName: strings.TrimSpace(p.FirstName),
		LastName:  strings.TrimSpace(p.LastName),
		Email:     strings.TrimSpace(p.Email),
		Phone:     strings.TrimSpace(p.Phone),
		BirthDate: strings.TrimSpace(p.BirthDate),
		Role:      strings.TrimSpace(p.Role),
		Password:  p.Password,
	})
	if err != nil {
		return nil, apperrors.Classify("registration", err)
	}

	token := strings.TrimSpace(resp.AccessToken)
	if token != "" {
		if err := s.store.SaveToken(ctx, token); err != nil {
			return nil, apperrors.Classify("registration", err)
		}
	}
	if err := s.store.SaveUser(ctx, resp.User); err != nil {
		return nil, apperrors.Classify("registration", err)
	}

	pending := strings.TrimSpace(p.Email)
	if resp.User != nil && resp.User.Email != "" {
		pending = resp.User.Email
	}
	if err := s.store.SavePendingVerificationEmail(ctx, pending); err != nil {
		return nil, apperrors.Classify("registration", err)
	}
	s.setPendingEmail(pending)

	s.log.Info(ctx, "registration succeeded", "email", pending, "verification_required", token == "")
	return &Session{Token: token, User: resp.User}, nil
}

// ResendVerification asks the server to re-send the verification code.
func (s *AuthService) ResendVerification(ctx context.Context, email string) error {
	if !validEmail(email) {
		return apperrors.New(apperrors.KindLocalValidation, msgInvalidEmail)
	}

	cctx, cancel := context.WithTimeout(ctx, s.stepTimeout)
	defer cancel()

	if _, err := s.client.ResendVerification(cctx, models.EmailRequest{Email: strings.TrimSpace(email)}); err != nil {
		return apperrors.Classify("resending verification code", err)
	}
	return nil
}

// VerifyEmail submits the emailed verification code. The email resolves
// with precedence argument > in-memory pending > persisted pending; without
// any of those the call fails locally and no request goes out. Success
// clears the pending verification email.
func (s *AuthService) VerifyEmail(ctx context.Context, code, email string) error {
	email, err := s.resolvePendingEmail(ctx, email, msgNoPendingEmail)
	if err != nil {
		return err
	}

	cctx, cancel := context.WithTimeout(ctx, s.stepTimeout)
	defer cancel()

	if _, err := s.client.VerifyEmail(cctx, models.VerifyRequest{Code: code, Email: email}); err != nil {
		return apperrors.Classify("email verification", err)
	}

	if err := s.store.ClearPendingVerificationEmail(ctx); err != nil {
		s.log.Warn(ctx, "failed to clear pending verification email", "error", err)
	}
	s.setPendingEmail("")

	s.log.Info(ctx, "email verified", "email", email)
	return nil
}

// ForgotPassword starts the 3-step password reset. Success records the
// email as pending for step 2 and drops any stale reset context from an
// abandoned earlier run.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	if !validEmail(email) {
		return apperrors.New(apperrors.KindLocalValidation, msgInvalidEmail)
	}
	email = strings.TrimSpace(email)

	cctx, cancel := context.WithTimeout(ctx, s.stepTimeout)
	defer cancel()

	if _, err := s.client.ForgotPassword(cctx, models.EmailRequest{Email: email}); err != nil {
		return apperrors.Classify("forgot password", err)
	}

	if err := s.store.SavePendingVerificationEmail(ctx, email); err != nil {
		return apperrors.Classify("forgot password", err)
	}
	if err := s.store.ClearForgotPasswordContext(ctx); err != nil {
		s.log.Warn(ctx, "failed to clear stale reset context", "error", err)
	}

	s.mu.Lock()
	s.pendingEmail = email
	s.forgotEmail = ""
	s.forgotCode = ""
	s.mu.Unlock()

	return nil
}

// VerifyForgotPasswordCode is step 2: it proves possession of the emailed
// code. The email resolves from the pending state of step 1; success stores
// the verified email/code pair for step 3.
func (s *AuthService) VerifyForgotPasswordCode(ctx context.Context, code string) error {
	email, err := s.resolvePendingEmail(ctx, "", msgNoForgotEmail)
	if err != nil {
		return err
	}

	cctx, cancel := context.WithTimeout(ctx, s.stepTimeout)
	defer cancel()

	if _, err := s.client.VerifyForgotPasswordCode(cctx, models.VerifyRequest{Code: code, Email: email}); err != nil {
		return apperrors.Classify("reset code verification", err)
	}

	if err := s.store.SaveForgotPasswordContext(ctx, email, code); err != nil {
		return apperrors.Classify("reset code verification", err)
	}

	s.mu.Lock()
	s.forgotEmail = email
	s.forgotCode = code
	s.mu.Unlock()

	return nil
}

// ResetPassword is step 3: it sets the new password using the verified
// email/code pair from step 2, preferring the in-memory pair over the
// persisted one. Without a complete pair the call fails locally and no
// request goes out. Success clears both the pending email and the reset
// context.
func (s *AuthService) ResetPassword(ctx context.Context, newPassword, confirmPassword string) error {
	if strings.TrimSpace(newPassword) == "" {
		return apperrors.New(apperrors.KindLocalValidation, msgPasswordRequired)
	}
	if newPassword != confirmPassword {
		return apperrors.New(apperrors.KindLocalValidation, msgPasswordMismatch)
	}

	s.mu.Lock()
	email, code := s.forgotEmail, s.forgotCode
	s.mu.Unlock()

	if email == "" || code == "" {
		var err error
		email, code, err = s.store.ForgotPasswordContext(ctx)
		if err != nil {
			return apperrors.Classify("password reset", err)
		}
	}
	if email == "" || code == "" {
		return apperrors.New(apperrors.KindMissingContext, msgNoResetContext)
	}

	cctx, cancel := context.WithTimeout(ctx, s.stepTimeout)
	defer cancel()

	_, err := s.client.ResetPassword(cctx, models.ResetPasswordRequest{
		Email:           email,
		Code:            code,
		NewPassword:     newPassword,
		ConfirmPassword: confirmPassword,
	})
	if err != nil {
		return apperrors.Classify("password reset", err)
	}

	if err := s.store.ClearPendingVerificationEmail(ctx); err != nil {
		s.log.Warn(ctx, "failed to clear pending email after reset", "error", err)
	}
	if err := s.store.ClearForgotPasswordContext(ctx); err != nil {
		s.log.Warn(ctx, "failed to clear reset context after reset", "error", err)
	}

	s.mu.Lock()
	s.pendingEmail = ""
	s.forgotEmail = ""
	s.forgotCode = ""
	s.mu.Unlock()

	s.log.Info(ctx, "password reset", "email", email)
	return nil
}

// RestoreSession rebuilds a session from the store for remembered logins.
// It returns ErrNoSession when remember-me is off, no token is stored, or
// the stored token has expired. An expired token is removed so the next
// start does not re-examine it.
func (s *AuthService) RestoreSession(ctx context.Context) (*Session, error) {
	remember, err := s.store.RememberMe(ctx)
	if err != nil {
		return nil, apperrors.Classify("session restore", err)
	}
	if !remember {
		return nil, ErrNoSession
	}

	token, err := s.store.Token(ctx)
	if err != nil {
		return nil, apperrors.Classify("session restore", err)
	}
	if strings.TrimSpace(token) == "" {
		return nil, ErrNoSession
	}

	if tokenExpired(token) {
		s.log.Info(ctx, "stored token expired, clearing session")
		if err := s.store.ClearToken(ctx); err != nil {
			s.log.Warn(ctx, "failed to clear expired token", "error", err)
		}
		return nil, ErrNoSession
	}

	user, err := s.store.User(ctx)
	if err != nil {
		return nil, apperrors.Classify("session restore", err)
	}

	return &Session{Token: token, User: user, RememberMe: true}, nil
}

// tokenExpired reports whether token carries an exp claim in the past. The
// signature is not checked here; only the server can do that. Tokens that do
// not parse as JWTs or carry no exp claim are treated as live.
func tokenExpired(token string) bool {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}

// FetchUser re-fetches the cached user by id and refreshes the cache.
func (s *AuthService) FetchUser(ctx context.Context) (*models.User, error) {
	cached, err := s.store.User(ctx)
	if err != nil {
		return nil, apperrors.Classify("user fetch", err)
	}
	if cached == nil || cached.ID == "" {
		return nil, apperrors.New(apperrors.KindMissingContext, "No signed-in user. Please log in first.")
	}

	cctx, cancel := context.WithTimeout(ctx, s.stepTimeout)
	defer cancel()

	user, err := s.client.GetUserByID(cctx, cached.ID)
	if err != nil {
		return nil, apperrors.Classify("user fetch", err)
	}
	if err := s.store.SaveUser(ctx, user); err != nil {
		return nil, apperrors.Classify("user fetch", err)
	}
	return user, nil
}

// Logout drops every trace of the session: token, remember-me, cached user
// and any in-progress verification or reset state.
func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.store.ClearToken(ctx); err != nil {
		return apperrors.Classify("logout", err)
	}
	if err := s.store.SaveUser(ctx, nil); err != nil {
		return apperrors.Classify("logout", err)
	}
	if err := s.store.ClearPendingVerificationEmail(ctx); err != nil {
		return apperrors.Classify("logout", err)
	}
	if err := s.store.ClearForgotPasswordContext(ctx); err != nil {
		return apperrors.Classify("logout", err)
	}

	s.mu.Lock()
	s.pendingEmail = ""
	s.forgotEmail = ""
	s.forgotCode = ""
	s.mu.Unlock()

	s.log.Info(ctx, "logged out")
	return nil
}

// resolvePendingEmail picks the verification email with precedence explicit
// argument > in-memory pending > persisted pending, failing with a
// missing-context error carrying missingMsg when none resolve.
func (s *AuthService) resolvePendingEmail(ctx context.Context, explicit, missingMsg string) (string, error) {
	if e := strings.TrimSpace(explicit); e != "" {
		return e, nil
	}

	s.mu.Lock()
	e := s.pendingEmail
	s.mu.Unlock()
	if e != "" {
		return e, nil
	}

	e, err := s.store.PendingVerificationEmail(ctx)
	if err != nil {
		return "", apperrors.Classify("email resolution", err)
	}
	if e == "" {
		return "", apperrors.New(apperrors.KindMissingContext, missingMsg)
	}
	return e, nil
}

func (s *AuthService) setPendingEmail(email string) {
	s.mu.Lock()
	s.pendingEmail = email
	s.mu.Unlock()
}
