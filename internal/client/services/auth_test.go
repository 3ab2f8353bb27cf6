package services

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/aymenbt/sportera/internal/client/api"
	"github.com/aymenbt/sportera/internal/client/apperrors"
	"github.com/aymenbt/sportera/internal/client/models"
	"github.com/aymenbt/sportera/internal/client/session"
	"github.com/aymenbt/sportera/internal/logging"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

// fakeClient is a canned api.Client recording the last request per endpoint.
type fakeClient struct {
	LoginCalls    int
	RegisterCalls int
	VerifyCalls   int
	ResendCalls   int
	ForgotCalls   int
	VerifyFPCalls int
	ResetCalls    int
	GetUserCalls  int

	LastLogin    models.LoginRequest
	LastRegister models.RegisterRequest
	LastVerify   models.VerifyRequest
	LastEmail    models.EmailRequest
	LastVerifyFP models.VerifyRequest
	LastReset    models.ResetPasswordRequest
	LastUserID   string

	LoginResp    *models.AuthResponse
	RegisterResp *models.AuthResponse
	UserResp     *models.User

	Err        error
	GetUserErr error
	LoginDelay time.Duration
}

func (f *fakeClient) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	f.LoginCalls++
	f.LastLogin = req
	if f.LoginDelay > 0 {
		select {
		case <-time.After(f.LoginDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.Err != nil {
		return nil, f.Err
	}
	return f.LoginResp, nil
}

func (f *fakeClient) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	f.RegisterCalls++
	f.LastRegister = req
	if f.Err != nil {
		return nil, f.Err
	}
	return f.RegisterResp, nil
}

func (f *fakeClient) VerifyEmail(ctx context.Context, req models.VerifyRequest) (*models.AuthResponse, error) {
	f.VerifyCalls++
	f.LastVerify = req
	if f.Err != nil {
		return nil, f.Err
	}
	return &models.AuthResponse{}, nil
}

func (f *fakeClient) ResendVerification(ctx context.Context, req models.EmailRequest) (*models.AuthResponse, error) {
	f.ResendCalls++
	f.LastEmail = req
	if f.Err != nil {
		return nil, f.Err
	}
	return &models.AuthResponse{}, nil
}

func (f *fakeClient) ForgotPassword(ctx context.Context, req models.EmailRequest) (*models.AuthResponse, error) {
	f.ForgotCalls++
	f.LastEmail = req
	if f.Err != nil {
		return nil, f.Err
	}
	return &models.AuthResponse{}, nil
}

func (f *fakeClient) VerifyForgotPasswordCode(ctx context.Context, req models.VerifyRequest) (*models.AuthResponse, error) {
	f.VerifyFPCalls++
	f.LastVerifyFP = req
	if f.Err != nil {
		return nil, f.Err
	}
	return &models.AuthResponse{}, nil
}

func (f *fakeClient) ResetPassword(ctx context.Context, req models.ResetPasswordRequest) (*models.AuthResponse, error) {
	f.ResetCalls++
	f.LastReset = req
	if f.Err != nil {
		return nil, f.Err
	}
	return &models.AuthResponse{}, nil
}

func (f *fakeClient) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	f.GetUserCalls++
	f.LastUserID = id
	if f.GetUserErr != nil {
		return nil, f.GetUserErr
	}
	if f.Err != nil {
		return nil, f.Err
	}
	if f.UserResp != nil {
		return f.UserResp, nil
	}
	return &models.User{ID: id}, nil
}

var _ api.Client = (*fakeClient)(nil)

func newTestService(t *testing.T, client *fakeClient) (*AuthService, *session.Store) {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "session.db")
	store, err := session.InitDatabase(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return NewAuthService(client, store, log), store
}

func okAuthResponse(token, id, email string) *models.AuthResponse {
	return &models.AuthResponse{
		AccessToken: token,
		User:        &models.User{ID: id, Email: email, IsVerified: true},
	}
}

// unsignedJWT builds a parseable token with the given expiry.
func unsignedJWT(t *testing.T, exp time.Time) string {
	t.Helper()
	header, _ := json.Marshal(map[string]string{"alg": "HS256", "typ": "JWT"})
	claims, _ := json.Marshal(map[string]int64{"exp": exp.Unix()})
	enc := base64.RawURLEncoding
	return fmt.Sprintf("%s.%s.%s", enc.EncodeToString(header), enc.EncodeToString(claims), enc.EncodeToString([]byte("sig")))
}

// --- login ---

func TestLogin_PersistsTokenUserAndRememberMe(t *testing.T) {
	client := &fakeClient{LoginResp: okAuthResponse("jwt-1", "u1", "a@x.com")}
	svc, store := newTestService(t, client)
	ctx := context.Background()

	sess, err := svc.Login(ctx, "a@x.com", "pw", true)
	require.NoError(t, err)
	require.Equal(t, "jwt-1", sess.Token)
	require.True(t, sess.RememberMe)

	token, err := store.Token(ctx)
	require.NoError(t, err)
	require.Equal(t, "jwt-1", token)

	remember, err := store.RememberMe(ctx)
	require.NoError(t, err)
	require.True(t, remember)

	user, err := store.User(ctx)
	require.NoError(t, err)
	require.Equal(t, "u1", user.ID)

	require.Equal(t, models.LoginRequest{Email: "a@x.com", Password: "pw"}, client.LastLogin)
}

func TestLogin_RefreshesUserByID(t *testing.T) {
	client := &fakeClient{
		LoginResp: okAuthResponse("jwt-1", "u1", "a@x.com"),
		UserResp:  &models.User{ID: "u1", Email: "a@x.com", FirstName: "Amine", IsVerified: true},
	}
	svc, store := newTestService(t, client)

	sess, err := svc.Login(context.Background(), "a@x.com", "pw", false)
	require.NoError(t, err)
	require.Equal(t, 1, client.GetUserCalls)
	require.Equal(t, "u1", client.LastUserID)
	require.Equal(t, "Amine", sess.User.FirstName)

	cached, err := store.User(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Amine", cached.FirstName)
}

func TestLogin_FallsBackToEmbeddedUserWhenRefreshFails(t *testing.T) {
	client := &fakeClient{
		LoginResp:  okAuthResponse("jwt-1", "u1", "a@x.com"),
		GetUserErr: fmt.Errorf("boom"),
	}
	svc, store := newTestService(t, client)

	// a failing refresh must not fail the login
	sess, err := svc.Login(context.Background(), "a@x.com", "pw", false)
	require.NoError(t, err)
	require.NotNil(t, sess.User)
	require.Equal(t, "u1", sess.User.ID)

	cached, err := store.User(context.Background())
	require.NoError(t, err)
	require.Equal(t, "u1", cached.ID)
}

func TestLogin_Idempotent(t *testing.T) {
	client := &fakeClient{LoginResp: okAuthResponse("jwt-1", "u1", "a@x.com")}
	svc, store := newTestService(t, client)
	ctx := context.Background()

	_, err := svc.Login(ctx, "a@x.com", "pw", true)
	require.NoError(t, err)
	_, err = svc.Login(ctx, "a@x.com", "pw", true)
	require.NoError(t, err)

	token, err := store.Token(ctx)
	require.NoError(t, err)
	require.Equal(t, "jwt-1", token)

	remember, err := store.RememberMe(ctx)
	require.NoError(t, err)
	require.True(t, remember)
	require.Equal(t, 2, client.LoginCalls)
}

func TestLogin_DeadlineTripYieldsColdStartMessage(t *testing.T) {
	client := &fakeClient{LoginDelay: time.Second, LoginResp: okAuthResponse("jwt-1", "u1", "a@x.com")}
	svc, store := newTestService(t, client)
	svc.loginTimeout = 10 * time.Millisecond

	_, err := svc.Login(context.Background(), "a@x.com", "pw", true)
	require.Error(t, err)

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, apperrors.KindTimeout, appErr.Kind)
	require.Equal(t, msgServerWakingUp, appErr.Message)

	// no partial state
	token, err := store.Token(context.Background())
	require.NoError(t, err)
	require.Empty(t, token)
}

func TestLogin_CallerCancellationIsNotColdStart(t *testing.T) {
	client := &fakeClient{LoginDelay: time.Second}
	svc, _ := newTestService(t, client)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := svc.Login(ctx, "a@x.com", "pw", true)
	require.Error(t, err)

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, apperrors.KindCancelled, appErr.Kind)
}

func TestLogin_NoTokenInResponseSkipsRememberMe(t *testing.T) {
	client := &fakeClient{LoginResp: &models.AuthResponse{User: &models.User{ID: "u1"}}}
	svc, store := newTestService(t, client)

	sess, err := svc.Login(context.Background(), "a@x.com", "pw", true)
	require.NoError(t, err)
	require.Empty(t, sess.Token)
	require.False(t, sess.RememberMe)

	remember, err := store.RememberMe(context.Background())
	require.NoError(t, err)
	require.False(t, remember)
}

// --- register ---

func validRegisterParams() RegisterParams {
	return RegisterParams{
		FirstName: "Amine",
		LastName:  "Ben Taarit",
		Email:     "a@x.com",
		Phone:     "12345678",
		BirthDate: "2000-01-01",
		Password:  "S3cret!pw",
	}
}

func TestRegister_BlankFieldFailsLocallyWithoutRequest(t *testing.T) {
	client := &fakeClient{}
	svc, _ := newTestService(t, client)

	for _, mutate := range []func(*RegisterParams){
		func(p *RegisterParams) { p.FirstName = "" },
		func(p *RegisterParams) { p.LastName = "  " },
		func(p *RegisterParams) { p.Email = "" },
		func(p *RegisterParams) { p.Phone = "" },
		func(p *RegisterParams) { p.BirthDate = "" },
		func(p *RegisterParams) { p.Password = "" },
	} {
		p := validRegisterParams()
		mutate(&p)

		_, err := svc.Register(context.Background(), p)
		var appErr *apperrors.Error
		require.ErrorAs(t, err, &appErr)
		require.Equal(t, apperrors.KindLocalValidation, appErr.Kind)
		require.Equal(t, msgFieldsRequired, appErr.Message)
	}
	require.Zero(t, client.RegisterCalls)
}

func TestRegister_MalformedEmailFailsLocally(t *testing.T) {
	client := &fakeClient{}
	svc, _ := newTestService(t, client)

	p := validRegisterParams()
	p.Email = "not-an-email"

	_, err := svc.Register(context.Background(), p)
	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, apperrors.KindLocalValidation, appErr.Kind)
	require.Equal(t, msgInvalidEmail, appErr.Message)
	require.Zero(t, client.RegisterCalls)
}

func TestRegister_WithoutTokenSetsPendingVerification(t *testing.T) {
	client := &fakeClient{RegisterResp: &models.AuthResponse{
		User: &models.User{ID: "u1", Email: "a@x.com"},
	}}
	svc, store := newTestService(t, client)
	ctx := context.Background()

	sess, err := svc.Register(ctx, validRegisterParams())
	require.NoError(t, err)
	require.Empty(t, sess.Token)

	pending, err := store.PendingVerificationEmail(ctx)
	require.NoError(t, err)
	require.Equal(t, "a@x.com", pending)

	token, err := store.Token(ctx)
	require.NoError(t, err)
	require.Empty(t, token)
}

func TestRegister_PrefersServerEchoedEmail(t *testing.T) {
	client := &fakeClient{RegisterResp: &models.AuthResponse{
		User: &models.User{ID: "u1", Email: "normalized@x.com"},
	}}
	svc, store := newTestService(t, client)

	p := validRegisterParams()
	p.Email = "Normalized@X.com"
	_, err := svc.Register(context.Background(), p)
	require.NoError(t, err)

	pending, err := store.PendingVerificationEmail(context.Background())
	require.NoError(t, err)
	require.Equal(t, "normalized@x.com", pending)
}

func TestRegister_ConflictYieldsVerbatimServerMessage(t *testing.T) {
	client := &fakeClient{Err: &api.StatusError{
		Code: http.StatusConflict,
		Body: []byte(`{"message":"Email already exists"}`),
	}}
	svc, _ := newTestService(t, client)

	_, err := svc.Register(context.Background(), validRegisterParams())
	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, apperrors.KindClientError, appErr.Kind)
	require.Equal(t, "Email already exists", appErr.Message)
}

// --- email verification ---

func TestVerifyEmail_ExplicitArgumentWinsOverPendingState(t *testing.T) {
	client := &fakeClient{}
	svc, store := newTestService(t, client)
	ctx := context.Background()

	require.NoError(t, store.SavePendingVerificationEmail(ctx, "persisted@x.com"))
	svc.setPendingEmail("memory@x.com")

	require.NoError(t, svc.VerifyEmail(ctx, "123456", "explicit@x.com"))
	require.Equal(t, "explicit@x.com", client.LastVerify.Email)
	require.Equal(t, "123456", client.LastVerify.Code)
}

func TestVerifyEmail_MemoryBeatsPersisted(t *testing.T) {
	client := &fakeClient{}
	svc, store := newTestService(t, client)
	ctx := context.Background()

	require.NoError(t, store.SavePendingVerificationEmail(ctx, "persisted@x.com"))
	svc.setPendingEmail("memory@x.com")

	require.NoError(t, svc.VerifyEmail(ctx, "123456", ""))
	require.Equal(t, "memory@x.com", client.LastVerify.Email)
}

func TestVerifyEmail_FallsBackToPersistedPending(t *testing.T) {
	client := &fakeClient{}
	svc, store := newTestService(t, client)
	ctx := context.Background()

	require.NoError(t, store.SavePendingVerificationEmail(ctx, "persisted@x.com"))

	require.NoError(t, svc.VerifyEmail(ctx, "123456", ""))
	require.Equal(t, "persisted@x.com", client.LastVerify.Email)
}

func TestVerifyEmail_NoEmailAnywhereFailsWithoutRequest(t *testing.T) {
	client := &fakeClient{}
	svc, _ := newTestService(t, client)

	err := svc.VerifyEmail(context.Background(), "123456", "")
	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, apperrors.KindMissingContext, appErr.Kind)
	require.Equal(t, msgNoPendingEmail, appErr.Message)
	require.Zero(t, client.VerifyCalls)
}

func TestVerifyEmail_SuccessClearsPendingEmail(t *testing.T) {
	client := &fakeClient{}
	svc, store := newTestService(t, client)
	ctx := context.Background()

	require.NoError(t, store.SavePendingVerificationEmail(ctx, "a@x.com"))
	require.NoError(t, svc.VerifyEmail(ctx, "123456", ""))

	pending, err := store.PendingVerificationEmail(ctx)
	require.NoError(t, err)
	require.Empty(t, pending)
}

func TestResendVerification_ValidatesEmailFormat(t *testing.T) {
	client := &fakeClient{}
	svc, _ := newTestService(t, client)

	err := svc.ResendVerification(context.Background(), "nope")
	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, apperrors.KindLocalValidation, appErr.Kind)
	require.Zero(t, client.ResendCalls)

	require.NoError(t, svc.ResendVerification(context.Background(), " a@x.com "))
	require.Equal(t, "a@x.com", client.LastEmail.Email)
}

// --- forgot password ---

func TestForgotPasswordFlow_HappyPath(t *testing.T) {
	client := &fakeClient{}
	svc, store := newTestService(t, client)
	ctx := context.Background()

	require.NoError(t, svc.ForgotPassword(ctx, "u@x.com"))
	pending, err := store.PendingVerificationEmail(ctx)
	require.NoError(t, err)
	require.Equal(t, "u@x.com", pending)

	require.NoError(t, svc.VerifyForgotPasswordCode(ctx, "123456"))
	require.Equal(t, models.VerifyRequest{Code: "123456", Email: "u@x.com"}, client.LastVerifyFP)

	email, code, err := store.ForgotPasswordContext(ctx)
	require.NoError(t, err)
	require.Equal(t, "u@x.com", email)
	require.Equal(t, "123456", code)

	require.NoError(t, svc.ResetPassword(ctx, "NewP@ss1", "NewP@ss1"))
	require.Equal(t, models.ResetPasswordRequest{
		Email:           "u@x.com",
		Code:            "123456",
		NewPassword:     "NewP@ss1",
		ConfirmPassword: "NewP@ss1",
	}, client.LastReset)

	// both pending structures cleared
	pending, err = store.PendingVerificationEmail(ctx)
	require.NoError(t, err)
	require.Empty(t, pending)

	email, code, err = store.ForgotPasswordContext(ctx)
	require.NoError(t, err)
	require.Empty(t, email)
	require.Empty(t, code)
}

func TestForgotPassword_DropsStaleResetContext(t *testing.T) {
	client := &fakeClient{}
	svc, store := newTestService(t, client)
	ctx := context.Background()

	require.NoError(t, store.SaveForgotPasswordContext(ctx, "old@x.com", "999999"))

	require.NoError(t, svc.ForgotPassword(ctx, "new@x.com"))

	email, code, err := store.ForgotPasswordContext(ctx)
	require.NoError(t, err)
	require.Empty(t, email)
	require.Empty(t, code)
}

func TestVerifyForgotPasswordCode_NoPendingEmailFailsWithoutRequest(t *testing.T) {
	client := &fakeClient{}
	svc, _ := newTestService(t, client)

	err := svc.VerifyForgotPasswordCode(context.Background(), "123456")
	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, apperrors.KindMissingContext, appErr.Kind)
	require.Equal(t, msgNoForgotEmail, appErr.Message)
	require.Zero(t, client.VerifyFPCalls)
}

func TestResetPassword_NoContextFailsWithoutRequest(t *testing.T) {
	client := &fakeClient{}
	svc, _ := newTestService(t, client)

	err := svc.ResetPassword(context.Background(), "NewP@ss1", "NewP@ss1")
	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, apperrors.KindMissingContext, appErr.Kind)
	require.Equal(t, msgNoResetContext, appErr.Message)
	require.Zero(t, client.ResetCalls)
}

func TestResetPassword_UsesPersistedContextAcrossRestart(t *testing.T) {
	client := &fakeClient{}
	svc, store := newTestService(t, client)
	ctx := context.Background()

	// simulates a context written before a restart: only the store has it
	require.NoError(t, store.SaveForgotPasswordContext(ctx, "u@x.com", "123456"))

	require.NoError(t, svc.ResetPassword(ctx, "NewP@ss1", "NewP@ss1"))
	require.Equal(t, "u@x.com", client.LastReset.Email)
	require.Equal(t, "123456", client.LastReset.Code)
}

func TestResetPassword_MismatchFailsLocally(t *testing.T) {
	client := &fakeClient{}
	svc, store := newTestService(t, client)
	require.NoError(t, store.SaveForgotPasswordContext(context.Background(), "u@x.com", "123456"))

	err := svc.ResetPassword(context.Background(), "NewP@ss1", "other")
	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, apperrors.KindLocalValidation, appErr.Kind)
	require.Equal(t, msgPasswordMismatch, appErr.Message)
	require.Zero(t, client.ResetCalls)
}

// --- restore / logout ---

func TestRestoreSession_RequiresRememberMe(t *testing.T) {
	client := &fakeClient{LoginResp: okAuthResponse(unsignedJWT(t, time.Now().Add(time.Hour)), "u1", "a@x.com")}
	svc, _ := newTestService(t, client)
	ctx := context.Background()

	_, err := svc.Login(ctx, "a@x.com", "pw", false)
	require.NoError(t, err)

	_, err = svc.RestoreSession(ctx)
	require.ErrorIs(t, err, ErrNoSession)
}

func TestRestoreSession_ReturnsRememberedSession(t *testing.T) {
	token := unsignedJWT(t, time.Now().Add(time.Hour))
	client := &fakeClient{LoginResp: okAuthResponse(token, "u1", "a@x.com")}
	svc, _ := newTestService(t, client)
	ctx := context.Background()

	_, err := svc.Login(ctx, "a@x.com", "pw", true)
	require.NoError(t, err)

	sess, err := svc.RestoreSession(ctx)
	require.NoError(t, err)
	require.Equal(t, token, sess.Token)
	require.True(t, sess.RememberMe)
	require.Equal(t, "u1", sess.User.ID)
}

func TestRestoreSession_ExpiredTokenIsCleared(t *testing.T) {
	token := unsignedJWT(t, time.Now().Add(-time.Hour))
	client := &fakeClient{LoginResp: okAuthResponse(token, "u1", "a@x.com")}
	svc, store := newTestService(t, client)
	ctx := context.Background()

	_, err := svc.Login(ctx, "a@x.com", "pw", true)
	require.NoError(t, err)

	_, err = svc.RestoreSession(ctx)
	require.ErrorIs(t, err, ErrNoSession)

	stored, err := store.Token(ctx)
	require.NoError(t, err)
	require.Empty(t, stored)
}

func TestRestoreSession_OpaqueTokenIsKept(t *testing.T) {
	client := &fakeClient{LoginResp: okAuthResponse("not-a-jwt", "u1", "a@x.com")}
	svc, _ := newTestService(t, client)
	ctx := context.Background()

	_, err := svc.Login(ctx, "a@x.com", "pw", true)
	require.NoError(t, err)

	sess, err := svc.RestoreSession(ctx)
	require.NoError(t, err)
	require.Equal(t, "not-a-jwt", sess.Token)
}

func TestLogout_DropsAllSessionState(t *testing.T) {
	client := &fakeClient{LoginResp: okAuthResponse("jwt-1", "u1", "a@x.com")}
	svc, store := newTestService(t, client)
	ctx := context.Background()

	_, err := svc.Login(ctx, "a@x.com", "pw", true)
	require.NoError(t, err)
	require.NoError(t, store.SavePendingVerificationEmail(ctx, "a@x.com"))
	require.NoError(t, store.SaveForgotPasswordContext(ctx, "a@x.com", "123456"))

	require.NoError(t, svc.Logout(ctx))

	token, err := store.Token(ctx)
	require.NoError(t, err)
	require.Empty(t, token)

	remember, err := store.RememberMe(ctx)
	require.NoError(t, err)
	require.False(t, remember)

	user, err := store.User(ctx)
	require.NoError(t, err)
	require.Nil(t, user)

	pending, err := store.PendingVerificationEmail(ctx)
	require.NoError(t, err)
	require.Empty(t, pending)

	email, code, err := store.ForgotPasswordContext(ctx)
	require.NoError(t, err)
	require.Empty(t, email)
	require.Empty(t, code)
}

// --- fetch user ---

func TestFetchUser_RequiresCachedUser(t *testing.T) {
	client := &fakeClient{}
	svc, _ := newTestService(t, client)

	_, err := svc.FetchUser(context.Background())
	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, apperrors.KindMissingContext, appErr.Kind)
	require.Zero(t, client.GetUserCalls)
}

func TestFetchUser_RefreshesCache(t *testing.T) {
	client := &fakeClient{
		UserResp: &models.User{ID: "u1", Email: "a@x.com", FirstName: "Amine"},
	}
	svc, store := newTestService(t, client)
	ctx := context.Background()

	require.NoError(t, store.SaveUser(ctx, &models.User{ID: "u1", Email: "a@x.com"}))

	user, err := svc.FetchUser(ctx)
	require.NoError(t, err)
	require.Equal(t, "Amine", user.FirstName)

	cached, err := store.User(ctx)
	require.NoError(t, err)
	require.Equal(t, "Amine", cached.FirstName)
}
