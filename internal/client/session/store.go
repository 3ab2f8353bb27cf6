package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/aymenbt/sportera/internal/client/models"
	"github.com/aymenbt/sportera/internal/dbx"
)

// Storage keys. Logical names are part of the on-disk contract and must not
// change between releases.
const (
	KeyToken                    = "jwt_token"
	KeyRememberMe               = "remember_me"
	KeyPendingVerificationEmail = "pending_verification_email"
	KeyForgotPasswordEmail      = "forgot_password_email"
	KeyForgotPasswordCode       = "forgot_password_code"
	KeyUser                     = "user_json"
)

// ErrNoToken is returned when remember-me is asked for without a stored
// token. Remember-me may only be set while a token exists.
var ErrNoToken = errors.New("no token in session")

// Store is the durable session state of the client: access token,
// remember-me flag, cached user, and the in-progress verification /
// password-reset markers.
//
// Invariant: remember_me never outlives jwt_token. ClearToken removes both;
// SaveRememberMe(true) refuses to run without a stored token. Multi-key
// updates run in one transaction so a crash cannot leave half a
// forgot-password context behind.
type Store struct {
	db *sql.DB
}

// NewStore wraps an already-migrated session database.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) repo() Repository {
	return NewSQLiteRepository(s.db)
}

func (s *Store) getString(ctx context.Context, key string) (string, error) {
	v, err := s.repo().Get(ctx, key)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

// --- Token ---

// Token returns the stored access token, or "" when absent.
func (s *Store) Token(ctx context.Context) (string, error) {
	return s.getString(ctx, KeyToken)
}

func (s *Store) SaveToken(ctx context.Context, token string) error {
	return s.repo().Set(ctx, KeyToken, []byte(token))
}

// ClearToken removes the token and, with it, the remember-me flag: a
// remembered session without a token is an inconsistency this store never
// allows to persist.
func (s *Store) ClearToken(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := NewSQLiteRepository(tx)
		if err := repo.Delete(ctx, KeyToken); err != nil {
			return err
		}
		return repo.Delete(ctx, KeyRememberMe)
	})
}

// --- Remember me ---

func (s *Store) RememberMe(ctx context.Context) (bool, error) {
	v, err := s.getString(ctx, KeyRememberMe)
	if err != nil {
		return false, err
	}
	return v == "true", nil
}

// SaveRememberMe persists the remember-me flag. Turning it on requires a
// stored token (returns ErrNoToken otherwise); turning it off removes the
// key.
func (s *Store) SaveRememberMe(ctx context.Context, on bool) error {
	if !on {
		return s.repo().Delete(ctx, KeyRememberMe)
	}
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := NewSQLiteRepository(tx)
		token, err := repo.Get(ctx, KeyToken)
		if err != nil {
			return err
		}
		if strings.TrimSpace(string(token)) == "" {
			return ErrNoToken
		}
		return repo.Set(ctx, KeyRememberMe, []byte("true"))
	})
}

// --- Cached user ---

// User returns the cached user, or nil when none is stored.
func (s *Store) User(ctx context.Context) (*models.User, error) {
	v, err := s.repo().Get(ctx, KeyUser)
	if err != nil {
		return nil, err
	}
	if len(v) == 0 {
		return nil, nil
	}
	var u models.User
	if err := json.Unmarshal(v, &u); err != nil {
		return nil, fmt.Errorf("failed to decode cached user: %w", err)
	}
	return &u, nil
}

// SaveUser caches the user as JSON; a nil user removes the cache entry.
func (s *Store) SaveUser(ctx context.Context, u *models.User) error {
	if u == nil {
		return s.repo().Delete(ctx, KeyUser)
	}
	v, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}
	return s.repo().Set(ctx, KeyUser, v)
}

// --- Pending verification email ---

func (s *Store) PendingVerificationEmail(ctx context.Context) (string, error) {
	return s.getString(ctx, KeyPendingVerificationEmail)
}

func (s *Store) SavePendingVerificationEmail(ctx context.Context, email string) error {
	return s.repo().Set(ctx, KeyPendingVerificationEmail, []byte(email))
}

func (s *Store) ClearPendingVerificationEmail(ctx context.Context) error {
	return s.repo().Delete(ctx, KeyPendingVerificationEmail)
}

// --- Forgot-password context ---

// ForgotPasswordContext returns the verified email/code pair of an
// in-progress password reset. Either value is "" when absent.
func (s *Store) ForgotPasswordContext(ctx context.Context) (email, code string, err error) {
	email, err = s.getString(ctx, KeyForgotPasswordEmail)
	if err != nil {
		return "", "", err
	}
	code, err = s.getString(ctx, KeyForgotPasswordCode)
	if err != nil {
		return "", "", err
	}
	return email, code, nil
}

// SaveForgotPasswordContext stores the pair atomically: step 3 of the reset
// flow must never observe an email without its code.
func (s *Store) SaveForgotPasswordContext(ctx context.Context, email, code string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := NewSQLiteRepository(tx)
		if err := repo.Set(ctx, KeyForgotPasswordEmail, []byte(email)); err != nil {
			return err
		}
		return repo.Set(ctx, KeyForgotPasswordCode, []byte(code))
	})
}

func (s *Store) ClearForgotPasswordContext(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := NewSQLiteRepository(tx)
		if err := repo.Delete(ctx, KeyForgotPasswordEmail); err != nil {
			return err
		}
		return repo.Delete(ctx, KeyForgotPasswordCode)
	})
}
