package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/aymenbt/sportera/internal/client/apperrors"
	"github.com/aymenbt/sportera/internal/client/services"
	"github.com/aymenbt/sportera/internal/common"
)

// errorMessage extracts the user-facing message from a classified error.
func errorMessage(err error) string {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

func (a *App) Login(ctx context.Context) {

	email, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}

	password, err := GetPassword("Enter password", os.Stdout)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}
	defer common.WipeByteArray(password)

	remember, err := GetSimpleText(a.reader, "Remember me? (y/n)", os.Stdout)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}
	rememberMe := strings.EqualFold(remember, "y") || strings.EqualFold(remember, "yes")

	sess, err := a.auth.Login(ctx, email, string(password), rememberMe)
	if err != nil {
		fmt.Println("Login failed:", errorMessage(err))
		return
	}

	a.session = sess
	fmt.Println("Login successful")
}

func (a *App) Register(ctx context.Context) {

	var p services.RegisterParams
	var err error

	prompts := []struct {
		dst    *string
		prompt string
	}{
		{&p.FirstName, "Enter first name"},
		{&p.LastName, "Enter last name"},
		{&p.Email, "Enter email"},
		{&p.Phone, "Enter phone"},
		{&p.BirthDate, "Enter birth date (YYYY-MM-DD)"},
		{&p.Role, "Enter role (optional)"},
	}
	for _, q := range prompts {
		*q.dst, err = GetSimpleText(a.reader, q.prompt, os.Stdout)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			return
		}
	}

	password, err := GetPassword("Enter password", os.Stdout)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}
	defer common.WipeByteArray(password)
	p.Password = string(password)

	sess, err := a.auth.Register(ctx, p)
	if err != nil {
		fmt.Println("Registration failed:", errorMessage(err))
		return
	}

	if sess.Token == "" {
		fmt.Println("Registration successful. Check your inbox for a verification code, then run 'verify'.")
		return
	}
	a.session = sess
	fmt.Println("Registration successful")
}

// VerifyEmail submits the emailed verification code. An optional argument
// overrides the pending email: verify [email].
func (a *App) VerifyEmail(ctx context.Context, args []string) {

	email := ""
	if len(args) > 0 {
		email = args[0]
	}

	code, err := GetSimpleText(a.reader, "Enter verification code", os.Stdout)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}

	if err := a.auth.VerifyEmail(ctx, code, email); err != nil {
		fmt.Println("Verification failed:", errorMessage(err))
		return
	}
	fmt.Println("Email verified. You can now log in.")
}

func (a *App) ResendVerification(ctx context.Context, args []string) {

	email := ""
	if len(args) > 0 {
		email = args[0]
	} else {
		var err error
		email, err = GetSimpleText(a.reader, "Enter email", os.Stdout)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			return
		}
	}

	if err := a.auth.ResendVerification(ctx, email); err != nil {
		fmt.Println("Resend failed:", errorMessage(err))
		return
	}
	fmt.Println("Verification code sent")
}

func (a *App) ForgotPassword(ctx context.Context, args []string) {

	email := ""
	if len(args) > 0 {
		email = args[0]
	} else {
		var err error
		email, err = GetSimpleText(a.reader, "Enter email", os.Stdout)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			return
		}
	}

	if err := a.auth.ForgotPassword(ctx, email); err != nil {
		fmt.Println("Request failed:", errorMessage(err))
		return
	}
	fmt.Println("Reset code sent. Run 'verifycode' once you have it.")
}

func (a *App) VerifyForgotPasswordCode(ctx context.Context, args []string) {

	code := ""
	if len(args) > 0 {
		code = args[0]
	} else {
		var err error
		code, err = GetSimpleText(a.reader, "Enter reset code", os.Stdout)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			return
		}
	}

	if err := a.auth.VerifyForgotPasswordCode(ctx, code); err != nil {
		fmt.Println("Code verification failed:", errorMessage(err))
		return
	}
	fmt.Println("Code accepted. Run 'resetpw' to choose a new password.")
}

func (a *App) ResetPassword(ctx context.Context) {

	newPassword, err := GetPassword("Enter new password", os.Stdout)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}
	defer common.WipeByteArray(newPassword)

	confirm, err := GetPassword("Confirm new password", os.Stdout)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}
	defer common.WipeByteArray(confirm)

	if err := a.auth.ResetPassword(ctx, string(newPassword), string(confirm)); err != nil {
		fmt.Println("Password reset failed:", errorMessage(err))
		return
	}
	fmt.Println("Password reset. Log in with your new password.")
}

func (a *App) WhoAmI(ctx context.Context) {
	if a.session == nil || a.session.User == nil {
		fmt.Println("Not logged in")
		return
	}
	u := a.session.User
	fmt.Printf("%s %s <%s> verified=%t\n", u.FirstName, u.LastName, u.Email, u.IsVerified)
}

// Refresh re-fetches the current user from the server.
func (a *App) Refresh(ctx context.Context) {
	user, err := a.auth.FetchUser(ctx)
	if err != nil {
		fmt.Println("Refresh failed:", errorMessage(err))
		return
	}
	if a.session != nil {
		a.session.User = user
	}
	fmt.Println("Profile refreshed")
}

func (a *App) Logout(ctx context.Context) {
	if err := a.auth.Logout(ctx); err != nil {
		fmt.Println("Logout failed:", errorMessage(err))
		return
	}
	a.session = nil
	fmt.Println("Logged out")
}
