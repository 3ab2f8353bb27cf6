package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

func (a *App) getStatus() string {
	if a.session == nil || a.session.User == nil {
		return ""
	}
	return fmt.Sprintf("(%s)", a.session.User.Email)
}

// Root runs the command loop. It reads a line, parses the first token as the
// command, and dispatches to methods on a. The loop exits on EOF or when the
// user types "exit" or "quit".
func (a *App) Root(ctx context.Context) {

	fmt.Println("Welcome to Sportera CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Printf("sportera %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Println("Available commands: whoami, refresh, logout, exit")
			} else {
				fmt.Println("Available commands: register, login, verify, resend, forgot, verifycode, resetpw, exit")
			}

		case "register":
			a.Register(ctx)
		case "login":
			a.Login(ctx)
		case "verify":
			a.VerifyEmail(ctx, args)
		case "resend":
			a.ResendVerification(ctx, args)
		case "forgot":
			a.ForgotPassword(ctx, args)
		case "verifycode":
			a.VerifyForgotPasswordCode(ctx, args)
		case "resetpw":
			a.ResetPassword(ctx)
		case "whoami":
			a.WhoAmI(ctx)
		case "refresh":
			a.Refresh(ctx)
		case "logout":
			a.Logout(ctx)
		case "exit", "quit":
			fmt.Println("Bye!")
			return
		default:
			fmt.Println("Unknown command:", cmd)
		}
	}

}
