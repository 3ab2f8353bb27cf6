// Package cli provides the interactive Sportera command-line client.
//
// It wires configuration, the local session store, the HTTP client and the
// auth flows into an interactive loop. A remembered session is restored on
// start; otherwise the user logs in, registers, or walks the email
// verification and password reset flows from the prompt.
//
// Key commands:
//   - register / login / logout
//   - verify / resend — email verification
//   - forgot / verifycode / resetpw — three-step password reset
//   - whoami / refresh — inspect and re-fetch the signed-in user
//
// The loop is started via App.Run(ctx), which blocks until the user exits.
package cli
