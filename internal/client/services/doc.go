// Package services implements the authentication flows of the Sportera
// client: login, registration, email verification and the three-step
// password reset.
//
// # Overview
//
// AuthService is the only coordinator. Each operation issues at most one
// request through the api package (the transport chain handles retries
// underneath), bounds it with a caller-side deadline, and updates the
// session store only after a fully successful response. Pre-flight
// validation failures and missing flow state are reported as local errors
// without a request being attempted.
//
// # Flow state
//
// The verification email and the verified reset code live in two places:
// in-memory on the AuthService for the common same-process case, and in the
// session store so an interrupted flow survives a restart. Reads prefer the
// in-memory copy.
package services
