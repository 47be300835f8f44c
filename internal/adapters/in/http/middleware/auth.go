// internal/adapters/in/http/middleware/auth.go
package middleware

import (
	fbauth "firebase.google.com/go/v4/auth"
)

// FirebaseAuthClient is an alias for the firebase auth client so router
// wiring can take *middleware.FirebaseAuthClient.
type FirebaseAuthClient = fbauth.Client

// context keys
type ctxKey struct{ name string }

var (
	ctxKeyUID       = ctxKey{name: "uid"}
	ctxKeyEmail     = ctxKey{name: "email"}
	ctxKeyRequestID = ctxKey{name: "requestId"}
)
