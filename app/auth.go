package app

import (
	"context"
	"time"

	"github.com/skypointsocial/skypoint/domain"
)

// AuthResult is what every successful login-style call returns.
type AuthResult struct {
	User      domain.User
	Token     string
	SessionID string
}

// RegisterRequest carries the sign-up form.
type RegisterRequest struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// AuthService exchanges credentials for a bearer token.
type AuthService interface {
	// Login authenticates with email and password.
	Login(ctx context.Context, email, password string) (AuthResult, error)

	// Register creates an account and signs it in.
	Register(ctx context.Context, req RegisterRequest) (AuthResult, error)

	// OAuthLogin forwards a third-party ID token verbatim to the backend.
	OAuthLogin(ctx context.Context, provider, idToken string) (AuthResult, error)

	// Logout ends the server session and reports how long it lasted. ok is
	// false when the server did not say.
	Logout(ctx context.Context) (d time.Duration, ok bool, err error)
}
