package auth

// TokenProvider supplies an access token for API authentication.
// An empty token means the request goes out unauthenticated.
type TokenProvider interface {
	AccessToken() (string, error)
}

// StaticToken is a fixed token, handy for scripts and tests.
type StaticToken string

// AccessToken returns the token verbatim.
func (s StaticToken) AccessToken() (string, error) { return string(s), nil }
