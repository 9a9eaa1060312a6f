package skypoint

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/skypointsocial/skypoint/app"
	"github.com/skypointsocial/skypoint/infra/querycache"
)

// authService implements app.AuthService using the SkyPoint API.
type authService struct {
	client *Client
	cache  *querycache.Cache
}

// NewAuthService creates an AuthService backed by SkyPoint.
func NewAuthService(client *Client, cache *querycache.Cache) *authService {
	return &authService{client: client, cache: cache}
}

func (s *authService) Login(ctx context.Context, email, password string) (app.AuthResult, error) {
	body := map[string]string{"email": email, "password": password}
	return s.authenticate(ctx, "/login", body, app.MutationLogin)
}

func (s *authService) Register(ctx context.Context, req app.RegisterRequest) (app.AuthResult, error) {
	body := map[string]string{
		"username":  req.Username,
		"email":     req.Email,
		"password":  req.Password,
		"firstName": req.FirstName,
		"lastName":  req.LastName,
	}
	return s.authenticate(ctx, "/signup", body, app.MutationRegister)
}

func (s *authService) OAuthLogin(ctx context.Context, provider, idToken string) (app.AuthResult, error) {
	body := map[string]string{"provider": provider, "accessToken": idToken}
	return s.authenticate(ctx, "/oauth/login", body, app.MutationOAuthLogin)
}

func (s *authService) authenticate(ctx context.Context, path string, body any, m app.Mutation) (app.AuthResult, error) {
	var resp wireAuth
	if err := s.client.Post(ctx, path, body, &resp); err != nil {
		return app.AuthResult{}, fmt.Errorf("%s: %w", m, err)
	}
	s.cache.Invalidate(app.Invalidation{Mutation: m, Tags: app.InvalidatedBy(m, "")})
	return app.AuthResult{
		User:      mapUser(resp.User),
		Token:     resp.Token,
		SessionID: resp.SessionID,
	}, nil
}

func (s *authService) Logout(ctx context.Context) (time.Duration, bool, error) {
	var resp struct {
		SessionDuration string `json:"sessionDuration"`
	}
	if err := s.client.Post(ctx, "/logout", nil, &resp); err != nil {
		return 0, false, fmt.Errorf("logout: %w", err)
	}
	s.cache.Invalidate(app.Invalidation{
		Mutation: app.MutationLogout,
		Tags:     app.InvalidatedBy(app.MutationLogout, ""),
	})
	if resp.SessionDuration == "" {
		return 0, false, nil
	}
	d, err := parseSessionDuration(resp.SessionDuration)
	if err != nil {
		s.client.logger.Warn("unparseable session duration",
			slog.String("value", resp.SessionDuration),
			slog.String("error", err.Error()),
		)
		return 0, false, nil
	}
	return d, true, nil
}

// parseSessionDuration reads the backend's "[d.]HH:mm:ss[.fffffff]" span.
func parseSessionDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("session duration %q: want HH:mm:ss", s)
	}

	var days int
	hourPart := parts[0]
	if d, h, ok := strings.Cut(hourPart, "."); ok {
		n, err := strconv.Atoi(d)
		if err != nil {
			return 0, fmt.Errorf("session duration %q: days: %w", s, err)
		}
		days, hourPart = n, h
	}
	hours, err := strconv.Atoi(hourPart)
	if err != nil {
		return 0, fmt.Errorf("session duration %q: hours: %w", s, err)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("session duration %q: minutes: %w", s, err)
	}
	seconds, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return 0, fmt.Errorf("session duration %q: seconds: %w", s, err)
	}

	total := time.Duration(days)*24*time.Hour +
		time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds*float64(time.Second))
	return total, nil
}
