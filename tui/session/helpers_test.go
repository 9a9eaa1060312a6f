package session

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/skypointsocial/skypoint/app"
)

type stubAuth struct {
	loginResult app.AuthResult
	loginErr    error
	logoutDur   time.Duration
	logoutKnown bool
	logoutErr   error

	gotEmail, gotPassword string
	gotRegister           app.RegisterRequest
	gotProvider, gotToken string
	calls                 int
}

func (s *stubAuth) Login(_ context.Context, email, password string) (app.AuthResult, error) {
	s.calls++
	s.gotEmail, s.gotPassword = email, password
	return s.loginResult, s.loginErr
}

func (s *stubAuth) Register(_ context.Context, req app.RegisterRequest) (app.AuthResult, error) {
	s.calls++
	s.gotRegister = req
	return s.loginResult, s.loginErr
}

func (s *stubAuth) OAuthLogin(_ context.Context, provider, idToken string) (app.AuthResult, error) {
	s.calls++
	s.gotProvider, s.gotToken = provider, idToken
	return s.loginResult, s.loginErr
}

func (s *stubAuth) Logout(context.Context) (time.Duration, bool, error) {
	s.calls++
	return s.logoutDur, s.logoutKnown, s.logoutErr
}

type recordingReporter struct {
	loading []bool
	errs    []string
}

func (r *recordingReporter) SetLoading(v bool)   { r.loading = append(r.loading, v) }
func (r *recordingReporter) SetError(msg string) { r.errs = append(r.errs, msg) }

func typeInto(m Model, s string) Model {
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return m
}

func press(m Model, t tea.KeyType) (Model, tea.Cmd) {
	return m.Update(tea.KeyMsg{Type: t})
}

// drain runs cmd and any batched commands, returning the messages that are
// not spinner ticks.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	if _, isTick := msg.(spinner.TickMsg); isTick {
		return nil
	}
	return []tea.Msg{msg}
}
