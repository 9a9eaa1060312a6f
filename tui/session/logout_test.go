package session

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/skypointsocial/skypoint/domain"
)

func TestSessionSummary(t *testing.T) {
	tests := []struct {
		d     time.Duration
		known bool
		want  string
	}{
		{0, false, "Thanks for using SkyPoint Social!"},
		{time.Minute, false, "Thanks for using SkyPoint Social!"},
		{0, true, "Thanks for spending 0 seconds with us!"},
		{2*time.Hour + 5*time.Minute, true, "Thanks for spending 2 hours and 5 minutes with us!"},
		{time.Hour + time.Minute, true, "Thanks for spending 1 hour and 1 minute with us!"},
		{time.Hour, true, "Thanks for spending 1 hour and 0 minutes with us!"},
		{7*time.Minute + 30*time.Second, true, "Thanks for spending 7 minutes with us!"},
		{42*time.Second + 900*time.Millisecond, true, "Thanks for spending 42 seconds with us!"},
		{time.Second, true, "Thanks for spending 1 second with us!"},
	}
	for _, tt := range tests {
		if got := SessionSummary(tt.d, tt.known); got != tt.want {
			t.Fatalf("SessionSummary(%v, %v) = %q, want %q", tt.d, tt.known, got, tt.want)
		}
	}
}

func TestLogout_ConfirmThenSummary(t *testing.T) {
	auth := &stubAuth{logoutDur: 3 * time.Minute, logoutKnown: true}
	m := NewLogout(auth)

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	msgs := drain(cmd)
	if len(msgs) != 1 || auth.calls != 1 {
		t.Fatalf("expected one logout call, got %d", auth.calls)
	}

	m, cmd = m.Update(msgs[0])
	if m.Summary() != "Thanks for spending 3 minutes with us!" {
		t.Fatalf("unexpected summary %q", m.Summary())
	}
	if cmd == nil {
		t.Fatalf("expected delay timer")
	}

	// The timer fires LoggedOutMsg.
	_, cmd = m.Update(logoutTimerMsg{})
	out, ok := cmd().(LoggedOutMsg)
	if !ok || out.Duration != 3*time.Minute || !out.Known {
		t.Fatalf("expected LoggedOutMsg, got %#v", out)
	}
}

func TestLogout_FailureStaysInDialog(t *testing.T) {
	auth := &stubAuth{logoutErr: &domain.APIError{StatusCode: 500}}
	m := NewLogout(auth)
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m, cmd = m.Update(drain(cmd)[0])
	if cmd != nil {
		t.Fatalf("failed logout must not end the session")
	}
	if m.Err() != LogoutFailedMessage {
		t.Fatalf("unexpected error %q", m.Err())
	}

	auth.logoutErr = errors.Join(domain.ErrTransport, errors.New("dial"))
	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = m.Update(drain(cmd)[0])
	if m.Err() != domain.NetworkErrorMessage {
		t.Fatalf("expected network message, got %q", m.Err())
	}
}

func TestLogout_CancelEmitsCancelled(t *testing.T) {
	m := NewLogout(&stubAuth{})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if _, ok := cmd().(LogoutCancelledMsg); !ok {
		t.Fatalf("expected LogoutCancelledMsg")
	}
}
