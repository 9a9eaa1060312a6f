package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/skypointsocial/skypoint/app"
	"github.com/skypointsocial/skypoint/domain"
	"github.com/skypointsocial/skypoint/tui/common"
)

const (
	// LogoutDelay is how long the session summary stays up before the
	// session is torn down.
	LogoutDelay = 2 * time.Second

	LogoutFailedMessage = "Failed to logout. Please try again."
	defaultFarewell     = "Thanks for using SkyPoint Social!"
)

// LoggedOutMsg is emitted after the summary delay; the receiver clears the
// session and returns to the login view.
type LoggedOutMsg struct {
	Duration time.Duration
	// Known is false when the server did not report a duration.
	Known bool
}

// LogoutCancelledMsg is emitted when the user backs out of the dialog.
type LogoutCancelledMsg struct{}

type logoutResultMsg struct {
	duration time.Duration
	known    bool
	err      error
}

type logoutTimerMsg struct{}

type logoutState int

const (
	logoutConfirming logoutState = iota
	logoutPending
	logoutSummary
)

// LogoutModel is the logout confirmation dialog.
type LogoutModel struct {
	auth     app.AuthService
	state    logoutState
	duration time.Duration
	known    bool
	summary  string
	errMsg   string
	spinner  spinner.Model
}

// NewLogout creates the dialog in its confirming state.
func NewLogout(auth app.AuthService) LogoutModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#1976D2"))
	return LogoutModel{auth: auth, spinner: s}
}

// Init implements the Bubble Tea model contract; the dialog waits for input.
func (m LogoutModel) Init() tea.Cmd { return nil }

// Summary returns the farewell text once the server confirmed the logout.
func (m LogoutModel) Summary() string { return m.summary }

// Err returns the last failure message shown in the dialog.
func (m LogoutModel) Err() string { return m.errMsg }

// Update handles messages for the dialog.
func (m LogoutModel) Update(msg tea.Msg) (LogoutModel, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if m.state != logoutPending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case logoutResultMsg:
		if msg.err != nil {
			m.state = logoutConfirming
			m.errMsg = domain.ErrorMessage(msg.err, LogoutFailedMessage)
			return m, nil
		}
		m.state = logoutSummary
		m.errMsg = ""
		m.duration = msg.duration
		m.known = msg.known
		m.summary = SessionSummary(msg.duration, msg.known)
		return m, tea.Tick(LogoutDelay, func(time.Time) tea.Msg { return logoutTimerMsg{} })

	case logoutTimerMsg:
		out := LoggedOutMsg{Duration: m.duration, Known: m.known}
		return m, func() tea.Msg { return out }

	case tea.KeyMsg:
		if m.state != logoutConfirming {
			return m, nil
		}
		switch msg.String() {
		case "y", "Y", "enter":
			m.state = logoutPending
			m.errMsg = ""
			auth := m.auth
			return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
				d, ok, err := auth.Logout(context.Background())
				return logoutResultMsg{duration: d, known: ok, err: err}
			})
		case "n", "N", "esc", "q":
			return m, func() tea.Msg { return LogoutCancelledMsg{} }
		}
	}
	return m, nil
}

// View renders the dialog.
func (m LogoutModel) View() string {
	var b strings.Builder
	switch m.state {
	case logoutConfirming:
		b.WriteString(common.ConfirmStyle.Render("Log out of SkyPoint?") + "\n\n")
		if m.errMsg != "" {
			b.WriteString(common.ErrorStyle.Render(m.errMsg) + "\n\n")
		}
		b.WriteString(common.MetadataStyle.Render("y/enter: log out • n/esc: cancel"))
	case logoutPending:
		b.WriteString(m.spinner.View() + " Logging out...")
	case logoutSummary:
		b.WriteString(common.SuccessStyle.Render(m.summary))
	}
	return common.DialogStyle.Render(b.String())
}

// SessionSummary renders the farewell for a session of length d. When known
// is false the server did not report one.
func SessionSummary(d time.Duration, known bool) string {
	if !known {
		return defaultFarewell
	}
	d = max(d, 0)
	hours := int(d / time.Hour)
	minutes := int(d % time.Hour / time.Minute)
	seconds := int(d % time.Minute / time.Second)

	switch {
	case hours > 0:
		return fmt.Sprintf("Thanks for spending %s and %s with us!",
			unit(hours, "hour"), unit(minutes, "minute"))
	case minutes > 0:
		return fmt.Sprintf("Thanks for spending %s with us!", unit(minutes, "minute"))
	default:
		return fmt.Sprintf("Thanks for spending %s with us!", unit(seconds, "second"))
	}
}

func unit(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}
