// Package session holds the views that create and end a session: the login,
// register and OAuth forms and the logout dialog.
package session

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/skypointsocial/skypoint/app"
	"github.com/skypointsocial/skypoint/domain"
)

// Fallback banners when the server gives no message.
const (
	LoginFailedMessage    = "Login failed. Please check your credentials and try again."
	RegisterFailedMessage = "Registration failed. Please try again."
	OAuthNoTokenMessage   = "Google Sign-In failed to retrieve ID token."
	OAuthFailedMessage    = "Google Sign-In failed. Please try again."
)

// Mode selects which form is shown.
type Mode int

const (
	ModeLogin Mode = iota
	ModeRegister
	ModeOAuth
)

// --- Messages ---

// LoggedInMsg is emitted once the backend accepted the credentials.
type LoggedInMsg struct {
	Result app.AuthResult
	Via    app.Mutation
}

type authResultMsg struct {
	mode   Mode
	result app.AuthResult
	err    error
}

// Reporter receives loading and error transitions, typically the session store.
type Reporter interface {
	SetLoading(loading bool)
	SetError(msg string)
}

type field struct {
	key   string
	label string
	input textinput.Model
}

// Model is the authentication form view.
type Model struct {
	mode       Mode
	auth       app.AuthService
	reporter   Reporter
	provider   string
	fields     []field
	focus      int
	fieldErrs  map[string]string
	banner     string
	submitting bool
	spinner    spinner.Model
	keys       formKeys
}

type formKeys struct {
	Next     key.Binding
	Prev     key.Binding
	Submit   key.Binding
	Register key.Binding
	OAuth    key.Binding
	Back     key.Binding
}

func defaultFormKeys() formKeys {
	return formKeys{
		Next:     key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next")),
		Prev:     key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev")),
		Submit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		Register: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "create account")),
		OAuth:    key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("ctrl+g", "sign in with Google")),
		Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back to login")),
	}
}

// New creates the login form. provider is sent with OAuth logins.
func New(auth app.AuthService, reporter Reporter, provider string) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#1976D2"))

	m := Model{
		auth:     auth,
		reporter: reporter,
		provider: provider,
		spinner:  s,
		keys:     defaultFormKeys(),
	}
	return m.switchMode(ModeLogin)
}

// WithIDToken opens the OAuth form pre-filled with token. Call Submit to send it.
func (m Model) WithIDToken(token string) Model {
	m = m.switchMode(ModeOAuth)
	m.fields[0].input.SetValue(token)
	return m
}

// Mode returns the active form.
func (m Model) Mode() Mode { return m.mode }

// Banner returns the form-level error, if any.
func (m Model) Banner() string { return m.banner }

// FieldError returns the inline error for a field key.
func (m Model) FieldError(key string) string { return m.fieldErrs[key] }

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Submitting reports whether a request is in flight.
func (m Model) Submitting() bool { return m.submitting }

func newInput(placeholder string, secret bool) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.Prompt = "> "
	in.Width = 40
	if secret {
		in.EchoMode = textinput.EchoPassword
		in.EchoCharacter = '•'
	}
	return in
}

func (m Model) switchMode(mode Mode) Model {
	m.mode = mode
	m.focus = 0
	m.fieldErrs = map[string]string{}
	m.banner = ""
	switch mode {
	case ModeLogin:
		m.fields = []field{
			{key: FieldEmail, label: "Email", input: newInput("you@example.com", false)},
			{key: FieldPassword, label: "Password", input: newInput("", true)},
		}
	case ModeRegister:
		m.fields = []field{
			{key: FieldUsername, label: "Username", input: newInput("", false)},
			{key: FieldFirstName, label: "First name", input: newInput("", false)},
			{key: FieldLastName, label: "Last name", input: newInput("", false)},
			{key: FieldEmail, label: "Email", input: newInput("you@example.com", false)},
			{key: FieldPassword, label: "Password", input: newInput("", true)},
			{key: FieldConfirmPassword, label: "Confirm password", input: newInput("", true)},
		}
	case ModeOAuth:
		m.fields = []field{
			{key: FieldIDToken, label: "Google ID token", input: newInput("paste the ID token", true)},
		}
	}
	m.fields[0].input.Focus()
	return m
}

func (m Model) value(key string) string {
	for _, f := range m.fields {
		if f.key == key {
			return f.input.Value()
		}
	}
	return ""
}

func (m *Model) setFocus(i int) tea.Cmd {
	if len(m.fields) == 0 {
		return nil
	}
	i = (i + len(m.fields)) % len(m.fields)
	m.fields[m.focus].input.Blur()
	m.focus = i
	return m.fields[m.focus].input.Focus()
}

// Update handles messages for the form view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !m.submitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case authResultMsg:
		if msg.mode != m.mode {
			return m, nil
		}
		m.submitting = false
		if msg.err != nil {
			m.banner = domain.ErrorMessage(msg.err, m.fallbackMessage())
			if m.reporter != nil {
				m.reporter.SetError(m.banner)
			}
			return m, nil
		}
		if m.reporter != nil {
			m.reporter.SetLoading(false)
		}
		via := map[Mode]app.Mutation{
			ModeLogin:    app.MutationLogin,
			ModeRegister: app.MutationRegister,
			ModeOAuth:    app.MutationOAuthLogin,
		}[msg.mode]
		result := msg.result
		return m, func() tea.Msg { return LoggedInMsg{Result: result, Via: via} }

	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.Register) && m.mode == ModeLogin:
			m = m.switchMode(ModeRegister)
			return m, textinput.Blink
		case key.Matches(msg, m.keys.OAuth) && m.mode == ModeLogin:
			m = m.switchMode(ModeOAuth)
			return m, textinput.Blink
		case key.Matches(msg, m.keys.Back) && m.mode != ModeLogin:
			m = m.switchMode(ModeLogin)
			return m, textinput.Blink
		case key.Matches(msg, m.keys.Next):
			return m, m.setFocus(m.focus + 1)
		case key.Matches(msg, m.keys.Prev):
			return m, m.setFocus(m.focus - 1)
		case key.Matches(msg, m.keys.Submit):
			if m.focus < len(m.fields)-1 {
				return m, m.setFocus(m.focus + 1)
			}
			return m.Submit()
		}

		// Editing a field clears its error and the banner.
		f := &m.fields[m.focus]
		before := f.input.Value()
		var cmd tea.Cmd
		f.input, cmd = f.input.Update(msg)
		if f.input.Value() != before {
			delete(m.fieldErrs, f.key)
			m.banner = ""
		}
		return m, cmd
	}

	var cmd tea.Cmd
	m.fields[m.focus].input, cmd = m.fields[m.focus].input.Update(msg)
	return m, cmd
}

func (m Model) fallbackMessage() string {
	switch m.mode {
	case ModeRegister:
		return RegisterFailedMessage
	case ModeOAuth:
		return OAuthFailedMessage
	}
	return LoginFailedMessage
}

// Submit validates the active form and, if clean, starts the request.
func (m Model) Submit() (Model, tea.Cmd) {
	var run func(ctx context.Context) (app.AuthResult, error)

	switch m.mode {
	case ModeLogin:
		email := strings.TrimSpace(m.value(FieldEmail))
		password := m.value(FieldPassword)
		m.fieldErrs = ValidateLogin(email, password)
		run = func(ctx context.Context) (app.AuthResult, error) {
			return m.auth.Login(ctx, email, password)
		}

	case ModeRegister:
		form := RegisterForm{
			Username:        m.value(FieldUsername),
			FirstName:       m.value(FieldFirstName),
			LastName:        m.value(FieldLastName),
			Email:           m.value(FieldEmail),
			Password:        m.value(FieldPassword),
			ConfirmPassword: m.value(FieldConfirmPassword),
		}
		m.fieldErrs = ValidateRegister(form)
		req := app.RegisterRequest{
			Username:  strings.TrimSpace(form.Username),
			Email:     strings.TrimSpace(form.Email),
			Password:  form.Password,
			FirstName: strings.TrimSpace(form.FirstName),
			LastName:  strings.TrimSpace(form.LastName),
		}
		run = func(ctx context.Context) (app.AuthResult, error) {
			return m.auth.Register(ctx, req)
		}

	case ModeOAuth:
		token := strings.TrimSpace(m.value(FieldIDToken))
		m.fieldErrs = map[string]string{}
		if token == "" {
			m.banner = OAuthNoTokenMessage
			return m, nil
		}
		provider := m.provider
		run = func(ctx context.Context) (app.AuthResult, error) {
			return m.auth.OAuthLogin(ctx, provider, token)
		}
	}

	if len(m.fieldErrs) > 0 {
		m.banner = ""
		return m, nil
	}

	m.submitting = true
	m.banner = ""
	if m.reporter != nil {
		m.reporter.SetLoading(true)
	}
	mode := m.mode
	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		res, err := run(context.Background())
		return authResultMsg{mode: mode, result: res, err: err}
	})
}
