package tui

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/skypointsocial/skypoint/app"
	"github.com/skypointsocial/skypoint/domain"
	"github.com/skypointsocial/skypoint/infra/auth"
	"github.com/skypointsocial/skypoint/infra/editor"
	"github.com/skypointsocial/skypoint/tui/common"
	"github.com/skypointsocial/skypoint/tui/compose"
	"github.com/skypointsocial/skypoint/tui/feed"
	"github.com/skypointsocial/skypoint/tui/session"
)

const (
	PostFailedMessage     = "Failed to create post. Please try again."
	CommentFailedMessage  = "Failed to add comment. Please try again."
	SessionExpiredMessage = "Your session has expired. Please log in again."
)

// Invalidations is the part of the query cache the UI listens to.
type Invalidations interface {
	Subscribe() <-chan app.Invalidation
	Reset()
}

// Deps holds all dependencies the TUI needs. Plain struct, not a DI container.
type Deps struct {
	Auth          app.AuthService
	Posts         app.PostService
	Comments      app.CommentService
	Account       app.AccountService
	Session       *auth.Store
	Cache         Invalidations
	Editor        *editor.EnvEditor
	PageSize      int
	OAuthProvider string
	IDToken       string // Submitted through the OAuth form on start
	Logger        *slog.Logger
	Now           func() time.Time
}

type activeView int

const (
	loginView activeView = iota
	feedView
	composeView
	logoutView
)

// App is the root Bubble Tea model. It routes between sub-views.
type App struct {
	deps        Deps
	active      activeView
	login       session.Model
	feed        feed.Model
	compose     compose.Model
	logout      session.LogoutModel
	keys        common.KeyMap
	status      string // Dismissible banner
	invalidated <-chan app.Invalidation
	startCmd    tea.Cmd
	width       int
	height      int
}

type invalidationMsg struct {
	inv app.Invalidation
}

type postResultMsg struct {
	post domain.Post
	err  error
}

type commentResultMsg struct {
	postID string
	err    error
}

// NewApp creates the root model with all dependencies wired. A restored
// session starts on the feed; otherwise the login form is shown.
func NewApp(deps Deps) App {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	a := App{
		deps:  deps,
		keys:  common.DefaultKeyMap(),
		login: session.New(deps.Auth, deps.Session, deps.OAuthProvider),
		feed:  newFeed(deps),
	}
	if deps.Cache != nil {
		a.invalidated = deps.Cache.Subscribe()
	}

	switch {
	case deps.IDToken != "":
		a.active = loginView
		a.login, a.startCmd = a.login.WithIDToken(deps.IDToken).Submit()
	case deps.Session.Authenticated():
		a.active = feedView
	default:
		a.active = loginView
	}
	return a
}

func newFeed(deps Deps) feed.Model {
	return feed.New(feed.Deps{
		Posts:    deps.Posts,
		Comments: deps.Comments,
		Account:  deps.Account,
		Session:  deps.Session,
		Logger:   deps.Logger,
		PageSize: deps.PageSize,
	})
}

// Init starts the active view and the invalidation listener.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.waitForInvalidation()}
	switch a.active {
	case feedView:
		cmds = append(cmds, a.feed.Init())
	case loginView:
		cmds = append(cmds, a.login.Init(), a.startCmd)
	}
	return tea.Batch(cmds...)
}

func (a App) waitForInvalidation() tea.Cmd {
	ch := a.invalidated
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		inv, ok := <-ch
		if !ok {
			return nil
		}
		return invalidationMsg{inv: inv}
	}
}

// Update handles messages and routes to the active sub-model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		var cmd tea.Cmd
		a.feed, cmd = a.feed.Update(msg)
		if a.active == composeView {
			var ccmd tea.Cmd
			a.compose, ccmd = a.compose.Update(msg)
			cmd = tea.Batch(cmd, ccmd)
		}
		return a, cmd

	case spinner.TickMsg:
		var fcmd, lcmd, ocmd tea.Cmd
		a.feed, fcmd = a.feed.Update(msg)
		a.login, lcmd = a.login.Update(msg)
		a.logout, ocmd = a.logout.Update(msg)
		return a, tea.Batch(fcmd, lcmd, ocmd)

	case tea.KeyMsg:
		if key.Matches(msg, a.keys.ForceQuit) {
			return a, tea.Quit
		}
		if a.active == feedView {
			return a.handleFeedKey(msg)
		}

	case invalidationMsg:
		var cmd tea.Cmd
		a.feed, cmd = a.feed.Update(feed.InvalidatedMsg{Invalidation: msg.inv})
		return a, tea.Batch(cmd, a.waitForInvalidation())

	case session.LoggedInMsg:
		return a.loggedIn(msg)

	case session.LoggedOutMsg:
		return a.signedOut(session.SessionSummary(msg.Duration, msg.Known))

	case session.LogoutCancelledMsg:
		a.active = feedView
		return a, nil

	case feed.RequireLoginMsg:
		a.active = loginView
		a.status = "Please log in to continue."
		return a, a.login.Init()

	case feed.BannerMsg:
		a.status = msg.Text
		return a, nil

	case feed.ComposeCommentMsg:
		a.active = composeView
		a.status = ""
		a.compose = compose.NewComment(a.deps.Editor, msg.PostID, msg.ParentID, msg.Context, msg.Inline)
		return a, a.compose.Init()

	case compose.DoneMsg:
		return a.composeDone(msg)

	case postResultMsg:
		if errors.Is(msg.err, domain.ErrUnauthorized) {
			return a.signedOut(SessionExpiredMessage)
		}
		if msg.err != nil {
			a.status = composeErrorText(msg.err, PostFailedMessage)
			return a, nil
		}
		a.status = "Post published!"
		var cmd tea.Cmd
		a.feed, cmd = a.feed.Update(feed.PostCreatedMsg{Post: msg.post})
		return a, cmd

	case commentResultMsg:
		if errors.Is(msg.err, domain.ErrUnauthorized) {
			return a.signedOut(SessionExpiredMessage)
		}
		if msg.err != nil {
			a.status = composeErrorText(msg.err, CommentFailedMessage)
			return a, nil
		}
		a.status = "Comment added."
		return a, nil
	}

	return a.delegate(msg)
}

// delegate hands msg to the active sub-model. Feed results keep arriving
// while another view is on screen, so non-key messages also reach the feed.
func (a App) delegate(msg tea.Msg) (tea.Model, tea.Cmd) {
	var fcmd tea.Cmd
	if _, isKey := msg.(tea.KeyMsg); !isKey && a.active != feedView {
		a.feed, fcmd = a.feed.Update(msg)
	}
	var cmd tea.Cmd
	switch a.active {
	case loginView:
		a.login, cmd = a.login.Update(msg)
	case feedView:
		a.feed, cmd = a.feed.Update(msg)
	case composeView:
		a.compose, cmd = a.compose.Update(msg)
	case logoutView:
		a.logout, cmd = a.logout.Update(msg)
	}
	return a, tea.Batch(cmd, fcmd)
}

func (a App) handleFeedKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case a.status != "" && msg.String() == "esc":
		a.status = ""
		return a, nil
	case key.Matches(msg, a.keys.Quit) && a.feed.AtRoot():
		return a, tea.Quit
	case key.Matches(msg, a.keys.NewEditor), key.Matches(msg, a.keys.NewInline):
		if !a.deps.Session.Authenticated() {
			return a.Update(feed.RequireLoginMsg{})
		}
		a.active = composeView
		a.status = ""
		a.compose = compose.NewPost(a.deps.Editor, key.Matches(msg, a.keys.NewInline))
		return a, a.compose.Init()
	case key.Matches(msg, a.keys.Logout):
		if !a.deps.Session.Authenticated() {
			return a, nil
		}
		a.active = logoutView
		a.logout = session.NewLogout(a.deps.Auth)
		return a, a.logout.Init()
	}
	return a.delegate(msg)
}

func (a App) loggedIn(msg session.LoggedInMsg) (tea.Model, tea.Cmd) {
	res := msg.Result
	a.deps.Session.SetCredentials(res.User, res.Token)
	a.deps.Session.BeginSession(res.SessionID, a.deps.Now())
	a.deps.Logger.Info("signed in",
		slog.String("user_id", res.User.ID),
		slog.String("via", msg.Via.String()),
	)
	a.feed = newFeed(a.deps)
	var cmd tea.Cmd
	if a.width > 0 {
		a.feed, cmd = a.feed.Update(tea.WindowSizeMsg{Width: a.width, Height: a.height})
	}
	a.active = feedView
	a.status = "Welcome, " + res.User.DisplayName() + "!"
	return a, tea.Batch(cmd, a.feed.Init())
}

// signedOut drops the session and cached queries and shows the login view
// with status.
func (a App) signedOut(status string) (tea.Model, tea.Cmd) {
	a.deps.Session.Logout()
	if a.deps.Cache != nil {
		a.deps.Cache.Reset()
	}
	a.feed = newFeed(a.deps)
	a.login = session.New(a.deps.Auth, a.deps.Session, a.deps.OAuthProvider)
	a.active = loginView
	a.status = status
	return a, a.login.Init()
}

func (a App) composeDone(msg compose.DoneMsg) (tea.Model, tea.Cmd) {
	a.active = feedView
	if msg.Err != nil {
		a.status = composeErrorText(msg.Err, "Error: "+msg.Err.Error())
		return a, nil
	}
	if msg.Cancelled() {
		a.status = "Cancelled."
		return a, nil
	}

	if msg.Target == compose.TargetComment {
		comments := a.deps.Comments
		a.status = "Sending comment..."
		return a, func() tea.Msg {
			_, err := comments.Create(context.Background(), msg.PostID, msg.Content, msg.ParentID)
			return commentResultMsg{postID: msg.PostID, err: err}
		}
	}

	posts := a.deps.Posts
	a.status = "Posting..."
	return a, func() tea.Msg {
		post, err := posts.Create(context.Background(), msg.Content)
		return postResultMsg{post: post, err: err}
	}
}

// composeErrorText prefers the validation wording, then the server message.
func composeErrorText(err error, fallback string) string {
	if text := compose.ValidationMessage(err); text != "" {
		return text
	}
	return domain.ErrorMessage(err, fallback)
}

// View renders the active sub-model.
func (a App) View() string {
	var s string

	switch a.active {
	case loginView:
		s = a.login.View()
	case feedView:
		s = a.feed.View()
	case composeView:
		s = a.compose.View()
	case logoutView:
		s = a.feed.View() + "\n" + a.logout.View()
	}

	if a.status != "" {
		s += "\n" + common.BannerStyle.Render(a.status)
	}
	return s
}
