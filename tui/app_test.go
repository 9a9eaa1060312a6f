package tui

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skypointsocial/skypoint/app"
	"github.com/skypointsocial/skypoint/domain"
	"github.com/skypointsocial/skypoint/infra/auth"
	"github.com/skypointsocial/skypoint/infra/logging"
	"github.com/skypointsocial/skypoint/infra/querycache"
	"github.com/skypointsocial/skypoint/infra/storage"
	"github.com/skypointsocial/skypoint/tui/compose"
	"github.com/skypointsocial/skypoint/tui/feed"
	"github.com/skypointsocial/skypoint/tui/session"
)

type stubAuth struct {
	oauthTokens []string
}

func (s *stubAuth) Login(context.Context, string, string) (app.AuthResult, error) {
	return app.AuthResult{}, nil
}

func (s *stubAuth) Register(context.Context, app.RegisterRequest) (app.AuthResult, error) {
	return app.AuthResult{}, nil
}

func (s *stubAuth) OAuthLogin(_ context.Context, _, idToken string) (app.AuthResult, error) {
	s.oauthTokens = append(s.oauthTokens, idToken)
	return app.AuthResult{User: domain.User{ID: "u1"}, Token: "tok"}, nil
}

func (s *stubAuth) Logout(context.Context) (time.Duration, bool, error) {
	return time.Minute, true, nil
}

type stubPosts struct {
	createErr error
}

func (stubPosts) Feed(context.Context, int, int) (domain.FeedPage, error) {
	return domain.FeedPage{}, nil
}

func (s stubPosts) Create(_ context.Context, content string) (domain.Post, error) {
	if s.createErr != nil {
		return domain.Post{}, s.createErr
	}
	return domain.Post{ID: "p-new", Content: content}, nil
}

func (stubPosts) Vote(context.Context, string, domain.VoteAction) error { return nil }

type stubComments struct {
	parents []string
}

func (s *stubComments) Comments(context.Context, string) ([]domain.Comment, error) {
	return nil, nil
}

func (s *stubComments) Create(_ context.Context, postID, content, parentID string) (domain.Comment, error) {
	s.parents = append(s.parents, parentID)
	return domain.Comment{ID: "c", PostID: postID, Content: content, ParentID: parentID}, nil
}

type stubAccount struct{}

func (stubAccount) User(context.Context, string) (domain.User, error) { return domain.User{}, nil }
func (stubAccount) PostsByUser(context.Context, string, int, int) ([]domain.Post, error) {
	return nil, nil
}
func (stubAccount) IsFollowing(context.Context, string) (bool, error) { return false, nil }
func (stubAccount) ToggleFollow(context.Context, string) error        { return nil }

type fixture struct {
	auth     *stubAuth
	posts    stubPosts
	comments *stubComments
	store    *auth.Store
	cache    *querycache.Cache
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	fs, err := storage.Open(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)
	cache, err := querycache.New(16, logging.Discard())
	require.NoError(t, err)
	return &fixture{
		auth:     &stubAuth{},
		comments: &stubComments{},
		store:    auth.NewStore(fs, logging.Discard()),
		cache:    cache,
	}
}

func (f *fixture) deps() Deps {
	return Deps{
		Auth:     f.auth,
		Posts:    f.posts,
		Comments: f.comments,
		Account:  stubAccount{},
		Session:  f.store,
		Cache:    f.cache,
		Logger:   logging.Discard(),
		Now:      func() time.Time { return time.Unix(1700000000, 0) },
	}
}

func update(t *testing.T, a App, msg tea.Msg) (App, tea.Cmd) {
	t.Helper()
	m, cmd := a.Update(msg)
	next, ok := m.(App)
	require.True(t, ok)
	return next, cmd
}

func TestNewApp_StartsOnLoginWhenSignedOut(t *testing.T) {
	a := NewApp(newFixture(t).deps())
	assert.Equal(t, loginView, a.active)
}

func TestNewApp_StartsOnFeedWithRestoredSession(t *testing.T) {
	f := newFixture(t)
	f.store.SetCredentials(domain.User{ID: "u1"}, "tok")
	a := NewApp(f.deps())
	assert.Equal(t, feedView, a.active)
}

func TestNewApp_IDTokenSubmitsOAuth(t *testing.T) {
	f := newFixture(t)
	d := f.deps()
	d.IDToken = "google-id-token"
	a := NewApp(d)

	require.NotNil(t, a.startCmd)
	assert.Equal(t, session.ModeOAuth, a.login.Mode())
	assert.True(t, a.login.Submitting())
}

func TestLoggedIn_StoresCredentialsAndShowsFeed(t *testing.T) {
	f := newFixture(t)
	a := NewApp(f.deps())

	a, cmd := update(t, a, session.LoggedInMsg{
		Result: app.AuthResult{User: domain.User{ID: "u1", Username: "sky"}, Token: "tok", SessionID: "s1"},
		Via:    app.MutationLogin,
	})

	assert.NotNil(t, cmd)
	assert.Equal(t, feedView, a.active)
	snap := f.store.Snapshot()
	assert.True(t, snap.Authenticated)
	assert.Equal(t, "tok", snap.Token)
	assert.Equal(t, "s1", snap.SessionID)
	assert.Equal(t, time.Unix(1700000000, 0), snap.StartedAt)
	assert.Equal(t, "Welcome, sky!", a.status)
}

func TestLoggedOut_ClearsSessionAndReturnsToLogin(t *testing.T) {
	f := newFixture(t)
	f.store.SetCredentials(domain.User{ID: "u1"}, "tok")
	a := NewApp(f.deps())

	a, _ = update(t, a, session.LoggedOutMsg{Duration: 90 * time.Second, Known: true})

	assert.Equal(t, loginView, a.active)
	assert.False(t, f.store.Authenticated())
	assert.Equal(t, "Thanks for spending 1 minute with us!", a.status)
}

func TestEscDismissesBannerBeforeFeed(t *testing.T) {
	f := newFixture(t)
	f.store.SetCredentials(domain.User{ID: "u1"}, "tok")
	a := NewApp(f.deps())
	a, _ = update(t, a, feed.BannerMsg{Text: "Failed"})
	require.Equal(t, "Failed", a.status)

	a, cmd := update(t, a, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Empty(t, a.status)
	assert.Nil(t, cmd)
}

func TestComposeKeyRequiresLogin(t *testing.T) {
	f := newFixture(t)
	a := NewApp(f.deps())
	a.active = feedView

	a, _ = update(t, a, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'P'}})
	assert.Equal(t, loginView, a.active)
}

func TestComposeDone_PostFailureShowsServerMessage(t *testing.T) {
	f := newFixture(t)
	f.posts.createErr = &domain.APIError{StatusCode: 400, Message: "Content is required"}
	f.store.SetCredentials(domain.User{ID: "u1"}, "tok")
	a := NewApp(f.deps())

	a, cmd := update(t, a, compose.DoneMsg{Target: compose.TargetPost, Content: "hi"})
	require.NotNil(t, cmd)
	a, _ = update(t, a, cmd())

	assert.Equal(t, "Content is required", a.status)
}

func TestComposeDone_RejectedTokenSignsOut(t *testing.T) {
	f := newFixture(t)
	f.posts.createErr = &domain.APIError{StatusCode: 401, Message: "Invalid token"}
	f.store.SetCredentials(domain.User{ID: "u1"}, "tok")
	a := NewApp(f.deps())

	a, cmd := update(t, a, compose.DoneMsg{Target: compose.TargetPost, Content: "hi"})
	require.NotNil(t, cmd)
	a, _ = update(t, a, cmd())

	assert.Equal(t, loginView, a.active)
	assert.False(t, f.store.Authenticated())
	assert.Equal(t, SessionExpiredMessage, a.status)
}

func TestComposeDone_ValidationError(t *testing.T) {
	f := newFixture(t)
	a := NewApp(f.deps())

	a, cmd := update(t, a, compose.DoneMsg{Target: compose.TargetPost, Err: domain.ErrPostTooLong})
	assert.Nil(t, cmd)
	assert.Equal(t, feedView, a.active)
	assert.Equal(t, "Post content cannot exceed 280 characters", a.status)
}

func TestComposeDone_ReplyKeepsParent(t *testing.T) {
	f := newFixture(t)
	a := NewApp(f.deps())

	a, cmd := update(t, a, compose.DoneMsg{
		Target:   compose.TargetComment,
		Content:  "agreed",
		PostID:   "p1",
		ParentID: "c9",
	})
	require.NotNil(t, cmd)
	a, _ = update(t, a, cmd())

	assert.Equal(t, []string{"c9"}, f.comments.parents)
	assert.Equal(t, "Comment added.", a.status)
}

func TestInvalidationsReachFeed(t *testing.T) {
	f := newFixture(t)
	a := NewApp(f.deps())
	wait := a.waitForInvalidation()
	require.NotNil(t, wait)

	inv := app.Invalidation{Mutation: app.MutationVote, Tags: app.InvalidatedBy(app.MutationVote, "")}
	f.cache.Invalidate(inv)

	msg := wait()
	got, ok := msg.(invalidationMsg)
	require.True(t, ok)
	assert.Equal(t, app.MutationVote, got.inv.Mutation)

	_, cmd := update(t, a, got)
	assert.NotNil(t, cmd, "listener is re-armed")
}

func TestCtrlCAlwaysQuits(t *testing.T) {
	a := NewApp(newFixture(t).deps())
	_, cmd := update(t, a, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
