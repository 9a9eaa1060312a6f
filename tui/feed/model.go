package feed

import (
	"log/slog"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/skypointsocial/skypoint/app"
	"github.com/skypointsocial/skypoint/domain"
	"github.com/skypointsocial/skypoint/tui/common"
)

const (
	defaultPageSize  = 20
	profilePageSize  = 10
	prefetchTrigger  = 3
	postBoxHeight    = 6
	reservedHeight   = 8
	defaultWidth     = 80
	maxContentWidth  = 100
	previewLineCount = 3
)

// epochs numbers feed models across the process so results issued by a
// discarded model never match a newer one.
var epochs atomic.Uint64

// Session is the part of the session store the feed reads.
type Session interface {
	Authenticated() bool
	CurrentUser() domain.User
}

// Deps holds the services the feed view needs.
type Deps struct {
	Posts    app.PostService
	Comments app.CommentService
	Account  app.AccountService
	Session  Session
	Logger   *slog.Logger
	PageSize int
}

type view int

const (
	viewFeed view = iota
	viewDetail
	viewProfile
)

// Model holds the state for the feed, post detail and profile views.
type Model struct {
	posts    app.PostService
	comments app.CommentService
	account  app.AccountService
	session  Session
	logger   *slog.Logger
	pageSize int
	epoch    uint64

	keys      common.KeyMap
	spinner   spinner.Model
	width     int
	height    int
	showHints bool
	stack     []view

	feed    feedState
	detail  detailState
	profile profileState
	votes   voteState
}

// New creates a feed model with injected dependencies.
func New(deps Deps) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#1976D2"))

	pageSize := deps.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return Model{
		posts:    deps.Posts,
		comments: deps.Comments,
		account:  deps.Account,
		session:  deps.Session,
		logger:   logger,
		pageSize: pageSize,
		epoch:    epochs.Add(1),
		keys:     common.DefaultKeyMap(),
		spinner:  s,
		width:    defaultWidth,
		stack:    []view{viewFeed},
	}
}

// Init starts the initial feed fetch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, func() tea.Msg { return RefreshMsg{} })
}

// Update handles messages for the feed views.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m.update(msg)
}

// --- Accessors used by the root model and tests ---

// Posts returns the accumulated feed.
func (m Model) Posts() []domain.Post { return m.feed.posts.Posts() }

// Cursor returns the selected feed index.
func (m Model) Cursor() int { return m.feed.cursor }

// SelectedPost returns the highlighted post in the active view.
func (m Model) SelectedPost() (domain.Post, bool) {
	switch m.active() {
	case viewDetail:
		return m.detail.post, m.detail.post.ID != ""
	case viewProfile:
		posts := m.profile.posts.Posts()
		if m.profile.cursor < 0 || m.profile.cursor >= len(posts) {
			return domain.Post{}, false
		}
		return posts[m.profile.cursor], true
	}
	posts := m.feed.posts.Posts()
	if len(posts) == 0 || m.feed.cursor >= len(posts) {
		return domain.Post{}, false
	}
	return posts[m.feed.cursor], true
}

// IsInDetailView reports whether a post detail is open.
func (m Model) IsInDetailView() bool { return m.active() == viewDetail }

// IsInProfileView reports whether a profile is open.
func (m Model) IsInProfileView() bool { return m.active() == viewProfile }

// AtRoot reports whether the plain feed list is showing.
func (m Model) AtRoot() bool { return m.active() == viewFeed }

func (m Model) active() view { return m.stack[len(m.stack)-1] }

// push opens v, dropping anything stacked above an earlier copy of it.
func (m *Model) push(v view) {
	for i, s := range m.stack {
		if s == v && i > 0 {
			m.stack = m.stack[:i]
			break
		}
	}
	m.stack = append(m.stack, v)
}

func (m *Model) pop() {
	if len(m.stack) > 1 {
		m.stack = m.stack[:len(m.stack)-1]
	}
}
