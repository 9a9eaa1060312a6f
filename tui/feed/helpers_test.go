package feed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/skypointsocial/skypoint/domain"
)

type voteCall struct {
	postID string
	action domain.VoteAction
}

type stubPosts struct {
	mu      sync.Mutex
	pages   map[int]domain.FeedPage
	feedErr error
	voteErr error
	votes   []voteCall
	fetched []int
}

func (s *stubPosts) Feed(_ context.Context, page, _ int) (domain.FeedPage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetched = append(s.fetched, page)
	if s.feedErr != nil {
		return domain.FeedPage{}, s.feedErr
	}
	return s.pages[page], nil
}

func (s *stubPosts) Create(_ context.Context, content string) (domain.Post, error) {
	return domain.Post{ID: "new", Content: content}, nil
}

func (s *stubPosts) Vote(_ context.Context, postID string, action domain.VoteAction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.votes = append(s.votes, voteCall{postID: postID, action: action})
	return s.voteErr
}

type stubComments struct {
	tree map[string][]domain.Comment
	err  error
}

func (s stubComments) Comments(_ context.Context, postID string) ([]domain.Comment, error) {
	return s.tree[postID], s.err
}

func (s stubComments) Create(_ context.Context, postID, content, parentID string) (domain.Comment, error) {
	return domain.Comment{ID: "c-new", PostID: postID, Content: content, ParentID: parentID}, nil
}

type stubAccount struct {
	users      map[string]domain.User
	posts      map[string][]domain.Post
	following  bool
	followErr  error
	toggles    []string
	statusHits int
}

func (s *stubAccount) User(_ context.Context, id string) (domain.User, error) {
	u, ok := s.users[id]
	if !ok {
		return domain.User{}, fmt.Errorf("user %s not found", id)
	}
	return u, nil
}

func (s *stubAccount) PostsByUser(_ context.Context, id string, page, pageSize int) ([]domain.Post, error) {
	all := s.posts[id]
	start := (page - 1) * pageSize
	if start >= len(all) {
		return nil, nil
	}
	return all[start:min(start+pageSize, len(all))], nil
}

func (s *stubAccount) IsFollowing(context.Context, string) (bool, error) {
	s.statusHits++
	return s.following, nil
}

func (s *stubAccount) ToggleFollow(_ context.Context, id string) error {
	s.toggles = append(s.toggles, id)
	if s.followErr != nil {
		return s.followErr
	}
	s.following = !s.following
	return nil
}

type stubSession struct {
	user   domain.User
	authed bool
}

func (s stubSession) Authenticated() bool      { return s.authed }
func (s stubSession) CurrentUser() domain.User { return s.user }

type testDeps struct {
	posts    *stubPosts
	comments stubComments
	account  *stubAccount
	session  stubSession
}

func newTestDeps() *testDeps {
	return &testDeps{
		posts:   &stubPosts{pages: map[int]domain.FeedPage{}},
		account: &stubAccount{users: map[string]domain.User{}, posts: map[string][]domain.Post{}},
		session: stubSession{user: domain.User{ID: "me", Username: "me"}, authed: true},
	}
}

func (d *testDeps) model() Model {
	return New(Deps{
		Posts:    d.posts,
		Comments: d.comments,
		Account:  d.account,
		Session:  d.session,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		PageSize: 2,
	})
}

func makePost(id string, score int) domain.Post {
	return domain.Post{
		ID:      id,
		Content: "post " + id,
		Score:   score,
		Author:  domain.User{ID: "author-" + id, Username: "user" + id},
	}
}

// drain runs cmd and every command it batches, returning the produced
// messages without spinner ticks.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	switch msg := msg.(type) {
	case nil:
		return nil
	case spinner.TickMsg:
		return nil
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, drain(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// settle feeds every message produced by cmd back into m until no commands
// remain.
func settle(m Model, cmd tea.Cmd) Model {
	queue := drain(cmd)
	for len(queue) > 0 {
		msg := queue[0]
		queue = queue[1:]
		var next tea.Cmd
		m, next = m.Update(msg)
		queue = append(queue, drain(next)...)
	}
	return m
}

// loaded returns a model whose feed holds posts as page 1.
func (d *testDeps) loaded(posts ...domain.Post) Model {
	d.posts.pages[1] = domain.FeedPage{Posts: posts, Page: 1, HasMore: false}
	m := d.model()
	m, cmd := m.Update(RefreshMsg{})
	return settle(m, cmd)
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}
