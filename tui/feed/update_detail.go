package feed

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/skypointsocial/skypoint/domain"
)

// openDetail shows post and loads its comments.
func (m Model) openDetail(post domain.Post) (Model, tea.Cmd) {
	m.detail = detailState{
		post:    post,
		cursor:  -1,
		loading: true,
		reqSeq:  m.detail.reqSeq + 1,
	}
	m.push(viewDetail)
	return m, tea.Batch(m.spinner.Tick, m.fetchComments(post.ID, m.detail.reqSeq))
}

func (m Model) refetchComments() (Model, tea.Cmd) {
	if m.detail.post.ID == "" {
		return m, nil
	}
	m.detail.reqSeq++
	m.detail.loading = true
	return m, m.fetchComments(m.detail.post.ID, m.detail.reqSeq)
}

func (m Model) handleDetailMsg(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case CommentsLoadedMsg:
		if msg.ReqSeq != m.detail.reqSeq || msg.PostID != m.detail.post.ID {
			return m, nil
		}
		selected := m.selectedCommentID()
		m.detail.comments = msg.Comments
		m.detail.rows = flattenComments(msg.Comments)
		m.detail.loading = false
		m.detail.err = nil
		m.detail.cursor = -1
		if selected != "" {
			for i, row := range m.detail.rows {
				if row.comment.ID == selected {
					m.detail.cursor = i
					break
				}
			}
		}
		return m, nil

	case CommentsErrorMsg:
		if msg.ReqSeq != m.detail.reqSeq || msg.PostID != m.detail.post.ID {
			return m, nil
		}
		m.detail.loading = false
		m.detail.err = msg.Err
		m.logger.Warn("comments fetch failed", slog.String("post_id", msg.PostID), slog.String("error", msg.Err.Error()))
		return m, nil
	}
	return m, nil
}

func (m Model) selectedCommentID() string {
	if m.detail.cursor >= 0 && m.detail.cursor < len(m.detail.rows) {
		return m.detail.rows[m.detail.cursor].comment.ID
	}
	return ""
}

// composeComment asks for a comment on the open post, or a reply to the
// selected comment when one is highlighted.
func (m Model) composeComment(inline bool) tea.Cmd {
	post := m.detail.post
	if post.ID == "" {
		return nil
	}
	req := ComposeCommentMsg{
		PostID:  post.ID,
		Context: "Commenting on @" + post.Author.Handle(),
		Inline:  inline,
	}
	if m.detail.cursor >= 0 && m.detail.cursor < len(m.detail.rows) {
		c := m.detail.rows[m.detail.cursor].comment
		req.ParentID = c.ID
		req.Context = "Replying to @" + c.Author.Handle()
	}
	return func() tea.Msg { return req }
}
