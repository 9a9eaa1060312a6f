package feed

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/skypointsocial/skypoint/domain"
)

// vote applies the click locally, then sends it. The transaction remembers
// the pre-click state so a failure restores it exactly.
func (m Model) vote(action domain.VoteAction) (Model, tea.Cmd) {
	post, ok := m.SelectedPost()
	if !ok {
		return m, nil
	}
	if !m.authenticated() {
		return m, requireLogin
	}
	txn := m.votes.beginVote(post, action)
	m.setPostVote(post.ID, txn.applied)
	return m, m.sendVote(txn)
}

func (m Model) handleOptimisticMsg(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case VoteResultMsg:
		txn, ok := m.votes.finish(msg.TxnID)
		if !ok {
			return m, nil
		}
		if msg.Err != nil {
			m.rollbackVote(txn, msg.Err)
		}
		return m, nil

	case PostCreatedMsg:
		if m.feed.posts.Prepend(msg.Post) {
			m.feed.cursor = 0
			m.feed.startIndex = 0
		}
		return m, nil
	}
	return m, nil
}
