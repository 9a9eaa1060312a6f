package feed

import (
	"log/slog"

	"github.com/skypointsocial/skypoint/domain"
)

// voteTxn is one optimistic vote: the state before the click and the state
// applied locally while the request is in flight.
type voteTxn struct {
	id       int
	postID   string
	action   domain.VoteAction
	snapshot voteSnapshot
	applied  voteSnapshot
}

type voteSnapshot struct {
	vote  domain.Vote
	score int
}

func snapshotOf(p domain.Post) voteSnapshot {
	return voteSnapshot{vote: p.Vote, score: p.Score}
}

func (s voteSnapshot) applyTo(p *domain.Post) {
	p.Vote = s.vote
	p.Score = s.score
}

// voteState tracks in-flight vote transactions by id.
type voteState struct {
	seq     int
	pending map[int]voteTxn
}

// beginVote computes the transition for a click on post and records it.
func (v *voteState) beginVote(post domain.Post, action domain.VoteAction) voteTxn {
	v.seq++
	next := post.WithVote(action)
	txn := voteTxn{
		id:       v.seq,
		postID:   post.ID,
		action:   action,
		snapshot: snapshotOf(post),
		applied:  snapshotOf(next),
	}
	if v.pending == nil {
		v.pending = make(map[int]voteTxn)
	}
	v.pending[txn.id] = txn
	return txn
}

// finish removes and returns the transaction.
func (v *voteState) finish(id int) (voteTxn, bool) {
	txn, ok := v.pending[id]
	if ok {
		delete(v.pending, id)
	}
	return txn, ok
}

// latestFor returns the newest pending transaction for postID.
func (v *voteState) latestFor(postID string) (voteTxn, bool) {
	var (
		best  voteTxn
		found bool
	)
	for _, txn := range v.pending {
		if txn.postID == postID && (!found || txn.id > best.id) {
			best, found = txn, true
		}
	}
	return best, found
}

// setPostVote writes s into every copy of postID the model holds: the feed,
// the open profile's posts and the open detail.
func (m *Model) setPostVote(postID string, s voteSnapshot) {
	m.feed.posts.Update(postID, s.applyTo)
	m.profile.posts.Update(postID, s.applyTo)
	if m.detail.post.ID == postID {
		s.applyTo(&m.detail.post)
	}
}

// reapplyPendingVotes keeps in-flight optimistic state on top of freshly
// loaded server data.
func (m *Model) reapplyPendingVotes() {
	seen := map[string]bool{}
	for _, txn := range m.votes.pending {
		if seen[txn.postID] {
			continue
		}
		seen[txn.postID] = true
		latest, _ := m.votes.latestFor(txn.postID)
		m.setPostVote(txn.postID, latest.applied)
	}
}

// rollbackVote restores the pre-click snapshot verbatim.
func (m *Model) rollbackVote(txn voteTxn, err error) {
	m.setPostVote(txn.postID, txn.snapshot)
	m.logger.Warn("vote failed, rolled back",
		slog.String("post_id", txn.postID),
		slog.Int("vote_type", txn.action.APIValue()),
		slog.String("error", err.Error()),
	)
}
