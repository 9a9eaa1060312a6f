package domain

// Vote is the caller's vote on a post. The zero value means no vote.
type Vote int

const (
	VoteDown Vote = -1
	VoteNone Vote = 0
	VoteUp   Vote = 1
)

// VoteFromWire maps the API's nullable userVote onto a Vote. Anything outside
// {-1, 1} is treated as no vote.
func VoteFromWire(v *int) Vote {
	if v == nil {
		return VoteNone
	}
	switch *v {
	case 1:
		return VoteUp
	case -1:
		return VoteDown
	}
	return VoteNone
}

// VoteAction is a click on one of the two vote buttons.
type VoteAction int

const (
	Upvote VoteAction = iota
	Downvote
)

// APIValue is the voteType sent to the server for this click. Clicking the
// already-active button still sends the same value; the server toggles.
func (a VoteAction) APIValue() int {
	if a == Downvote {
		return -1
	}
	return 1
}

// NextVote returns the vote state after the click and the score delta that
// transition implies. Switching sides swings the score by two.
func NextVote(current Vote, action VoteAction) (Vote, int) {
	switch action {
	case Upvote:
		switch current {
		case VoteUp:
			return VoteNone, -1
		case VoteDown:
			return VoteUp, 2
		default:
			return VoteUp, 1
		}
	case Downvote:
		switch current {
		case VoteDown:
			return VoteNone, 1
		case VoteUp:
			return VoteDown, -2
		default:
			return VoteDown, -1
		}
	}
	return current, 0
}

// WithVote returns a copy of p with the click applied to its vote and score.
func (p Post) WithVote(action VoteAction) Post {
	next, delta := NextVote(p.Vote, action)
	p.Vote = next
	p.Score += delta
	return p
}
