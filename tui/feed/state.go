package feed

import (
	"github.com/skypointsocial/skypoint/app"
	"github.com/skypointsocial/skypoint/domain"
)

// --- Messages ---

// RefreshMsg reloads the feed from page 1.
type RefreshMsg struct{}

// PostsLoadedMsg carries feed data. Replace marks a refetch of every loaded
// page; otherwise Page selects replace (1) or append (>1).
type PostsLoadedMsg struct {
	Posts    []domain.Post
	Page     int
	HasMore  bool
	Replace  bool
	QueryKey string
	ReqSeq   int
	Epoch    uint64
}

// PostsErrorMsg is sent when a feed fetch fails.
type PostsErrorMsg struct {
	Err      error
	Page     int
	QueryKey string
	ReqSeq   int
	Epoch    uint64
}

// PostCreatedMsg is sent by the root model after a post was published.
type PostCreatedMsg struct {
	Post domain.Post
}

// InvalidatedMsg forwards a cache invalidation so active views can refetch.
type InvalidatedMsg struct {
	Invalidation app.Invalidation
}

// VoteResultMsg is sent after a vote request completes.
type VoteResultMsg struct {
	TxnID  int
	PostID string
	Err    error
	Epoch  uint64
}

// CommentsLoadedMsg carries a post's comment tree.
type CommentsLoadedMsg struct {
	PostID   string
	Comments []domain.Comment
	ReqSeq   int
	Epoch    uint64
}

// CommentsErrorMsg is sent when loading comments fails.
type CommentsErrorMsg struct {
	PostID string
	Err    error
	ReqSeq int
	Epoch  uint64
}

// ComposeCommentMsg asks the root model to open the comment composer.
type ComposeCommentMsg struct {
	PostID   string
	ParentID string
	Context  string
	Inline   bool
}

// ProfileUserLoadedMsg carries a profile's user record.
type ProfileUserLoadedMsg struct {
	UserID string
	User   domain.User
	Err    error
	ReqSeq int
	Epoch  uint64
}

// ProfilePostsLoadedMsg carries profile posts. Replace has the same meaning
// as on PostsLoadedMsg.
type ProfilePostsLoadedMsg struct {
	UserID  string
	Posts   []domain.Post
	Page    int
	Replace bool
	Err     error
	ReqSeq  int
	Epoch   uint64
}

// FollowStatusLoadedMsg carries whether the caller follows a user.
type FollowStatusLoadedMsg struct {
	UserID    string
	Following bool
	Err       error
	ReqSeq    int
	Epoch     uint64
}

// FollowResultMsg is sent after a follow toggle completes.
type FollowResultMsg struct {
	UserID string
	Err    error
	Epoch  uint64
}

// BannerMsg asks the root model to show a dismissible banner.
type BannerMsg struct {
	Text string
}

// RequireLoginMsg asks the root model to show the login view.
type RequireLoginMsg struct{}

func (m PostsLoadedMsg) epoch() uint64        { return m.Epoch }
func (m PostsErrorMsg) epoch() uint64         { return m.Epoch }
func (m VoteResultMsg) epoch() uint64         { return m.Epoch }
func (m CommentsLoadedMsg) epoch() uint64     { return m.Epoch }
func (m CommentsErrorMsg) epoch() uint64      { return m.Epoch }
func (m ProfileUserLoadedMsg) epoch() uint64  { return m.Epoch }
func (m ProfilePostsLoadedMsg) epoch() uint64 { return m.Epoch }
func (m FollowStatusLoadedMsg) epoch() uint64 { return m.Epoch }
func (m FollowResultMsg) epoch() uint64       { return m.Epoch }

// resultMsg is a command result stamped with the epoch of the model that
// issued it.
type resultMsg interface {
	epoch() uint64
}

// --- State ---

type feedState struct {
	posts       Accumulator
	cursor      int
	startIndex  int
	loading     bool
	loadingMore bool
	err         error
	reqSeq      int
	notice      string
}

type commentRow struct {
	comment domain.Comment
	depth   int
}

type detailState struct {
	post     domain.Post
	comments []domain.Comment
	rows     []commentRow
	cursor   int // -1 selects the post itself
	loading  bool
	err      error
	reqSeq   int
}

type profileState struct {
	userID        string
	own           bool
	user          domain.User
	userLoaded    bool
	posts         Accumulator
	cursor        int
	following     bool
	followKnown   bool
	followPending bool
	loading       bool
	loadingMore   bool
	err           error
	reqSeq        int
	postsSeq      int
}

// flattenComments lists the tree depth-first, parents before replies.
func flattenComments(comments []domain.Comment) []commentRow {
	var rows []commentRow
	domain.WalkComments(comments, func(c domain.Comment, depth int) {
		rows = append(rows, commentRow{comment: c, depth: depth})
	})
	return rows
}
