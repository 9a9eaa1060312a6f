package skypoint

import (
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/x/ansi"

	"github.com/skypointsocial/skypoint/domain"
)

// Wire shapes of the SkyPoint API. Timestamps stay strings because the
// backend omits the zone offset on some fields.

type wireUser struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	Email          string `json:"email"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	FollowerCount  int    `json:"followerCount"`
	FollowingCount int    `json:"followingCount"`
	PostCount      int    `json:"postCount"`
	Avatar         string `json:"avatar"`
	CreatedAt      string `json:"createdAt"`
	UpdatedAt      string `json:"updatedAt"`
}

type wirePost struct {
	ID           string   `json:"id"`
	Content      string   `json:"content"`
	Score        int      `json:"score"`
	CommentCount int      `json:"commentCount"`
	CreatedAt    string   `json:"createdAt"`
	TimeAgo      string   `json:"timeAgo"`
	User         wireUser `json:"user"`
	UserVote     *int     `json:"userVote"`
}

type wireFeed struct {
	Posts      []wirePost `json:"posts"`
	TotalCount int        `json:"totalCount"`
	Page       int        `json:"page"`
	PageSize   int        `json:"pageSize"`
	HasMore    bool       `json:"hasMore"`
}

type wireComment struct {
	ID              string        `json:"id"`
	Content         string        `json:"content"`
	CreatedAt       string        `json:"createdAt"`
	TimeAgo         string        `json:"timeAgo"`
	User            wireUser      `json:"user"`
	PostID          string        `json:"postId"`
	ParentCommentID *string       `json:"parentCommentId"`
	Replies         []wireComment `json:"replies"`
}

type wireAuth struct {
	User      wireUser `json:"user"`
	Token     string   `json:"token"`
	SessionID string   `json:"sessionId"`
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.9999999",
	"2006-01-02T15:04:05",
}

// parseTime accepts RFC 3339 and the zone-less forms the backend emits,
// treating the latter as UTC. Unparseable input yields the zero time.
func parseTime(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func mapUser(u wireUser) domain.User {
	return domain.User{
		ID:             u.ID,
		Username:       sanitizeForTerminal(u.Username),
		Email:          sanitizeForTerminal(u.Email),
		FirstName:      sanitizeForTerminal(u.FirstName),
		LastName:       sanitizeForTerminal(u.LastName),
		FollowerCount:  u.FollowerCount,
		FollowingCount: u.FollowingCount,
		PostCount:      u.PostCount,
		Avatar:         sanitizeForTerminal(u.Avatar),
		CreatedAt:      parseTime(u.CreatedAt),
		UpdatedAt:      parseTime(u.UpdatedAt),
	}
}

func mapPost(p wirePost) domain.Post {
	return domain.Post{
		ID:           p.ID,
		Content:      sanitizeForTerminal(p.Content),
		Score:        p.Score,
		CommentCount: p.CommentCount,
		CreatedAt:    parseTime(p.CreatedAt),
		TimeAgo:      sanitizeForTerminal(p.TimeAgo),
		Author:       mapUser(p.User),
		Vote:         domain.VoteFromWire(p.UserVote),
	}
}

func mapPosts(posts []wirePost) []domain.Post {
	out := make([]domain.Post, 0, len(posts))
	for _, p := range posts {
		out = append(out, mapPost(p))
	}
	return out
}

func mapComments(comments []wireComment) []domain.Comment {
	if len(comments) == 0 {
		return nil
	}
	out := make([]domain.Comment, 0, len(comments))
	for _, c := range comments {
		parent := ""
		if c.ParentCommentID != nil {
			parent = *c.ParentCommentID
		}
		out = append(out, domain.Comment{
			ID:        c.ID,
			Content:   sanitizeForTerminal(c.Content),
			CreatedAt: parseTime(c.CreatedAt),
			TimeAgo:   sanitizeForTerminal(c.TimeAgo),
			Author:    mapUser(c.User),
			PostID:    c.PostID,
			ParentID:  parent,
			Replies:   mapComments(c.Replies),
		})
	}
	return out
}

// sanitizeForTerminal strips escape sequences and control characters other
// than newlines and tabs so server text cannot drive the terminal.
func sanitizeForTerminal(s string) string {
	s = ansi.Strip(s)
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}
