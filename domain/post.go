package domain

import "time"

// Post is a single feed entry.
type Post struct {
	ID           string
	Content      string
	Score        int
	CommentCount int
	CreatedAt    time.Time
	TimeAgo      string // Server-rendered relative time, may be empty
	Author       User
	Vote         Vote // The caller's own vote on this post
}

// FeedPage is one server page of the feed.
type FeedPage struct {
	Posts      []Post
	TotalCount int
	Page       int
	PageSize   int
	HasMore    bool
}

// MaxPostLength is the client-side content limit, counted in grapheme clusters.
const MaxPostLength = 280
