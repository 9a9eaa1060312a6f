package domain

import "time"

// Comment is a node in a post's comment tree. Replies arrive pre-nested.
type Comment struct {
	ID        string
	Content   string
	CreatedAt time.Time
	TimeAgo   string
	Author    User
	PostID    string
	ParentID  string // Empty for top-level comments
	Replies   []Comment
}

// WalkComments visits every comment depth-first, parents before replies.
func WalkComments(comments []Comment, fn func(c Comment, depth int)) {
	var walk func([]Comment, int)
	walk = func(level []Comment, depth int) {
		for _, c := range level {
			fn(c, depth)
			walk(c.Replies, depth+1)
		}
	}
	walk(comments, 0)
}

// CountComments returns the number of nodes in the tree.
func CountComments(comments []Comment) int {
	n := 0
	WalkComments(comments, func(Comment, int) { n++ })
	return n
}
