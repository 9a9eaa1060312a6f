package app

import (
	"context"

	"github.com/skypointsocial/skypoint/domain"
)

// CommentService reads and writes a post's comment tree.
type CommentService interface {
	// Comments returns the pre-nested comment tree for a post.
	Comments(ctx context.Context, postID string) ([]domain.Comment, error)

	// Create adds a comment. An empty parentID makes it top-level.
	Create(ctx context.Context, postID, content, parentID string) (domain.Comment, error)
}
