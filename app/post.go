package app

import (
	"context"

	"github.com/skypointsocial/skypoint/domain"
)

// PostService reads the feed and publishes and votes on posts.
type PostService interface {
	// Feed returns one page of the caller's feed. Pages start at 1.
	Feed(ctx context.Context, page, pageSize int) (domain.FeedPage, error)

	// Create publishes a new post.
	Create(ctx context.Context, content string) (domain.Post, error)

	// Vote records an upvote or downvote click on a post.
	Vote(ctx context.Context, postID string, action domain.VoteAction) error
}
