package app

import (
	"context"

	"github.com/skypointsocial/skypoint/domain"
)

// AccountService provides user profiles and the follow graph.
type AccountService interface {
	// User returns a user's profile.
	User(ctx context.Context, userID string) (domain.User, error)

	// PostsByUser returns one page of a user's posts.
	PostsByUser(ctx context.Context, userID string, page, pageSize int) ([]domain.Post, error)

	// IsFollowing reports whether the caller follows userID.
	IsFollowing(ctx context.Context, userID string) (bool, error)

	// ToggleFollow follows or unfollows userID; the server decides which.
	ToggleFollow(ctx context.Context, userID string) error
}
