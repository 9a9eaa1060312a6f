package skypoint

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/skypointsocial/skypoint/app"
	"github.com/skypointsocial/skypoint/domain"
	"github.com/skypointsocial/skypoint/infra/querycache"
)

// accountService implements app.AccountService using the SkyPoint API.
type accountService struct {
	client *Client
	cache  *querycache.Cache
}

// NewAccountService creates an AccountService backed by SkyPoint.
func NewAccountService(client *Client, cache *querycache.Cache) *accountService {
	return &accountService{client: client, cache: cache}
}

func (s *accountService) User(ctx context.Context, userID string) (domain.User, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return domain.User{}, fmt.Errorf("invalid user id")
	}
	return querycache.Query(ctx, s.cache, querycache.Request[domain.User]{
		Key:  app.UserKey(userID),
		Tags: app.UserTags(userID),
		Fetch: func(ctx context.Context) (domain.User, error) {
			var resp wireUser
			if err := s.client.Get(ctx, "/users/"+url.PathEscape(userID), &resp); err != nil {
				return domain.User{}, fmt.Errorf("fetching user: %w", err)
			}
			return mapUser(resp), nil
		},
	})
}

func (s *accountService) PostsByUser(ctx context.Context, userID string, page, pageSize int) ([]domain.Post, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("invalid user id")
	}
	if page < 1 {
		page = 1
	}
	return querycache.Query(ctx, s.cache, querycache.Request[[]domain.Post]{
		Key:     app.UserPostsKey(userID, page, pageSize),
		Tags:    app.UserPostsTags(userID),
		Refetch: true,
		Fetch: func(ctx context.Context) ([]domain.Post, error) {
			path := fmt.Sprintf("/posts/user/%s?page=%d&pageSize=%d", url.PathEscape(userID), page, pageSize)
			var resp []wirePost
			if err := s.client.Get(ctx, path, &resp); err != nil {
				return nil, fmt.Errorf("fetching user posts: %w", err)
			}
			return mapPosts(resp), nil
		},
	})
}

func (s *accountService) IsFollowing(ctx context.Context, userID string) (bool, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return false, fmt.Errorf("invalid user id")
	}
	return querycache.Query(ctx, s.cache, querycache.Request[bool]{
		Key:  app.FollowStatusKey(userID),
		Tags: app.FollowStatusTags(userID),
		Fetch: func(ctx context.Context) (bool, error) {
			var resp struct {
				IsFollowing bool `json:"isFollowing"`
			}
			if err := s.client.Get(ctx, "/follow/status/"+url.PathEscape(userID), &resp); err != nil {
				return false, fmt.Errorf("fetching follow status: %w", err)
			}
			return resp.IsFollowing, nil
		},
	})
}

func (s *accountService) ToggleFollow(ctx context.Context, userID string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return fmt.Errorf("invalid user id")
	}
	if err := s.client.Post(ctx, "/follow", map[string]string{"userId": userID}, nil); err != nil {
		return fmt.Errorf("toggling follow: %w", err)
	}
	s.cache.Invalidate(app.Invalidation{
		Mutation: app.MutationFollow,
		Tags:     app.InvalidatedBy(app.MutationFollow, ""),
	})
	return nil
}
