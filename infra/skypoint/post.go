package skypoint

import (
	"context"
	"fmt"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/skypointsocial/skypoint/app"
	"github.com/skypointsocial/skypoint/domain"
	"github.com/skypointsocial/skypoint/infra/querycache"
)

// postService implements app.PostService using the SkyPoint API.
type postService struct {
	client *Client
	cache  *querycache.Cache
}

// NewPostService creates a PostService backed by SkyPoint.
func NewPostService(client *Client, cache *querycache.Cache) *postService {
	return &postService{client: client, cache: cache}
}

func (s *postService) Feed(ctx context.Context, page, pageSize int) (domain.FeedPage, error) {
	if page < 1 {
		page = 1
	}
	return querycache.Query(ctx, s.cache, querycache.Request[domain.FeedPage]{
		Key:  app.FeedKey(page, pageSize),
		Tags: app.FeedTags(),
		// Paging always hits the server; a refresh shifts later pages.
		Refetch: true,
		Fetch: func(ctx context.Context) (domain.FeedPage, error) {
			path := fmt.Sprintf("/feed?page=%d&pageSize=%d", page, pageSize)
			var resp wireFeed
			if err := s.client.Get(ctx, path, &resp); err != nil {
				return domain.FeedPage{}, fmt.Errorf("fetching feed: %w", err)
			}
			return domain.FeedPage{
				Posts:      mapPosts(resp.Posts),
				TotalCount: resp.TotalCount,
				Page:       resp.Page,
				PageSize:   resp.PageSize,
				HasMore:    resp.HasMore,
			}, nil
		},
	})
}

func (s *postService) Create(ctx context.Context, content string) (domain.Post, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return domain.Post{}, domain.ErrEmptyPost
	}
	if uniseg.GraphemeClusterCount(content) > domain.MaxPostLength {
		return domain.Post{}, domain.ErrPostTooLong
	}

	var resp wirePost
	if err := s.client.Post(ctx, "/post", map[string]string{"content": content}, &resp); err != nil {
		return domain.Post{}, fmt.Errorf("creating post: %w", err)
	}
	s.cache.Invalidate(app.Invalidation{
		Mutation: app.MutationCreatePost,
		Tags:     app.InvalidatedBy(app.MutationCreatePost, ""),
	})
	return mapPost(resp), nil
}

func (s *postService) Vote(ctx context.Context, postID string, action domain.VoteAction) error {
	if strings.TrimSpace(postID) == "" {
		return fmt.Errorf("invalid post id")
	}
	body := map[string]any{"postId": postID, "voteType": action.APIValue()}
	if err := s.client.Post(ctx, "/vote", body, nil); err != nil {
		return fmt.Errorf("voting on post %s: %w", postID, err)
	}
	s.cache.Invalidate(app.Invalidation{
		Mutation: app.MutationVote,
		Tags:     app.InvalidatedBy(app.MutationVote, postID),
	})
	return nil
}
