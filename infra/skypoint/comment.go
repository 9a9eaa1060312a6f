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

// commentService implements app.CommentService using the SkyPoint API.
type commentService struct {
	client *Client
	cache  *querycache.Cache
}

// NewCommentService creates a CommentService backed by SkyPoint.
func NewCommentService(client *Client, cache *querycache.Cache) *commentService {
	return &commentService{client: client, cache: cache}
}

func (s *commentService) Comments(ctx context.Context, postID string) ([]domain.Comment, error) {
	if strings.TrimSpace(postID) == "" {
		return nil, fmt.Errorf("invalid post id")
	}
	return querycache.Query(ctx, s.cache, querycache.Request[[]domain.Comment]{
		Key:  app.CommentsKey(postID),
		Tags: app.CommentsTags(postID),
		Fetch: func(ctx context.Context) ([]domain.Comment, error) {
			var resp []wireComment
			if err := s.client.Get(ctx, "/comment/"+url.PathEscape(postID), &resp); err != nil {
				return nil, fmt.Errorf("fetching comments: %w", err)
			}
			return mapComments(resp), nil
		},
	})
}

func (s *commentService) Create(ctx context.Context, postID, content, parentID string) (domain.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return domain.Comment{}, domain.ErrEmptyComment
	}
	if strings.TrimSpace(postID) == "" {
		return domain.Comment{}, fmt.Errorf("invalid post id")
	}

	body := struct {
		Content         string  `json:"content"`
		PostID          string  `json:"postId"`
		ParentCommentID *string `json:"parentCommentId,omitempty"`
	}{Content: content, PostID: postID}
	if parentID != "" {
		body.ParentCommentID = &parentID
	}

	var resp wireComment
	if err := s.client.Post(ctx, "/comment/"+url.PathEscape(postID), body, &resp); err != nil {
		return domain.Comment{}, fmt.Errorf("creating comment: %w", err)
	}
	s.cache.Invalidate(app.Invalidation{
		Mutation: app.MutationCreateComment,
		Tags:     app.InvalidatedBy(app.MutationCreateComment, postID),
	})

	created := mapComments([]wireComment{resp})
	if len(created) == 0 {
		return domain.Comment{PostID: postID, ParentID: parentID, Content: content}, nil
	}
	return created[0], nil
}
