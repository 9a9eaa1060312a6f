package feed

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/skypointsocial/skypoint/domain"
)

func (m Model) currentFeedQueryKey() string {
	return fmt.Sprintf("feed:pageSize=%d", m.pageSize)
}

// fetchFeedPage loads one page. Page 1 replaces the feed, later pages append.
func (m Model) fetchFeedPage(page, reqSeq int) tea.Cmd {
	epoch := m.epoch
	posts := m.posts
	pageSize := m.pageSize
	queryKey := m.currentFeedQueryKey()
	return func() tea.Msg {
		res, err := posts.Feed(context.Background(), page, pageSize)
		if err != nil {
			return PostsErrorMsg{Epoch: epoch, Err: err, Page: page, QueryKey: queryKey, ReqSeq: reqSeq}
		}
		return PostsLoadedMsg{
			Epoch:    epoch,
			Posts:    res.Posts,
			Page:     page,
			HasMore:  res.HasMore,
			QueryKey: queryKey,
			ReqSeq:   reqSeq,
		}
	}
}

// refetchFeed reloads pages 1..through and merges them, so an invalidation
// does not shrink a feed the user has scrolled.
func (m Model) refetchFeed(through, reqSeq int) tea.Cmd {
	epoch := m.epoch
	posts := m.posts
	pageSize := m.pageSize
	queryKey := m.currentFeedQueryKey()
	return func() tea.Msg {
		var acc Accumulator
		for page := 1; page <= through; page++ {
			res, err := posts.Feed(context.Background(), page, pageSize)
			if err != nil {
				return PostsErrorMsg{Epoch: epoch, Err: err, Page: page, QueryKey: queryKey, ReqSeq: reqSeq}
			}
			acc.Apply(page, res.Posts, res.HasMore)
			if !res.HasMore {
				break
			}
		}
		return PostsLoadedMsg{
			Epoch:    epoch,
			Posts:    acc.Posts(),
			Page:     acc.Page(),
			HasMore:  acc.HasMore(),
			Replace:  true,
			QueryKey: queryKey,
			ReqSeq:   reqSeq,
		}
	}
}

func (m Model) sendVote(txn voteTxn) tea.Cmd {
	epoch := m.epoch
	posts := m.posts
	return func() tea.Msg {
		err := posts.Vote(context.Background(), txn.postID, txn.action)
		return VoteResultMsg{Epoch: epoch, TxnID: txn.id, PostID: txn.postID, Err: err}
	}
}

func (m Model) fetchComments(postID string, reqSeq int) tea.Cmd {
	epoch := m.epoch
	comments := m.comments
	return func() tea.Msg {
		tree, err := comments.Comments(context.Background(), postID)
		if err != nil {
			return CommentsErrorMsg{Epoch: epoch, PostID: postID, Err: err, ReqSeq: reqSeq}
		}
		return CommentsLoadedMsg{Epoch: epoch, PostID: postID, Comments: tree, ReqSeq: reqSeq}
	}
}

func (m Model) fetchProfileUser(userID string, reqSeq int) tea.Cmd {
	epoch := m.epoch
	account := m.account
	return func() tea.Msg {
		u, err := account.User(context.Background(), userID)
		return ProfileUserLoadedMsg{Epoch: epoch, UserID: userID, User: u, Err: err, ReqSeq: reqSeq}
	}
}

// fetchProfilePosts loads one page of a user's posts. The endpoint has no
// paging metadata; a full page implies there may be more.
func (m Model) fetchProfilePosts(userID string, page, reqSeq int) tea.Cmd {
	epoch := m.epoch
	account := m.account
	return func() tea.Msg {
		posts, err := account.PostsByUser(context.Background(), userID, page, profilePageSize)
		return ProfilePostsLoadedMsg{Epoch: epoch, UserID: userID, Posts: posts, Page: page, Err: err, ReqSeq: reqSeq}
	}
}

func (m Model) refetchProfilePosts(userID string, through, reqSeq int) tea.Cmd {
	epoch := m.epoch
	account := m.account
	return func() tea.Msg {
		var all []domain.Post
		page := 1
		for ; page <= through; page++ {
			posts, err := account.PostsByUser(context.Background(), userID, page, profilePageSize)
			if err != nil {
				return ProfilePostsLoadedMsg{Epoch: epoch, UserID: userID, Err: err, ReqSeq: reqSeq}
			}
			all = append(all, posts...)
			if len(posts) < profilePageSize {
				break
			}
		}
		return ProfilePostsLoadedMsg{
			Epoch:   epoch,
			UserID:  userID,
			Posts:   all,
			Page:    min(page, through),
			Replace: true,
			ReqSeq:  reqSeq,
		}
	}
}

func (m Model) fetchFollowStatus(userID string, reqSeq int) tea.Cmd {
	epoch := m.epoch
	account := m.account
	return func() tea.Msg {
		following, err := account.IsFollowing(context.Background(), userID)
		return FollowStatusLoadedMsg{Epoch: epoch, UserID: userID, Following: following, Err: err, ReqSeq: reqSeq}
	}
}

func (m Model) toggleFollow(userID string) tea.Cmd {
	epoch := m.epoch
	account := m.account
	return func() tea.Msg {
		err := account.ToggleFollow(context.Background(), userID)
		return FollowResultMsg{Epoch: epoch, UserID: userID, Err: err}
	}
}

func banner(text string) tea.Cmd {
	return func() tea.Msg { return BannerMsg{Text: text} }
}
