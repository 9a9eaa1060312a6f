package app

import "fmt"

// TagType groups cached query results for invalidation.
type TagType string

const (
	TagUser    TagType = "User"
	TagPost    TagType = "Post"
	TagComment TagType = "Comment"
	TagAuth    TagType = "Auth"
	TagFollow  TagType = "Follow"
)

// Tag labels a cached query result. An empty ID is the general tag for Type.
type Tag struct {
	Type TagType
	ID   string
}

func (t Tag) String() string {
	if t.ID == "" {
		return string(t.Type)
	}
	return string(t.Type) + "/" + t.ID
}

// General returns the id-less tag for a type.
func General(t TagType) Tag { return Tag{Type: t} }

// Tagged returns a tag scoped to one id.
func Tagged(t TagType, id string) Tag { return Tag{Type: t, ID: id} }

// Matches reports whether invalidating inv should drop a result providing p.
// A general invalidation hits every tag of its type; a scoped one hits only
// the same id.
func (inv Tag) Matches(p Tag) bool {
	if inv.Type != p.Type {
		return false
	}
	return inv.ID == "" || inv.ID == p.ID
}

// AnyMatch reports whether any invalidated tag hits any provided tag.
func AnyMatch(invalidated, provided []Tag) bool {
	for _, inv := range invalidated {
		for _, p := range provided {
			if inv.Matches(p) {
				return true
			}
		}
	}
	return false
}

// Invalidation is published after a successful mutation.
type Invalidation struct {
	Mutation Mutation
	Tags     []Tag
}

// Mutation names a write operation against the API.
type Mutation int

const (
	MutationLogin Mutation = iota
	MutationRegister
	MutationOAuthLogin
	MutationLogout
	MutationCreatePost
	MutationCreateComment
	MutationVote
	MutationFollow
)

var mutationNames = map[Mutation]string{
	MutationLogin:         "login",
	MutationRegister:      "register",
	MutationOAuthLogin:    "oauthLogin",
	MutationLogout:        "logout",
	MutationCreatePost:    "createPost",
	MutationCreateComment: "createComment",
	MutationVote:          "vote",
	MutationFollow:        "follow",
}

func (m Mutation) String() string {
	if name, ok := mutationNames[m]; ok {
		return name
	}
	return fmt.Sprintf("mutation(%d)", int(m))
}

// mutationInvalidates is the dependency map from mutation kind to the tags it
// makes stale. postID is only used by createComment.
var mutationInvalidates = map[Mutation]func(postID string) []Tag{
	MutationLogin:      authTags,
	MutationRegister:   authTags,
	MutationOAuthLogin: authTags,
	MutationLogout:     authTags,
	MutationCreatePost: func(string) []Tag {
		return []Tag{General(TagPost)}
	},
	MutationCreateComment: func(postID string) []Tag {
		return []Tag{Tagged(TagComment, postID), General(TagPost)}
	},
	MutationVote: func(string) []Tag {
		return []Tag{General(TagPost), General(TagComment)}
	},
	MutationFollow: func(string) []Tag {
		return []Tag{General(TagUser), General(TagFollow)}
	},
}

func authTags(string) []Tag { return []Tag{General(TagAuth)} }

// InvalidatedBy returns the tags a successful mutation invalidates.
func InvalidatedBy(m Mutation, postID string) []Tag {
	fn, ok := mutationInvalidates[m]
	if !ok {
		return nil
	}
	return fn(postID)
}

// Query keys and the tags each query provides.

func FeedKey(page, pageSize int) string {
	return fmt.Sprintf("feed?page=%d&pageSize=%d", page, pageSize)
}

func FeedTags() []Tag { return []Tag{General(TagPost)} }

func CommentsKey(postID string) string { return "comments/" + postID }

func CommentsTags(postID string) []Tag {
	return []Tag{Tagged(TagComment, postID), General(TagComment)}
}

func UserKey(userID string) string { return "users/" + userID }

func UserTags(userID string) []Tag { return []Tag{Tagged(TagUser, userID)} }

func UserPostsKey(userID string, page, pageSize int) string {
	return fmt.Sprintf("posts/user/%s?page=%d&pageSize=%d", userID, page, pageSize)
}

func UserPostsTags(userID string) []Tag {
	return []Tag{Tagged(TagPost, "user-"+userID), General(TagPost)}
}

func FollowStatusKey(userID string) string { return "follow/status/" + userID }

func FollowStatusTags(userID string) []Tag { return []Tag{Tagged(TagFollow, userID)} }
