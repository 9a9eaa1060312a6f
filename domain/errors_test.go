package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorMessage_PriorityOrder(t *testing.T) {
	const fallback = "Login failed."
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "message wins", err: &APIError{Message: "m", Err: "e", Title: "t"}, want: "m"},
		{name: "error field", err: &APIError{Err: "e", Title: "t"}, want: "e"},
		{name: "field errors", err: &APIError{Errors: []FieldError{{Description: "bad email"}}, Title: "t"}, want: "bad email"},
		{name: "title", err: &APIError{Title: "One or more validation errors occurred."}, want: "One or more validation errors occurred."},
		{name: "empty body", err: &APIError{StatusCode: 500}, want: fallback},
		{name: "wrapped api error", err: fmt.Errorf("logging in: %w", &APIError{Message: "Invalid credentials"}), want: "Invalid credentials"},
		{name: "transport", err: fmt.Errorf("request to /login: %w", ErrTransport), want: NetworkErrorMessage},
		{name: "other", err: errors.New("boom"), want: fallback},
		{name: "nil", err: nil, want: ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ErrorMessage(tc.err, fallback); got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
		})
	}
}

func TestAPIError_UnauthorizedMatches(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", &APIError{StatusCode: 401})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("401 should match ErrUnauthorized")
	}
	if errors.Is(&APIError{StatusCode: 403}, ErrUnauthorized) {
		t.Fatalf("403 must not match ErrUnauthorized")
	}
}

func TestUserNames(t *testing.T) {
	u := User{FirstName: "Ada", LastName: "Lovelace", Username: "ada", Email: "ada@example.com"}
	if u.DisplayName() != "Ada Lovelace" || u.Handle() != "ada" {
		t.Fatalf("unexpected names: %q %q", u.DisplayName(), u.Handle())
	}
	u = User{FirstName: "Ada", Email: "ada@example.com"}
	if u.DisplayName() != "ada@example.com" || u.Handle() != "ada" {
		t.Fatalf("unexpected fallbacks: %q %q", u.DisplayName(), u.Handle())
	}
}

func TestWalkComments_DepthFirst(t *testing.T) {
	tree := []Comment{
		{ID: "c1", Replies: []Comment{{ID: "c1a", Replies: []Comment{{ID: "c1a1"}}}, {ID: "c1b"}}},
		{ID: "c2"},
	}
	var order []string
	var depths []int
	WalkComments(tree, func(c Comment, depth int) {
		order = append(order, c.ID)
		depths = append(depths, depth)
	})
	want := []string{"c1", "c1a", "c1a1", "c1b", "c2"}
	wantDepth := []int{0, 1, 2, 1, 0}
	for i := range want {
		if order[i] != want[i] || depths[i] != wantDepth[i] {
			t.Fatalf("unexpected walk: %v %v", order, depths)
		}
	}
	if CountComments(tree) != 5 {
		t.Fatalf("unexpected count")
	}
}
