package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized indicates missing or invalid credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrTransport indicates the server could not be reached.
	ErrTransport = errors.New("transport error")

	// ErrEmptyPost indicates the user submitted an empty post.
	ErrEmptyPost = errors.New("post content cannot be empty")

	// ErrPostTooLong indicates the post exceeds MaxPostLength.
	ErrPostTooLong = errors.New("post content exceeds character limit")

	// ErrEmptyComment indicates the user submitted an empty comment.
	ErrEmptyComment = errors.New("comment cannot be empty")
)

// NetworkErrorMessage is shown for transport failures.
const NetworkErrorMessage = "Unable to reach the server. Check your connection and try again."

// FieldError is one entry of an "errors" array in an API error body.
type FieldError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// APIError is a non-2xx response with whatever structured body the server sent.
type APIError struct {
	StatusCode int
	Method     string
	Path       string
	Message    string       `json:"message"`
	Err        string       `json:"error"`
	Errors     []FieldError `json:"errors"`
	Title      string       `json:"title"`
	Raw        string       `json:"-"`
}

func (e *APIError) Error() string {
	if msg := e.userMessage(); msg != "" {
		return fmt.Sprintf("API %s %s returned %d: %s", e.Method, e.Path, e.StatusCode, msg)
	}
	return fmt.Sprintf("API %s %s returned %d", e.Method, e.Path, e.StatusCode)
}

// Is lets errors.Is(err, ErrUnauthorized) match 401 responses.
func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.StatusCode == 401
}

// userMessage returns the first present field in server priority order.
func (e *APIError) userMessage() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.Err != "":
		return e.Err
	case len(e.Errors) > 0 && e.Errors[0].Description != "":
		return e.Errors[0].Description
	case e.Title != "":
		return e.Title
	}
	return ""
}

// ErrorMessage extracts a human-readable message from err. Application errors
// use the server body; transport errors get a generic network message;
// everything else gets fallback.
func ErrorMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if msg := apiErr.userMessage(); msg != "" {
			return msg
		}
		return fallback
	}
	if errors.Is(err, ErrTransport) {
		return NetworkErrorMessage
	}
	return fallback
}
