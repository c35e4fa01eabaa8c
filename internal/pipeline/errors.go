package pipeline

import (
	"errors"
	"unicode/utf8"

	"github.com/raphi011/ghv/internal/github"
)

// MaxUsernameLength is the longest login GitHub accepts.
const MaxUsernameLength = 39

// User-facing messages.
const (
	MsgEmptyUsername   = "Please enter a GitHub username"
	MsgUsernameTooLong = "Username is too long"
	MsgRateLimited     = "API rate limit exceeded. Please try again later."
	MsgFetchFailed     = "Failed to fetch user data. Please try again"
	MsgNetworkError    = "Network error. Please check your connection and try again"
)

var (
	// ErrSuperseded is reported when a newer search took over before this
	// one reached a terminal state.
	ErrSuperseded = errors.New("search superseded")

	// ErrNoReadme is returned by Expand for a card without a loaded README.
	ErrNoReadme = errors.New("no readme available for card")

	// ErrNotTruncated is returned by Expand when the preview already shows
	// the whole README.
	ErrNotTruncated = errors.New("readme shown in full")
)

// ValidationError rejects input before any network call.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// RemoteMessageError is a 2xx profile response whose body carried a
// "message" field instead of a profile.
type RemoteMessageError struct {
	Message string
}

func (e *RemoteMessageError) Error() string {
	return "github: " + e.Message
}

// Validate checks a trimmed username.
func Validate(username string) error {
	if username == "" {
		return &ValidationError{Message: MsgEmptyUsername}
	}
	if utf8.RuneCountInString(username) > MaxUsernameLength {
		return &ValidationError{Message: MsgUsernameTooLong}
	}
	return nil
}

// Message turns a profile lookup failure into the text shown to the user.
func Message(err error, username string) string {
	var (
		verr *ValidationError
		merr *RemoteMessageError
		serr *github.StatusError
	)
	switch {
	case errors.As(err, &verr):
		return verr.Message
	case errors.As(err, &merr):
		return merr.Message
	case errors.Is(err, github.ErrNotFound):
		return `User "` + username + `" not found on GitHub`
	case errors.Is(err, github.ErrRateLimited):
		return MsgRateLimited
	case errors.As(err, &serr):
		return MsgFetchFailed
	default:
		return MsgNetworkError
	}
}
