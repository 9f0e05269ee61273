// Package youtube provides YouTube comment fetching and thread flattening.
package youtube

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"google.golang.org/api/youtube/v3"
)

// Sentinel errors for comment fetching operations.
var (
	// ErrInvalidVideoRef indicates no video ID could be extracted from the input.
	ErrInvalidVideoRef = errors.New("youtube: invalid video reference")
	// ErrUpstreamUnavailable indicates a transport-level failure reaching the API.
	ErrUpstreamUnavailable = errors.New("youtube: upstream unavailable")
	// ErrUpstreamRejected indicates the API returned a definitive error
	// (quota exceeded, comments disabled, video not found).
	ErrUpstreamRejected = errors.New("youtube: upstream rejected request")
	// ErrRateLimited indicates a transient rate-limit signal from the API.
	ErrRateLimited = errors.New("youtube: rate limited")
	// ErrMalformedItem indicates a comment item is missing a required field.
	ErrMalformedItem = errors.New("youtube: malformed comment item")
)

// TypeMain is the record type of a top-level comment.
const TypeMain = "main"

// ReplyLevel returns the record type for a reply at the given depth.
// The Data API flattens reply trees to a single level, so depth is
// currently always 1.
func ReplyLevel(depth int) string {
	return "reply_level_" + strconv.Itoa(depth)
}

// CommentRecord is one flattened comment. Records are immutable once
// produced; their order is significant and preserved by the walker.
type CommentRecord struct {
	// Type is "main" for top-level comments or "reply_level_<depth>" for replies.
	Type string `json:"comment_type"`

	// Author is the comment author's display name.
	Author string `json:"author"`

	// Text is the cleaned comment text.
	Text string `json:"text"`

	// Likes is the comment's like count.
	Likes int64 `json:"likes"`

	// Published is when the comment was published.
	Published time.Time `json:"published"`

	// ParentAuthor is the author of the thread's top-level comment.
	// Empty for main comments.
	ParentAuthor string `json:"parent_author"`

	// ParentText is the cleaned text of the thread's top-level comment.
	// Empty for main comments.
	ParentText string `json:"parent_text"`
}

// Thread is one top-level comment plus whatever the API returned about
// its replies. TotalReplyCount may exceed len(Replies); the full reply
// set then has to be paged through separately.
type Thread struct {
	// ID is the comment thread ID, used as parentId for reply listing.
	ID string
	// TopLevel is the raw top-level comment item.
	TopLevel *youtube.Comment
	// TotalReplyCount is the reply count reported by the API.
	TotalReplyCount int64
	// Replies holds the replies returned inline with the thread, if any.
	Replies []*youtube.Comment
}

// ThreadPage is one page of top-level comment threads.
type ThreadPage struct {
	Threads []Thread
	// NextPageToken is the continuation token for the next page.
	// Empty when the listing is exhausted.
	NextPageToken string
}

// ReplyPage is one page of replies under a single thread.
type ReplyPage struct {
	Replies []*youtube.Comment
	// NextPageToken is the continuation token for the next page.
	// Empty when the listing is exhausted.
	NextPageToken string
}

// CommentAPI defines the two paginated listing calls the walker drives.
// Fetcher implements it against the YouTube Data API v3; tests substitute
// fakes.
type CommentAPI interface {
	// ListThreads fetches one page of top-level comment threads for a video.
	// An empty pageToken requests the first page.
	ListThreads(ctx context.Context, videoID, pageToken string) (*ThreadPage, error)

	// ListReplies fetches one page of replies under the given thread.
	ListReplies(ctx context.Context, parentID, pageToken string) (*ReplyPage, error)
}

// FetchError wraps fetching errors with context about what failed.
// Use errors.As() to extract this error type and get operation details:
//
//	var fetchErr *youtube.FetchError
//	if errors.As(err, &fetchErr) {
//		fmt.Printf("Fetching %s failed at %s: %v\n", fetchErr.VideoRef, fetchErr.Stage, fetchErr.Err)
//	}
type FetchError struct {
	// Stage indicates which listing operation failed ("threads", "replies").
	Stage string
	// VideoRef is the video ID or thread ID that was being fetched.
	VideoRef string
	// Err is the underlying error that occurred.
	Err error
}

// Error returns a string representation of the fetch error.
func (e *FetchError) Error() string {
	return fmt.Sprintf("youtube: fetching %s for %s: %v", e.Stage, e.VideoRef, e.Err)
}

// Unwrap returns the underlying error for use with errors.Is() and errors.As().
func (e *FetchError) Unwrap() error { return e.Err }
