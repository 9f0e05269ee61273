package youtube

import (
	"fmt"
	"strings"
	"time"

	"google.golang.org/api/youtube/v3"
)

// flattenComment converts one raw comment item into a CommentRecord of the
// given type, attaching the parent context for replies. It returns
// ErrMalformedItem when the author or text is absent; the caller decides
// whether to skip or abort.
func flattenComment(item *youtube.Comment, recordType, parentAuthor, parentText string) (CommentRecord, error) {
	if item == nil || item.Snippet == nil {
		return CommentRecord{}, fmt.Errorf("%w: missing snippet", ErrMalformedItem)
	}

	snippet := item.Snippet
	author := strings.TrimSpace(snippet.AuthorDisplayName)
	if author == "" {
		return CommentRecord{}, fmt.Errorf("%w: missing author", ErrMalformedItem)
	}
	if strings.TrimSpace(snippet.TextDisplay) == "" {
		return CommentRecord{}, fmt.Errorf("%w: missing text", ErrMalformedItem)
	}

	rec := CommentRecord{
		Type:         recordType,
		Author:       author,
		Text:         CleanText(snippet.TextDisplay),
		Likes:        snippet.LikeCount,
		ParentAuthor: parentAuthor,
		ParentText:   parentText,
	}

	// Parse RFC3339 published date
	if t, err := time.Parse(time.RFC3339, snippet.PublishedAt); err == nil {
		rec.Published = t
	}

	return rec, nil
}

// parentContext extracts the parent-linkage fields from a thread's
// top-level comment. Fields that are absent stay empty; reply records
// under a partially malformed main comment keep whatever context exists.
func parentContext(item *youtube.Comment) (author, text string) {
	if item == nil || item.Snippet == nil {
		return "", ""
	}
	return strings.TrimSpace(item.Snippet.AuthorDisplayName), CleanText(item.Snippet.TextDisplay)
}
