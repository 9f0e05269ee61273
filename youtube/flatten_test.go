package youtube

import (
	"errors"
	"testing"
	"time"

	"google.golang.org/api/youtube/v3"
)

func TestFlattenComment(t *testing.T) {
	item := &youtube.Comment{
		Snippet: &youtube.CommentSnippet{
			AuthorDisplayName: "alice",
			TextDisplay:       "  such a <b>great</b> video  ",
			LikeCount:         42,
			PublishedAt:       "2024-05-01T10:30:00Z",
		},
	}

	rec, err := flattenComment(item, TypeMain, "", "")
	if err != nil {
		t.Fatalf("flattenComment() failed: %v", err)
	}

	if rec.Type != "main" {
		t.Errorf("Type = %q, want main", rec.Type)
	}
	if rec.Author != "alice" {
		t.Errorf("Author = %q, want alice", rec.Author)
	}
	if rec.Text != "such a great video" {
		t.Errorf("Text = %q, want cleaned text", rec.Text)
	}
	if rec.Likes != 42 {
		t.Errorf("Likes = %d, want 42", rec.Likes)
	}
	want := time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)
	if !rec.Published.Equal(want) {
		t.Errorf("Published = %v, want %v", rec.Published, want)
	}
	if rec.ParentAuthor != "" || rec.ParentText != "" {
		t.Errorf("main record has parent context: %+v", rec)
	}
}

func TestFlattenCommentReply(t *testing.T) {
	item := &youtube.Comment{
		Snippet: &youtube.CommentSnippet{
			AuthorDisplayName: "bob",
			TextDisplay:       "totally agree",
			PublishedAt:       "2024-05-01T11:00:00Z",
		},
	}

	rec, err := flattenComment(item, ReplyLevel(1), "alice", "such a great video")
	if err != nil {
		t.Fatalf("flattenComment() failed: %v", err)
	}

	if rec.Type != "reply_level_1" {
		t.Errorf("Type = %q, want reply_level_1", rec.Type)
	}
	if rec.ParentAuthor != "alice" {
		t.Errorf("ParentAuthor = %q, want alice", rec.ParentAuthor)
	}
	if rec.ParentText != "such a great video" {
		t.Errorf("ParentText = %q, want parent text", rec.ParentText)
	}
}

func TestFlattenCommentMalformed(t *testing.T) {
	tests := []struct {
		name string
		item *youtube.Comment
	}{
		{"nil item", nil},
		{"nil snippet", &youtube.Comment{}},
		{"missing author", &youtube.Comment{Snippet: &youtube.CommentSnippet{TextDisplay: "text"}}},
		{"blank author", &youtube.Comment{Snippet: &youtube.CommentSnippet{AuthorDisplayName: "  ", TextDisplay: "text"}}},
		{"missing text", &youtube.Comment{Snippet: &youtube.CommentSnippet{AuthorDisplayName: "alice"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := flattenComment(tt.item, TypeMain, "", "")
			if err == nil {
				t.Fatal("flattenComment() error = nil, want error")
			}
			if !errors.Is(err, ErrMalformedItem) {
				t.Errorf("flattenComment() error = %v, want ErrMalformedItem", err)
			}
		})
	}
}

func TestFlattenCommentBadTimestamp(t *testing.T) {
	item := &youtube.Comment{
		Snippet: &youtube.CommentSnippet{
			AuthorDisplayName: "alice",
			TextDisplay:       "text",
			PublishedAt:       "not-a-timestamp",
		},
	}

	rec, err := flattenComment(item, TypeMain, "", "")
	if err != nil {
		t.Fatalf("flattenComment() failed: %v", err)
	}
	if !rec.Published.IsZero() {
		t.Errorf("Published = %v, want zero time for unparseable timestamp", rec.Published)
	}
}

func TestParentContext(t *testing.T) {
	author, text := parentContext(comment("alice", "hi <b>there</b>"))
	if author != "alice" || text != "hi there" {
		t.Errorf("parentContext() = (%q, %q), want (alice, hi there)", author, text)
	}

	author, text = parentContext(nil)
	if author != "" || text != "" {
		t.Errorf("parentContext(nil) = (%q, %q), want empty", author, text)
	}
}

func TestReplyLevel(t *testing.T) {
	if got := ReplyLevel(1); got != "reply_level_1" {
		t.Errorf("ReplyLevel(1) = %q, want reply_level_1", got)
	}
	if got := ReplyLevel(3); got != "reply_level_3" {
		t.Errorf("ReplyLevel(3) = %q, want reply_level_3", got)
	}
}
