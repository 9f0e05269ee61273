package youtube

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/api/youtube/v3"
)

// Terminal is the state a traversal ends in. Both values are success
// terminals; they let the caller distinguish partial from complete capture.
type Terminal int

const (
	// TerminalNone means the traversal has not finished yet.
	TerminalNone Terminal = iota
	// Exhausted means every page and reply was consumed before the budget ran out.
	Exhausted
	// BudgetReached means the record budget hit zero, possibly mid-thread.
	BudgetReached
)

// String returns a human-readable terminal state name.
func (t Terminal) String() string {
	switch t {
	case Exhausted:
		return "exhausted"
	case BudgetReached:
		return "budget reached"
	default:
		return "in progress"
	}
}

// Walker produces a lazy, forward-only stream of flattened CommentRecord
// for one video, bounded by a record budget. Records arrive in API order:
// all of a thread's records (main comment first, then its replies) are
// emitted contiguously, threads in page order.
//
// Usage follows the bufio.Scanner pattern:
//
//	w, err := youtube.NewWalker(fetcher, videoID, 100, nil)
//	for w.Next(ctx) {
//		sink.Write(w.Record())
//	}
//	if err := w.Err(); err != nil { ... }
//	partial := w.Terminal() == youtube.BudgetReached
//
// A walker is single-use and not safe for concurrent use.
type Walker struct {
	api     CommentAPI
	videoID string
	budget  int
	log     *slog.Logger

	// thread page state
	started   bool
	pageToken string
	morePages bool
	threads   []Thread
	ti        int

	// reply state for the thread currently being drained
	inThread     bool
	threadID     string
	parentAuthor string
	parentText   string
	replies      []*youtube.Comment
	ri           int
	replyToken   string
	moreReplies  bool

	rec      CommentRecord
	emitted  int
	err      error
	terminal Terminal
}

// NewWalker creates a walker that emits at most maxRecords records.
// A nil logger defaults to slog.Default().
func NewWalker(api CommentAPI, videoID string, maxRecords int, logger *slog.Logger) (*Walker, error) {
	if api == nil {
		return nil, fmt.Errorf("youtube: walker requires a CommentAPI")
	}
	if videoID == "" {
		return nil, fmt.Errorf("%w: empty video ID", ErrInvalidVideoRef)
	}
	if maxRecords < 1 {
		return nil, fmt.Errorf("youtube: max records must be >= 1, got %d", maxRecords)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Walker{
		api:     api,
		videoID: videoID,
		budget:  maxRecords,
		log:     logger,
	}, nil
}

// Next advances to the next record. It returns false when the traversal
// is over; check Err and Terminal to find out why.
func (w *Walker) Next(ctx context.Context) bool {
	if w.err != nil || w.terminal != TerminalNone {
		return false
	}

	rec, ok, err := w.advance(ctx)
	if err != nil {
		w.err = err
		return false
	}
	if !ok {
		w.terminal = Exhausted
		return false
	}

	w.rec = rec
	w.emitted++
	w.budget--
	if w.budget == 0 {
		// Terminate instantly: no further pages or replies are fetched.
		w.terminal = BudgetReached
	}
	return true
}

// Record returns the record produced by the last successful Next call.
func (w *Walker) Record() CommentRecord { return w.rec }

// Err returns the error that stopped the traversal, if any.
func (w *Walker) Err() error { return w.err }

// Terminal returns how the traversal ended. TerminalNone while records
// are still flowing.
func (w *Walker) Terminal() Terminal { return w.terminal }

// Emitted returns the number of records produced so far.
func (w *Walker) Emitted() int { return w.emitted }

// Collect drains the walker into a slice. Records emitted before an error
// are returned alongside it, so partial output is never discarded.
func (w *Walker) Collect(ctx context.Context) ([]CommentRecord, error) {
	var records []CommentRecord
	for w.Next(ctx) {
		records = append(records, w.Record())
	}
	return records, w.Err()
}

// advance walks to the next emittable record, fetching pages as needed.
// Malformed items are logged and skipped, never fatal.
func (w *Walker) advance(ctx context.Context) (CommentRecord, bool, error) {
	for {
		// Drain replies of the current thread first so a thread's records
		// stay contiguous.
		if w.inThread {
			if w.ri < len(w.replies) {
				item := w.replies[w.ri]
				w.ri++
				rec, err := flattenComment(item, ReplyLevel(1), w.parentAuthor, w.parentText)
				if err != nil {
					w.log.Warn("skipping malformed reply", "thread", w.threadID, "error", err)
					continue
				}
				return rec, true, nil
			}
			if w.moreReplies {
				page, err := w.api.ListReplies(ctx, w.threadID, w.replyToken)
				if err != nil {
					return CommentRecord{}, false, err
				}
				w.replies = page.Replies
				w.ri = 0
				w.replyToken = page.NextPageToken
				w.moreReplies = page.NextPageToken != ""
				continue
			}
			w.inThread = false
		}

		// Next thread in the current page.
		if w.ti < len(w.threads) {
			thread := w.threads[w.ti]
			w.ti++
			w.enterThread(thread)

			rec, err := flattenComment(thread.TopLevel, TypeMain, "", "")
			if err != nil {
				w.log.Warn("skipping malformed top-level comment", "thread", thread.ID, "error", err)
				continue
			}
			return rec, true, nil
		}

		// Next page of threads, or done.
		if !w.started || w.morePages {
			page, err := w.api.ListThreads(ctx, w.videoID, w.pageToken)
			if err != nil {
				return CommentRecord{}, false, err
			}
			w.started = true
			w.threads = page.Threads
			w.ti = 0
			w.pageToken = page.NextPageToken
			w.morePages = page.NextPageToken != ""
			continue
		}

		return CommentRecord{}, false, nil
	}
}

// enterThread sets up reply iteration for a thread. When the API reports
// more replies than were returned inline, the inline list is discarded and
// the full reply set is paged through instead, avoiding duplicates.
func (w *Walker) enterThread(thread Thread) {
	w.inThread = true
	w.threadID = thread.ID
	w.parentAuthor, w.parentText = parentContext(thread.TopLevel)
	w.replyToken = ""
	w.ri = 0

	if thread.TotalReplyCount > int64(len(thread.Replies)) {
		w.replies = nil
		w.moreReplies = true
	} else {
		w.replies = thread.Replies
		w.moreReplies = false
	}
}
