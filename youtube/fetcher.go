package youtube

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"ytcomments/retry"
)

// FetcherConfig configures the page fetcher.
type FetcherConfig struct {
	// PageSize is the number of threads requested per page (1-100).
	PageSize int64
	// ReplyPageSize is the number of replies requested per page (1-100).
	ReplyPageSize int64
	// RequestsPerSecond throttles outgoing API calls (0 = unlimited).
	RequestsPerSecond float64
	// Timeout bounds a single API call attempt (0 = no bound).
	Timeout time.Duration
	// Retry configures backoff for transient failures and rate limiting.
	Retry retry.Config
	// Logger receives fetch diagnostics. Defaults to slog.Default().
	Logger *slog.Logger
}

// DefaultFetcherConfig returns sensible defaults for the page fetcher.
func DefaultFetcherConfig() *FetcherConfig {
	return &FetcherConfig{
		PageSize:          100,
		ReplyPageSize:     100,
		RequestsPerSecond: 5.0,
		Timeout:           30 * time.Second,
		Retry:             retry.DefaultConfig(),
	}
}

// Fetcher implements CommentAPI against the YouTube Data API v3.
// Transient failures and rate-limit signals are retried per the configured
// retry policy; definitive API rejections propagate immediately.
type Fetcher struct {
	service  *youtube.Service
	limiter  *rate.Limiter
	retryCfg retry.Config
	timeout  time.Duration
	pageSize int64
	replySz  int64
	log      *slog.Logger
}

// NewFetcher creates a fetcher authenticated with the given API key.
func NewFetcher(ctx context.Context, apiKey string, cfg *FetcherConfig) (*Fetcher, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("api key required")
	}
	if cfg == nil {
		cfg = DefaultFetcherConfig()
	}

	service, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}

	return &Fetcher{
		service:  service,
		limiter:  limiter,
		retryCfg: cfg.Retry,
		timeout:  cfg.Timeout,
		pageSize: cfg.PageSize,
		replySz:  cfg.ReplyPageSize,
		log:      logger,
	}, nil
}

// ListThreads fetches one page of top-level comment threads for a video.
// An empty pageToken requests the first page; page order is the API's.
func (f *Fetcher) ListThreads(ctx context.Context, videoID, pageToken string) (*ThreadPage, error) {
	var page *ThreadPage

	err := retry.Do(ctx, f.retryCfg, upstreamErrorClassifier, func(ctx context.Context) error {
		if err := f.wait(ctx); err != nil {
			return err
		}

		callCtx, cancel := f.attemptContext(ctx)
		defer cancel()

		call := f.service.CommentThreads.List([]string{"snippet", "replies"}).
			VideoId(videoID).
			MaxResults(f.pageSize).
			TextFormat("html").
			Context(callCtx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		resp, err := call.Do()
		if err != nil {
			// A per-attempt timeout is transient as long as the caller
			// itself has not given up.
			if callCtx.Err() != nil && ctx.Err() == nil {
				return fmt.Errorf("%w: attempt timed out: %v", ErrUpstreamUnavailable, err)
			}
			return f.classify("threads", videoID, err)
		}

		page = threadPageFromResponse(resp)
		return nil
	})

	if err != nil {
		return nil, &FetchError{Stage: "threads", VideoRef: videoID, Err: promoteRateLimit(err)}
	}
	return page, nil
}

// ListReplies fetches one page of replies under the given thread.
func (f *Fetcher) ListReplies(ctx context.Context, parentID, pageToken string) (*ReplyPage, error) {
	var page *ReplyPage

	err := retry.Do(ctx, f.retryCfg, upstreamErrorClassifier, func(ctx context.Context) error {
		if err := f.wait(ctx); err != nil {
			return err
		}

		callCtx, cancel := f.attemptContext(ctx)
		defer cancel()

		call := f.service.Comments.List([]string{"snippet"}).
			ParentId(parentID).
			MaxResults(f.replySz).
			TextFormat("html").
			Context(callCtx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		resp, err := call.Do()
		if err != nil {
			if callCtx.Err() != nil && ctx.Err() == nil {
				return fmt.Errorf("%w: attempt timed out: %v", ErrUpstreamUnavailable, err)
			}
			return f.classify("replies", parentID, err)
		}

		page = &ReplyPage{
			Replies:       resp.Items,
			NextPageToken: resp.NextPageToken,
		}
		return nil
	})

	if err != nil {
		return nil, &FetchError{Stage: "replies", VideoRef: parentID, Err: promoteRateLimit(err)}
	}
	return page, nil
}

// wait blocks until the client-side rate limiter admits the next call.
func (f *Fetcher) wait(ctx context.Context) error {
	if f.limiter == nil {
		return nil
	}
	return f.limiter.Wait(ctx)
}

// attemptContext bounds one API call attempt with the configured timeout.
func (f *Fetcher) attemptContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if f.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, f.timeout)
}

// classify logs and maps an API call error into the error taxonomy.
func (f *Fetcher) classify(stage, ref string, err error) error {
	mapped := classifyAPIError(err)
	if errors.Is(mapped, ErrRateLimited) || errors.Is(mapped, ErrUpstreamUnavailable) {
		f.log.Warn("transient fetch failure, will retry", "stage", stage, "ref", ref, "error", err)
	}
	return mapped
}

// threadPageFromResponse converts an API response page into a ThreadPage.
// Items with missing pieces are kept; the flattener decides what to skip.
func threadPageFromResponse(resp *youtube.CommentThreadListResponse) *ThreadPage {
	page := &ThreadPage{NextPageToken: resp.NextPageToken}
	for _, item := range resp.Items {
		if item == nil {
			continue
		}
		thread := Thread{ID: item.Id}
		if item.Snippet != nil {
			thread.TopLevel = item.Snippet.TopLevelComment
			thread.TotalReplyCount = item.Snippet.TotalReplyCount
		}
		if item.Replies != nil {
			thread.Replies = item.Replies.Comments
		}
		page.Threads = append(page.Threads, thread)
	}
	return page
}

// classifyAPIError maps raw API errors into the package error taxonomy.
func classifyAPIError(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		for _, item := range apiErr.Errors {
			switch item.Reason {
			case "rateLimitExceeded", "userRateLimitExceeded":
				return fmt.Errorf("%w: %s", ErrRateLimited, item.Reason)
			case "quotaExceeded", "dailyLimitExceeded",
				"commentsDisabled", "videoNotFound", "forbidden":
				return fmt.Errorf("%w: %s", ErrUpstreamRejected, item.Reason)
			}
		}
		switch {
		case apiErr.Code == 429:
			return fmt.Errorf("%w: status 429", ErrRateLimited)
		case apiErr.Code >= 500:
			return fmt.Errorf("%w: status %d", ErrUpstreamUnavailable, apiErr.Code)
		default:
			return fmt.Errorf("%w: status %d: %s", ErrUpstreamRejected, apiErr.Code, apiErr.Message)
		}
	}

	// Context errors propagate as-is so the retry loop stops cleanly.
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	// Anything else is a transport-level failure.
	return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
}

// upstreamErrorClassifier reports whether a classified error is retryable.
// Definitive rejections are terminal; transport failures and transient
// rate limiting are retried.
func upstreamErrorClassifier(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return errors.Is(err, ErrUpstreamUnavailable) || errors.Is(err, ErrRateLimited)
}

// promoteRateLimit turns rate limiting that survived the retry budget into
// a definitive rejection.
func promoteRateLimit(err error) error {
	if errors.Is(err, ErrRateLimited) {
		return fmt.Errorf("%w: persistent rate limiting: %v", ErrUpstreamRejected, err)
	}
	return err
}
