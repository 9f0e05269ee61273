package ytcomments

import (
	"context"
	"log/slog"

	"ytcomments/config"
	"ytcomments/youtube"
)

// Options configures the convenience functions. Zero fields fall back to
// the loaded configuration (file, env, defaults).
type Options struct {
	// APIKey is the YouTube Data API v3 key. Overrides the configured key.
	APIKey string
	// MaxComments limits the total records emitted. Overrides the configured limit.
	MaxComments int
	// Config supplies full configuration; nil loads it via config.Load().
	Config *config.Config
	// Logger receives diagnostics. Defaults to slog.Default().
	Logger *slog.Logger
}

// FetchComments resolves the video reference, walks its comment threads,
// and returns the flattened records along with the terminal state.
// Records collected before a fatal upstream error are returned alongside it.
func FetchComments(ctx context.Context, ref string, opts *Options) ([]youtube.CommentRecord, youtube.Terminal, error) {
	walker, err := NewWalker(ctx, ref, opts)
	if err != nil {
		return nil, youtube.TerminalNone, err
	}

	records, err := walker.Collect(ctx)
	return records, walker.Terminal(), err
}

// NewWalker resolves the video reference and opens a lazy record stream
// over its comment threads.
func NewWalker(ctx context.Context, ref string, opts *Options) (*youtube.Walker, error) {
	if opts == nil {
		opts = &Options{}
	}

	cfg := opts.Config
	if cfg == nil {
		loaded, err := config.Load()
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	apiKey := opts.APIKey
	if apiKey == "" {
		apiKey = cfg.APIKey
	}
	maxComments := opts.MaxComments
	if maxComments == 0 {
		maxComments = cfg.MaxComments
	}

	videoID, err := youtube.ResolveVideoRef(ref)
	if err != nil {
		return nil, err
	}

	fetcher, err := youtube.NewFetcher(ctx, apiKey, &youtube.FetcherConfig{
		PageSize:          int64(cfg.PageSize),
		ReplyPageSize:     int64(cfg.ReplyPageSize),
		RequestsPerSecond: cfg.RequestsPerSecond,
		Timeout:           cfg.RequestTimeout,
		Retry:             cfg.RetryConfig(),
		Logger:            opts.Logger,
	})
	if err != nil {
		return nil, err
	}

	return youtube.NewWalker(fetcher, videoID, maxComments, opts.Logger)
}
