// Package ytcomments provides a library for scraping YouTube video comments.
//
// It fetches all top-level comments and their replies for a video through
// the paginated YouTube Data API v3, flattens each thread into uniform
// records, and exports them to CSV or JSON.
//
// Overview
//
// ytcomments provides high-level convenience functions for the common case:
//
//   - FetchComments: Fetch up to N flattened comment records for a video
//   - NewWalker: Open a lazy record stream for incremental consumption
//
// Quick Start
//
// Fetch comments for a video:
//
//	ctx := context.Background()
//	records, terminal, err := ytcomments.FetchComments(ctx, "https://youtu.be/dQw4w9WgXcQ", &ytcomments.Options{
//		APIKey:      apiKey,
//		MaxComments: 200,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, rec := range records {
//		fmt.Printf("[%s] %s: %s\n", rec.Type, rec.Author, rec.Text)
//	}
//	if terminal == youtube.BudgetReached {
//		fmt.Println("capture truncated at the record budget")
//	}
//
// Stream records into a file without buffering:
//
//	walker, err := ytcomments.NewWalker(ctx, videoRef, opts)
//	if err != nil {
//		log.Fatal(err)
//	}
//	sink, err := export.NewFileSink("comments.csv")
//	if err != nil {
//		log.Fatal(err)
//	}
//	for walker.Next(ctx) {
//		if err := sink.Write(walker.Record()); err != nil {
//			log.Fatal(err)
//		}
//	}
//
// Configuration
//
// ytcomments uses a configuration system that loads settings from multiple sources:
//
//   1. Environment variables (highest priority)
//   2. Config file (ytcomments.json or ~/.config/ytcomments/ytcomments.json)
//   3. Default values (lowest priority)
//
// Environment variables:
//
//   - YTCOMMENTS_API_KEY: YouTube Data API v3 key
//   - YTCOMMENTS_MAX_COMMENTS: Maximum records to emit per run
//   - YTCOMMENTS_PAGE_SIZE: Threads requested per page (1-100)
//   - YTCOMMENTS_REPLY_PAGE_SIZE: Replies requested per page (1-100)
//   - YTCOMMENTS_REQUESTS_PER_SECOND: Client-side API call throttle
//   - YTCOMMENTS_REQUEST_TIMEOUT: Timeout for a single API call
//   - YTCOMMENTS_MAX_RETRIES: Maximum retry attempts
//   - YTCOMMENTS_INITIAL_BACKOFF: Initial retry backoff duration
//   - YTCOMMENTS_MAX_BACKOFF: Maximum retry backoff duration
//
// Error Handling
//
// All operations return errors that implement standard Go error handling:
//
// Checking for sentinel errors:
//
//	if errors.Is(err, youtube.ErrUpstreamRejected) {
//		fmt.Println("the API rejected the request (quota, disabled comments, not found)")
//	}
//
// Extracting wrapped error details:
//
//	var fetchErr *youtube.FetchError
//	if errors.As(err, &fetchErr) {
//		fmt.Printf("Fetching %s failed at %s: %v\n", fetchErr.VideoRef, fetchErr.Stage, fetchErr.Err)
//	}
//
// Advanced Usage
//
// For more control, use the sub-packages directly:
//
//   - youtube: Video reference resolution, page fetching, tree walking
//   - export: CSV and JSON record sinks
//   - config: Configuration management
//   - retry: Exponential backoff retry logic
//
package ytcomments
