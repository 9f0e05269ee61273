package ytcomments

import (
	"errors"

	"ytcomments/youtube"
)

// Error handling types exported for library users.
//
// All error types support the standard error handling patterns:
//
// Using errors.Is() for sentinel errors:
//
//	if errors.Is(err, youtube.ErrInvalidVideoRef) {
//		fmt.Println("Could not extract a video ID from the input")
//	}
//
// Using errors.As() for wrapped errors:
//
//	var fetchErr *youtube.FetchError
//	if errors.As(err, &fetchErr) {
//		fmt.Printf("Fetching failed for %s: %v\n", fetchErr.VideoRef, fetchErr.Err)
//	}

// Exported error types from sub-packages:
//
// From youtube package:
//   - youtube.ErrInvalidVideoRef: No video ID could be extracted from the input
//   - youtube.ErrUpstreamUnavailable: Transport-level failure reaching the API
//   - youtube.ErrUpstreamRejected: API returned a definitive error
//   - youtube.ErrRateLimited: Transient rate-limit signal from the API
//   - youtube.ErrMalformedItem: Comment item missing a required field
//   - youtube.FetchError: Error during a paginated listing call

// IsPartialCapture reports whether err left previously emitted records
// valid. Upstream failures abort the traversal, but everything emitted
// before them still belongs in the sink.
func IsPartialCapture(err error) bool {
	return errors.Is(err, youtube.ErrUpstreamRejected) || errors.Is(err, youtube.ErrUpstreamUnavailable)
}
