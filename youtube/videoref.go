package youtube

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// videoIDRegex matches a canonical 11-character YouTube video ID.
var videoIDRegex = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// ResolveVideoRef normalizes a video URL or bare identifier into a
// canonical video ID. Accepted shapes:
//
//   - https://www.youtube.com/watch?v=<id>
//   - https://youtu.be/<id>
//   - https://www.youtube.com/embed/<id>
//   - https://www.youtube.com/shorts/<id>
//   - https://www.youtube.com/live/<id>
//   - <id> (optionally with trailing ?/& parameters)
//
// It returns ErrInvalidVideoRef when no ID can be extracted.
func ResolveVideoRef(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("%w: empty input", ErrInvalidVideoRef)
	}

	if strings.Contains(input, "youtube.com") || strings.Contains(input, "youtu.be") {
		return resolveFromURL(input)
	}

	// Assume it's a bare video ID, possibly with stray parameters attached.
	id := input
	if i := strings.IndexAny(id, "?&#"); i >= 0 {
		id = id[:i]
	}
	if !videoIDRegex.MatchString(id) {
		return "", fmt.Errorf("%w: %q", ErrInvalidVideoRef, input)
	}
	return id, nil
}

// resolveFromURL extracts the video ID from a YouTube URL.
func resolveFromURL(input string) (string, error) {
	// url.Parse needs a scheme to populate Host.
	raw := input
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrInvalidVideoRef, input, err)
	}

	var id string
	switch {
	case strings.HasSuffix(u.Host, "youtu.be"):
		id = strings.Trim(u.Path, "/")
	case u.Query().Get("v") != "":
		id = u.Query().Get("v")
	default:
		// Path-based shapes: /embed/<id>, /shorts/<id>, /live/<id>
		parts := strings.Split(strings.Trim(u.Path, "/"), "/")
		if len(parts) == 2 {
			switch parts[0] {
			case "embed", "shorts", "live", "v":
				id = parts[1]
			}
		}
	}

	if !videoIDRegex.MatchString(id) {
		return "", fmt.Errorf("%w: %q", ErrInvalidVideoRef, input)
	}
	return id, nil
}
