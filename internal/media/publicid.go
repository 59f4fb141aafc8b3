package media

import (
	"net/url"
	"regexp"
	"strings"
)

// HostMarker identifies URLs served by the media host.
const HostMarker = "cloudinary.com"

const uploadSegment = "upload"

var versionSegment = regexp.MustCompile(`^v\d+$`)

// ExtractPublicID recovers the asset identifier from a delivery URL such as
// https://res.cloudinary.com/demo/image/upload/v1712/folder/name.jpg (folder/name).
// It reports false for foreign or unparseable URLs; callers treat that as
// "nothing to delete".
func ExtractPublicID(rawURL string) (string, bool) {
	if rawURL == "" || !strings.Contains(rawURL, HostMarker) {
		return "", false
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", false
	}

	parts := strings.Split(u.Path, "/")
	idx := -1
	for i, p := range parts {
		if p == uploadSegment {
			idx = i
			break
		}
	}
	if idx == -1 || idx+1 >= len(parts) {
		return "", false
	}

	rest := parts[idx+1:]
	if versionSegment.MatchString(rest[0]) {
		rest = rest[1:]
	}
	if len(rest) == 0 {
		return "", false
	}

	id := strings.Join(rest, "/")
	if dot := strings.LastIndex(id, "."); dot != -1 {
		id = id[:dot]
	}
	if id == "" {
		return "", false
	}
	return id, true
}
