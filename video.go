package brief

import (
	"net/url"
	"strings"
)

// VideoHost is the only video site with transcript support.
const VideoHost = "youtube.com"

// IsVideoURL reports whether rawURL belongs to the video host.
func IsVideoURL(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return strings.Contains(u.Hostname(), VideoHost)
}

// VideoID returns the video ID carried in the "v" query parameter, or "".
func VideoID(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Query().Get("v")
}
