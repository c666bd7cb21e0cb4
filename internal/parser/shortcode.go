package parser

import "regexp"

// Checked in order, first match wins. Stories carry the owner segment before
// the media id, so the capture is the segment after it.
var shortcodePatterns = []*regexp.Regexp{
	regexp.MustCompile(`instagram\.com/p/([^/?]+)`),
	regexp.MustCompile(`instagram\.com/reel/([^/?]+)`),
	regexp.MustCompile(`instagram\.com/stories/[^/]+/([^/?]+)`),
}

// ParseShortcode extracts the post shortcode from an Instagram post, reel or
// story URL. Matching is unanchored, so scheme, host prefix, query string and
// surrounding text are tolerated.
func ParseShortcode(url string) (string, bool) {
	for _, pattern := range shortcodePatterns {
		if match := pattern.FindStringSubmatch(url); match != nil {
			return match[1], true
		}
	}
	return "", false
}
