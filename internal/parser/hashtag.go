package parser

import "regexp"

var hashtagPattern = regexp.MustCompile(`#(\w+)`)

// ExtractHashtags returns every hashtag of the caption without the leading
// '#', in order of appearance. Duplicates are kept.
func ExtractHashtags(caption string) []string {
	matches := hashtagPattern.FindAllStringSubmatch(caption, -1)

	hashtags := make([]string, 0, len(matches))
	for _, match := range matches {
		hashtags = append(hashtags, match[1])
	}
	return hashtags
}
