package telegram

import (
	"fmt"
	"strings"

	"github.com/orgball2608/insta-media-service/internal/domain"
	"github.com/orgball2608/insta-media-service/pkg/formatter"
)

const captionExcerptLen = 200

// PostMessage renders the channel announcement of a newly extracted post.
func PostMessage(post domain.Post) string {
	var sb strings.Builder

	sb.WriteString("📥 *New Instagram post extracted*\n\n")
	fmt.Fprintf(&sb, "🔗 [%s](%s)\n",
		formatter.EscapeMarkdownV2(post.InstagramID),
		formatter.EscapeMarkdownV2Link("https://www.instagram.com/p/"+post.InstagramID+"/"))
	fmt.Fprintf(&sb, "🖼 Type: %s\n", formatter.EscapeMarkdownV2(string(post.MediaType)))
	fmt.Fprintf(&sb, "❤️ Likes: %s\n", formatter.EscapeMarkdownV2(formatter.FormatNumber(post.Likes)))
	fmt.Fprintf(&sb, "💬 Comments: %s\n", formatter.EscapeMarkdownV2(formatter.FormatNumber(post.Comments)))
	fmt.Fprintf(&sb, "📦 Stored: %d/%d\n", len(post.LocalPaths), len(post.MediaURLs))

	if post.Caption != nil && *post.Caption != "" {
		fmt.Fprintf(&sb, "\n%s\n", formatter.EscapeMarkdownV2(formatter.Truncate(*post.Caption, captionExcerptLen)))
	}

	fmt.Fprintf(&sb, "\n`%s`", post.ID)

	return sb.String()
}
