package formatter

import (
	"strconv"
	"strings"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// FormatNumber renders n with commas as thousands separators.
// Example: 1234567 -> "1,234,567"
func FormatNumber(n int) string {
	digits := strconv.Itoa(n)
	sign := ""
	if n < 0 {
		sign, digits = "-", digits[1:]
	}

	if len(digits) <= 3 {
		return sign + digits
	}

	var sb strings.Builder
	sb.Grow(len(sign) + len(digits) + (len(digits)-1)/3)
	sb.WriteString(sign)

	head := len(digits) % 3
	if head == 0 {
		head = 3
	}
	sb.WriteString(digits[:head])
	for i := head; i < len(digits); i += 3 {
		sb.WriteByte(',')
		sb.WriteString(digits[i : i+3])
	}

	return sb.String()
}

// EscapeMarkdownV2 escapes every character Telegram reserves in MarkdownV2 text.
// The bot API helper leaves backslashes alone, so they are doubled first.
func EscapeMarkdownV2(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, strings.ReplaceAll(s, `\`, `\\`))
}

var linkURLEscaper = strings.NewReplacer(`\`, `\\`, ")", `\)`)

// EscapeMarkdownV2Link escapes the URL part of an inline link, where
// MarkdownV2 only reserves ')' and '\'.
func EscapeMarkdownV2Link(url string) string {
	return linkURLEscaper.Replace(url)
}

// Truncate cuts s to at most limit runes, marking the cut with an ellipsis.
func Truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit]) + "…"
}
