package formatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatNumber(t *testing.T) {
	tests := map[int]string{
		0:        "0",
		999:      "999",
		1000:     "1,000",
		123456:   "123,456",
		1234567:  "1,234,567",
		-42:      "-42",
		-1234567: "-1,234,567",
	}

	for n, want := range tests {
		assert.Equal(t, want, FormatNumber(n), n)
	}
}

func TestEscapeMarkdownV2(t *testing.T) {
	assert.Equal(t, `plain text`, EscapeMarkdownV2("plain text"))
	assert.Equal(t, `\#go \(v1\.23\)\!`, EscapeMarkdownV2("#go (v1.23)!"))
	assert.Equal(t, `a\_b\*c\~d`, EscapeMarkdownV2("a_b*c~d"))
}

func TestEscapeMarkdownV2Backslash(t *testing.T) {
	assert.Equal(t, `C:\\dir\_1`, EscapeMarkdownV2(`C:\dir_1`))
}

func TestEscapeMarkdownV2Link(t *testing.T) {
	assert.Equal(t, "https://www.instagram.com/p/C4_a.b/", EscapeMarkdownV2Link("https://www.instagram.com/p/C4_a.b/"))
	assert.Equal(t, `https://x.io/p/a\)b\\c/`, EscapeMarkdownV2Link(`https://x.io/p/a)b\c/`))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "ab…", Truncate("abcdef", 2))
	assert.Equal(t, "пр…", Truncate("привет", 2))
}
