package url2pdf

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// FallbackFilename is used when a page has no usable heading.
const FallbackFilename = "output"

// reservedFilenameChars are rejected by Windows and awkward elsewhere.
const reservedFilenameChars = `<>:"/\|?*`

// ExtractTitle returns the trimmed text of the first h1 in an HTML document,
// or "" when there is none.
func ExtractTitle(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(doc.Find("h1").First().Text())
}

// SanitizeFilename deletes every reserved character. Nothing is substituted,
// so applying it twice gives the same result as applying it once. The
// reserved set is ASCII and never occurs inside a multi-byte UTF-8 sequence,
// so the input is filtered byte by byte and other bytes, even invalid UTF-8,
// pass through unchanged.
func SanitizeFilename(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(reservedFilenameChars, s[i]) >= 0 {
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// DeriveFilename turns a page title into a file base name (no extension).
// The result is never empty.
func DeriveFilename(title string) string {
	name := SanitizeFilename(strings.TrimSpace(title))
	if name == "" {
		return FallbackFilename
	}
	return name
}
