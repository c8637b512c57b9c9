package url2pdf

import (
	"net/url"
	"strings"
)

// schemesRequiringHost are the WHATWG "special" schemes, which are not valid
// without an authority ("https:" alone is rejected, "ftp://x" is accepted).
var schemesRequiringHost = map[string]bool{
	"http":  true,
	"https": true,
	"ftp":   true,
	"ws":    true,
	"wss":   true,
}

// IsValidURL reports whether s is a well-formed absolute URL: a scheme
// followed by an authority, an opaque part, or a path.
func IsValidURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" {
		return false
	}
	if u.Host != "" {
		return true
	}
	if schemesRequiringHost[strings.ToLower(u.Scheme)] {
		return false
	}
	return u.Opaque != "" || u.Path != ""
}

// FilterURLs keeps the arguments that parse as URLs, preserving order.
// Anything else is dropped silently.
func FilterURLs(args []string) []string {
	urls := make([]string, 0, len(args))
	for _, arg := range args {
		if IsValidURL(arg) {
			urls = append(urls, arg)
		}
	}
	return urls
}
