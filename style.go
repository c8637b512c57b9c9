package url2pdf

import (
	"context"
	"fmt"
)

// StyleOverrides is applied to every page before printing. It hides the site
// header and footer and widens code blocks so long lines wrap instead of
// being cut at the page edge.
const StyleOverrides = `
header#header {
	display: none;
}
footer.footer {
	display: none;
}
.wp-block-misha-codemirror pre {
	width: 1200px;
	white-space: pre-wrap;
}
`

// injectStyles adds StyleOverrides to the live document. Nothing is persisted;
// the next navigation discards it.
func injectStyles(ctx context.Context, page Page) error {
	if err := page.AddStyle(ctx, StyleOverrides); err != nil {
		return fmt.Errorf("%w: %v", ErrStyleInject, err)
	}
	return nil
}
