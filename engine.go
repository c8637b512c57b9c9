package url2pdf

import "context"

// Launcher starts browser sessions. The go-rod implementation is returned by
// NewRodLauncher; tests substitute a fake.
type Launcher interface {
	Launch(ctx context.Context, opts LaunchOptions) (Session, error)
}

// LaunchOptions configures a browser process.
type LaunchOptions struct {
	Headless  bool
	Bin       string // empty = ROD_BROWSER_BIN or rod's managed Chromium
	NoSandbox bool
}

// Session is one running browser. Close must release the underlying process.
type Session interface {
	NewPage(ctx context.Context) (Page, error)
	Close() error
}

// Page is a navigable document context owned by a single capture at a time.
type Page interface {
	SetViewport(ctx context.Context, vp Viewport) error
	// Navigate loads url and returns once the load event has fired.
	Navigate(ctx context.Context, url string) error
	// ScrollHeight returns document.body.scrollHeight.
	ScrollHeight(ctx context.Context) (int, error)
	// ScrollBy scrolls the window vertically by dy CSS pixels.
	ScrollBy(ctx context.Context, dy int) error
	// HTML returns the serialized live DOM.
	HTML(ctx context.Context) (string, error)
	// AddStyle appends a <style> element with css to the document.
	AddStyle(ctx context.Context, css string) error
	// PDF prints the current document.
	PDF(ctx context.Context, opts PDFOptions) ([]byte, error)
	Close() error
}
