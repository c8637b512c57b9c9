package url2pdf

import (
	"time"

	"go.uber.org/zap"
)

// Viewport is the browser window size used for every page of a batch.
type Viewport struct {
	Width             int
	Height            int
	DeviceScaleFactor float64
}

// DefaultViewport is a 1080p desktop window at 1x density.
var DefaultViewport = Viewport{Width: 1920, Height: 1080, DeviceScaleFactor: 1}

// cssPixelsPerInch converts CSS pixels to the inches expected by Chrome's print API.
const cssPixelsPerInch = 96.0

// PDFOptions mirrors the subset of Chrome's printToPDF parameters used for capture.
type PDFOptions struct {
	PrintBackground     bool
	PreferCSSPageSize   bool
	DisplayHeaderFooter bool
	Landscape           bool
	Scale               float64
	PaperWidthInches    float64
}

// pdfOptionsFor returns the fixed export configuration for a viewport:
// backgrounds on, CSS page size honored, no header/footer, portrait, 100% scale,
// paper as wide as the viewport.
func pdfOptionsFor(vp Viewport) PDFOptions {
	return PDFOptions{
		PrintBackground:     true,
		PreferCSSPageSize:   true,
		DisplayHeaderFooter: false,
		Landscape:           false,
		Scale:               1,
		PaperWidthInches:    float64(vp.Width) / cssPixelsPerInch,
	}
}

// Default timings.
const (
	defaultNavigationTimeout = 30 * time.Second
	defaultOutputDir         = "pdf"
)

// Option configures a Capturer.
type Option func(*Capturer)

// WithOutputDir sets the directory PDFs are written to.
// The directory is not created.
func WithOutputDir(dir string) Option {
	return func(c *Capturer) {
		c.outputDir = dir
	}
}

// WithNavigationTimeout bounds navigation and load for a single URL.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithNavigationTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("url2pdf: WithNavigationTimeout duration must be positive")
	}
	return func(c *Capturer) {
		c.navTimeout = d
	}
}

// WithSettleOptions replaces the settle timings.
func WithSettleOptions(opts SettleOptions) Option {
	return func(c *Capturer) {
		c.settler = NewSettler(opts)
	}
}

// WithViewport overrides DefaultViewport. The PDF paper width follows it.
func WithViewport(vp Viewport) Option {
	return func(c *Capturer) {
		c.viewport = vp
	}
}

// WithLogger sets the logger used for stage transitions.
func WithLogger(l *zap.Logger) Option {
	return func(c *Capturer) {
		if l != nil {
			c.logger = l
		}
	}
}
