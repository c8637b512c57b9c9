package url2pdf

import "errors"

// Sentinel errors for capture operations.
var (
	ErrNoURLs         = errors.New("no valid URL to capture")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrViewport       = errors.New("failed to set viewport")
	ErrPageLoad       = errors.New("failed to load page")
	ErrSettle         = errors.New("failed to settle page")
	ErrTitle          = errors.New("failed to read page title")
	ErrStyleInject    = errors.New("failed to inject style overrides")
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrWritePDF       = errors.New("failed to write PDF file")
	ErrOutputDir      = errors.New("output directory is not usable")
)
