// Package url2pdf prints web pages to single-file PDFs using headless Chrome.
//
// # Quick Start
//
// Build a Capturer and a Batch, then run the batch over a list of URLs:
//
//	capturer := url2pdf.NewCapturer(url2pdf.WithOutputDir("pdf"))
//	batch := url2pdf.NewBatch(url2pdf.NewRodLauncher(), capturer, url2pdf.BatchOptions{
//	    Launch: url2pdf.LaunchOptions{Headless: true},
//	})
//
//	report, err := batch.Run(ctx, url2pdf.FilterURLs(urls))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, path := range report.Paths() {
//	    fmt.Println("PDF saved as:", path)
//	}
//
// # Capture Pipeline
//
// Each URL goes through the same stages on a single reused page:
//
//  1. Navigation, bounded by the navigation timeout
//  2. Settling: a grace period, incremental scrolling to the bottom so lazy
//     content loads, then a second grace period
//  3. Naming from the text of the first <h1>, with reserved characters removed
//  4. Style overrides hiding site chrome (header, footer) and widening code blocks
//  5. Printing with backgrounds, at the viewport width, to <output dir>/<name>.pdf
//
// A failed URL is reported in its Result and the batch moves on, unless
// BatchOptions.FailFast is set. Files with the same derived name overwrite
// each other; the last capture wins.
//
// # Browser
//
// The go-rod Launcher downloads Chromium on first use unless ROD_BROWSER_BIN
// or LaunchOptions.Bin points at an installed browser. Set ROD_NO_SANDBOX=1
// (or run with CI=true) inside containers.
//
// # Errors
//
// Failures wrap sentinel errors that can be checked with errors.Is:
//
//	var stageErr *url2pdf.StageError
//	if errors.As(res.Err, &stageErr) && errors.Is(stageErr, url2pdf.ErrPageLoad) {
//	    // navigation timed out or failed
//	}
package url2pdf
