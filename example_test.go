package url2pdf_test

import (
	"context"
	"fmt"
	"time"

	"github.com/alnah/go-url2pdf"
)

// Example filters command-line style input down to the URLs worth capturing.
func Example() {
	args := []string{"https://example.com/post", "not-a-url", "ftp://x"}
	for _, u := range url2pdf.FilterURLs(args) {
		fmt.Println(u)
	}
	// Output:
	// https://example.com/post
	// ftp://x
}

// ExampleDeriveFilename shows how a page heading becomes a file name.
func ExampleDeriveFilename() {
	fmt.Println(url2pdf.DeriveFilename("  Hello/World  "))
	fmt.Println(url2pdf.DeriveFilename(""))
	// Output:
	// HelloWorld
	// output
}

// ExampleExtractTitle reads the first heading of a rendered document.
func ExampleExtractTitle() {
	html := `<html><body><h1>Release <em>notes</em></h1><h1>Later</h1></body></html>`
	fmt.Println(url2pdf.ExtractTitle(html))
	// Output: Release notes
}

// ExampleNewBatch captures pages with the go-rod browser (requires Chrome,
// so it has no Output and is only compiled).
func ExampleNewBatch() {
	capturer := url2pdf.NewCapturer(
		url2pdf.WithOutputDir("pdf"),
		url2pdf.WithNavigationTimeout(time.Minute),
	)
	batch := url2pdf.NewBatch(url2pdf.NewRodLauncher(), capturer, url2pdf.BatchOptions{
		Launch: url2pdf.LaunchOptions{Headless: true},
		OnResult: func(r url2pdf.Result) {
			if r.OK() {
				fmt.Println("PDF saved as:", r.Path)
			}
		},
	})

	report, err := batch.Run(context.Background(), []string{"https://example.com"})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("%d succeeded, %d failed\n", report.Succeeded, report.Failed)
}
