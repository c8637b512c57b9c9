package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	url2pdf "github.com/alnah/go-url2pdf"
	"github.com/alnah/go-url2pdf/internal/hints"
)

// ErrUsage wraps flag parsing errors.
var ErrUsage = errors.New("invalid usage")

const rootLong = `url2pdf opens each URL in headless Chrome, scrolls to the bottom so lazy
content loads, hides the site header and footer, and prints the page to
<output dir>/<first heading>.pdf.

Arguments that are not URLs are ignored. URLs are processed one at a time
on a single browser; a failed URL is reported and the batch moves on
unless --fail-fast is set.

Examples:
  url2pdf https://example.com/post
  url2pdf -o ~/Documents/pdf https://a.example/1 https://a.example/2
  url2pdf --headless=false --notify https://example.com/post
  url2pdf doctor`

// newRootCmd builds the command tree. The root command captures URLs.
func newRootCmd(env *Environment) *cobra.Command {
	var flags captureFlags

	root := &cobra.Command{
		Use:           "url2pdf [flags] <url>...",
		Short:         "Print web pages to PDF with headless Chrome",
		Long:          rootLong,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       Version,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := notifyContext(cmd.Context())
			defer stop()
			return runCapture(ctx, cmd, args, &flags, env)
		},
	}
	root.SetVersionTemplate("url2pdf {{.Version}}\n")
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	})

	addCommonFlags(root.PersistentFlags(), &flags.common)
	addCaptureFlags(root.Flags(), &flags)

	root.AddCommand(
		newDoctorCmd(env, &flags.common),
		newVersionCmd(env),
		newConfigCmd(env, &flags.common),
	)
	return root
}

// execute runs the CLI with args and returns the process exit code.
func execute(args []string, env *Environment) int {
	root := newRootCmd(env)
	root.SetArgs(args)
	root.SetOut(env.Stdout)
	root.SetErr(env.Stderr)

	err := root.Execute()
	if err == nil {
		return ExitSuccess
	}
	printError(env.Stderr, err)
	return exitCodeFor(err)
}

// printError reports err on w with an actionable hint when one applies.
func printError(w io.Writer, err error) {
	switch {
	case errors.Is(err, url2pdf.ErrNoURLs):
		fmt.Fprintln(w, "Invalid URL")
	case errors.Is(err, ErrPartialFailure):
		// Each failure and the summary were already printed.
	default:
		fmt.Fprintf(w, "error: %v%s\n", err, hintFor(err))
	}
}

// hintFor returns a hint for errors whose cause is usually the environment.
func hintFor(err error) string {
	switch {
	case errors.Is(err, url2pdf.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, url2pdf.ErrPageLoad):
		return hints.ForTimeout()
	}
	return ""
}
