package main

// Notes:
// - Test infrastructure shared by the command tests: a fake browser that
//   serves canned pages, a recording notifier, and an Environment wired to
//   buffers and a temporary executable directory.

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	url2pdf "github.com/alnah/go-url2pdf"
	"github.com/alnah/go-url2pdf/internal/notify"
)

// fastSettle keeps command tests from sleeping through the grace periods.
var fastSettle = []string{"--grace=0s", "--final-grace=0s"}

// ---------------------------------------------------------------------------
// Fake browser
// ---------------------------------------------------------------------------

type fakeBrowser struct {
	mu        sync.Mutex
	pages     map[string]string // URL -> HTML; missing URLs fail to load
	launchErr error
	launches  int
	closed    int
	navigated []string
	opts      url2pdf.LaunchOptions
}

func (b *fakeBrowser) Launch(_ context.Context, opts url2pdf.LaunchOptions) (url2pdf.Session, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.launches++
	b.opts = opts
	if b.launchErr != nil {
		return nil, b.launchErr
	}
	return &fakeSession{b: b}, nil
}

type fakeSession struct{ b *fakeBrowser }

func (s *fakeSession) NewPage(context.Context) (url2pdf.Page, error) {
	return &fakePage{b: s.b}, nil
}

func (s *fakeSession) Close() error {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	s.b.closed++
	return nil
}

type fakePage struct {
	b    *fakeBrowser
	html string
}

func (p *fakePage) SetViewport(context.Context, url2pdf.Viewport) error { return nil }

func (p *fakePage) Navigate(_ context.Context, url string) error {
	p.b.mu.Lock()
	defer p.b.mu.Unlock()
	p.b.navigated = append(p.b.navigated, url)
	html, ok := p.b.pages[url]
	if !ok {
		return errors.New("net::ERR_NAME_NOT_RESOLVED")
	}
	p.html = html
	return nil
}

func (p *fakePage) ScrollHeight(context.Context) (int, error) { return 50, nil }
func (p *fakePage) ScrollBy(context.Context, int) error { return nil }
func (p *fakePage) HTML(context.Context) (string, error) { return p.html, nil }
func (p *fakePage) AddStyle(context.Context, string) error { return nil }
func (p *fakePage) Close() error { return nil }

func (p *fakePage) PDF(context.Context, url2pdf.PDFOptions) ([]byte, error) {
	return []byte("%PDF-1.4 fake"), nil
}

// ---------------------------------------------------------------------------
// Recording notifier
// ---------------------------------------------------------------------------

type recordingNotifier struct {
	mu     sync.Mutex
	sent   []notify.Notification
	waited bool
	closed bool
}

func (n *recordingNotifier) Notify(_ context.Context, msg notify.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, msg)
	return nil
}

func (n *recordingNotifier) Wait(context.Context) error {
	n.waited = true
	return nil
}

func (n *recordingNotifier) Close() error {
	n.closed = true
	return nil
}

// ---------------------------------------------------------------------------
// Environment
// ---------------------------------------------------------------------------

type testHarness struct {
	env      *Environment
	stdout   *bytes.Buffer
	stderr   *bytes.Buffer
	browser  *fakeBrowser
	notifier *recordingNotifier
	exeDir   string
	pdfDir   string
}

// newHarness builds an Environment whose executable lives in a temp dir that
// already has the default "pdf" output directory.
func newHarness(t *testing.T, pages map[string]string) *testHarness {
	t.Helper()

	exeDir := t.TempDir()
	pdfDir := filepath.Join(exeDir, "pdf")
	if err := os.Mkdir(pdfDir, 0o755); err != nil {
		t.Fatal(err)
	}

	h := &testHarness{
		stdout:   &bytes.Buffer{},
		stderr:   &bytes.Buffer{},
		browser:  &fakeBrowser{pages: pages},
		notifier: &recordingNotifier{},
		exeDir:   exeDir,
		pdfDir:   pdfDir,
	}
	h.env = &Environment{
		Now:      func() time.Time { return time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC) },
		Stdout:   h.stdout,
		Stderr:   h.stderr,
		Launcher: h.browser,
		NewNotifier: func(*zap.Logger) (notify.Notifier, error) {
			return h.notifier, nil
		},
		ProbeNotifier: func() (notify.ServerInfo, error) {
			return notify.ServerInfo{}, notify.ErrUnavailable
		},
		ExecutableDir: func() (string, error) { return exeDir, nil },
		LookPath:      func() (string, bool) { return "", false },
	}
	return h
}

// run executes the CLI with the fast settle flags prepended.
func (h *testHarness) run(args ...string) int {
	return execute(append(append([]string{}, fastSettle...), args...), h.env)
}

func page(title string) string {
	return "<html><body><header id=\"header\">Site</header><h1>" + title + "</h1><p>text</p></body></html>"
}
