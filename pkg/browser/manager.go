// Package browser wraps Playwright-driven headless Chromium for the
// webtool commands. Every operation runs in its own isolated session:
// launch, navigate, act, close. Nothing is shared between operations and
// nothing survives the process.
package browser

import (
	"fmt"
	"io"
	"sync"

	"github.com/playwright-community/playwright-go"
)

// Options configures sessions created by a Manager.
type Options struct {
	// Headless controls whether Chromium runs without a window.
	Headless bool

	// Viewport is the initial page size.
	Viewport Viewport

	// TimeoutMS is the default timeout for page operations, in
	// milliseconds.
	TimeoutMS float64

	// TextLimit caps extracted text length in characters.
	TextLimit int

	// HTMLLimit caps extracted markup length in characters.
	HTMLLimit int
}

// Viewport is the browser window size.
type Viewport struct {
	Width  int
	Height int
}

// Default limits and timeouts.
const (
	DefaultTimeoutMS      = 30000.0
	DefaultTextLimit      = 5000
	DefaultHTMLLimit      = 10000
	DefaultViewportWidth  = 1280
	DefaultViewportHeight = 720
)

// DefaultOptions returns the standard headless configuration.
func DefaultOptions() Options {
	return Options{
		Headless:  true,
		Viewport:  Viewport{Width: DefaultViewportWidth, Height: DefaultViewportHeight},
		TimeoutMS: DefaultTimeoutMS,
		TextLimit: DefaultTextLimit,
		HTMLLimit: DefaultHTMLLimit,
	}
}

// Manager owns the Playwright runtime for one process. Sessions are
// created per operation and never reused.
type Manager struct {
	pw   *playwright.Playwright
	opts Options
}

// NewManager installs (if needed) and starts the Playwright driver.
// Driver output is discarded so it cannot pollute the JSON documents
// printed on stdout.
func NewManager(opts Options) (*Manager, error) {
	if opts.Viewport.Width == 0 || opts.Viewport.Height == 0 {
		opts.Viewport = Viewport{Width: DefaultViewportWidth, Height: DefaultViewportHeight}
	}
	if opts.TimeoutMS == 0 {
		opts.TimeoutMS = DefaultTimeoutMS
	}
	if opts.TextLimit == 0 {
		opts.TextLimit = DefaultTextLimit
	}
	if opts.HTMLLimit == 0 {
		opts.HTMLLimit = DefaultHTMLLimit
	}

	runOpts := &playwright.RunOptions{
		Verbose: false,
		Stdout:  io.Discard,
		Stderr:  io.Discard,
	}

	if err := playwright.Install(runOpts); err != nil {
		return nil, fmt.Errorf("failed to install playwright: %w", err)
	}

	pw, err := playwright.Run(runOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	return &Manager{pw: pw, opts: opts}, nil
}

// Close stops the Playwright driver.
func (m *Manager) Close() error {
	if m.pw == nil {
		return nil
	}
	if err := m.pw.Stop(); err != nil {
		return fmt.Errorf("failed to stop playwright: %w", err)
	}
	return nil
}

// newSession launches a fresh browser, context, and page. Partial
// failures unwind whatever was already acquired.
func (m *Manager) newSession() (*Session, error) {
	browser, err := m.pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(m.opts.Headless),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	context, err := browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  m.opts.Viewport.Width,
			Height: m.opts.Viewport.Height,
		},
	})
	if err != nil {
		browser.Close()
		return nil, fmt.Errorf("failed to create context: %w", err)
	}

	page, err := context.NewPage()
	if err != nil {
		context.Close()
		browser.Close()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	page.SetDefaultTimeout(m.opts.TimeoutMS)

	return &Session{
		browser: browser,
		context: context,
		page:    page,
	}, nil
}

// withSession runs fn in a fresh session and closes it on every path.
func (m *Manager) withSession(fn func(*Session) error) error {
	session, err := m.newSession()
	if err != nil {
		return err
	}
	defer session.Close()
	return fn(session)
}

// Session is one isolated browser instance with its context and page.
// A session serves exactly one operation and is closed unconditionally
// when that operation returns.
type Session struct {
	browser   playwright.Browser
	context   playwright.BrowserContext
	page      playwright.Page
	closeOnce sync.Once
}

// Close releases page, context, and browser. Safe to call more than
// once; cleanup continues past individual close errors.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		_ = s.page.Close()
		_ = s.context.Close()
		_ = s.browser.Close()
	})
}
