package rod

import (
	"fmt"
	"sync"

	"github.com/fwojciec/brief"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/stealth"
)

// DefaultMaxPages is the default number of pages before browser recycling.
const DefaultMaxPages = 75

// chrome is one Chrome process and the CDP connection to it. launcher is
// nil when brief attached to a Chrome it did not start.
type chrome struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
}

// launchChrome starts Chrome with stability flags and connects to it.
func launchChrome(headless bool) (*chrome, error) {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Leakless(true).
		Headless(headless)

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	b := rod.New().ControlURL(u)
	if err := b.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}
	return &chrome{browser: b, launcher: l}, nil
}

// attachChrome connects to an already running Chrome. controlURL may be
// the DevTools websocket URL or the HTTP debugging address, e.g.
// "http://127.0.0.1:9222".
func attachChrome(controlURL string) (*chrome, error) {
	u, err := launcher.ResolveURL(controlURL)
	if err != nil {
		return nil, fmt.Errorf("resolving control URL: %w", err)
	}

	b := rod.New().ControlURL(u)
	if err := b.Connect(); err != nil {
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}
	return &chrome{browser: b}, nil
}

// shutdown closes a launched Chrome and kills its process. An attached
// Chrome is left running.
func (c *chrome) shutdown() error {
	if c.launcher == nil {
		return nil
	}
	err := c.browser.Close()
	c.launcher.Kill()
	return err
}

func (c *chrome) pid() int {
	if c == nil || c.launcher == nil {
		return 0
	}
	return c.launcher.PID()
}

// BrowserManager hands out stealth pages from a headless Chrome used for
// rendered snapshots. Chrome's memory baseline grows with every page, so
// the process is replaced after maxPages pages.
//
// BrowserManager is safe for concurrent use.
type BrowserManager struct {
	mu       sync.Mutex
	current  *chrome
	opened   int64
	maxPages int64
	headless bool
	launches int
	closed   bool
}

// ManagerOption configures a BrowserManager.
type ManagerOption func(*BrowserManager)

// WithMaxPages sets how many pages a Chrome process serves before it is
// replaced. Defaults to DefaultMaxPages.
func WithMaxPages(n int64) ManagerOption {
	return func(m *BrowserManager) {
		m.maxPages = n
	}
}

// WithVisibleWindow launches the browser with a window instead of headless.
func WithVisibleWindow() ManagerOption {
	return func(m *BrowserManager) {
		m.headless = false
	}
}

// NewBrowserManager launches Chrome. Close must be called when done.
func NewBrowserManager(opts ...ManagerOption) (*BrowserManager, error) {
	m := &BrowserManager{
		maxPages: DefaultMaxPages,
		headless: true,
	}
	for _, opt := range opts {
		opt(m)
	}

	c, err := launchChrome(m.headless)
	if err != nil {
		return nil, err
	}
	m.current = c
	m.launches = 1
	return m, nil
}

// NewPage opens a stealth page, first replacing Chrome if the current
// process has served maxPages pages. The caller closes the page.
func (m *BrowserManager) NewPage() (*rod.Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, brief.Errorf(brief.EINVALID, "browser manager is closed")
	}
	if m.opened >= m.maxPages {
		m.recycle()
	}

	page, err := stealth.Page(m.current.browser)
	if err != nil {
		return nil, fmt.Errorf("opening page: %w", err)
	}
	m.opened++
	return page, nil
}

// recycle replaces the current Chrome. If a new one cannot be launched the
// old one keeps serving. Must be called with mu held.
func (m *BrowserManager) recycle() {
	next, err := launchChrome(m.headless)
	if err != nil {
		return
	}
	_ = m.current.shutdown()
	m.current = next
	m.opened = 0
	m.launches++
}

// Launches reports how many Chrome processes the manager has started.
func (m *BrowserManager) Launches() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.launches
}

// LauncherPID returns the process ID of the current Chrome, or 0 once
// closed.
func (m *BrowserManager) LauncherPID() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return 0
	}
	return m.current.pid()
}

// Close shuts Chrome down. Close is safe to call multiple times.
func (m *BrowserManager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true
	return m.current.shutdown()
}
