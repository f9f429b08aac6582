package rod

import (
	"context"
	"fmt"
	"sync"

	"github.com/fwojciec/brief"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
)

// updateBuffer is the capacity of each subscriber channel.
const updateBuffer = 16

// Ensure Browser implements brief.Browser at compile time.
var _ brief.Browser = (*Browser)(nil)

// Browser implements brief.Browser over the Chrome DevTools Protocol.
// Tab IDs are CDP target IDs.
//
// Load events are tracked only for tabs the Browser has attached to, which
// includes every tab it opened.
type Browser struct {
	browser *rod.Browser
	proc    *chrome

	mu       sync.Mutex
	sessions map[proto.TargetSessionID]*tabState
	subs     map[int]chan brief.TabUpdate
	nextSub  int

	cancel context.CancelFunc
	done   chan struct{}
}

type tabState struct {
	targetID proto.TargetTargetID

	// navigated is set once the main frame commits a real URL, so the
	// about:blank load of a fresh tab is not reported as complete.
	navigated bool
}

// BrowserOption configures a Browser.
type BrowserOption func(*browserConfig)

type browserConfig struct {
	controlURL string
	headless   bool
}

// WithControlURL connects to a running Chrome instead of launching one.
func WithControlURL(u string) BrowserOption {
	return func(c *browserConfig) {
		c.controlURL = u
	}
}

// WithHeadless launches Chrome without a window. Ignored with WithControlURL.
func WithHeadless(headless bool) BrowserOption {
	return func(c *browserConfig) {
		c.headless = headless
	}
}

// NewBrowser connects to Chrome, launching a windowed instance unless
// WithControlURL is given. Close must be called when done.
func NewBrowser(opts ...BrowserOption) (*Browser, error) {
	var cfg browserConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	b := &Browser{
		sessions: make(map[proto.TargetSessionID]*tabState),
		subs:     make(map[int]chan brief.TabUpdate),
		done:     make(chan struct{}),
	}

	var err error
	if cfg.controlURL != "" {
		b.proc, err = attachChrome(cfg.controlURL)
	} else {
		b.proc, err = launchChrome(cfg.headless)
	}
	if err != nil {
		return nil, err
	}
	b.browser = b.proc.browser

	b.listen()
	return b, nil
}

// listen pumps page lifecycle events into tab updates until Close.
func (b *Browser) listen() {
	ctx, cancel := context.WithCancel(context.Background())
	b.cancel = cancel

	wait := b.browser.Context(ctx).EachEvent(
		func(e *proto.PageFrameStartedLoading, id proto.TargetSessionID) {
			b.frameStartedLoading(id, e.FrameID)
		},
		func(e *proto.PageFrameNavigated, id proto.TargetSessionID) {
			b.frameNavigated(id, e.Frame)
		},
		func(_ *proto.PageLoadEventFired, id proto.TargetSessionID) {
			b.loadEventFired(id)
		},
	)

	go func() {
		defer close(b.done)
		wait()
	}()
}

func (b *Browser) frameStartedLoading(id proto.TargetSessionID, frameID proto.PageFrameID) {
	b.mu.Lock()
	defer b.mu.Unlock()

	tab, ok := b.sessions[id]
	if !ok || frameID != proto.PageFrameID(tab.targetID) {
		return
	}
	b.publish(brief.TabUpdate{TabID: string(tab.targetID), Status: brief.TabLoading})
}

func (b *Browser) frameNavigated(id proto.TargetSessionID, frame *proto.PageFrame) {
	if frame == nil || frame.ParentID != "" || frame.URL == "about:blank" {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if tab, ok := b.sessions[id]; ok {
		tab.navigated = true
	}
}

func (b *Browser) loadEventFired(id proto.TargetSessionID) {
	b.mu.Lock()
	defer b.mu.Unlock()

	tab, ok := b.sessions[id]
	if !ok || !tab.navigated {
		return
	}
	b.publish(brief.TabUpdate{TabID: string(tab.targetID), Status: brief.TabComplete})
}

// publish delivers u to every subscriber. A subscriber whose buffer is full
// misses the update. Must be called with mu held.
func (b *Browser) publish(u brief.TabUpdate) {
	for _, ch := range b.subs {
		select {
		case ch <- u:
		default:
		}
	}
}

func (b *Browser) track(page *rod.Page) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.sessions[page.SessionID]; !ok {
		b.sessions[page.SessionID] = &tabState{targetID: page.TargetID}
	}
}

// Subscribe delivers tab updates until unsubscribe is called or ctx ends.
func (b *Browser) Subscribe(ctx context.Context) (<-chan brief.TabUpdate, func()) {
	ch := make(chan brief.TabUpdate, updateBuffer)

	b.mu.Lock()
	id := b.nextSub
	b.nextSub++
	b.subs[id] = ch
	b.mu.Unlock()

	unsubscribe := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if _, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(ch)
		}
	}
	stop := context.AfterFunc(ctx, unsubscribe)

	return ch, func() {
		stop()
		unsubscribe()
	}
}

// OpenTab opens a stealth tab and starts navigating it to url. It returns
// once navigation has been committed; loading completes asynchronously.
func (b *Browser) OpenTab(ctx context.Context, url string) (*brief.Tab, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Pages are cached by rod for the life of the browser, so they are
	// created under the browser's context and only operations use ctx.
	page, err := stealth.Page(b.browser)
	if err != nil {
		return nil, fmt.Errorf("opening tab: %w", err)
	}
	b.track(page)

	if err := page.Context(ctx).Navigate(url); err != nil {
		return nil, fmt.Errorf("navigating to %s: %w", url, err)
	}

	return &brief.Tab{ID: string(page.TargetID), URL: url}, nil
}

// ActiveTab returns the first tab whose document is visible and focused,
// falling back to the first visible tab and then to the first tab.
func (b *Browser) ActiveTab(ctx context.Context) (*brief.Tab, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pages, err := b.browser.Pages()
	if err != nil {
		return nil, fmt.Errorf("listing tabs: %w", err)
	}
	if len(pages) == 0 {
		return nil, brief.Errorf(brief.ENOACTIVETAB, "no active tab")
	}

	var visible *rod.Page
	for _, page := range pages {
		res, err := page.Context(ctx).Eval(`() => [document.visibilityState === 'visible', document.hasFocus()]`)
		if err != nil {
			continue
		}
		state := res.Value.Arr()
		if len(state) != 2 || !state[0].Bool() {
			continue
		}
		if state[1].Bool() {
			return b.tab(ctx, page)
		}
		if visible == nil {
			visible = page
		}
	}
	if visible != nil {
		return b.tab(ctx, visible)
	}
	return b.tab(ctx, pages[0])
}

func (b *Browser) tab(ctx context.Context, page *rod.Page) (*brief.Tab, error) {
	b.track(page)
	info, err := page.Context(ctx).Info()
	if err != nil {
		return nil, fmt.Errorf("reading tab info: %w", err)
	}
	return &brief.Tab{ID: string(page.TargetID), URL: info.URL}, nil
}

// Document attaches to the tab and returns its live document.
func (b *Browser) Document(ctx context.Context, tabID string) (brief.Document, error) {
	targets, err := proto.TargetGetTargets{}.Call(b.browser.Context(ctx))
	if err != nil {
		return nil, fmt.Errorf("listing targets: %w", err)
	}

	for _, target := range targets.TargetInfos {
		if string(target.TargetID) != tabID || target.Type != proto.TargetTargetInfoTypePage {
			continue
		}
		page, err := b.browser.PageFromTarget(target.TargetID)
		if err != nil {
			return nil, fmt.Errorf("attaching to tab %s: %w", tabID, err)
		}
		b.track(page)
		return NewDocument(page), nil
	}

	return nil, brief.Errorf(brief.ENOTFOUND, "tab %s not found", tabID)
}

// Close stops event delivery and releases the browser. A launched browser
// is shut down; a connected one is left running.
func (b *Browser) Close() error {
	b.cancel()
	<-b.done

	b.mu.Lock()
	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
	b.mu.Unlock()

	return b.proc.shutdown()
}

// LauncherPID returns the process ID of a launched Chrome, or 0 when the
// Browser attached to a running one.
func (b *Browser) LauncherPID() int {
	return b.proc.pid()
}
