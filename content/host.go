package content

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/fwojciec/brief"
	"golang.org/x/sync/errgroup"
)

var _ brief.PageHost = (*Host)(nil)

// Host runs one Agent per tab and routes messages to them. All agents of a
// host share one DeliveryGuard.
//
// Host is safe for concurrent use.
type Host struct {
	browser brief.Browser
	tuning  brief.Tuning
	logger  *slog.Logger
	guard   *DeliveryGuard

	mu     sync.Mutex
	agents map[string]*Agent
	stops  map[string]context.CancelFunc
	closed bool

	ctx    context.Context
	cancel context.CancelFunc
	group  errgroup.Group
}

// HostOption configures a Host.
type HostOption func(*Host)

// WithLogger sets the logger used by the host and its agents.
func WithLogger(logger *slog.Logger) HostOption {
	return func(h *Host) {
		h.logger = logger
	}
}

// WithGuard replaces the host's delivery guard.
func WithGuard(guard *DeliveryGuard) HostOption {
	return func(h *Host) {
		h.guard = guard
	}
}

// NewHost returns a host whose agents read tab documents from browser.
// Close must be called to stop the agents.
func NewHost(browser brief.Browser, tuning brief.Tuning, opts ...HostOption) *Host {
	ctx, cancel := context.WithCancel(context.Background())
	h := &Host{
		browser: browser,
		tuning:  tuning,
		logger:  slog.New(slog.DiscardHandler),
		guard:   NewDeliveryGuard(tuning.DeliveryCooldown),
		agents:  make(map[string]*Agent),
		stops:   make(map[string]context.CancelFunc),
		ctx:     ctx,
		cancel:  cancel,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Inject starts an agent for tabID unless one is already running.
func (h *Host) Inject(ctx context.Context, tabID string) error {
	_, err := h.inject(ctx, tabID)
	return err
}

func (h *Host) inject(ctx context.Context, tabID string) (*Agent, error) {
	if agent, err := h.running(tabID); agent != nil || err != nil {
		return agent, err
	}

	// Resolving the document is a browser round trip; other tabs must not
	// wait on it.
	doc, err := h.browser.Document(ctx, tabID)
	if err != nil {
		return nil, fmt.Errorf("opening document of tab %s: %w", tabID, err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, brief.Errorf(brief.EINTERNAL, "page host closed")
	}
	if agent, ok := h.agents[tabID]; ok {
		return agent, nil
	}

	agent := NewAgent(tabID, doc, h.tuning, h.guard, h.logger)
	actx, stop := context.WithCancel(h.ctx)
	h.agents[tabID] = agent
	h.stops[tabID] = stop
	h.group.Go(func() error {
		return agent.Run(actx)
	})
	h.logger.Debug("agent injected", "tab", tabID)
	return agent, nil
}

// running returns the agent of tabID, or nil if the tab has none yet.
func (h *Host) running(tabID string) (*Agent, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, brief.Errorf(brief.EINTERNAL, "page host closed")
	}
	return h.agents[tabID], nil
}

// Reset stops the agent of tabID, if any, waits for it to exit and clears
// the tab's delivery history.
func (h *Host) Reset(ctx context.Context, tabID string) error {
	h.mu.Lock()
	agent, ok := h.agents[tabID]
	if ok {
		h.stops[tabID]()
		delete(h.agents, tabID)
		delete(h.stops, tabID)
	}
	h.mu.Unlock()
	h.guard.Forget(tabID)

	if !ok {
		return nil
	}
	select {
	case <-agent.Done():
		h.logger.Debug("agent reset", "tab", tabID)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// GetText asks the agent of tabID for the page text, injecting an agent
// first if the tab has none.
func (h *Host) GetText(ctx context.Context, tabID string) (*brief.GetTextResponse, error) {
	agent, err := h.inject(ctx, tabID)
	if err != nil {
		return nil, err
	}
	return agent.GetText(ctx)
}

// GoToAI asks the agent of tabID to insert a prompt.
// Returns ENOTFOUND if no agent runs in the tab.
func (h *Host) GoToAI(ctx context.Context, tabID string, req *brief.GoToAIRequest) (*brief.GoToAIResponse, error) {
	h.mu.Lock()
	agent, ok := h.agents[tabID]
	h.mu.Unlock()

	if !ok {
		return nil, brief.Errorf(brief.ENOTFOUND, "%s", brief.PageUnreachable)
	}
	return agent.GoToAI(ctx, req)
}

// Close stops every agent and waits for them to exit.
func (h *Host) Close() error {
	h.mu.Lock()
	h.closed = true
	h.agents = make(map[string]*Agent)
	h.stops = make(map[string]context.CancelFunc)
	h.mu.Unlock()

	h.cancel()
	return h.group.Wait()
}
