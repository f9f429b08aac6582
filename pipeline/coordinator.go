package pipeline

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/fwojciec/brief"
	"github.com/fwojciec/brief/content"
	"github.com/google/uuid"
)

// Coordinator delivers the text of the active tab to an AI chat page.
type Coordinator struct {
	Browser  brief.Browser
	Pages    brief.PageHost
	Settings brief.SettingsService
	Tuning   brief.Tuning
	Logger   *slog.Logger

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time

	wg sync.WaitGroup
}

// Dispatch starts a run in the background and returns immediately. The
// run outlives ctx cancellation but keeps its values.
func (c *Coordinator) Dispatch(ctx context.Context, req brief.OpenAIRequest) {
	ctx = context.WithoutCancel(ctx)
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		_, _ = c.Run(ctx, req)
	}()
}

// Wait blocks until every dispatched run has finished.
func (c *Coordinator) Wait() {
	c.wg.Wait()
}

// Run extracts the active tab's text, opens the destination chat page for
// req.AIType and inserts the prompt there. A destination tab that was
// already opened stays open when a later step fails.
func (c *Coordinator) Run(ctx context.Context, req brief.OpenAIRequest) (run *brief.PipelineRun, err error) {
	extraction := brief.ExtractionRequest{ID: uuid.NewString(), RequestedAt: c.now()}
	logger := c.logger().With("request", extraction.ID, "ai", req.AIType, "type", req.SummaryType)

	defer func(begin time.Time) {
		attrs := []any{"duration", time.Since(begin)}
		if run != nil {
			attrs = append(attrs, "run", run.ID, "source", run.Extraction.SourceTabID, "destination", run.DestinationTabID)
		}
		switch {
		case err == nil:
			logger.Info("pipeline", attrs...)
		case brief.IsBenign(err):
			logger.Warn("pipeline", append(attrs, "err", err)...)
		default:
			logger.Error("pipeline", append(attrs, "err", err)...)
		}
	}(time.Now())

	if err := req.SummaryType.Validate(); err != nil {
		return nil, err
	}

	tab, err := c.Browser.ActiveTab(ctx)
	if err != nil {
		return nil, err
	}
	extraction.SourceTabID = tab.ID

	text, err := c.sourceText(ctx, tab)
	if err != nil {
		return nil, err
	}

	dstURL, err := brief.DestinationURL(req.AIType)
	if err != nil {
		return nil, err
	}

	run = &brief.PipelineRun{
		ID:          uuid.NewString(),
		Extraction:  extraction,
		AIKind:      req.AIType,
		SummaryKind: req.SummaryType,
	}

	dst, err := c.openDestination(ctx, dstURL)
	if dst != nil {
		run.DestinationTabID = dst.ID
	}
	if err != nil {
		return run, err
	}

	if err := c.Pages.Reset(ctx, dst.ID); err != nil {
		return run, err
	}
	if err := c.Pages.Inject(ctx, dst.ID); err != nil {
		return run, err
	}
	if err := content.Sleep(ctx, c.Tuning.DestinationSettle); err != nil {
		return run, err
	}

	settings, err := c.Settings.FindSettings(ctx)
	if err != nil {
		return run, err
	}
	run.PromptText = brief.BuildPrompt(req.SummaryType, settings, text)

	resp, err := c.Pages.GoToAI(ctx, dst.ID, &brief.GoToAIRequest{Action: brief.ActionGoToAI, Prompt: run.PromptText})
	if err != nil {
		return run, err
	}
	if err := resp.Err(); err != nil {
		return run, err
	}

	delivered := c.now()
	run.DeliveredAt = &delivered
	return run, nil
}

// sourceText asks the source tab for its text after the delay its page
// type needs to settle.
func (c *Coordinator) sourceText(ctx context.Context, tab *brief.Tab) (string, error) {
	if err := content.Sleep(ctx, c.Tuning.SourceDelay(tab.URL)); err != nil {
		return "", err
	}

	resp, err := c.Pages.GetText(ctx, tab.ID)
	if err != nil {
		return "", brief.Errorf(brief.ENOTEXT, "No text found on tab: %s", brief.ErrorMessage(err))
	}
	if resp.Error != "" {
		return "", brief.Errorf(brief.ENOTEXT, "No text found on tab: %s", resp.Error)
	}
	if strings.TrimSpace(resp.Text) == "" {
		return "", brief.Errorf(brief.ENOTEXT, "No text found on tab")
	}
	return resp.Text, nil
}

// openDestination opens url in a new tab and waits for the first load to
// complete. Later load events of the tab are ignored.
func (c *Coordinator) openDestination(ctx context.Context, url string) (*brief.Tab, error) {
	updates, unsubscribe := c.Browser.Subscribe(ctx)
	defer unsubscribe()

	tab, err := c.Browser.OpenTab(ctx, url)
	if err != nil {
		return nil, err
	}

	for {
		select {
		case <-ctx.Done():
			return tab, ctx.Err()
		case u, ok := <-updates:
			if !ok {
				return tab, brief.Errorf(brief.EINTERNAL, "tab updates closed before %s loaded", url)
			}
			if u.TabID == tab.ID && u.Status == brief.TabComplete {
				return tab, nil
			}
		}
	}
}

func (c *Coordinator) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func (c *Coordinator) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.New(slog.DiscardHandler)
}
