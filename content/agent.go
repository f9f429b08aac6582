package content

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/fwojciec/brief"
)

// Agent is the page context of one tab. It receives messages on an inbox
// in arrival order and handles each in its own goroutine, so a handler
// that is waiting on the page does not block the next message.
type Agent struct {
	TabID     string
	Doc       brief.Document
	Session   *TranscriptSession
	Extractor *Extractor
	Injector  *Injector
	Tuning    brief.Tuning
	Logger    *slog.Logger

	inbox chan envelope
	done  chan struct{}
}

// envelope is one message waiting in an agent's inbox.
type envelope struct {
	ctx    context.Context
	handle func(ctx context.Context)
}

// NewAgent returns an agent for the document of tabID. The agent owns a
// fresh transcript session; guard is shared with the other agents of the
// same host.
func NewAgent(tabID string, doc brief.Document, tuning brief.Tuning, guard *DeliveryGuard, logger *slog.Logger) *Agent {
	session := NewTranscriptSession()
	return &Agent{
		TabID:   tabID,
		Doc:     doc,
		Session: session,
		Extractor: &Extractor{
			Tuning:      tuning,
			Transcripts: NewTranscripts(tuning, session),
		},
		Injector: &Injector{Tuning: tuning, Guard: guard},
		Tuning:   tuning,
		Logger:   logger,
		inbox:    make(chan envelope),
		done:     make(chan struct{}),
	}
}

// Run handles messages until ctx is done, then waits for in-flight
// handlers to return. Run must be called at most once.
func (a *Agent) Run(ctx context.Context) error {
	defer close(a.done)

	var wg sync.WaitGroup
	defer wg.Wait()

	if a.Tuning.NavigationPoll > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a.observeNavigation(ctx)
		}()
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case env := <-a.inbox:
			wg.Add(1)
			go func() {
				defer wg.Done()
				hctx, cancel := context.WithCancel(env.ctx)
				defer cancel()
				stop := context.AfterFunc(ctx, cancel)
				defer stop()
				env.handle(hctx)
			}()
		}
	}
}

// Done is closed once Run has returned.
func (a *Agent) Done() <-chan struct{} {
	return a.done
}

// GetText handles a GET_TEXT message.
func (a *Agent) GetText(ctx context.Context) (*brief.GetTextResponse, error) {
	reply := make(chan *brief.GetTextResponse, 1)
	err := a.send(ctx, func(ctx context.Context) {
		text := a.Extractor.ExtractText(ctx, a.Doc)
		if err := ctx.Err(); err != nil {
			reply <- &brief.GetTextResponse{Error: err.Error()}
			return
		}
		reply <- &brief.GetTextResponse{Text: text}
	})
	if err != nil {
		return nil, err
	}
	return await(ctx, a, reply)
}

// GoToAI handles a GO_TO_AI message.
func (a *Agent) GoToAI(ctx context.Context, req *brief.GoToAIRequest) (*brief.GoToAIResponse, error) {
	reply := make(chan *brief.GoToAIResponse, 1)
	err := a.send(ctx, func(ctx context.Context) {
		reply <- a.Injector.Insert(ctx, a.TabID, a.Doc, req.Prompt)
	})
	if err != nil {
		return nil, err
	}
	return await(ctx, a, reply)
}

func (a *Agent) send(ctx context.Context, handle func(ctx context.Context)) error {
	select {
	case a.inbox <- envelope{ctx: ctx, handle: handle}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-a.done:
		return brief.Errorf(brief.ENOTFOUND, "%s", brief.PageUnreachable)
	}
}

// await waits for the reply of a handler. The handler always replies once
// it has been started, even when its context is canceled.
func await[T any](ctx context.Context, a *Agent, reply <-chan T) (T, error) {
	var zero T
	select {
	case v := <-reply:
		return v, nil
	case <-ctx.Done():
		return zero, ctx.Err()
	case <-a.done:
		select {
		case v := <-reply:
			return v, nil
		default:
			return zero, brief.Errorf(brief.ENOTFOUND, "%s", brief.PageUnreachable)
		}
	}
}

// observeNavigation resets the transcript session whenever the page moves
// to another video without a full reload.
func (a *Agent) observeNavigation(ctx context.Context) {
	ticker := time.NewTicker(a.Tuning.NavigationPoll)
	defer ticker.Stop()

	for {
		loc, err := a.Doc.Location(ctx)
		if err == nil && brief.IsVideoURL(loc) && a.Session.Navigated(brief.VideoID(loc)) {
			a.Logger.Debug("navigation reset", "tab", a.TabID, "url", loc)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
