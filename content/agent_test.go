package content_test

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/fwojciec/brief"
	"github.com/fwojciec/brief/content"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startAgent(t *testing.T, doc brief.Document, tuning brief.Tuning) *content.Agent {
	t.Helper()

	a := content.NewAgent("tab-1", doc, tuning, content.NewDeliveryGuard(tuning.DeliveryCooldown), slog.New(slog.DiscardHandler))
	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = a.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-a.Done()
	})
	return a
}

func TestAgent_GetText(t *testing.T) {
	t.Parallel()

	doc := newDoc(t, "https://example.com/post", `<html><body><article>Full article text.</article></body></html>`)
	a := startAgent(t, doc, testTuning())

	resp, err := a.GetText(context.Background())

	require.NoError(t, err)
	assert.Equal(t, &brief.GetTextResponse{Text: "Full article text."}, resp)
}

func TestAgent_GoToAI(t *testing.T) {
	t.Parallel()

	doc := newDoc(t, "https://chatgpt.com/", `<html><body><textarea id="prompt-textarea"></textarea></body></html>`)
	a := startAgent(t, doc, testTuning())

	resp, err := a.GoToAI(context.Background(), &brief.GoToAIRequest{Action: brief.ActionGoToAI, Prompt: "hello"})

	require.NoError(t, err)
	assert.True(t, resp.Success)
}

func TestAgent_Run(t *testing.T) {
	t.Parallel()

	t.Run("handles messages concurrently", func(t *testing.T) {
		t.Parallel()

		tuning := testTuning()
		tuning.PanelOpenDelay = 300 * time.Millisecond
		doc := newDoc(t, watchURL, fmt.Sprintf(videoPage, ""))
		openPanelOnClick(t, doc, segmentsPanel("0:00 Hello world"))
		a := startAgent(t, doc, tuning)

		var wg sync.WaitGroup
		var first *brief.GetTextResponse
		wg.Add(1)
		go func() {
			defer wg.Done()
			first, _ = a.GetText(context.Background())
		}()
		require.Eventually(t, a.Session.Active, time.Second, time.Millisecond)

		second, err := a.GetText(context.Background())
		require.NoError(t, err)
		assert.Contains(t, second.Text, "Already getting transcript, please wait")

		wg.Wait()
		require.NotNil(t, first)
		assert.Equal(t, "Hello world", first.Text)
	})

	t.Run("resets the session when the page navigates", func(t *testing.T) {
		t.Parallel()

		tuning := testTuning()
		tuning.NavigationPoll = 5 * time.Millisecond
		doc := newDoc(t, watchURL, fmt.Sprintf(videoPage, ""))
		a := startAgent(t, doc, tuning)
		a.Session.Confirm("abc123")

		doc.SetLocation("https://www.youtube.com/watch?v=next")

		assert.Eventually(t, func() bool { return a.Session.VideoID() == "" }, time.Second, time.Millisecond)
	})

	t.Run("rejects messages after stopping", func(t *testing.T) {
		t.Parallel()

		doc := newDoc(t, "https://example.com/", `<html></html>`)
		a := content.NewAgent("tab-1", doc, testTuning(), content.NewDeliveryGuard(0), slog.New(slog.DiscardHandler))
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- a.Run(ctx) }()
		cancel()
		require.NoError(t, <-done)

		_, err := a.GetText(context.Background())

		assert.Equal(t, brief.ENOTFOUND, brief.ErrorCode(err))
	})

	t.Run("cancels handlers when stopping", func(t *testing.T) {
		t.Parallel()

		tuning := testTuning()
		tuning.InputSettle = time.Hour
		doc := newDoc(t, "https://chatgpt.com/", `<html><body><textarea id="prompt-textarea"></textarea></body></html>`)
		a := content.NewAgent("tab-1", doc, tuning, content.NewDeliveryGuard(0), slog.New(slog.DiscardHandler))
		ctx, cancel := context.WithCancel(context.Background())
		go func() { _ = a.Run(ctx) }()

		replies := make(chan *brief.GoToAIResponse, 1)
		go func() {
			resp, _ := a.GoToAI(context.Background(), &brief.GoToAIRequest{Prompt: "p"})
			replies <- resp
		}()
		time.Sleep(20 * time.Millisecond)
		cancel()

		select {
		case resp := <-replies:
			require.NotNil(t, resp)
			assert.False(t, resp.Success)
		case <-time.After(time.Second):
			t.Fatal("handler was not canceled")
		}
		<-a.Done()
	})
}
