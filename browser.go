package brief

import "context"

// Tab is a snapshot of one browser tab.
type Tab struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// TabStatus is the loading state reported by a tab update.
type TabStatus string

const (
	TabLoading  TabStatus = "loading"
	TabComplete TabStatus = "complete"
)

// TabUpdate is published whenever a tab's loading state changes.
type TabUpdate struct {
	TabID  string    `json:"tabId"`
	Status TabStatus `json:"status"`
}

// Browser is the coordinator's view of the browser: tabs and their updates.
type Browser interface {
	// ActiveTab returns the tab the user is looking at.
	// Returns ENOACTIVETAB if there is none.
	ActiveTab(ctx context.Context) (*Tab, error)

	// OpenTab opens a new tab navigating to url.
	OpenTab(ctx context.Context, url string) (*Tab, error)

	// Subscribe delivers tab updates until unsubscribe is called or ctx ends.
	// Updates that happen before Subscribe returns are not delivered.
	Subscribe(ctx context.Context) (updates <-chan TabUpdate, unsubscribe func())

	// Document returns a handle to the tab's live document.
	// Returns ENOTFOUND if the tab does not exist.
	Document(ctx context.Context, tabID string) (Document, error)

	// Close releases browser resources.
	Close() error
}
