package brief

// Readable holds the main content of an HTML page.
type Readable struct {
	// Title is the page title taken from metadata.
	Title string

	// ContentHTML is the main content as clean HTML, without navigation,
	// footers, sidebars or ads.
	ContentHTML string
}

// ReadableExtractor strips boilerplate from HTML pages.
type ReadableExtractor interface {
	// Extract returns the main content of rawHTML.
	Extract(rawHTML string) (*Readable, error)
}
