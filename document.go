package brief

import "context"

// Document is the live document of one browser tab, as seen from a page
// context. Implementations may be backed by a real browser or by a static
// HTML snapshot.
type Document interface {
	// Location returns the document's current URL.
	Location(ctx context.Context) (string, error)

	// Query returns the first element matching selector, or nil if none does.
	Query(ctx context.Context, selector string) (Element, error)

	// QueryAll returns all elements matching selector in document order.
	QueryAll(ctx context.Context, selector string) ([]Element, error)
}

// Element is a handle to one node of a Document.
type Element interface {
	// TextContent returns the raw text of the element and its descendants.
	TextContent(ctx context.Context) (string, error)

	// InnerText returns the rendered text of the element.
	InnerText(ctx context.Context) (string, error)

	// Attribute returns the named attribute and whether it is present.
	Attribute(ctx context.Context, name string) (string, bool, error)

	// HasClass reports whether the element carries the class.
	HasClass(ctx context.Context, class string) (bool, error)

	// Closest reports whether the element or one of its ancestors matches selector.
	Closest(ctx context.Context, selector string) (bool, error)

	// Visible reports whether the element has a rendered box.
	Visible(ctx context.Context) (bool, error)

	Click(ctx context.Context) error
	Remove(ctx context.Context) error
	Focus(ctx context.Context) error

	// SetValue writes value into every representation that applies to the
	// element: form value and text content. An empty value also clears
	// the element's markup.
	SetValue(ctx context.Context, value string) error

	// Dispatch fires a bubbling synthetic event of the given type. Host pages
	// built on reactive frameworks only observe a SetValue after this.
	Dispatch(ctx context.Context, eventType string) error
}
