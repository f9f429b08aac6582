package goquery

import (
	"context"
	"io"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/brief"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Ensure Document implements brief.Document.
var _ brief.Document = (*Document)(nil)

// Document is a brief.Document over a parsed HTML tree. Changes made
// through its elements edit the tree in place, and handlers registered
// with OnClick run when a matching element is clicked, so a Document can
// stand in for a live page.
//
// Document is safe for concurrent use.
type Document struct {
	mu       sync.Mutex
	doc      *goquery.Document
	location string
	handlers []clickHandler
	events   []Event
	focused  *html.Node
}

// Event records an interaction with the document.
type Event struct {
	// Type is "click", "focus", "value", or a dispatched event type.
	Type string

	// Target is the tag name of the element, with its id when it has one.
	Target string

	// Value is the value written by SetValue.
	Value string
}

type clickHandler struct {
	matcher cascadia.Selector
	fn      func(*Document)
}

// NewDocument parses src as the document found at location.
func NewDocument(location, src string) (*Document, error) {
	return NewDocumentFromReader(location, strings.NewReader(src))
}

// NewDocumentFromReader parses the HTML read from r as the document found
// at location.
func NewDocumentFromReader(location string, r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, brief.Errorf(brief.EINVALID, "failed to parse HTML: %v", err)
	}
	return &Document{doc: doc, location: location}, nil
}

// Location returns the document URL.
func (d *Document) Location(_ context.Context) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.location, nil
}

// SetLocation changes the document URL without touching the tree, as an
// in-page navigation does.
func (d *Document) SetLocation(location string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.location = location
}

// Query returns the first element matching selector, or nil.
func (d *Document) Query(_ context.Context, selector string) (brief.Element, error) {
	m, err := compile(selector)
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	sel := d.doc.FindMatcher(m).First()
	if sel.Length() == 0 {
		return nil, nil
	}
	return &Element{doc: d, sel: sel}, nil
}

// QueryAll returns all elements matching selector in document order.
func (d *Document) QueryAll(_ context.Context, selector string) ([]brief.Element, error) {
	m, err := compile(selector)
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	var elems []brief.Element
	d.doc.FindMatcher(m).Each(func(_ int, s *goquery.Selection) {
		elems = append(elems, &Element{doc: d, sel: s})
	})
	return elems, nil
}

// OnClick registers fn to run whenever an element matching selector is
// clicked.
func (d *Document) OnClick(selector string, fn func(*Document)) error {
	m, err := compile(selector)
	if err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers = append(d.handlers, clickHandler{matcher: m, fn: fn})
	return nil
}

// Append parses src and appends it to every element matching selector.
func (d *Document) Append(selector, src string) error {
	m, err := compile(selector)
	if err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.doc.FindMatcher(m).AppendHtml(src)
	return nil
}

// HTML renders the current tree.
func (d *Document) HTML() (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.doc.Html()
}

// Events returns the interactions recorded so far.
func (d *Document) Events() []Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Event(nil), d.events...)
}

// record appends an event. Must be called with mu held.
func (d *Document) record(typ string, s *goquery.Selection, value string) {
	d.events = append(d.events, Event{Type: typ, Target: describe(s), Value: value})
}

// Ensure Element implements brief.Element.
var _ brief.Element = (*Element)(nil)

// Element is one node of a Document.
type Element struct {
	doc *Document
	sel *goquery.Selection
}

// TextContent returns the text of the element and all its descendants.
func (e *Element) TextContent(_ context.Context) (string, error) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	return e.sel.Text(), nil
}

// InnerText approximates the rendered text of the element: hidden and
// non-rendered subtrees are skipped and block elements start new lines.
func (e *Element) InnerText(_ context.Context) (string, error) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	return innerText(e.sel.Get(0)), nil
}

// Attribute returns the named attribute.
func (e *Element) Attribute(_ context.Context, name string) (string, bool, error) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	v, ok := e.sel.Attr(name)
	return v, ok, nil
}

// HasClass reports whether the element carries class.
func (e *Element) HasClass(_ context.Context, class string) (bool, error) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	return e.sel.HasClass(class), nil
}

// Closest reports whether the element or an ancestor matches selector.
func (e *Element) Closest(_ context.Context, selector string) (bool, error) {
	m, err := compile(selector)
	if err != nil {
		return false, err
	}

	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	return e.sel.ClosestMatcher(m).Length() > 0, nil
}

// Visible reports whether neither the element nor an ancestor is hidden by
// the hidden attribute or an inline display or visibility style.
func (e *Element) Visible(_ context.Context) (bool, error) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()

	for n := e.sel.Get(0); n != nil; n = n.Parent {
		if n.Type == html.DocumentNode {
			return true, nil
		}
		if n.Type == html.ElementNode && hidden(n) {
			return false, nil
		}
	}
	// Detached from the tree.
	return false, nil
}

// Click records a click and runs the handlers registered for the element.
// Handlers run without the document lock held, so they may edit the tree.
func (e *Element) Click(_ context.Context) error {
	e.doc.mu.Lock()
	e.doc.record("click", e.sel, "")
	var fns []func(*Document)
	for _, h := range e.doc.handlers {
		if e.sel.IsMatcher(h.matcher) {
			fns = append(fns, h.fn)
		}
	}
	e.doc.mu.Unlock()

	for _, fn := range fns {
		fn(e.doc)
	}
	return nil
}

// Remove detaches the element from the tree.
func (e *Element) Remove(_ context.Context) error {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	e.sel.Remove()
	return nil
}

// Focus makes the element the document's focused element.
func (e *Element) Focus(_ context.Context) error {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	e.doc.focused = e.sel.Get(0)
	e.doc.record("focus", e.sel, "")
	return nil
}

// SetValue writes value as both the value attribute and the text of the
// element.
func (e *Element) SetValue(_ context.Context, value string) error {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	e.sel.SetAttr("value", value)
	e.sel.SetText(value)
	e.doc.record("value", e.sel, value)
	return nil
}

// Dispatch records an event of the given type.
func (e *Element) Dispatch(_ context.Context, eventType string) error {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	e.doc.record(eventType, e.sel, "")
	return nil
}

// Focused reports whether the element has focus.
func (e *Element) Focused() bool {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	return e.doc.focused == e.sel.Get(0)
}

func compile(selector string) (cascadia.Selector, error) {
	m, err := cascadia.Compile(selector)
	if err != nil {
		return nil, brief.Errorf(brief.EINVALID, "invalid selector %q: %v", selector, err)
	}
	return m, nil
}

func describe(s *goquery.Selection) string {
	name := goquery.NodeName(s)
	if id, ok := s.Attr("id"); ok && id != "" {
		return name + "#" + id
	}
	return name
}

func hidden(n *html.Node) bool {
	for _, a := range n.Attr {
		switch a.Key {
		case "hidden":
			return true
		case "type":
			if n.DataAtom == atom.Input && strings.EqualFold(a.Val, "hidden") {
				return true
			}
		case "style":
			style := strings.ReplaceAll(strings.ToLower(a.Val), " ", "")
			if strings.Contains(style, "display:none") || strings.Contains(style, "visibility:hidden") {
				return true
			}
		}
	}
	return false
}

var skipped = map[atom.Atom]bool{
	atom.Script:   true,
	atom.Style:    true,
	atom.Noscript: true,
	atom.Template: true,
	atom.Head:     true,
}

var blocks = map[atom.Atom]bool{
	atom.Address: true, atom.Article: true, atom.Aside: true,
	atom.Blockquote: true, atom.Div: true, atom.Dl: true, atom.Dd: true,
	atom.Dt: true, atom.Figcaption: true, atom.Figure: true,
	atom.Footer: true, atom.Form: true, atom.H1: true, atom.H2: true,
	atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Header: true, atom.Hr: true, atom.Li: true, atom.Main: true,
	atom.Nav: true, atom.Ol: true, atom.P: true, atom.Pre: true,
	atom.Section: true, atom.Table: true, atom.Tr: true, atom.Ul: true,
}

func innerText(root *html.Node) string {
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			b.WriteString(n.Data)
			return
		case html.ElementNode:
			if skipped[n.DataAtom] || hidden(n) {
				return
			}
			if n.DataAtom == atom.Br {
				b.WriteByte('\n')
				return
			}
		}
		block := n.Type == html.ElementNode && blocks[n.DataAtom]
		if block {
			b.WriteByte('\n')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if block {
			b.WriteByte('\n')
		}
	}
	walk(root)

	var lines []string
	for _, line := range strings.Split(b.String(), "\n") {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
