package rod

import (
	"context"

	"github.com/fwojciec/brief"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// Ensure Document and Element implement the brief interfaces at compile time.
var (
	_ brief.Document = (*Document)(nil)
	_ brief.Element  = (*Element)(nil)
)

// Document is the live document of a Chrome tab. Element operations run as
// page scripts, so they see exactly what a content script would.
type Document struct {
	page *rod.Page
}

// NewDocument wraps an attached page.
func NewDocument(page *rod.Page) *Document {
	return &Document{page: page}
}

// Location returns location.href, which follows history API navigation.
func (d *Document) Location(ctx context.Context) (string, error) {
	res, err := d.page.Context(ctx).Eval(`() => location.href`)
	if err != nil {
		return "", err
	}
	return res.Value.Str(), nil
}

// Query returns the first element matching selector, or nil.
func (d *Document) Query(ctx context.Context, selector string) (brief.Element, error) {
	els, err := d.page.Context(ctx).Elements(selector)
	if err != nil {
		return nil, err
	}
	if len(els) == 0 {
		return nil, nil
	}
	return &Element{el: els[0]}, nil
}

// QueryAll returns all elements matching selector in document order.
func (d *Document) QueryAll(ctx context.Context, selector string) ([]brief.Element, error) {
	els, err := d.page.Context(ctx).Elements(selector)
	if err != nil {
		return nil, err
	}
	out := make([]brief.Element, 0, len(els))
	for _, el := range els {
		out = append(out, &Element{el: el})
	}
	return out, nil
}

// Element is a handle to a node in a live document.
type Element struct {
	el *rod.Element
}

func (e *Element) eval(ctx context.Context, js string, params ...any) (*proto.RuntimeRemoteObject, error) {
	return e.el.Context(ctx).Eval(js, params...)
}

// TextContent returns the node's textContent, hidden text included.
func (e *Element) TextContent(ctx context.Context) (string, error) {
	res, err := e.eval(ctx, `() => this.textContent || ''`)
	if err != nil {
		return "", err
	}
	return res.Value.Str(), nil
}

// InnerText returns the rendered text of the node.
func (e *Element) InnerText(ctx context.Context) (string, error) {
	res, err := e.eval(ctx, `() => this.innerText || ''`)
	if err != nil {
		return "", err
	}
	return res.Value.Str(), nil
}

// Attribute returns the named attribute and whether it is present.
func (e *Element) Attribute(ctx context.Context, name string) (string, bool, error) {
	v, err := e.el.Context(ctx).Attribute(name)
	if err != nil {
		return "", false, err
	}
	if v == nil {
		return "", false, nil
	}
	return *v, true, nil
}

// HasClass reports whether the node's classList contains class.
func (e *Element) HasClass(ctx context.Context, class string) (bool, error) {
	res, err := e.eval(ctx, `(c) => this.classList.contains(c)`, class)
	if err != nil {
		return false, err
	}
	return res.Value.Bool(), nil
}

// Closest reports whether the node or an ancestor matches selector.
func (e *Element) Closest(ctx context.Context, selector string) (bool, error) {
	res, err := e.eval(ctx, `(s) => this.closest(s) !== null`, selector)
	if err != nil {
		return false, err
	}
	return res.Value.Bool(), nil
}

// Visible matches the offsetParent check content scripts use, with a
// fallback to layout boxes for fixed-position elements.
func (e *Element) Visible(ctx context.Context) (bool, error) {
	res, err := e.eval(ctx, `() => this.isConnected && (this.offsetParent !== null || this.getClientRects().length > 0)`)
	if err != nil {
		return false, err
	}
	return res.Value.Bool(), nil
}

// Click fires a DOM click without moving the mouse.
func (e *Element) Click(ctx context.Context) error {
	_, err := e.eval(ctx, `() => this.click()`)
	return err
}

// Remove detaches the node from the document.
func (e *Element) Remove(ctx context.Context) error {
	return e.el.Context(ctx).Remove()
}

// Focus gives the node keyboard focus.
func (e *Element) Focus(ctx context.Context) error {
	_, err := e.eval(ctx, `() => this.focus()`)
	return err
}

// SetValue sets the value of form fields and the text of editable nodes.
// An empty value also clears the node's markup.
func (e *Element) SetValue(ctx context.Context, value string) error {
	_, err := e.eval(ctx, `(v) => {
		this.value = v;
		this.textContent = v;
		if (v === '') this.innerHTML = '';
	}`, value)
	return err
}

// Dispatch fires a bubbling DOM event of eventType at the node.
func (e *Element) Dispatch(ctx context.Context, eventType string) error {
	_, err := e.eval(ctx, `(t) => { this.dispatchEvent(new Event(t, { bubbles: true })) }`, eventType)
	return err
}
