package main

import (
	"fmt"

	"github.com/fwojciec/brief"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	text, err := c.extract(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", brief.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, text)

	if c.Tokens {
		n, err := deps.Tokens.CountTokens(deps.Ctx, text)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: counting tokens: %s\n", brief.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stderr, "%d tokens\n", n)
	}
	return nil
}

func (c *ExtractCmd) extract(deps *Dependencies) (string, error) {
	if c.Markdown && c.URL == "" {
		return "", brief.Errorf(brief.EINVALID, "--markdown needs --url")
	}
	if c.URL != "" {
		doc, err := deps.Snapshots.Snapshot(deps.Ctx, c.URL)
		if err != nil {
			return "", err
		}
		if c.Markdown {
			return markdown(deps, doc)
		}
		return deps.Extractor.ExtractText(deps.Ctx, doc), nil
	}

	tab, err := deps.Browser.ActiveTab(deps.Ctx)
	if err != nil {
		return "", err
	}
	resp, err := deps.Pages.GetText(deps.Ctx, tab.ID)
	if err != nil {
		return "", brief.Errorf(brief.ENOTEXT, "%s", brief.PageUnreachable)
	}
	if resp.Error != "" {
		return "", brief.Errorf(brief.ENOTEXT, "%s", resp.Error)
	}
	return resp.Text, nil
}

// renderer is a document that can render its HTML, such as a snapshot.
type renderer interface {
	HTML() (string, error)
}

func markdown(deps *Dependencies, doc brief.Document) (string, error) {
	r, ok := doc.(renderer)
	if !ok {
		return "", brief.Errorf(brief.EINVALID, "document cannot be rendered as HTML")
	}
	src, err := r.HTML()
	if err != nil {
		return "", err
	}
	return deps.Markdown.Convert(src)
}
