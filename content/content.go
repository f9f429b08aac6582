// Package content implements the page context: the logic that runs against a
// single tab's live document. An Agent receives GET_TEXT and GO_TO_AI
// messages through its inbox and answers them with the Extractor and the
// Injector. A Host keeps one Agent per tab.
package content
