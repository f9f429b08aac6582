// Package pipeline coordinates the page contexts of the browser: it pulls
// text out of the active tab and hands it to a summarizer or to an AI chat
// page opened for the purpose.
package pipeline
