// Package brief extracts readable text from the active browser tab and hands
// it to a summarizer or to a third-party AI chat page.
//
// A run crosses three isolated contexts: a coordinator, page agents bound to
// individual browser tabs, and the UI that triggers the run. They share no
// memory and talk only through the typed messages declared in message.go.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., rod/, goquery/, gemini/, sqlite/).
package brief
