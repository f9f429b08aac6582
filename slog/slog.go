// Package slog provides logging decorators for brief services.
//
// Each decorator logs one line per call with the operation's inputs,
// a result summary, its duration and its error. Secrets and page text
// are never logged, only their sizes.
package slog
