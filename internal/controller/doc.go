// Package controller couples user actions to the realm services.
//
// Each controller owns one action (log in, register, load or collect
// resources) and writes its outcome to small view interfaces instead of a
// page: Reporter for messages and failures, Navigator for redirects and
// ResourceView for the resource counters. The CLI and the TUI provide their
// own implementations; tests use Recorder.
//
// Controllers are safe for concurrent use. A second submission of the same
// action while one is pending is rejected with ErrInFlight, and resource
// responses that arrive after a newer response has been shown are dropped.
package controller
