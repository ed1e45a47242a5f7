// ABOUTME: Recorder captures everything controllers write to their views
// ABOUTME: Lets tests and JSON output assert on messages, redirects and counters

package controller

import (
	"sync"

	"github.com/markalston/realm-client/internal/client"
)

// Failure is one ReportFailure call
type Failure struct {
	Action string
	Err    error
}

// Recorder implements Reporter, Navigator and ResourceView in memory
type Recorder struct {
	mu sync.Mutex

	Errors    []string
	Statuses  []string
	Alerts    []string
	Failures  []Failure
	Redirects []string
	Resources []client.ResourceState
}

func (r *Recorder) ShowError(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Errors = append(r.Errors, msg)
}

func (r *Recorder) ShowStatus(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Statuses = append(r.Statuses, msg)
}

func (r *Recorder) Alert(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Alerts = append(r.Alerts, msg)
}

func (r *Recorder) ReportFailure(action string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Failures = append(r.Failures, Failure{Action: action, Err: err})
}

func (r *Recorder) Navigate(url string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Redirects = append(r.Redirects, url)
}

func (r *Recorder) ShowResources(state client.ResourceState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Resources = append(r.Resources, state)
}

// LastError returns the most recent error message or ""
func (r *Recorder) LastError() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return last(r.Errors)
}

// LastStatus returns the most recent status message or ""
func (r *Recorder) LastStatus() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return last(r.Statuses)
}

// LastRedirect returns the most recent navigation target or ""
func (r *Recorder) LastRedirect() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return last(r.Redirects)
}

// LastResources returns the most recently shown counters
func (r *Recorder) LastResources() (client.ResourceState, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Resources) == 0 {
		return client.ResourceState{}, false
	}
	return r.Resources[len(r.Resources)-1], true
}

// FailureCount returns the number of ReportFailure calls
func (r *Recorder) FailureCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Failures)
}

func last(s []string) string {
	if len(s) == 0 {
		return ""
	}
	return s[len(s)-1]
}
