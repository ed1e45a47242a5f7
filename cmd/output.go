// ABOUTME: Terminal implementation of the controller views
// ABOUTME: Prints messages as they arrive, or one JSON document at the end

package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"github.com/markalston/realm-client/internal/client"
	"github.com/markalston/realm-client/internal/controller"
)

// printer implements controller.Reporter, Navigator and ResourceView.
// Everything is also recorded so JSON mode can print a summary.
type printer struct {
	controller.Recorder
	w    io.Writer
	json bool
}

func newPrinter(w io.Writer) *printer {
	return &printer{w: w, json: IsJSONOutput()}
}

func (p *printer) ShowError(msg string) {
	p.Recorder.ShowError(msg)
	p.human("Error: %s\n", msg)
}

func (p *printer) ShowStatus(msg string) {
	p.Recorder.ShowStatus(msg)
	p.human("%s\n", msg)
}

func (p *printer) Alert(msg string) {
	p.Recorder.Alert(msg)
	p.human("%s\n", msg)
}

func (p *printer) ReportFailure(action string, err error) {
	p.Recorder.ReportFailure(action, err)
	p.human("Error: %s\n", controller.MsgServerError)
}

func (p *printer) Navigate(url string) {
	p.Recorder.Navigate(url)
	p.human("Redirect: %s\n", url)
}

func (p *printer) ShowResources(state client.ResourceState) {
	p.Recorder.ShowResources(state)
	p.human("%s\n", formatResourcesHuman(state))
}

func (p *printer) human(format string, args ...any) {
	if !p.json {
		fmt.Fprintf(p.w, format, args...)
	}
}

// outcome is the JSON document printed in --json mode
type outcome struct {
	OK        bool                  `json:"ok"`
	Resources *client.ResourceState `json:"resources,omitempty"`
	Status    string                `json:"status,omitempty"`
	Message   string                `json:"message,omitempty"`
	Error     string                `json:"error,omitempty"`
	Redirect  string                `json:"redirect,omitempty"`
}

// finish prints the JSON summary when JSON output is on
func (p *printer) finish(err error) {
	if !p.json {
		return
	}
	out := outcome{
		OK:       err == nil,
		Status:   p.LastStatus(),
		Redirect: p.LastRedirect(),
	}
	if state, ok := p.LastResources(); ok {
		out.Resources = &state
	}
	if len(p.Alerts) > 0 {
		out.Message = p.Alerts[len(p.Alerts)-1]
	}
	switch {
	case p.LastError() != "":
		out.Error = p.LastError()
	case p.FailureCount() > 0:
		out.Error = controller.MsgServerError
	case err != nil:
		out.Error = err.Error()
	}
	printJSON(p.w, out)
}

func printJSON(w io.Writer, v any) {
	data, _ := json.MarshalIndent(v, "", "  ")
	fmt.Fprintln(w, string(data))
}

// formatResourcesHuman formats counters for human readability
func formatResourcesHuman(state client.ResourceState) string {
	return fmt.Sprintf(`Wood:  %s
Stone: %s
Gold:  %s`,
		humanize.Comma(int64(state.Wood)),
		humanize.Comma(int64(state.Stone)),
		humanize.Comma(int64(state.Gold)))
}
