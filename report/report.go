// Package report renders the diagnostic listing of a capability registry:
// a one-shot "what can this library do in this environment" view, as
// plain text, YAML, or an interactive terminal session.
package report

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/capgate/capgate/registry"
)

// Report is a point-in-time view of every registered capability.
type Report struct {
	GeneratedAt  time.Time `yaml:"generated_at"`
	Capabilities []Entry   `yaml:"capabilities"`
}

// Entry is the status of one capability.
type Entry struct {
	Name        string   `yaml:"name"`
	Status      string   `yaml:"status"`
	Reason      string   `yaml:"reason,omitempty"`
	Requires    []string `yaml:"requires"`
	InstallHint string   `yaml:"install_hint,omitempty"`
}

// Build resolves every registered capability and assembles the report.
func Build(ctx context.Context, reg *registry.Registry) Report {
	statuses := reg.Snapshot(ctx)

	entries := make([]Entry, 0, len(statuses))
	for _, status := range statuses {
		entry := Entry{
			Name:        status.Name,
			Status:      "available",
			Requires:    status.Requires,
			InstallHint: status.InstallHint,
		}
		if !status.Available {
			entry.Status = "unavailable"
			entry.Reason = status.Reason
		}
		entries = append(entries, entry)
	}

	return Report{
		GeneratedAt:  time.Now().UTC(),
		Capabilities: entries,
	}
}

// Text renders the report as an aligned table.
func (r Report) Text() string {
	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)

	fmt.Fprintln(w, "CAPABILITY\tSTATUS\tDETAIL")
	for _, entry := range r.Capabilities {
		detail := strings.Join(entry.Requires, ", ")
		if entry.Reason != "" {
			detail = entry.Reason
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", entry.Name, entry.Status, detail)
	}
	_ = w.Flush()
	return sb.String()
}

// YAML renders the report as a YAML document.
func (r Report) YAML() ([]byte, error) {
	return yaml.Marshal(r)
}
