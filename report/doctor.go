package report

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/capgate/capgate/registry"
)

// Doctor walks a user through the capability report in the terminal.
// In non-interactive environments it falls back to the plain text report.
type Doctor struct {
	out         io.Writer
	interactive *bool
}

// DoctorOption configures a Doctor.
type DoctorOption func(*Doctor)

// WithOutput redirects report output. Default: stdout.
func WithOutput(w io.Writer) DoctorOption {
	return func(d *Doctor) {
		if w != nil {
			d.out = w
		}
	}
}

// WithInteractive forces interactivity on or off instead of detecting it
// from stdin.
func WithInteractive(enabled bool) DoctorOption {
	return func(d *Doctor) {
		d.interactive = &enabled
	}
}

// NewDoctor creates a new Doctor.
func NewDoctor(opts ...DoctorOption) *Doctor {
	d := &Doctor{
		out: os.Stdout,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// IsInteractive checks if we're running in an interactive terminal.
func (d *Doctor) IsInteractive() bool {
	if d.interactive != nil {
		return *d.interactive
	}
	fileInfo, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

// Run shows the capability report. Interactively the user can pick a
// capability to inspect its requirements, reason, and install hint;
// otherwise the plain table is written to the output.
func (d *Doctor) Run(ctx context.Context, reg *registry.Registry) error {
	rep := Build(ctx, reg)

	if !d.IsInteractive() {
		_, err := io.WriteString(d.out, rep.Text())
		return err
	}

	if len(rep.Capabilities) == 0 {
		_, err := io.WriteString(d.out, "no capabilities registered\n")
		return err
	}

	for {
		selected, err := d.pickCapability(rep)
		if err != nil {
			return err
		}

		d.printDetail(rep.Capabilities[selected])

		var again bool
		confirm := huh.NewConfirm().
			Title("Inspect another capability?").
			Value(&again)
		if err := huh.NewForm(huh.NewGroup(confirm)).Run(); err != nil {
			return err
		}
		if !again {
			return nil
		}
	}
}

// pickCapability prompts for one capability and returns its index.
func (d *Doctor) pickCapability(rep Report) (int, error) {
	options := make([]huh.Option[int], 0, len(rep.Capabilities))
	for i, entry := range rep.Capabilities {
		label := fmt.Sprintf("%s (%s)", entry.Name, entry.Status)
		options = append(options, huh.NewOption(label, i))
	}

	var selected int
	field := huh.NewSelect[int]().
		Title("Capabilities").
		Options(options...).
		Value(&selected)

	if err := huh.NewForm(huh.NewGroup(field)).Run(); err != nil {
		return 0, err
	}
	return selected, nil
}

func (d *Doctor) printDetail(entry Entry) {
	fmt.Fprintf(d.out, "\n%s: %s\n", entry.Name, entry.Status)
	fmt.Fprintf(d.out, "  requires: %s\n", strings.Join(entry.Requires, ", "))
	if entry.Reason != "" {
		fmt.Fprintf(d.out, "  reason:   %s\n", entry.Reason)
	}
	if entry.InstallHint != "" {
		fmt.Fprintf(d.out, "  hint:     %s\n", entry.InstallHint)
	}
	fmt.Fprintln(d.out)
}
