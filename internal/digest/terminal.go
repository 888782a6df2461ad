package digest

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/ppiankov/secdigest/internal/source"
)

const (
	banner = `
   ____            ____  _                 _
  / ___|  ___  ___|  _ \(_) __ _  ___  ___| |_
  \___ \ / _ \/ __| | | | |/ _` + "`" + ` |/ _ \/ __| __|
   ___) |  __/ (__| |_| | | (_| |  __/\__ \ |_
  |____/ \___|\___|____/|_|\__, |\___||___/\__|
                           |___/
`
	separator     = "-------------------------------------------"
	loginTimeForm = "Monday, January 02, 2006 - 03:04 PM"
)

// TerminalOptions controls the terminal formatter.
type TerminalOptions struct {
	Color    bool
	Banner   bool
	Greeting string // name in the welcome line; empty for a generic welcome
}

// TerminalFormatter formats a report for terminal output. It is the only
// place ANSI escape codes are produced.
type TerminalFormatter struct {
	opts   TerminalOptions
	header *color.Color
	label  *color.Color
	bold   *color.Color
	art    *color.Color
}

// NewTerminal creates a terminal formatter.
func NewTerminal(opts TerminalOptions) *TerminalFormatter {
	f := &TerminalFormatter{
		opts:   opts,
		header: color.New(color.FgHiGreen, color.Bold),
		label:  color.New(color.FgHiBlue),
		bold:   color.New(color.Bold),
		art:    color.New(color.FgHiGreen),
	}
	// fatih/color decides on its own from the environment; the caller's
	// choice wins.
	for _, c := range []*color.Color{f.header, f.label, f.bold, f.art} {
		if opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return f
}

// Format writes every section. The intro is written separately by WriteIntro.
func (f *TerminalFormatter) Format(w io.Writer, report Report) error {
	for _, s := range report.Sections {
		fmt.Fprintf(w, "\n%s\n", f.header.Sprintf("--- Latest from %s ---", s.Source.Name))
		if s.Notice != "" {
			fmt.Fprintln(w, s.Notice)
			continue
		}
		for _, e := range s.Entries {
			f.writeEntry(w, e)
		}
	}
	return nil
}

// WriteIntro writes the banner, the welcome line and the login time. A zero
// at omits the login time.
func (f *TerminalFormatter) WriteIntro(w io.Writer, at time.Time) {
	if f.opts.Banner {
		fmt.Fprintln(w, f.art.Sprint(banner))
	}

	welcome := "Welcome back. Here is your daily digest!"
	if name := strings.TrimSpace(f.opts.Greeting); name != "" {
		welcome = fmt.Sprintf("Welcome back, %s. Here is your daily digest!", name)
	}
	fmt.Fprintln(w, f.bold.Sprint(welcome))
	fmt.Fprintln(w, separator)
	if !at.IsZero() {
		fmt.Fprintln(w, f.label.Sprint("Login time: "+at.Format(loginTimeForm)))
		fmt.Fprintln(w, separator)
	}
}

func (f *TerminalFormatter) writeEntry(w io.Writer, e source.Entry) {
	if e.Placeholder != "" {
		fmt.Fprintln(w, e.Placeholder)
		return
	}
	fmt.Fprintln(w)
	for _, field := range e.Fields {
		value := field.Value
		if field.Emphasis {
			value = f.bold.Sprint(value)
		}
		fmt.Fprintf(w, "%s %s\n", f.label.Sprint(field.Label+":"), value)
	}
}
