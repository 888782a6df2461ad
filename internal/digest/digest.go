package digest

import (
	"io"
	"time"

	"github.com/ppiankov/secdigest/internal/source"
)

// Status summarizes how a source's section was produced.
type Status string

const (
	StatusOK          Status = "ok"
	StatusFetchFailed Status = "fetch_failed"
	StatusEmpty       Status = "empty"
	StatusParseFailed Status = "parse_failed"
	StatusNoEntries   Status = "no_entries"
)

// Section is the digest content for one source. A section either carries
// entries or a Notice explaining why it has none.
type Section struct {
	Source  source.Source
	Status  Status
	Notice  string
	Entries []source.Entry
}

// Report is the full digest, one section per source in source order.
type Report struct {
	Sections    []Section
	GeneratedAt time.Time
}

// Formatter writes a formatted report to w.
type Formatter interface {
	Format(w io.Writer, report Report) error
}

// IntroWriter is implemented by formatters that greet the reader before any
// source is fetched.
type IntroWriter interface {
	WriteIntro(w io.Writer, at time.Time)
}
