package digest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ppiankov/secdigest/internal/fetch"
	"github.com/ppiankov/secdigest/internal/source"
)

const (
	noticeFetchFailed = "Failed to fetch content from the source: "
	noticeEmpty       = "Failed to fetch content from the source (Empty Response)."
	noticeRSSUnparsed = "Could not parse the RSS content."
	noticeJSONFailed  = "Failed to parse JSON content from the source."
	noticeNoVulns     = "No vulnerabilities found in the data."
	noticeUnknownKind = "Unsupported source type: "
)

// Builder fetches sources and turns them into report sections.
type Builder struct {
	fetcher   fetch.Fetcher
	rssLimit  int
	cisaLimit int
	workers   int
	logger    *slog.Logger
	progress  func(Section)
	now       func() time.Time
}

type Option func(*Builder)

// WithLimits sets how many entries are kept per RSS and CISA source.
func WithLimits(rss, cisa int) Option {
	return func(b *Builder) {
		if rss > 0 {
			b.rssLimit = rss
		}
		if cisa > 0 {
			b.cisaLimit = cisa
		}
	}
}

// WithWorkers sets how many sources are fetched at once.
func WithWorkers(n int) Option {
	return func(b *Builder) {
		if n > 0 {
			b.workers = n
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithProgress registers fn to be called as each section completes.
// With more than one worker fn may be called concurrently.
func WithProgress(fn func(Section)) Option {
	return func(b *Builder) { b.progress = fn }
}

// NewBuilder creates a Builder fetching one source at a time.
func NewBuilder(f fetch.Fetcher, opts ...Option) *Builder {
	b := &Builder{
		fetcher:   f,
		rssLimit:  source.DefaultRSSLimit,
		cisaLimit: source.DefaultCISALimit,
		workers:   1,
		logger:    slog.Default(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build produces one section per source, in the order given. Failures are
// recorded in the affected section and never stop the remaining sources.
func (b *Builder) Build(ctx context.Context, sources []source.Source) Report {
	sections := make([]Section, len(sources))

	var g errgroup.Group
	g.SetLimit(b.workers)
	for i, src := range sources {
		g.Go(func() error {
			sections[i] = b.section(ctx, src)
			if b.progress != nil {
				b.progress(sections[i])
			}
			return nil
		})
	}
	_ = g.Wait()

	return Report{Sections: sections, GeneratedAt: b.now()}
}

func (b *Builder) section(ctx context.Context, src source.Source) Section {
	start := time.Now()
	body, err := b.fetcher.Fetch(src.URL)
	if err != nil {
		b.logger.WarnContext(ctx, "fetch failed", "source", src.Name, "url", src.URL, "error", err)
		return notice(src, StatusFetchFailed, noticeFetchFailed+err.Error())
	}
	b.logger.DebugContext(ctx, "fetched source",
		"source", src.Name, "bytes", len(body), "elapsed", time.Since(start))

	if len(bytes.TrimSpace(body)) == 0 {
		return notice(src, StatusEmpty, noticeEmpty)
	}

	switch src.Kind {
	case source.KindRSS:
		return b.rssSection(ctx, src, body)
	case source.KindCISA:
		return b.cisaSection(ctx, src, body)
	default:
		return notice(src, StatusParseFailed, fmt.Sprintf("%s%q", noticeUnknownKind, src.Kind))
	}
}

func (b *Builder) rssSection(ctx context.Context, src source.Source, body []byte) Section {
	feed, err := source.ParseFeed(body)
	if err != nil {
		if !errors.Is(err, source.ErrNoEntries) {
			b.logger.WarnContext(ctx, "parse feed failed", "source", src.Name, "error", err)
		}
		return notice(src, StatusParseFailed, noticeRSSUnparsed)
	}
	return Section{Source: src, Status: StatusOK, Entries: source.ExtractRSS(feed, b.rssLimit)}
}

func (b *Builder) cisaSection(ctx context.Context, src source.Source, body []byte) Section {
	catalog, err := source.ParseCatalog(body)
	if err != nil {
		b.logger.WarnContext(ctx, "parse catalog failed", "source", src.Name, "error", err)
		return notice(src, StatusParseFailed, noticeJSONFailed)
	}
	if catalog.Len() == 0 {
		return notice(src, StatusNoEntries, noticeNoVulns)
	}
	return Section{Source: src, Status: StatusOK, Entries: source.ExtractCISA(catalog, b.cisaLimit)}
}

func notice(src source.Source, status Status, msg string) Section {
	return Section{Source: src, Status: status, Notice: msg}
}
