package source

import "slices"

// Kind selects how a source's response body is parsed.
type Kind string

const (
	KindRSS  Kind = "rss"       // RSS, Atom or JSON feed
	KindCISA Kind = "json_cisa" // CISA Known Exploited Vulnerabilities catalog
)

// Source describes a single place the digest pulls from.
type Source struct {
	Name string
	URL  string
	Kind Kind
}

var defaults = []Source{
	{Name: "Krebs on Security", URL: "https://krebsonsecurity.com/feed/", Kind: KindRSS},
	{Name: "The Hacker News", URL: "https://feeds.feedburner.com/TheHackersNews", Kind: KindRSS},
	{Name: "Greynoise Intelligence", URL: "https://www.greynoise.io/blog/rss.xml", Kind: KindRSS},
	{Name: "Google Threat Intelligence", URL: "https://feeds.feedburner.com/threatintelligence/pvexyqv7v0v", Kind: KindRSS},
	{Name: "CISA KEV Catalog", URL: "https://www.cisa.gov/sites/default/files/feeds/known_exploited_vulnerabilities.json", Kind: KindCISA},
}

// Defaults returns the built-in source list in report order.
// The returned slice is a copy and may be modified by the caller.
func Defaults() []Source {
	return slices.Clone(defaults)
}

// Field is one labelled value of an extracted entry.
type Field struct {
	Label    string
	Value    string
	Emphasis bool // rendered bold by formatters that support it
}

// Entry is a single item extracted from a source. When Placeholder is set
// the item could not be read and Fields is empty.
type Entry struct {
	Fields      []Field
	Placeholder string
}
