package source

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/xerrors"
)

const (
	// DefaultCISALimit is the number of catalog records shown.
	DefaultCISALimit = 10

	notAvailable      = "N/A"
	cisaEntryUnparsed = "Could not parse this CISA vulnerability entry."
)

// Catalog is the CISA Known Exploited Vulnerabilities document. Only the
// record list is decoded; catalog metadata is ignored. Records are kept raw
// so that one malformed record does not discard the rest.
type Catalog struct {
	Vulnerabilities []json.RawMessage `json:"vulnerabilities"`
}

// Vulnerability holds the catalog record fields shown in the digest.
type Vulnerability struct {
	CveID             string `json:"cveID"`
	VulnerabilityName string `json:"vulnerabilityName"`
	DateAdded         string `json:"dateAdded"`
}

// ParseCatalog decodes a KEV catalog document.
func ParseCatalog(body []byte) (*Catalog, error) {
	var c Catalog
	if err := json.Unmarshal(body, &c); err != nil {
		return nil, xerrors.Errorf("failed to KEV catalog json unmarshal: %w", err)
	}
	return &c, nil
}

// Len returns the number of records in the catalog.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Vulnerabilities)
}

// ExtractCISA returns up to limit entries in catalog order.
func ExtractCISA(c *Catalog, limit int) []Entry {
	if c == nil || limit <= 0 {
		return nil
	}
	records := lo.Slice(c.Vulnerabilities, 0, limit)
	return lo.Map(records, func(raw json.RawMessage, _ int) Entry {
		return cisaEntry(raw)
	})
}

func cisaEntry(raw json.RawMessage) Entry {
	v, err := decodeVulnerability(raw)
	if err != nil {
		return Entry{Placeholder: cisaEntryUnparsed}
	}
	return Entry{Fields: []Field{
		{Label: "Date Added", Value: orNA(v.DateAdded)},
		{Label: "CVE ID", Value: orNA(v.CveID), Emphasis: true},
		{Label: "Name", Value: orNA(v.VulnerabilityName)},
	}}
}

func decodeVulnerability(raw json.RawMessage) (*Vulnerability, error) {
	if !bytes.HasPrefix(bytes.TrimSpace(raw), []byte("{")) {
		return nil, xerrors.New("vulnerability record is not an object")
	}
	var v Vulnerability
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, xerrors.Errorf("failed to decode vulnerability: %w", err)
	}
	return &v, nil
}

func orNA(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return notAvailable
	}
	return s
}
