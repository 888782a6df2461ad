package source

import (
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// NoDate is shown when an entry carries no usable publication date.
const NoDate = "No date provided"

const dateLayout = "2006-01-02"

// NormalizeDate converts a free-form publication date into YYYY-MM-DD.
// Blank or unparseable input yields NoDate. The date is taken in the
// offset the input was written in, not converted to local time.
func NormalizeDate(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return NoDate
	}
	t, err := parseDate(raw)
	if err != nil {
		return NoDate
	}
	return t.Format(dateLayout)
}

// parseDate wraps dateparse, which panics on some malformed inputs.
func parseDate(raw string) (t time.Time, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parse date %q: %v", raw, r)
		}
	}()
	return dateparse.ParseAny(raw)
}
