// Package probe performs a single GET against an arbitrary endpoint and
// prints the raw response, for checking a candidate source by hand.
package probe

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ppiankov/secdigest/internal/fetch"
)

// Prompt is shown when the URL is read interactively.
const Prompt = "Provide the link of the API Endpoint: "

// ReadURL reads one line from r and returns it trimmed.
func ReadURL(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read url: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// Run fetches target once and writes the outcome to w. Request failures
// are reported in the output, not returned; the error result is for
// invalid input only.
func Run(w io.Writer, f fetch.Fetcher, target string) error {
	if target == "" {
		return errors.New("probe: url is required")
	}

	fmt.Fprintf(w, "--- Scouting API endpoint: %s ---\n", target)

	body, err := f.Fetch(target)
	if err == nil {
		fmt.Fprintln(w, "Success! Server responded with status 200 (OK).")
		fmt.Fprintln(w, "\n--- RAW RESPONSE TEXT ---")
		fmt.Fprintln(w, string(body))
		return nil
	}

	var fe *fetch.Error
	if errors.As(err, &fe) && fe.Kind == fetch.KindStatus {
		fmt.Fprintf(w, "Error: Server responded with status code %d\n", fe.StatusCode)
		return nil
	}

	fmt.Fprintln(w, "\nError: Could not connect to the API server.")
	fmt.Fprintln(w, "Please make sure you've given the correct URL and the API is online.")
	fmt.Fprintf(w, "Details: %v\n", err)
	return nil
}
