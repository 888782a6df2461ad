package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/ppiankov/secdigest/internal/config"
	"github.com/ppiankov/secdigest/internal/digest"
	"github.com/ppiankov/secdigest/internal/fetch"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the config file and that every source can be fetched and parsed",
	RunE:  doctorAction,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func doctorAction(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	ok := true

	cfg, err := config.Load(appFs, configPath)
	if err != nil {
		printCheck(out, false, "config %s: %v", configPath, err)
		return errors.New("some checks failed")
	}
	if exists, _ := afero.Exists(appFs, configPath); exists {
		printCheck(out, true, "config %s", configPath)
	} else {
		printInfo(out, "no config at %s, using defaults", configPath)
	}

	client := fetch.New(
		fetch.WithTimeout(cfg.Fetch.Timeout.Duration),
		fetch.WithUserAgent(cfg.Fetch.UserAgent),
	)
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	report := digest.NewBuilder(client,
		digest.WithLimits(cfg.Digest.RSSLimit, cfg.Digest.CISALimit),
		digest.WithWorkers(cfg.Fetch.Workers),
		digest.WithLogger(quiet),
	).Build(cmd.Context(), loadSources())

	for _, s := range report.Sections {
		if s.Status != digest.StatusOK {
			printCheck(out, false, "%s: %s", s.Source.Name, s.Notice)
			ok = false
			continue
		}
		printCheck(out, true, "%s (%d entries)", s.Source.Name, len(s.Entries))
	}

	if !ok {
		return errors.New("some checks failed")
	}
	fmt.Fprintln(out, "\nAll checks passed.")
	return nil
}

func printCheck(w io.Writer, pass bool, format string, args ...any) {
	mark := "FAIL"
	if pass {
		mark = " OK "
	}
	fmt.Fprintf(w, "[%s] %s\n", mark, fmt.Sprintf(format, args...))
}

func printInfo(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "[INFO] %s\n", fmt.Sprintf(format, args...))
}
