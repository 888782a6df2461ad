package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/ppiankov/secdigest/internal/config"
	"github.com/ppiankov/secdigest/internal/digest"
	"github.com/ppiankov/secdigest/internal/fetch"
	"github.com/ppiankov/secdigest/internal/source"
)

var (
	digestFormat  string
	noColor       bool
	digestWorkers int
	showProgress  bool
)

// loadSources returns the sources to fetch. Tests point it at local servers.
var loadSources = source.Defaults

var digestCmd = &cobra.Command{
	Use:   "digest",
	Short: "Fetch every source and print the digest",
	RunE:  digestAction,
}

func init() {
	addDigestFlags(digestCmd)
	rootCmd.AddCommand(digestCmd)
}

func addDigestFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&digestFormat, "format", "", "output format: terminal, markdown")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable ANSI colors")
	cmd.Flags().IntVar(&digestWorkers, "workers", 0, "number of sources fetched at once (default from config)")
	cmd.Flags().BoolVar(&showProgress, "progress", false, "show a fetch progress bar on stderr")
}

func digestAction(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(appFs, configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	workers := cfg.Fetch.Workers
	if digestWorkers != 0 {
		if digestWorkers < 1 || digestWorkers > config.MaxWorkers {
			return fmt.Errorf("--workers: must be between 1 and %d, got %d", config.MaxWorkers, digestWorkers)
		}
		workers = digestWorkers
	}

	format := cfg.Digest.Format
	if digestFormat != "" {
		format = digestFormat
	}

	out := cmd.OutOrStdout()
	var formatter digest.Formatter
	switch format {
	case "markdown", "md":
		formatter = digest.NewMarkdown()
	case "terminal":
		formatter = digest.NewTerminal(digest.TerminalOptions{
			Color:    useColor(cfg.Digest.Color, out),
			Banner:   cfg.Digest.ShowBanner(),
			Greeting: cfg.Digest.Greeting,
		})
		out = digest.NewTypewriter(out, cfg.Digest.TypingDelay.Duration)
	default:
		return fmt.Errorf("unknown format %q (want terminal or markdown)", format)
	}

	if intro, ok := formatter.(digest.IntroWriter); ok {
		intro.WriteIntro(out, time.Now())
	}

	sources := loadSources()
	logger := newLogger(cmd.ErrOrStderr())
	client := fetch.New(
		fetch.WithTimeout(cfg.Fetch.Timeout.Duration),
		fetch.WithUserAgent(cfg.Fetch.UserAgent),
	)

	opts := []digest.Option{
		digest.WithLimits(cfg.Digest.RSSLimit, cfg.Digest.CISALimit),
		digest.WithWorkers(workers),
		digest.WithLogger(logger),
	}

	var bar *pb.ProgressBar
	if showProgress {
		bar = pb.New(len(sources)).SetWriter(cmd.ErrOrStderr()).Start()
		opts = append(opts, digest.WithProgress(func(digest.Section) { bar.Increment() }))
	}

	report := digest.NewBuilder(client, opts...).Build(cmd.Context(), sources)
	if bar != nil {
		bar.Finish()
	}

	logger.Debug("digest built", "sections", len(report.Sections), "failed", countFailed(report))

	return formatter.Format(out, report)
}

func countFailed(report digest.Report) int {
	n := 0
	for _, s := range report.Sections {
		if s.Status != digest.StatusOK {
			n++
		}
	}
	return n
}

// useColor resolves the color mode. In auto mode colors are used only
// when writing straight to a terminal.
func useColor(mode string, w io.Writer) bool {
	if noColor {
		return false
	}
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
