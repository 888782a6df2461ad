package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ppiankov/secdigest/internal/config"
	"github.com/ppiankov/secdigest/internal/fetch"
	"github.com/ppiankov/secdigest/internal/probe"
)

var probeCmd = &cobra.Command{
	Use:   "probe [url]",
	Short: "Fetch one URL and print the raw response",
	Long:  "probe issues a single GET against the given URL, or one read from stdin, and prints the raw response body or the error.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  probeAction,
}

func init() {
	rootCmd.AddCommand(probeCmd)
}

func probeAction(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(appFs, configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	var target string
	if len(args) == 1 {
		target = strings.TrimSpace(args[0])
	} else {
		fmt.Fprint(cmd.OutOrStdout(), probe.Prompt)
		target, err = probe.ReadURL(cmd.InOrStdin())
		if err != nil {
			return err
		}
	}

	client := fetch.New(
		fetch.WithTimeout(cfg.Fetch.Timeout.Duration),
		fetch.WithUserAgent(cfg.Fetch.UserAgent),
	)
	return probe.Run(cmd.OutOrStdout(), client, target)
}
