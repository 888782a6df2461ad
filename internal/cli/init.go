package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write an example config file",
	RunE:  initAction,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func initAction(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	if err := appFs.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	wrote, err := writeIfNotExists(appFs, configPath, []byte(exampleConfig))
	if err != nil {
		return err
	}
	if wrote {
		fmt.Fprintf(out, "Initialized %s.\n", configPath)
	} else {
		fmt.Fprintf(out, "Config %s already exists.\n", configPath)
	}
	return nil
}

// writeIfNotExists writes data to path if the file does not exist.
// Returns true if the file was created.
func writeIfNotExists(fsys afero.Fs, path string, data []byte) (bool, error) {
	if _, err := fsys.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat %s: %w", path, err)
	}
	if err := afero.WriteFile(fsys, path, data, 0o644); err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}
	return true, nil
}

const exampleConfig = `# secdigest configuration
# Sources are built in; run "secdigest sources" to list them.

fetch:
  timeout: 10s
  workers: 1
  # user_agent: "Mozilla/5.0 ..."

digest:
  rss_limit: 3
  cisa_limit: 10
  color: auto        # auto, always, never
  format: terminal   # terminal, markdown
  typing_delay: 0s   # e.g. 10ms for a typed-out effect
  banner: true
  greeting: ""
`
