package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/narendragandhi/aem-workflow-skill/internal/installer"
	"github.com/narendragandhi/aem-workflow-skill/internal/integrations"
	"github.com/narendragandhi/aem-workflow-skill/internal/storage"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	statusJSON bool
	printer    = message.NewPrinter(language.English)
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show where the skill is installed",
	Long: `Report, for each platform, whether the skill file exists, whether it was
generated by this tool and by which version.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().StringSliceVarP(&opts.platforms, "platform", "p", nil, "Platforms to inspect (default: all)")
	statusCmd.Flags().BoolVarP(&opts.global, "global", "g", false, "Inspect the home directory instead of the project")
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(statusCmd)
}

// statusEntry is the JSON shape of one platform's status.
type statusEntry struct {
	Platform  string `json:"platform"`
	Path      string `json:"path"`
	Scope     string `json:"scope"`
	Installed bool   `json:"installed"`
	Owned     bool   `json:"owned"`
	Version   string `json:"version,omitempty"`
	Outdated  bool   `json:"outdated"`
	Error     string `json:"error,omitempty"`
}

func runStatus(cmd *cobra.Command, args []string) error {
	sel := opts.platforms
	if len(sel) == 0 {
		sel = []string{integrations.All}
	}
	platforms, err := integrations.ResolvePlatforms(sel)
	if err != nil {
		return err
	}

	workDir, err := projectDir()
	if err != nil {
		return err
	}

	store := storage.OS()
	inst := installer.New(store, installer.WithLogger(newLogger()), installer.WithVersion(buildVersion))
	statuses := inst.Status(platforms, scope(), workDir)

	if statusJSON {
		return printStatusJSON(cmd, statuses)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "PLATFORM\tSTATUS\tVERSION\tPATH")
	for _, s := range statuses {
		v := s.Version
		if v == "" {
			v = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", s.Platform, statusLabel(s), v, s.Path)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	for _, p := range platforms {
		if p != integrations.Cursor {
			continue
		}
		n, err := integrations.CountRuleMatches(afero.NewIOFS(afero.NewBasePathFs(store.Fs(), workDir)))
		if err != nil {
			return fmt.Errorf("scanning project for Cursor rule scope: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout())
		fmt.Fprintln(cmd.OutOrStdout(), printer.Sprintf("Cursor rule applies to %d files in this project.", n))
	}
	return nil
}

func statusLabel(s installer.Status) string {
	switch {
	case s.Err != nil:
		return "error: " + s.Err.Error()
	case !s.Installed:
		return "not installed"
	case s.Outdated:
		return "outdated"
	case s.Owned || s.Platform == integrations.Claude:
		return "installed"
	default:
		return "foreign"
	}
}

func printStatusJSON(cmd *cobra.Command, statuses []installer.Status) error {
	entries := make([]statusEntry, 0, len(statuses))
	for _, s := range statuses {
		e := statusEntry{
			Platform:  string(s.Platform),
			Path:      s.Path,
			Scope:     string(s.Scope),
			Installed: s.Installed,
			Owned:     s.Owned,
			Version:   s.Version,
			Outdated:  s.Outdated,
		}
		if s.Err != nil {
			e.Error = s.Err.Error()
		}
		entries = append(entries, e)
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
