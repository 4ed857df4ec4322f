package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/narendragandhi/aem-workflow-skill/internal/installer"
	"github.com/narendragandhi/aem-workflow-skill/internal/integrations"
	"github.com/narendragandhi/aem-workflow-skill/internal/storage"
	"github.com/spf13/cobra"
)

var (
	previewRaw   bool
	previewWidth int
)

var previewCmd = &cobra.Command{
	Use:   "preview <platform>",
	Short: "Print the file that would be installed for a platform",
	Long: `Render the skill document as it would be written for one platform.
Markdown is rendered for the terminal unless --raw is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().BoolVar(&previewRaw, "raw", false, "Print the file content without terminal rendering")
	previewCmd.Flags().IntVar(&previewWidth, "width", 100, "Word wrap width for rendered output")
	previewCmd.Flags().StringVar(&opts.source, "source", "", "Directory containing skills/aem-workflow/SKILL.md or docs/SKILL.md")
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	p, ok := integrations.ParsePlatform(strings.ToLower(strings.TrimSpace(args[0])))
	if !ok {
		return &integrations.UnknownPlatformError{Names: []string{args[0]}}
	}

	inst := installer.New(storage.OS(), installer.WithLogger(newLogger()), installer.WithVersion(buildVersion))
	src, err := inst.LocateSource(sourceRoots())
	if err != nil {
		return err
	}

	content, err := integrations.Transform(p, src.Content, inst.Version())
	if err != nil {
		return err
	}

	if previewRaw {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), content)
		return err
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), renderMarkdown(content, previewWidth))
	return err
}

// renderMarkdown renders md for the terminal with glamour. If rendering
// fails, the raw input is returned.
func renderMarkdown(md string, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}

	rendered, err := r.Render(md)
	if err != nil {
		return md
	}
	return rendered
}
