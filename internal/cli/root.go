package cli

import (
	"fmt"

	"github.com/narendragandhi/aem-workflow-skill/internal/branding"
	"github.com/narendragandhi/aem-workflow-skill/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

// rootOptions holds the flags of the root command.
type rootOptions struct {
	platforms []string
	global    bool
	uninstall bool
	list      bool
	verbose   bool
	dryRun    bool
	dir       string
	source    string
}

var opts rootOptions

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` skill installer.

Installs the AEM workflow development guide into the instruction files of
AI coding assistants (Claude Code, GitHub Copilot, Gemini CLI, Cursor and
Windsurf), adapting its header to each assistant's conventions.`,
	Example: `  aem-workflow-skill                      # Install for Claude Code in this project
  aem-workflow-skill -p all               # Install for every platform
  aem-workflow-skill -p cursor,windsurf   # Install for selected platforms
  aem-workflow-skill --global             # Install to the home directory
  aem-workflow-skill -p all --uninstall   # Remove every installed file`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
	},
	RunE: runRoot,
}

func init() {
	f := rootCmd.Flags()
	f.StringSliceVarP(&opts.platforms, "platform", "p", nil, "Target platform: claude, copilot, gemini, cursor, windsurf or all (repeatable, comma separated)")
	f.BoolVarP(&opts.global, "global", "g", false, "Install to the home directory instead of the project")
	f.BoolVarP(&opts.uninstall, "uninstall", "u", false, "Remove the installed skill")
	f.BoolVarP(&opts.list, "list", "l", false, "List supported platforms and exit")
	f.BoolVar(&opts.dryRun, "dry-run", false, "Show what would change without writing anything")
	f.StringVar(&opts.source, "source", "", "Directory containing skills/aem-workflow/SKILL.md or docs/SKILL.md")

	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "Log diagnostic details to stderr")
	pf.StringVarP(&opts.dir, "dir", "C", "", "Project directory (default: current directory)")
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), failureStyle.Render("Error: "+err.Error()))
	}
	return err
}

// newLogger returns a development logger when --verbose is set.
func newLogger() *zap.Logger {
	if !opts.verbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
