package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/narendragandhi/aem-workflow-skill/internal/branding"
	"github.com/narendragandhi/aem-workflow-skill/internal/config"
	"github.com/narendragandhi/aem-workflow-skill/internal/installer"
	"github.com/narendragandhi/aem-workflow-skill/internal/integrations"
	"github.com/narendragandhi/aem-workflow-skill/internal/storage"
	"github.com/spf13/cobra"
)

func runRoot(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if opts.list {
		return printPlatforms(out)
	}

	// Validate every selector before touching the filesystem.
	platforms, err := integrations.ResolvePlatforms(selectors())
	if err != nil {
		return err
	}

	workDir, err := projectDir()
	if err != nil {
		return err
	}

	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	inst := installer.New(storage.OS(),
		installer.WithLogger(logger),
		installer.WithVersion(buildVersion),
		installer.WithDryRun(opts.dryRun),
	)

	printBanner(out)

	if opts.uninstall {
		report := inst.Uninstall(platforms, scope(), workDir)
		printUninstallReport(out, report)
		return batchError(report)
	}

	src, err := inst.LocateSource(sourceRoots())
	if err != nil {
		if errors.Is(err, installer.ErrSourceNotFound) {
			return fmt.Errorf("%w (set --source, %s or `%s config set %s <dir>`)",
				err, branding.EnvVar("HOME"), branding.CLIName(), config.KeySourceDir)
		}
		return err
	}

	report := inst.Install(platforms, scope(), workDir, src)
	printInstallReport(out, report)
	return batchError(report)
}

// selectors returns the --platform values, or the configured default.
func selectors() []string {
	if len(opts.platforms) > 0 {
		return opts.platforms
	}
	if p := config.Get(config.KeyDefaultPlatform); p != "" {
		return []string{p}
	}
	return []string{config.DefaultPlatform}
}

func scope() integrations.Scope {
	if opts.global {
		return integrations.ScopeGlobal
	}
	return integrations.ScopeProject
}

// projectDir returns the --dir value or the current working directory.
func projectDir() (string, error) {
	if opts.dir != "" {
		return filepath.Abs(opts.dir)
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolving working directory: %w", err)
	}
	return wd, nil
}

// sourceRoots lists the directories searched for the skill document.
//
// Resolution order:
//  1. --source flag
//  2. source_dir from config (or AEM_SKILL_SOURCE_DIR)
//  3. AEM_SKILL_HOME
//  4. the directory above the executable (bin/../), as in release archives
//  5. the executable's own directory
func sourceRoots() []string {
	roots := []string{
		opts.source,
		config.Get(config.KeySourceDir),
		os.Getenv(branding.EnvVar("HOME")),
	}

	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		roots = append(roots, filepath.Join(exeDir, ".."), exeDir)
	}
	return roots
}

// batchError summarizes per-platform failures so the process exits non-zero.
func batchError(report *installer.Report) error {
	failed := report.Failed()
	if len(failed) == 0 {
		return nil
	}
	return fmt.Errorf("%d of %d platform operations failed: %w", len(failed), len(report.Outcomes), report.Err())
}
