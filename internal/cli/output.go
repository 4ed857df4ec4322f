package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/narendragandhi/aem-workflow-skill/internal/branding"
	"github.com/narendragandhi/aem-workflow-skill/internal/installer"
	"github.com/narendragandhi/aem-workflow-skill/internal/integrations"
)

var (
	bannerStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("39")).
			Padding(0, 2)
	titleStyle   = lipgloss.NewStyle().Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	noticeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

const (
	markOK     = "✓"
	markFail   = "✗"
	markNotice = "!"
	markDry    = "~"
)

func printBanner(w io.Writer) {
	body := titleStyle.Render(branding.DisplayName()+" - AI Skill") + "\n" +
		dimStyle.Render("Expert guidance for Adobe Experience Manager workflows")
	fmt.Fprintln(w, bannerStyle.Render(body))
	fmt.Fprintln(w)
}

func displayName(p integrations.Platform) string {
	if d, ok := integrations.Lookup(p); ok {
		return d.DisplayName
	}
	return string(p)
}

func printNotice(w io.Writer, o installer.Outcome) {
	if o.Notice != "" {
		fmt.Fprintf(w, "  %s %s\n", noticeStyle.Render(markNotice), o.Notice)
	}
}

func printInstallReport(w io.Writer, report *installer.Report) {
	for _, o := range report.Outcomes {
		printNotice(w, o)
		switch {
		case o.Err != nil:
			fmt.Fprintf(w, "  %s %s: %s (%v)\n", failureStyle.Render(markFail), displayName(o.Platform), o.Path, o.Err)
		case o.DryRun:
			fmt.Fprintf(w, "  %s %s: would write %s\n", dimStyle.Render(markDry), displayName(o.Platform), o.Path)
		default:
			fmt.Fprintf(w, "  %s %s: %s\n", successStyle.Render(markOK), displayName(o.Platform), o.Path)
		}
	}

	fmt.Fprintln(w)
	if ok := report.Succeeded(); len(ok) > 0 && !ok[0].DryRun {
		fmt.Fprintf(w, "%s Installed %d of %d platforms.\n", successStyle.Render(markOK), len(ok), len(report.Outcomes))
		fmt.Fprintf(w, "%s\n", dimStyle.Render("Documentation: "+docsURL()))
	}
	if n := len(report.Failed()); n > 0 {
		fmt.Fprintf(w, "%s %d platforms failed.\n", failureStyle.Render(markFail), n)
	}
}

func docsURL() string {
	return "https://github.com/" + branding.GitHubRepo()
}

func printUninstallReport(w io.Writer, report *installer.Report) {
	removed, planned := 0, 0
	for _, o := range report.Outcomes {
		printNotice(w, o)
		switch {
		case o.Err != nil:
			fmt.Fprintf(w, "  %s %s: %s (%v)\n", failureStyle.Render(markFail), displayName(o.Platform), o.Path, o.Err)
		case o.Action == installer.ActionRemoved && o.DryRun:
			fmt.Fprintf(w, "  %s %s: would remove %s\n", dimStyle.Render(markDry), displayName(o.Platform), o.Path)
			planned++
		case o.Action == installer.ActionRemoved:
			fmt.Fprintf(w, "  %s %s: removed %s\n", successStyle.Render(markOK), displayName(o.Platform), o.Path)
			removed++
		case o.Action == installer.ActionMissing && !o.Legacy:
			fmt.Fprintf(w, "  %s %s: not installed at %s\n", dimStyle.Render("-"), displayName(o.Platform), o.Path)
		}
	}

	fmt.Fprintln(w)
	if removed == 0 && planned == 0 && len(report.Failed()) == 0 {
		fmt.Fprintln(w, "Nothing to remove.")
		return
	}
	if removed > 0 {
		fmt.Fprintf(w, "%s Removed %d files.\n", successStyle.Render(markOK), removed)
	}
}

func printPlatforms(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "PLATFORM\tNAME\tPROJECT PATH\tGLOBAL PATH")
	for _, p := range integrations.AllPlatforms() {
		d, _ := integrations.Lookup(p)
		project, _ := d.Target(integrations.ScopeProject, "", "")

		global := "-"
		if d.SupportsGlobal() {
			t, _ := d.Target(integrations.ScopeGlobal, "", "~")
			global = filepath.ToSlash(t.Path())
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p, d.DisplayName, filepath.ToSlash(project.Path()), global)
	}
	fmt.Fprintf(tw, "%s\t%s\t\t\n", integrations.All, "every platform above")
	return tw.Flush()
}
