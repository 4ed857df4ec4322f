package integrations

import (
	"fmt"
	"io/fs"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/narendragandhi/aem-workflow-skill/internal/branding"
	"github.com/narendragandhi/aem-workflow-skill/internal/frontmatter"
)

// Transformer adapts the skill document for one platform. Implementations
// must be pure: the same document and version always give the same output.
type Transformer interface {
	Transform(doc, version string) string
}

// TransformFunc adapts an ordinary function to the Transformer interface.
type TransformFunc func(doc, version string) string

// Transform calls f(doc, version).
func (f TransformFunc) Transform(doc, version string) string {
	return f(doc, version)
}

// CursorDescription is the description written into Cursor rule frontmatter.
const CursorDescription = "Expert guidance for Adobe Experience Manager (AEM) workflow development"

// CursorGlobs scopes the Cursor rule to files found in AEM projects.
var CursorGlobs = []string{
	"**/*.java",
	"**/workflow/**/*.xml",
	"**/workflow-models/**/*.xml",
	"**/.content.xml",
}

// attribution is the blockquote every generated header carries. It holds the
// ownership marker and the installer version.
func attribution(version string) string {
	return fmt.Sprintf("> Generated by the %s (%s version %s). Expert guidance for building Adobe Experience Manager workflows.",
		branding.Marker(), branding.CLIName(), version)
}

func title(suffix string) string {
	return "# " + branding.DisplayName() + " " + suffix
}

// withHeader strips frontmatter from doc and prepends header.
func withHeader(header, doc string) string {
	return strings.TrimSpace(header + "\n\n" + frontmatter.Strip(doc))
}

// TransformClaude returns doc unchanged; Claude reads skill frontmatter natively.
func TransformClaude(doc, _ string) string {
	return doc
}

// TransformCopilot produces .github/copilot-instructions.md content.
func TransformCopilot(doc, version string) string {
	header := title("Instructions") + "\n\n" + attribution(version)
	return withHeader(header, doc)
}

// TransformGemini produces GEMINI.md context content.
func TransformGemini(doc, version string) string {
	header := title("Context") + "\n\n" + attribution(version) + "\n\n" +
		"Use this context when answering questions about AEM workflow models, process steps, launchers and participant choosers."
	return withHeader(header, doc)
}

// TransformCursor produces a .mdc rule with its own frontmatter block.
func TransformCursor(doc, version string) string {
	globs := make([]string, len(CursorGlobs))
	for i, g := range CursorGlobs {
		globs[i] = fmt.Sprintf("%q", g)
	}

	header := strings.Join([]string{
		frontmatter.Delimiter,
		"description: " + CursorDescription,
		"globs: [" + strings.Join(globs, ", ") + "]",
		"alwaysApply: false",
		frontmatter.Delimiter,
		"",
		title("Rules"),
		"",
		attribution(version),
	}, "\n")
	return withHeader(header, doc)
}

// TransformWindsurf produces a Windsurf workspace rule.
func TransformWindsurf(doc, version string) string {
	header := title("Rules") + "\n\n" + attribution(version) + "\n\n" +
		"These Cascade rules apply when working on AEM workflow code in this workspace."
	return withHeader(header, doc)
}

// Transform applies the platform's transformer to doc.
func Transform(p Platform, doc, version string) (string, error) {
	d, ok := Lookup(p)
	if !ok {
		return "", &UnknownPlatformError{Names: []string{string(p)}}
	}
	return d.Transformer.Transform(doc, version), nil
}

// IsOwned reports whether content was generated by this tool.
func IsOwned(content string) bool {
	return strings.Contains(content, branding.Marker())
}

var stampPattern = regexp.MustCompile(`\(` + regexp.QuoteMeta(branding.CLIName()) + ` version ([^)\s]+)\)`)

// VersionStamp extracts the installer version recorded in generated content.
func VersionStamp(content string) (string, bool) {
	m := stampPattern.FindStringSubmatch(content)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// skippedDirs are build output and dependency directories that never hold
// project sources.
var skippedDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"target":       true,
	"dist":         true,
	"build":        true,
	"vendor":       true,
}

// CountRuleMatches returns how many files in fsys fall under CursorGlobs.
// Directories in skippedDirs are not descended into.
func CountRuleMatches(fsys fs.FS) (int, error) {
	for _, pattern := range CursorGlobs {
		if !doublestar.ValidatePattern(pattern) {
			return 0, fmt.Errorf("matching %s: %w", pattern, doublestar.ErrBadPattern)
		}
	}

	count := 0
	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != "." && skippedDirs[d.Name()] {
				return fs.SkipDir
			}
			return nil
		}
		for _, pattern := range CursorGlobs {
			if ok, _ := doublestar.Match(pattern, path); ok {
				count++
				break
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("scanning project: %w", err)
	}
	return count, nil
}
