package integrations

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/narendragandhi/aem-workflow-skill/internal/branding"
)

// Platform identifies a supported AI assistant.
type Platform string

const (
	Claude   Platform = "claude"
	Copilot  Platform = "copilot"
	Gemini   Platform = "gemini"
	Cursor   Platform = "cursor"
	Windsurf Platform = "windsurf"
)

// All is the selector that expands to every registered platform.
const All = "all"

// RootDir is the Subdir value for files placed directly in the base directory.
const RootDir = "."

// Scope selects the base directory files are installed under.
type Scope string

const (
	ScopeProject Scope = "project"
	ScopeGlobal  Scope = "global"
)

// Descriptor holds the install policy for one platform.
type Descriptor struct {
	Platform    Platform
	DisplayName string
	// Subdir is relative to the base directory; RootDir adds no segment.
	Subdir   string
	Filename string
	// LegacyFilename is an older project-root file name cleaned up on uninstall.
	LegacyFilename string
	// GlobalDir is relative to the home directory. Empty means the platform
	// has no global scope.
	GlobalDir   string
	Transformer Transformer
}

// SupportsGlobal reports whether the platform can be installed globally.
func (d Descriptor) SupportsGlobal() bool {
	return d.GlobalDir != ""
}

// Target is a resolved installation location.
type Target struct {
	Base     string
	Subdir   string
	Filename string
	Scope    Scope
}

// Dir returns the directory that holds the installed file.
func (t Target) Dir() string {
	if t.Subdir == "" || t.Subdir == RootDir {
		return t.Base
	}
	return filepath.Join(t.Base, filepath.FromSlash(t.Subdir))
}

// Path returns the full path of the installed file.
func (t Target) Path() string {
	return filepath.Join(t.Dir(), t.Filename)
}

// Target computes where the platform's file goes for the given scope.
// A global request for a platform without a global directory falls back to
// the project directory; downgraded reports when that happened.
func (d Descriptor) Target(scope Scope, workDir, homeDir string) (t Target, downgraded bool) {
	t = Target{
		Base:     workDir,
		Subdir:   d.Subdir,
		Filename: d.Filename,
		Scope:    ScopeProject,
	}

	if scope != ScopeGlobal {
		return t, false
	}
	if !d.SupportsGlobal() {
		return t, true
	}

	t.Base = homeDir
	if d.GlobalDir != RootDir {
		t.Base = filepath.Join(homeDir, filepath.FromSlash(d.GlobalDir))
	}
	t.Scope = ScopeGlobal
	return t, false
}

// LegacyPath returns the project-root path of the platform's legacy file,
// or "" when it has none.
func (d Descriptor) LegacyPath(workDir string) string {
	if d.LegacyFilename == "" {
		return ""
	}
	return filepath.Join(workDir, d.LegacyFilename)
}

// AllPlatforms returns every registered platform in display order.
func AllPlatforms() []Platform {
	return []Platform{Claude, Copilot, Gemini, Cursor, Windsurf}
}

// registry maps each platform to its install policy.
var registry = map[Platform]Descriptor{
	Claude: {
		Platform:    Claude,
		DisplayName: "Claude Code",
		Subdir:      ".claude/skills",
		Filename:    branding.SkillName() + ".md",
		GlobalDir:   RootDir,
		Transformer: TransformFunc(TransformClaude),
	},
	Copilot: {
		Platform:    Copilot,
		DisplayName: "GitHub Copilot",
		Subdir:      ".github",
		Filename:    "copilot-instructions.md",
		Transformer: TransformFunc(TransformCopilot),
	},
	Gemini: {
		Platform:    Gemini,
		DisplayName: "Gemini CLI",
		Subdir:      RootDir,
		Filename:    "GEMINI.md",
		GlobalDir:   ".gemini",
		Transformer: TransformFunc(TransformGemini),
	},
	Cursor: {
		Platform:       Cursor,
		DisplayName:    "Cursor",
		Subdir:         ".cursor/rules",
		Filename:       branding.SkillName() + ".mdc",
		LegacyFilename: ".cursorrules",
		Transformer:    TransformFunc(TransformCursor),
	},
	Windsurf: {
		Platform:       Windsurf,
		DisplayName:    "Windsurf",
		Subdir:         ".windsurf/rules",
		Filename:       branding.SkillName() + ".md",
		LegacyFilename: ".windsurfrules",
		Transformer:    TransformFunc(TransformWindsurf),
	},
}

// Lookup returns the descriptor for p.
func Lookup(p Platform) (Descriptor, bool) {
	d, ok := registry[p]
	return d, ok
}

// ParsePlatform converts a string to a Platform, returning false if invalid.
func ParsePlatform(s string) (Platform, bool) {
	switch s {
	case "claude":
		return Claude, true
	case "copilot":
		return Copilot, true
	case "gemini":
		return Gemini, true
	case "cursor":
		return Cursor, true
	case "windsurf":
		return Windsurf, true
	default:
		return "", false
	}
}

// UnknownPlatformError lists every selector that did not name a platform.
type UnknownPlatformError struct {
	Names []string
}

func (e *UnknownPlatformError) Error() string {
	available := make([]string, 0, len(registry)+1)
	for _, p := range AllPlatforms() {
		available = append(available, string(p))
	}
	available = append(available, All)

	return fmt.Sprintf("unknown platform %s (available: %s)",
		strings.Join(quoteAll(e.Names), ", "), strings.Join(available, ", "))
}

// ResolvePlatforms expands selectors into platforms. Each selector may be a
// platform id, "all", or a comma separated list of those. Every selector is
// validated before anything is returned, so one typo rejects the whole
// request. Duplicates are dropped, first occurrence wins.
func ResolvePlatforms(selectors []string) ([]Platform, error) {
	var (
		platforms []Platform
		unknown   []string
		seen      = make(map[Platform]bool)
	)

	add := func(p Platform) {
		if !seen[p] {
			seen[p] = true
			platforms = append(platforms, p)
		}
	}

	for _, sel := range selectors {
		for _, name := range strings.Split(sel, ",") {
			name = strings.ToLower(strings.TrimSpace(name))
			if name == "" {
				continue
			}
			if name == All {
				for _, p := range AllPlatforms() {
					add(p)
				}
				continue
			}
			p, ok := ParsePlatform(name)
			if !ok {
				unknown = append(unknown, name)
				continue
			}
			add(p)
		}
	}

	if len(unknown) > 0 {
		return nil, &UnknownPlatformError{Names: unknown}
	}
	if len(platforms) == 0 {
		return nil, fmt.Errorf("no platform selected")
	}
	return platforms, nil
}

func quoteAll(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = fmt.Sprintf("%q", n)
	}
	return out
}
