// Package branding provides compile-time identity values for the CLI.
//
// The values live in branding.yaml next to this file and are baked into the
// binary with //go:embed, so a fork only edits the YAML.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName     string `yaml:"cli_name"`
	DisplayName string `yaml:"display_name"`
	Description string `yaml:"description"`
	SkillName   string `yaml:"skill_name"`
	Marker      string `yaml:"marker"`
	HomeDir     string `yaml:"home_dir"`
	EnvPrefix   string `yaml:"env_prefix"`
	GitHubRepo  string `yaml:"github_repo"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is missing or empty.
		defaults = brand{
			CLIName:     "aem-workflow-skill",
			DisplayName: "AEM Workflow Development",
			Description: "Install the AEM workflow development skill into AI coding assistants",
			SkillName:   "aem-workflow",
			Marker:      "AEM Workflow Development Skill",
			HomeDir:     ".aem-workflow-skill",
			EnvPrefix:   "AEM_SKILL",
			GitHubRepo:  "narendragandhi/aem-workflow-skill",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "aem-workflow-skill").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// SkillName returns the base name used for installed skill files (e.g., "aem-workflow").
func SkillName() string { load(); return defaults.SkillName }

// Marker returns the string every generated file carries. Uninstall only
// deletes legacy files containing it.
func Marker() string { load(); return defaults.Marker }

// HomeDir returns the dot-directory name under $HOME used for config.
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "AEM_SKILL").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// GitHubRepo returns the "owner/repo" string.
func GitHubRepo() string { load(); return defaults.GitHubRepo }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("HOME") → "AEM_SKILL_HOME".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
