// Package cli defines the Cobra command tree for the aem-workflow-skill CLI.
// The root command installs or uninstalls the skill; subcommands report
// status, preview the generated files, and manage settings. Commands only
// handle flags and output and delegate the work to internal/installer.
package cli
