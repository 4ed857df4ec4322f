package installer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/narendragandhi/aem-workflow-skill/internal/branding"
	"github.com/narendragandhi/aem-workflow-skill/internal/integrations"
	"github.com/narendragandhi/aem-workflow-skill/internal/storage"
	"go.uber.org/zap"
)

// Action describes what happened to one file.
type Action string

const (
	ActionInstalled Action = "installed"
	ActionRemoved   Action = "removed"
	// ActionMissing means there was nothing to remove.
	ActionMissing Action = "missing"
	// ActionKept means a legacy file was left because the tool did not write it.
	ActionKept   Action = "kept"
	ActionFailed Action = "failed"
)

// Outcome is the result for one platform file.
type Outcome struct {
	Platform integrations.Platform
	Path     string
	Scope    integrations.Scope
	Action   Action
	// Legacy marks outcomes for a platform's legacy project-root file.
	Legacy bool
	// DryRun marks outcomes that were computed but not applied.
	DryRun bool
	// Notice carries a policy message, such as a global to project downgrade.
	Notice string
	Err    error
}

// Report collects the outcomes of a batch in request order.
type Report struct {
	Outcomes []Outcome
}

func (r *Report) add(o Outcome) {
	r.Outcomes = append(r.Outcomes, o)
}

// Failed returns the outcomes that ended in an error.
func (r *Report) Failed() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if o.Err != nil {
			out = append(out, o)
		}
	}
	return out
}

// Succeeded returns the outcomes that did not fail.
func (r *Report) Succeeded() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if o.Err == nil {
			out = append(out, o)
		}
	}
	return out
}

// Err joins every per-platform failure, or returns nil.
func (r *Report) Err() error {
	var errs []error
	for _, o := range r.Failed() {
		errs = append(errs, fmt.Errorf("%s: %w", o.Platform, o.Err))
	}
	return errors.Join(errs...)
}

// Installer writes and removes platform files through a storage.Store.
type Installer struct {
	store   storage.Store
	logger  *zap.Logger
	version string
	homeDir string
	dryRun  bool

	lookup func(integrations.Platform) (integrations.Descriptor, bool)
}

// Option configures an Installer.
type Option func(*Installer)

// WithLogger sets the diagnostic logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(i *Installer) { i.logger = l }
}

// WithVersion sets the version stamped into generated files.
func WithVersion(v string) Option {
	return func(i *Installer) { i.version = v }
}

// WithHomeDir overrides the base directory for global installs.
func WithHomeDir(dir string) Option {
	return func(i *Installer) { i.homeDir = dir }
}

// WithDryRun makes Install and Uninstall report what they would do without
// touching the store.
func WithDryRun(dryRun bool) Option {
	return func(i *Installer) { i.dryRun = dryRun }
}

// New returns an Installer backed by store.
func New(store storage.Store, opts ...Option) *Installer {
	i := &Installer{
		store:   store,
		logger:  zap.NewNop(),
		version: "dev",
		lookup:  integrations.Lookup,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Version returns the version stamped into generated files.
func (i *Installer) Version() string {
	return i.version
}

func (i *Installer) home() (string, error) {
	if i.homeDir != "" {
		return i.homeDir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return home, nil
}

// target resolves the descriptor and destination for p. notice is set when
// a global request was downgraded to project scope.
func (i *Installer) target(p integrations.Platform, scope integrations.Scope, workDir string) (integrations.Descriptor, integrations.Target, string, error) {
	d, ok := i.lookup(p)
	if !ok {
		return d, integrations.Target{}, "", &integrations.UnknownPlatformError{Names: []string{string(p)}}
	}

	var home string
	if scope == integrations.ScopeGlobal && d.SupportsGlobal() {
		h, err := i.home()
		if err != nil {
			return d, integrations.Target{}, "", err
		}
		home = h
	}

	t, downgraded := d.Target(scope, workDir, home)
	var notice string
	if downgraded {
		notice = fmt.Sprintf("%s has no global location, using project scope", d.DisplayName)
		i.logger.Info("global scope downgraded",
			zap.String("platform", string(p)),
			zap.String("path", t.Path()))
	}
	return d, t, notice, nil
}

// Install writes the transformed source document for each platform, in
// order. Existing files are overwritten.
func (i *Installer) Install(platforms []integrations.Platform, scope integrations.Scope, workDir string, src Source) *Report {
	report := &Report{}
	for _, p := range platforms {
		report.add(i.installOne(p, scope, workDir, src))
	}
	return report
}

func (i *Installer) installOne(p integrations.Platform, scope integrations.Scope, workDir string, src Source) (out Outcome) {
	out = Outcome{Platform: p, Scope: scope, Action: ActionInstalled, DryRun: i.dryRun}

	defer func() {
		if r := recover(); r != nil {
			out.Action = ActionFailed
			out.Err = fmt.Errorf("transforming for %s: %v", p, r)
		}
		if out.Err != nil {
			i.logger.Warn("install failed",
				zap.String("platform", string(p)),
				zap.String("path", out.Path),
				zap.Error(out.Err))
		}
	}()

	d, t, notice, err := i.target(p, scope, workDir)
	if err != nil {
		out.Action, out.Err = ActionFailed, err
		return out
	}
	out.Path, out.Scope, out.Notice = t.Path(), t.Scope, notice

	content := d.Transformer.Transform(src.Content, i.version)

	i.logger.Debug("installing",
		zap.String("platform", string(p)),
		zap.String("scope", string(t.Scope)),
		zap.String("path", out.Path),
		zap.Int("bytes", len(content)),
		zap.Bool("dry_run", i.dryRun))

	if i.dryRun {
		return out
	}

	if err := i.store.MkdirAll(t.Dir()); err != nil {
		out.Action, out.Err = ActionFailed, err
		return out
	}
	if err := i.store.WriteFile(out.Path, []byte(content)); err != nil {
		out.Action, out.Err = ActionFailed, err
		return out
	}
	return out
}

// Uninstall removes each platform's file when present and cleans up legacy
// project-root files the tool created. Missing files are not errors.
func (i *Installer) Uninstall(platforms []integrations.Platform, scope integrations.Scope, workDir string) *Report {
	report := &Report{}
	for _, p := range platforms {
		d, t, notice, err := i.target(p, scope, workDir)
		if err != nil {
			report.add(Outcome{Platform: p, Scope: scope, Action: ActionFailed, Err: err})
			continue
		}

		out := i.remove(Outcome{Platform: p, Path: t.Path(), Scope: t.Scope, Notice: notice})
		report.add(out)

		if legacy := d.LegacyPath(workDir); legacy != "" {
			report.add(i.removeLegacy(p, legacy))
		}
	}
	return report
}

func (i *Installer) remove(out Outcome) Outcome {
	out.DryRun = i.dryRun

	ok, err := i.store.Exists(out.Path)
	if err != nil {
		out.Action, out.Err = ActionFailed, err
		return out
	}
	if !ok {
		out.Action = ActionMissing
		return out
	}

	i.logger.Debug("removing", zap.String("platform", string(out.Platform)), zap.String("path", out.Path))
	if !i.dryRun {
		if err := i.store.Remove(out.Path); err != nil {
			out.Action, out.Err = ActionFailed, err
			return out
		}
	}
	out.Action = ActionRemoved
	return out
}

// removeLegacy deletes a legacy file only when it carries the ownership marker.
func (i *Installer) removeLegacy(p integrations.Platform, path string) Outcome {
	out := Outcome{Platform: p, Path: path, Scope: integrations.ScopeProject, Legacy: true, DryRun: i.dryRun}

	ok, err := i.store.Exists(path)
	if err != nil {
		out.Action, out.Err = ActionFailed, err
		return out
	}
	if !ok {
		out.Action = ActionMissing
		return out
	}

	data, err := i.store.ReadFile(path)
	if err != nil {
		out.Action, out.Err = ActionFailed, err
		return out
	}
	if !integrations.IsOwned(string(data)) {
		out.Action = ActionKept
		out.Notice = fmt.Sprintf("%s was not created by %s, leaving it in place", filepath.Base(path), branding.CLIName())
		i.logger.Info("legacy file not owned", zap.String("path", path))
		return out
	}

	return i.remove(out)
}
