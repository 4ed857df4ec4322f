package installer

import (
	"github.com/narendragandhi/aem-workflow-skill/internal/integrations"
	"github.com/narendragandhi/aem-workflow-skill/internal/version"
)

// Status describes what is currently installed for one platform.
type Status struct {
	Platform  integrations.Platform
	Path      string
	Scope     integrations.Scope
	Installed bool
	// Owned is false for files without the ownership marker, which includes
	// every Claude install since that content is copied verbatim.
	Owned bool
	// Version is the installer version stamped into the file, if any.
	Version string
	// Outdated is set when Version is older than the running installer.
	Outdated bool
	Notice   string
	Err      error
}

// Status inspects each platform's destination without modifying anything.
func (i *Installer) Status(platforms []integrations.Platform, scope integrations.Scope, workDir string) []Status {
	statuses := make([]Status, 0, len(platforms))
	for _, p := range platforms {
		statuses = append(statuses, i.statusOne(p, scope, workDir))
	}
	return statuses
}

func (i *Installer) statusOne(p integrations.Platform, scope integrations.Scope, workDir string) Status {
	st := Status{Platform: p, Scope: scope}

	_, t, notice, err := i.target(p, scope, workDir)
	if err != nil {
		st.Err = err
		return st
	}
	st.Path, st.Scope, st.Notice = t.Path(), t.Scope, notice

	ok, err := i.store.Exists(st.Path)
	if err != nil {
		st.Err = err
		return st
	}
	if !ok {
		return st
	}
	st.Installed = true

	data, err := i.store.ReadFile(st.Path)
	if err != nil {
		st.Err = err
		return st
	}
	content := string(data)
	st.Owned = integrations.IsOwned(content)

	if v, ok := integrations.VersionStamp(content); ok {
		st.Version = v
		if version.IsRelease(v) && version.IsRelease(i.version) {
			st.Outdated, _ = version.IsOutdated(v, i.version)
		}
	}
	return st
}
