package installer

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/narendragandhi/aem-workflow-skill/internal/integrations"
	"github.com/narendragandhi/aem-workflow-skill/internal/storage"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const skillDoc = `---
name: aem-workflow
description: Expert guidance for AEM workflows
---
# AEM Workflow Development

Use WorkflowProcess for custom steps.`

var (
	workDir = filepath.Join(string(filepath.Separator), "project")
	homeDir = filepath.Join(string(filepath.Separator), "home", "dev")
)

func newTestInstaller(t *testing.T, opts ...Option) (*Installer, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll(workDir, 0755))
	require.NoError(t, fs.MkdirAll(homeDir, 0755))
	opts = append([]Option{WithVersion("1.2.0"), WithHomeDir(homeDir)}, opts...)
	return New(storage.New(fs), opts...), fs
}

func testSource() Source {
	return Source{Path: "/pkg/skills/aem-workflow/SKILL.md", Content: skillDoc}
}

// listFiles returns every regular file in fs, sorted.
func listFiles(t *testing.T, fs afero.Fs) []string {
	t.Helper()
	var files []string
	err := afero.Walk(fs, string(filepath.Separator), func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	require.NoError(t, err)
	sort.Strings(files)
	return files
}

func projectPath(p integrations.Platform) string {
	d, _ := integrations.Lookup(p)
	t, _ := d.Target(integrations.ScopeProject, workDir, homeDir)
	return t.Path()
}

func TestInstall_AllPlatforms(t *testing.T) {
	inst, fs := newTestInstaller(t)

	report := inst.Install(integrations.AllPlatforms(), integrations.ScopeProject, workDir, testSource())
	require.NoError(t, report.Err())
	require.Len(t, report.Outcomes, 5)

	var want []string
	for _, p := range integrations.AllPlatforms() {
		want = append(want, projectPath(p))
	}
	sort.Strings(want)
	assert.Equal(t, want, listFiles(t, fs))

	for _, o := range report.Outcomes {
		assert.Equal(t, ActionInstalled, o.Action)
		data, err := afero.ReadFile(fs, o.Path)
		require.NoError(t, err)
		expected, err := integrations.Transform(o.Platform, skillDoc, "1.2.0")
		require.NoError(t, err)
		assert.Equal(t, expected, string(data), "content for %s", o.Platform)
	}
}

func TestInstall_SinglePlatform(t *testing.T) {
	inst, fs := newTestInstaller(t)

	report := inst.Install([]integrations.Platform{integrations.Gemini}, integrations.ScopeProject, workDir, testSource())
	require.NoError(t, report.Err())

	assert.Equal(t, []string{filepath.Join(workDir, "GEMINI.md")}, listFiles(t, fs))
}

func TestInstall_Overwrites(t *testing.T) {
	inst, fs := newTestInstaller(t)
	path := projectPath(integrations.Copilot)
	require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, afero.WriteFile(fs, path, []byte("old content that is longer than nothing"), 0644))

	report := inst.Install([]integrations.Platform{integrations.Copilot}, integrations.ScopeProject, workDir, testSource())
	require.NoError(t, report.Err())

	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# AEM Workflow Development Instructions"))
	assert.NotContains(t, string(data), "old content")
}

func TestInstall_GlobalScope(t *testing.T) {
	inst, fs := newTestInstaller(t)

	report := inst.Install([]integrations.Platform{integrations.Claude, integrations.Gemini}, integrations.ScopeGlobal, workDir, testSource())
	require.NoError(t, report.Err())

	assert.Equal(t, []string{
		filepath.Join(homeDir, ".claude", "skills", "aem-workflow.md"),
		filepath.Join(homeDir, ".gemini", "GEMINI.md"),
	}, listFiles(t, fs))
	for _, o := range report.Outcomes {
		assert.Equal(t, integrations.ScopeGlobal, o.Scope)
		assert.Empty(t, o.Notice)
	}
}

func TestInstall_GlobalDowngrade(t *testing.T) {
	globalInst, globalFs := newTestInstaller(t)
	projectInst, projectFs := newTestInstaller(t)
	platforms := []integrations.Platform{integrations.Cursor}

	global := globalInst.Install(platforms, integrations.ScopeGlobal, workDir, testSource())
	project := projectInst.Install(platforms, integrations.ScopeProject, workDir, testSource())
	require.NoError(t, global.Err())
	require.NoError(t, project.Err())

	o := global.Outcomes[0]
	assert.Equal(t, integrations.ScopeProject, o.Scope)
	assert.Contains(t, o.Notice, "project scope")
	assert.Equal(t, projectPath(integrations.Cursor), o.Path)

	globalData, err := afero.ReadFile(globalFs, o.Path)
	require.NoError(t, err)
	projectData, err := afero.ReadFile(projectFs, o.Path)
	require.NoError(t, err)
	assert.Equal(t, projectData, globalData)
}

// failingStore rejects writes to paths containing fail.
type failingStore struct {
	storage.Store
	fail string
}

func (s failingStore) WriteFile(path string, data []byte) error {
	if strings.Contains(path, s.fail) {
		return errors.New("disk full")
	}
	return s.Store.WriteFile(path, data)
}

func TestInstall_PartialFailureContinues(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := failingStore{Store: storage.New(fs), fail: ".github"}
	inst := New(store, WithVersion("1.0.0"))

	report := inst.Install([]integrations.Platform{integrations.Claude, integrations.Copilot, integrations.Gemini}, integrations.ScopeProject, workDir, testSource())

	require.Len(t, report.Outcomes, 3)
	failed := report.Failed()
	require.Len(t, failed, 1)
	assert.Equal(t, integrations.Copilot, failed[0].Platform)
	assert.Equal(t, ActionFailed, failed[0].Action)
	assert.ErrorContains(t, report.Err(), "disk full")
	assert.Len(t, report.Succeeded(), 2)

	assert.Equal(t, []string{
		projectPath(integrations.Claude),
		projectPath(integrations.Gemini),
	}, listFiles(t, fs))
}

func TestInstall_TransformPanicFailsOnlyThatPlatform(t *testing.T) {
	inst, fs := newTestInstaller(t)
	inst.lookup = func(p integrations.Platform) (integrations.Descriptor, bool) {
		d, ok := integrations.Lookup(p)
		if p == integrations.Gemini {
			d.Transformer = integrations.TransformFunc(func(string, string) string {
				panic("bad template")
			})
		}
		return d, ok
	}

	report := inst.Install([]integrations.Platform{integrations.Claude, integrations.Gemini, integrations.Cursor}, integrations.ScopeProject, workDir, testSource())

	require.Len(t, report.Outcomes, 3)
	failed := report.Failed()
	require.Len(t, failed, 1)
	assert.Equal(t, integrations.Gemini, failed[0].Platform)
	assert.Equal(t, ActionFailed, failed[0].Action)
	assert.ErrorContains(t, failed[0].Err, "bad template")

	assert.Equal(t, []string{
		projectPath(integrations.Claude),
		projectPath(integrations.Cursor),
	}, listFiles(t, fs))
}

func TestInstall_DryRun(t *testing.T) {
	inst, fs := newTestInstaller(t, WithDryRun(true))

	report := inst.Install(integrations.AllPlatforms(), integrations.ScopeProject, workDir, testSource())
	require.NoError(t, report.Err())
	for _, o := range report.Outcomes {
		assert.True(t, o.DryRun)
		assert.NotEmpty(t, o.Path)
	}
	assert.Empty(t, listFiles(t, fs))
}

func TestUninstall_AfterInstall(t *testing.T) {
	inst, fs := newTestInstaller(t)
	require.NoError(t, afero.WriteFile(fs, filepath.Join(workDir, "README.md"), []byte("keep"), 0644))

	platforms := []integrations.Platform{integrations.Gemini, integrations.Windsurf}
	require.NoError(t, inst.Install(platforms, integrations.ScopeProject, workDir, testSource()).Err())

	report := inst.Uninstall(platforms, integrations.ScopeProject, workDir)
	require.NoError(t, report.Err())

	var removed []string
	for _, o := range report.Outcomes {
		if o.Action == ActionRemoved {
			removed = append(removed, o.Path)
		}
	}
	assert.ElementsMatch(t, []string{projectPath(integrations.Gemini), projectPath(integrations.Windsurf)}, removed)
	assert.Equal(t, []string{filepath.Join(workDir, "README.md")}, listFiles(t, fs))
}

func TestUninstall_NothingInstalled(t *testing.T) {
	inst, fs := newTestInstaller(t)

	report := inst.Uninstall(integrations.AllPlatforms(), integrations.ScopeGlobal, workDir)
	require.NoError(t, report.Err())
	for _, o := range report.Outcomes {
		assert.Equal(t, ActionMissing, o.Action)
	}
	assert.Empty(t, listFiles(t, fs))
}

func TestUninstall_ParentIsRegularFile(t *testing.T) {
	proj := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(proj, ".github"), []byte("not a dir"), 0644))

	inst := New(storage.OS(), WithVersion("1.2.0"))
	report := inst.Uninstall([]integrations.Platform{integrations.Copilot}, integrations.ScopeProject, proj)
	require.NoError(t, report.Err())
	require.Len(t, report.Outcomes, 1)
	assert.Equal(t, ActionMissing, report.Outcomes[0].Action)
}

func TestUninstall_LegacyOwnership(t *testing.T) {
	inst, fs := newTestInstaller(t)

	owned := filepath.Join(workDir, ".cursorrules")
	foreign := filepath.Join(workDir, ".windsurfrules")
	ownedContent, err := integrations.Transform(integrations.Cursor, skillDoc, "0.9.0")
	require.NoError(t, err)
	require.NoError(t, afero.WriteFile(fs, owned, []byte(ownedContent), 0644))
	require.NoError(t, afero.WriteFile(fs, foreign, []byte("# my team's windsurf rules"), 0644))

	report := inst.Uninstall([]integrations.Platform{integrations.Cursor, integrations.Windsurf}, integrations.ScopeProject, workDir)
	require.NoError(t, report.Err())

	byPath := make(map[string]Outcome)
	for _, o := range report.Outcomes {
		byPath[o.Path] = o
	}
	assert.Equal(t, ActionRemoved, byPath[owned].Action)
	assert.True(t, byPath[owned].Legacy)
	assert.Equal(t, ActionKept, byPath[foreign].Action)
	assert.NotEmpty(t, byPath[foreign].Notice)

	assert.Equal(t, []string{foreign}, listFiles(t, fs))
}

func TestUninstall_DryRunKeepsFiles(t *testing.T) {
	inst, fs := newTestInstaller(t)
	require.NoError(t, inst.Install([]integrations.Platform{integrations.Claude}, integrations.ScopeProject, workDir, testSource()).Err())

	dry := New(storage.New(fs), WithDryRun(true))
	report := dry.Uninstall([]integrations.Platform{integrations.Claude}, integrations.ScopeProject, workDir)
	require.NoError(t, report.Err())
	assert.Equal(t, ActionRemoved, report.Outcomes[0].Action)
	assert.True(t, report.Outcomes[0].DryRun)
	assert.Equal(t, []string{projectPath(integrations.Claude)}, listFiles(t, fs))
}

func TestStatus(t *testing.T) {
	inst, fs := newTestInstaller(t)
	require.NoError(t, inst.Install([]integrations.Platform{integrations.Claude, integrations.Copilot}, integrations.ScopeProject, workDir, testSource()).Err())

	older, err := integrations.Transform(integrations.Gemini, skillDoc, "1.0.0")
	require.NoError(t, err)
	require.NoError(t, afero.WriteFile(fs, projectPath(integrations.Gemini), []byte(older), 0644))

	statuses := inst.Status(integrations.AllPlatforms(), integrations.ScopeProject, workDir)
	require.Len(t, statuses, 5)

	byPlatform := make(map[integrations.Platform]Status)
	for _, s := range statuses {
		require.NoError(t, s.Err)
		byPlatform[s.Platform] = s
	}

	assert.True(t, byPlatform[integrations.Claude].Installed)
	assert.False(t, byPlatform[integrations.Claude].Owned)

	copilot := byPlatform[integrations.Copilot]
	assert.True(t, copilot.Owned)
	assert.Equal(t, "1.2.0", copilot.Version)
	assert.False(t, copilot.Outdated)

	gemini := byPlatform[integrations.Gemini]
	assert.Equal(t, "1.0.0", gemini.Version)
	assert.True(t, gemini.Outdated)

	assert.False(t, byPlatform[integrations.Cursor].Installed)
}

func TestLocateSource(t *testing.T) {
	root := filepath.Join(string(filepath.Separator), "pkg")

	t.Run("primary location", func(t *testing.T) {
		inst, fs := newTestInstaller(t)
		primary := Candidates(root)[0]
		require.NoError(t, afero.WriteFile(fs, primary, []byte(skillDoc), 0644))
		require.NoError(t, afero.WriteFile(fs, Candidates(root)[1], []byte("fallback"), 0644))

		src, err := inst.LocateSource([]string{root})
		require.NoError(t, err)
		assert.Equal(t, primary, src.Path)
		assert.Equal(t, skillDoc, src.Content)
		assert.Equal(t, "aem-workflow", src.Meta.Name)
	})

	t.Run("docs fallback", func(t *testing.T) {
		inst, fs := newTestInstaller(t)
		fallback := filepath.Join(root, "docs", "SKILL.md")
		require.NoError(t, afero.WriteFile(fs, fallback, []byte("# plain"), 0644))

		src, err := inst.LocateSource([]string{"", filepath.Join(string(filepath.Separator), "missing"), root})
		require.NoError(t, err)
		assert.Equal(t, fallback, src.Path)
		assert.Empty(t, src.Meta.Name)
	})

	t.Run("not found", func(t *testing.T) {
		inst, _ := newTestInstaller(t)
		_, err := inst.LocateSource([]string{root})
		assert.ErrorIs(t, err, ErrSourceNotFound)
	})
}
