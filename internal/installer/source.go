package installer

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/narendragandhi/aem-workflow-skill/internal/branding"
	"github.com/narendragandhi/aem-workflow-skill/internal/frontmatter"
	"go.uber.org/zap"
)

// ErrSourceNotFound is returned when no candidate location holds the skill document.
var ErrSourceNotFound = errors.New("SKILL.md not found")

// Source is the skill document loaded for one invocation.
type Source struct {
	Path    string
	Content string
	// Meta is empty when the document has no parseable frontmatter.
	Meta frontmatter.Metadata
}

// Candidates returns the locations searched under root, in order.
func Candidates(root string) []string {
	return []string{
		filepath.Join(root, "skills", branding.SkillName(), "SKILL.md"),
		filepath.Join(root, "docs", "SKILL.md"),
	}
}

// LocateSource reads the skill document from the first candidate location
// that exists under any of roots.
func (i *Installer) LocateSource(roots []string) (Source, error) {
	var searched []string

	for _, root := range roots {
		if root == "" {
			continue
		}
		for _, path := range Candidates(root) {
			searched = append(searched, path)

			ok, err := i.store.Exists(path)
			if err != nil || !ok {
				continue
			}

			data, err := i.store.ReadFile(path)
			if err != nil {
				return Source{}, fmt.Errorf("loading skill document: %w", err)
			}

			src := Source{Path: path, Content: string(data)}
			if frontmatter.Has(src.Content) {
				meta, _, err := frontmatter.Parse(src.Content)
				if err != nil {
					i.logger.Warn("skill document metadata unreadable", zap.String("path", path), zap.Error(err))
				} else {
					src.Meta = meta
				}
			}
			i.logger.Debug("skill document located",
				zap.String("path", path),
				zap.String("name", src.Meta.Name))
			return src, nil
		}
	}

	i.logger.Debug("skill document not found", zap.Strings("searched", searched))
	return Source{}, ErrSourceNotFound
}
