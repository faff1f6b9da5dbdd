package skill

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gosimple/slug"

	"github.com/thoreinstein/switchboard/internal/errors"
	"github.com/thoreinstein/switchboard/pkg/frontmatter"
)

// ManifestFile is the file every skill directory must contain.
const ManifestFile = "SKILL.md"

// maxNameLength is the maximum allowed length for skill names.
const maxNameLength = 64

// nameRegex validates skill ids: lowercase alphanumeric, single hyphens allowed
// between segments, no start/end hyphen, no consecutive hyphens.
var nameRegex = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Manifest is the frontmatter of a SKILL.md file.
type Manifest struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// ReadManifest parses the frontmatter of dir/SKILL.md. A missing file is a
// validation failure; a SKILL.md without frontmatter yields an empty Manifest.
func ReadManifest(dir string) (*Manifest, error) {
	path := filepath.Join(dir, ManifestFile)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Invalidf("%s has no %s", dir, ManifestFile)
		}
		return nil, errors.IO(err, "opening "+path)
	}
	defer f.Close()

	var m Manifest
	if _, err := frontmatter.Decode(f, &m); err != nil {
		return nil, errors.Format(err, path)
	}
	m.Name = strings.TrimSpace(m.Name)
	m.Description = strings.TrimSpace(m.Description)
	return &m, nil
}

// NormalizeID turns a display name into a skill id.
func NormalizeID(name string) string {
	id := slug.Make(strings.TrimSpace(name))
	if len(id) > maxNameLength {
		id = strings.TrimRight(id[:maxNameLength], "-")
	}
	return id
}

// ValidateID reports whether id is usable as a skill directory name.
func ValidateID(id string) error {
	switch {
	case id == "":
		return errors.Invalidf("skill id is required")
	case len(id) > maxNameLength:
		return errors.Invalidf("skill id %q exceeds maximum length of %d characters", id, maxNameLength)
	case !nameRegex.MatchString(id):
		return errors.Invalidf("skill id %q must be lowercase alphanumeric with single hyphens between segments", id)
	}
	return nil
}
