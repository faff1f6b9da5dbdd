package platform

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/thoreinstein/switchboard/internal/document"
	"github.com/thoreinstein/switchboard/internal/errors"
	"github.com/thoreinstein/switchboard/internal/paths"
	"github.com/thoreinstein/switchboard/pkg/fileutil"
)

// Permissions for live files.
const (
	PublicPerm os.FileMode = 0o644
	SecretPerm os.FileMode = 0o600
)

// FileSpec describes one live file an adapter owns.
type FileSpec struct {
	Role   Role
	Path   string
	Format Format
	Perm   os.FileMode
}

// Base implements the filesystem half of Adapter for embedding. Specs are
// kept in write order.
type Base struct {
	fs    afero.Fs
	app   paths.App
	dir   string
	specs []FileSpec
}

// NewBase returns a Base for app rooted at dir. A nil fsys uses the OS
// filesystem.
func NewBase(fsys afero.Fs, app paths.App, dir string, specs ...FileSpec) *Base {
	if fsys == nil {
		fsys = fileutil.OS
	}
	return &Base{fs: fsys, app: app, dir: dir, specs: specs}
}

// App returns the application identifier.
func (b *Base) App() paths.App { return b.app }

// ConfigDir returns the application's configuration directory.
func (b *Base) ConfigDir() string { return b.dir }

// Fs returns the filesystem the adapter reads and writes.
func (b *Base) Fs() afero.Fs { return b.fs }

// Initialized reports whether the configuration directory exists.
func (b *Base) Initialized() bool {
	return fileutil.DirExists(b.fs, b.dir)
}

// PromptPath returns <dir>/<instruction file>.
func (b *Base) PromptPath() string {
	return filepath.Join(b.dir, b.app.InstructionFilename())
}

// SkillsDir returns <dir>/skills.
func (b *Base) SkillsDir() string {
	return filepath.Join(b.dir, "skills")
}

// Spec returns the FileSpec for role.
func (b *Base) Spec(role Role) (FileSpec, bool) {
	for _, s := range b.specs {
		if s.Role == role {
			return s, true
		}
	}
	return FileSpec{}, false
}

// Specs returns the file specs in write order.
func (b *Base) Specs() []FileSpec {
	out := make([]FileSpec, len(b.specs))
	copy(out, b.specs)
	return out
}

// NewFile returns an empty file for role, for rendering when the live file
// does not exist yet.
func (b *Base) NewFile(role Role) *File {
	s, ok := b.Spec(role)
	if !ok {
		panic("platform: " + string(b.app) + " has no " + string(role) + " file")
	}
	return &File{Role: s.Role, Path: s.Path, Format: s.Format, Perm: s.Perm, Doc: document.Document{}}
}

// Existing returns a clone of the file for role from existing, or a new empty
// file when absent. Renderers mutate the result freely.
func (b *Base) Existing(existing Files, role Role) *File {
	if f := existing[role]; f != nil {
		c := f.Clone()
		if c.Doc == nil {
			c.Doc = document.Document{}
		}
		return c
	}
	return b.NewFile(role)
}

// ReadLive reads every live file, omitting absent ones.
func (b *Base) ReadLive() (Files, error) {
	files := make(Files, len(b.specs))
	for _, s := range b.specs {
		data, ok, err := fileutil.ReadOptional(b.fs, s.Path)
		if err != nil {
			return nil, errors.Wrapf(err, "reading %s", s.Path)
		}
		if !ok {
			continue
		}
		doc, err := s.Format.Decode(data, s.Path)
		if err != nil {
			return nil, err
		}
		files[s.Role] = &File{Role: s.Role, Path: s.Path, Format: s.Format, Perm: s.Perm, Doc: doc}
	}
	return files, nil
}

type priorContent struct {
	path   string
	data   []byte
	exists bool
	perm   os.FileMode
}

// WriteLive atomically writes each file in files in spec order. If a write
// fails, files already written by this call are restored to their prior
// content, or removed if they did not exist, and the error is returned.
func (b *Base) WriteLive(files Files) error {
	var written []priorContent

	rollback := func() {
		for i := len(written) - 1; i >= 0; i-- {
			p := written[i]
			var err error
			if p.exists {
				err = fileutil.WriteAtomic(b.fs, p.path, p.data, p.perm)
			} else {
				err = fileutil.RemoveIfExists(b.fs, p.path)
			}
			if err != nil {
				slog.Warn("restoring live file after failed write", "path", p.path, "error", err)
			}
		}
	}

	for _, s := range b.specs {
		f := files[s.Role]
		if f == nil {
			continue
		}
		path := f.Path
		if path == "" {
			path = s.Path
		}
		perm := f.Perm
		if perm == 0 {
			perm = s.Perm
		}

		data, err := s.Format.Encode(f.Doc)
		if err != nil {
			rollback()
			return errors.Wrapf(err, "encoding %s", path)
		}

		prev, existed, err := fileutil.ReadOptional(b.fs, path)
		if err != nil {
			rollback()
			return err
		}

		if err := b.fs.MkdirAll(filepath.Dir(path), paths.DefaultDirPerm); err != nil {
			rollback()
			return errors.IO(err, "creating "+filepath.Dir(path))
		}
		if err := fileutil.WriteAtomic(b.fs, path, data, perm); err != nil {
			rollback()
			return errors.Wrapf(err, "writing %s", path)
		}
		written = append(written, priorContent{path: path, data: prev, exists: existed, perm: perm})
	}
	return nil
}
