package backup

import (
	"time"

	"github.com/thoreinstein/switchboard/internal/errors"
)

// DefaultRetentionCount is the number of snapshots kept when no retention is
// configured.
const DefaultRetentionCount = 10

// DefaultLabel names snapshots created without an explicit label.
const DefaultLabel = "backup"

// Sentinel errors for backup operations.
var (
	// ErrNoBackupsFound indicates the backup directory holds no snapshots.
	ErrNoBackupsFound = errors.Mark(errors.New("no backups found"), errors.ErrNotFound)

	// ErrBackupCorrupted indicates a snapshot file could not be read back.
	ErrBackupCorrupted = errors.Mark(errors.New("backup corrupted"), errors.ErrFormat)
)

// Snapshot describes one whole-store backup file.
type Snapshot struct {
	// ID is the file name without its .json extension,
	// e.g. "pre-restore_20260123_100712" or "backup_20260123_100712-2".
	ID string `json:"id"`

	// Label is the caller-supplied name the snapshot was created under.
	Label string `json:"label"`

	// Path is the absolute location of the snapshot file.
	Path string `json:"path"`

	// CreatedAt is recovered from the timestamp embedded in ID.
	CreatedAt time.Time `json:"created_at"`

	// Size is the snapshot length in bytes.
	Size int64 `json:"size"`

	// SHA256 is the hex-encoded digest of the snapshot contents.
	SHA256 string `json:"sha256"`

	seq int
}
