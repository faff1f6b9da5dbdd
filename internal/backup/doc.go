// Package backup provides whole-store snapshots for switchboard.
//
// Every snapshot is a single file holding the serialized store verbatim.
// Files are named after the label they were created under and the second
// they were taken:
//
//	~/.config/switchboard/backups/
//	├── backup_20260123_100712.json
//	├── backup_20260123_100712-1.json
//	└── pre-restore_20260124_081500.json
//
// # Creating Backups
//
// Use [Manager.Backup] before any destructive store operation:
//
//	mgr := backup.NewManager(backup.WithRetentionCount(10))
//	snap, err := mgr.Backup("pre-restore", data)
//
// Backup prunes the oldest snapshots beyond the retention count once the new
// file is in place.
//
// # Restoring Backups
//
// [Manager.Resolve] accepts either a snapshot id or a path to a snapshot file,
// and [Manager.Read] returns its contents. Replacing the store with them is the
// caller's job.
//
// # Listing Backups
//
// [Manager.List] returns snapshots newest first together with their size and
// SHA256 digest. Files in the backup directory that were not produced by
// Backup are ignored.
package backup
