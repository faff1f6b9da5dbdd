// Package core is switchboard's synchronization service. A [Manager] owns
// the canonical store, the per-application adapters, the backup manager and
// the skill installer, and implements every user-facing operation on top of
// them.
//
// Every mutating operation runs inside a single store write: the store is
// copied, the copy is mutated, live files are rendered and written, and only
// when all of that succeeds is the copy persisted and made current. A failed
// live write therefore never leaves the store ahead of the files it
// describes.
//
// Applications whose configuration directory does not exist are skipped
// with a warning under the default live policy; the store mutation still
// happens. Warnings are returned in a [Result] rather than as errors.
package core
