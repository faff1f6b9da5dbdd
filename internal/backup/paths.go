package backup

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gosimple/slug"
)

// timestampLayout is the YYYYMMDD_HHMMSS stamp embedded in snapshot names.
const timestampLayout = "20060102_150405"

const snapshotExt = ".json"

var snapshotName = regexp.MustCompile(`^(.+)_(\d{8}_\d{6})(?:-(\d+))?$`)

// normalizeLabel turns an arbitrary label into a file-name-safe slug.
func normalizeLabel(label string) string {
	s := slug.Make(strings.TrimSpace(label))
	if s == "" {
		return DefaultLabel
	}
	return s
}

// snapshotID builds {label}_{timestamp}, with -N appended for N > 0.
func snapshotID(label string, at time.Time, n int) string {
	id := label + "_" + at.Format(timestampLayout)
	if n > 0 {
		id += fmt.Sprintf("-%d", n)
	}
	return id
}

// parseSnapshotID splits a snapshot id into its label, time and collision
// sequence. ok is false for names that were not produced by snapshotID.
func parseSnapshotID(id string) (label string, at time.Time, seq int, ok bool) {
	m := snapshotName.FindStringSubmatch(id)
	if m == nil {
		return "", time.Time{}, 0, false
	}
	at, err := time.Parse(timestampLayout, m[2])
	if err != nil {
		return "", time.Time{}, 0, false
	}
	if m[3] != "" {
		seq, err = strconv.Atoi(m[3])
		if err != nil {
			return "", time.Time{}, 0, false
		}
	}
	return m[1], at, seq, true
}
