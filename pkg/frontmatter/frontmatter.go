package frontmatter

import (
	"bufio"
	"bytes"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/switchboard/internal/errors"
)

const delimiter = "---"

// ErrUnterminated is returned when a header is opened but never closed.
var ErrUnterminated = errors.New("frontmatter is not closed by ---")

// Decode reads the header at the start of r into v and reports whether one
// was present. Reading stops at the closing delimiter, so the body is never
// loaded.
func Decode(r io.Reader, v any) (bool, error) {
	sc := bufio.NewScanner(r)
	if !sc.Scan() {
		return false, sc.Err()
	}
	if strings.TrimSpace(strings.TrimPrefix(sc.Text(), "\ufeff")) != delimiter {
		return false, nil
	}

	var header bytes.Buffer
	for sc.Scan() {
		line := strings.TrimSuffix(sc.Text(), "\r")
		if strings.TrimSpace(line) == delimiter {
			if err := yaml.Unmarshal(header.Bytes(), v); err != nil {
				return true, errors.Wrap(err, "parsing frontmatter")
			}
			return true, nil
		}
		header.WriteString(line)
		header.WriteByte('\n')
	}
	if err := sc.Err(); err != nil {
		return true, err
	}
	return true, ErrUnterminated
}
