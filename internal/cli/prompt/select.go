// Package prompt provides interactive CLI prompts for user input.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/thoreinstein/switchboard/internal/errors"
	"github.com/thoreinstein/switchboard/internal/logging"
)

// Sentinel errors for item selection.
var (
	ErrNoItems            = errors.New("nothing to select from")
	ErrInvalidSelection   = errors.Mark(errors.New("invalid selection"), errors.ErrValidationFailed)
	ErrSelectionCancelled = errors.New("selection cancelled")
)

// Item is one selectable entry.
type Item struct {
	// Label is the text shown and matched against.
	Label string

	// Detail is shown in the preview pane of the fuzzy finder.
	Detail string
}

// Picker chooses one of items and returns its index.
type Picker interface {
	Pick(header string, items []Item) (int, error)
}

// Selector handles numbered selection prompts.
type Selector struct {
	reader io.Reader
	writer io.Writer
}

// NewSelector creates a new Selector using stdin and stdout.
func NewSelector() *Selector {
	return &Selector{
		reader: os.Stdin,
		writer: os.Stdout,
	}
}

// NewSelectorWithIO creates a Selector with custom reader and writer for testing.
func NewSelectorWithIO(r io.Reader, w io.Writer) *Selector {
	return &Selector{
		reader: r,
		writer: w,
	}
}

// Pick prompts the user to choose from a numbered list.
//
// Returns:
//   - ErrNoItems if the list is empty
//   - 0 if only one item exists (auto-selects without prompting)
//   - The selected index based on user input
//   - ErrInvalidSelection if the selection is out of range
//   - ErrSelectionCancelled if input is EOF (e.g., Ctrl+D)
func (s *Selector) Pick(header string, items []Item) (int, error) {
	if len(items) == 0 {
		return 0, ErrNoItems
	}

	if len(items) == 1 {
		return 0, nil
	}

	fmt.Fprintf(s.writer, "%s:\n", header)
	for i, it := range items {
		fmt.Fprintf(s.writer, "  [%d] %s\n", i+1, it.Label)
	}
	fmt.Fprintf(s.writer, "Select [1]: ")

	reader := bufio.NewReader(s.reader)
	input, err := reader.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || input == "") {
		if errors.Is(err, io.EOF) {
			return 0, ErrSelectionCancelled
		}
		return 0, errors.Wrap(err, "reading selection")
	}

	input = strings.TrimSpace(input)

	// Default to first option if empty
	if input == "" {
		return 0, nil
	}

	selection, err := strconv.Atoi(input)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidSelection, "%q is not a number", input)
	}

	// Validate range (1-indexed)
	if selection < 1 || selection > len(items) {
		return 0, errors.Wrapf(ErrInvalidSelection, "%d is out of range [1-%d]", selection, len(items))
	}

	return selection - 1, nil
}

// FuzzyPicker chooses with an interactive fuzzy finder.
type FuzzyPicker struct{}

// Pick opens the fuzzy finder over items.
func (FuzzyPicker) Pick(header string, items []Item) (int, error) {
	if len(items) == 0 {
		return 0, ErrNoItems
	}
	idx, err := fuzzyfinder.Find(
		items,
		func(i int) string { return items[i].Label },
		fuzzyfinder.WithHeader(header),
		fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i == -1 {
				return ""
			}
			return items[i].Detail
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return 0, ErrSelectionCancelled
		}
		return 0, errors.Wrap(err, "interactive selection failed")
	}
	return idx, nil
}

// NewPicker returns a FuzzyPicker when both in and out are terminals and a
// numbered Selector over in and out otherwise.
func NewPicker(in io.Reader, out io.Writer) Picker {
	if f, ok := in.(*os.File); ok && logging.IsTTY(f) && logging.IsTTY(out) {
		return FuzzyPicker{}
	}
	return NewSelectorWithIO(in, out)
}
