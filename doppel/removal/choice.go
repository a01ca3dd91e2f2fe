package removal

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ChoiceKind identifies how the user wants a duplicate group resolved.
type ChoiceKind string

const (
	// ChoiceQuit ends the whole removal session.
	ChoiceQuit ChoiceKind = "quit"
	// ChoiceKeepAll leaves every file in the group untouched.
	ChoiceKeepAll ChoiceKind = "keep_all"
	// ChoiceAutoNewest keeps the newest file and deletes the rest.
	ChoiceAutoNewest ChoiceKind = "auto_newest"
	// ChoiceDeleteSet deletes the files at the selected positions.
	ChoiceDeleteSet ChoiceKind = "delete_set"
)

// ErrNoIndices is returned when a selection contains no usable numbers,
// for example an empty answer or ",,".
var ErrNoIndices = errors.New("no valid indices provided")

// Choice is one parsed answer to the group prompt.
type Choice struct {
	Kind    ChoiceKind
	Indices []int // 1-based positions into the displayed group, only for ChoiceDeleteSet
}

// ParseChoice interprets raw prompt input against a group of max files.
// Single-letter commands are matched case-insensitively; anything else
// is treated as a comma-separated list of file numbers.
func ParseChoice(input string, max int) (Choice, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "q":
		return Choice{Kind: ChoiceQuit}, nil
	case "k":
		return Choice{Kind: ChoiceKeepAll}, nil
	case "a":
		return Choice{Kind: ChoiceAutoNewest}, nil
	}

	indices, err := parseIndices(input, max)
	if err != nil {
		return Choice{}, err
	}

	return Choice{Kind: ChoiceDeleteSet, Indices: indices}, nil
}

// parseIndices turns "2, 3,2" into a sorted, deduplicated slice of
// in-range positions. Empty tokens are skipped so trailing commas are
// harmless.
func parseIndices(input string, max int) ([]int, error) {
	seen := make(map[int]struct{})

	for _, token := range strings.Split(input, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}

		n, err := strconv.Atoi(token)
		if err != nil {
			return nil, fmt.Errorf("'%s' is not a valid number", token)
		}
		if n < 1 || n > max {
			return nil, fmt.Errorf("index %d out of range (1-%d)", n, max)
		}

		seen[n] = struct{}{}
	}

	if len(seen) == 0 {
		return nil, ErrNoIndices
	}

	indices := make([]int, 0, len(seen))
	for n := range seen {
		indices = append(indices, n)
	}
	sort.Ints(indices)

	return indices, nil
}
