package domain

import "fmt"

// ConflictResolution is the store-side policy applied when an upserted word
// already exists.
type ConflictResolution string

const (
	IgnoreDuplicates ConflictResolution = "ignore-duplicates"
	MergeDuplicates  ConflictResolution = "merge-duplicates"
)

const DefaultConflictColumn = "word"

func ParseConflictResolution(s string) (ConflictResolution, error) {
	switch ConflictResolution(s) {
	case "":
		return IgnoreDuplicates, nil
	case IgnoreDuplicates, MergeDuplicates:
		return ConflictResolution(s), nil
	default:
		return "", fmt.Errorf("unknown conflict resolution %q, expected one of %v",
			s, []ConflictResolution{IgnoreDuplicates, MergeDuplicates})
	}
}
