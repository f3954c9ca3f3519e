package es

import "fmt"

// BulkError summarises the failed items of one bulk request. Status, Type
// and Reason describe the first failure.
type BulkError struct {
	Failed int
	Total  int
	Status int
	Type   string
	Reason string
}

func (e *BulkError) Error() string {
	return fmt.Sprintf("failed to write %d out of %d words: %s: %s", e.Failed, e.Total, e.Type, e.Reason)
}

func (e *BulkError) StatusCode() int {
	return e.Status
}
