// Package retry adds bounded, opt-in retries with exponential backoff around a
// single batch submission.
//
// A zero Policy performs exactly one attempt, which is the default behaviour of
// the importer: a failed batch is recorded and the run moves on. Only errors the
// Classifier reports as transient are retried.
package retry
