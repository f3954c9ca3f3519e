// Package loader submits an ordered sequence of records to a remote store in
// fixed-size batches.
//
// Batches partition the input in its original order and are submitted one at a
// time by default. A batch whose submission fails is recorded as failed and the
// load continues with the next batch; the failure is reported through the
// returned Summary, never as the error of Load. Load only returns an error for
// invalid configuration or when ctx is cancelled before every batch was
// attempted.
//
// With Config.Concurrency > 1 batches are submitted by a bounded worker group,
// while progress events are still delivered in batch order.
package loader
