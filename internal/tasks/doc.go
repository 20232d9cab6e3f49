// package tasks implements the batch operations that run against configured
// playlists: CSV backups, deduplication, clearing, and one-way sync.
//
// The core abstraction is Engine, which composes the API service, the
// persisted state (auth + sync ledger), and an optional local track cache.
// Batch operations process entries strictly in order; one entry's failure is
// reported and skipped, never aborting the rest of the batch.
package tasks
