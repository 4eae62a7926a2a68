// Package notecache memoizes AnkiConnect read operations within a single
// reconciliation run.
//
// Several generators issue overlapping queries against the same collection;
// the cache keeps each findNotes result keyed by query string and each note
// keyed by id so a run pays for every lookup at most once. One instance is
// constructed per run and threaded through explicitly; there is no global
// state, no TTL, and no eviction.
package notecache
