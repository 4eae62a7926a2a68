// Package dataset loads the Hanzi and TOCFL collections from Anki once per
// run and serves them from in-memory indexes. Generators do many overlapping
// lookups; fetching everything upfront keeps the run at a handful of batched
// API calls instead of thousands of small ones.
package dataset
