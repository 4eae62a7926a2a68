// Package history persists a summary row per sync run in a local SQLite
// database, so past runs can be inspected without digging through logs.
package history
