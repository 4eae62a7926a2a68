// Package logging configures slog handlers for dotsync.
//
// It produces either a console handler (timestamp, level, component prefix,
// key=value attrs) or a JSON handler, optionally teeing output into a log
// file next to the run history database. Components obtain scoped loggers via
// NewComponentLogger so every record carries a component attribute.
package logging
