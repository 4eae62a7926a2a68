// Package connectdots builds association records from the Hanzi collection
// and reconciles them against the ConnectDots notes stored in Anki.
//
// A record pairs a list of left-hand prompts (characters, phrases) with the
// answers they share (readings, meanings). Generators produce the desired
// records, the splitter caps how many pairs land on a single note, and the
// engine diffs the result against the remote collection, creating and
// updating notes as needed. Notes the engine no longer generates are
// reported as untracked but never deleted.
package connectdots
