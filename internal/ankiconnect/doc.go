// Package ankiconnect is a thin client for the AnkiConnect addon's JSON RPC
// API (protocol version 6).
//
// Every call is a blocking POST of an {action, params, version} envelope.
// The addon reports failures in-band through the response's error field;
// those surface as ErrRemote-tagged errors so callers can classify them. The
// client performs no retries: a rejected create or update is the caller's
// problem to report.
package ankiconnect
