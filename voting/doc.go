// Package voting composes the election rules and the proof-of-work chain
// into a single ledger.
//
// Every accepted action (voter registration, candidate registration, vote)
// is recorded as exactly one transaction in exactly one newly mined block.
// An action is checked against the lookup tables, mined, appended and only
// then applied to the tables, all under one lock: a rejected or cancelled
// action leaves the ledger untouched, and concurrent callers can never
// register the same ID twice or vote twice.
package voting
