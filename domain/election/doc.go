// Package election implements the domain logic of the voting ledger:
// voters, candidates, the transactions that record them and the rules
// that decide whether an action may be recorded.
//
// # Core Types
//
// Voter: A registered voter and whether they have already voted.
//
// Candidate: A registered candidate. Immutable once created.
//
// Transaction: An immutable record of one domain event (genesis, voter
// registration, candidate registration or vote). Payloads are snapshots,
// never references to live state.
//
// Registry: The voter and candidate lookup tables. It is a projection of
// the recorded transactions and can be rebuilt with Replay.
//
// # Rules
//
// Registration requires a non-empty ID and name (after trimming) and an
// unused ID. A vote requires a known voter, a known candidate and a voter
// that has not voted yet, checked in that order.
package election
