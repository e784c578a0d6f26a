// Package ledger implements the append-only, proof-of-work sealed chain
// that records the election.
//
// # Core Components
//
// Block: An ordered batch of transactions sealed by a nonce whose block
// hash starts with Difficulty '0' hex characters.
//
// Blockchain: The ordered sequence of blocks, each one referencing the hash
// of its predecessor. Block 0 is the genesis block and references ZeroHash.
//
// # Hashing
//
// A block hash is the SHA-256 of a canonical text preimage: index,
// timestamp, the JSON encoded transaction list (sorted keys), previous
// hash, nonce and difficulty, concatenated without separators. The same
// preimage is used for mining and verification.
//
// # Security Properties
//
// The chain provides:
//   - Tamper detection: changing any stored field changes the block hash
//   - Proof of work: every hash carries the required leading zeros
//   - Linkage: every block commits to the hash of the previous one
//
// Verify walks the whole chain, genesis included, and reports the first
// block that breaks one of these properties.
package ledger
