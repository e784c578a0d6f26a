package ledger

import (
	"errors"
	"fmt"
)

var (
	ErrChainInvalid    = errors.New("chain invalid")
	ErrEmptyChain      = errors.New("blockchain is empty")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrInvalidGenesis  = errors.New("invalid genesis block")
)

// Reason tells which integrity property a block violates.
type Reason int

const (
	HashMismatch Reason = iota + 1
	ProofOfWorkNotMet
	BrokenLink
)

func (r Reason) String() string {
	switch r {
	case HashMismatch:
		return "hash mismatch"
	case ProofOfWorkNotMet:
		return "proof of work not met"
	case BrokenLink:
		return "broken previous hash link"
	default:
		return fmt.Sprintf("reason(%d)", int(r))
	}
}

// InvalidBlockError reports the first block of a chain that failed
// verification. It matches ErrChainInvalid with errors.Is.
type InvalidBlockError struct {
	Index  int
	Reason Reason
}

func (e *InvalidBlockError) Error() string {
	return fmt.Sprintf("block %d invalid: %s", e.Index, e.Reason)
}

func (e *InvalidBlockError) Is(target error) bool {
	return target == ErrChainInvalid
}
