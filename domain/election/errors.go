package election

import "errors"

// Rule violations returned by the Check functions and the Registry.
var (
	ErrEmptyField           = errors.New("empty field")
	ErrDuplicateVoterID     = errors.New("duplicate voter id")
	ErrDuplicateCandidateID = errors.New("duplicate candidate id")
	ErrUnknownVoter         = errors.New("unknown voter")
	ErrUnknownCandidate     = errors.New("unknown candidate")
	ErrAlreadyVoted         = errors.New("voter has already voted")
)

// Replay errors.
var (
	ErrUnknownTransaction = errors.New("unknown transaction type")
	ErrMalformedPayload   = errors.New("malformed payload")
)
