package election

import "fmt"

// CheckVoterRegistration reports whether a voter with the given (already
// trimmed) id and name may be registered.
func CheckVoterRegistration(r *Registry, id, name string) error {
	if id == "" || name == "" {
		return fmt.Errorf("%w: voter id and name cannot be empty", ErrEmptyField)
	}
	if _, ok := r.voters[id]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateVoterID, id)
	}
	return nil
}

// CheckCandidateRegistration reports whether a candidate with the given
// (already trimmed) id and name may be registered.
func CheckCandidateRegistration(r *Registry, id, name string) error {
	if id == "" || name == "" {
		return fmt.Errorf("%w: candidate id and name cannot be empty", ErrEmptyField)
	}
	if _, ok := r.candidates[id]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateCandidateID, id)
	}
	return nil
}

// CheckVote reports whether voterID may vote for candidateID. Voter
// existence is checked first, then candidate existence, then whether the
// voter has already voted.
func CheckVote(r *Registry, voterID, candidateID string) error {
	v, ok := r.voters[voterID]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownVoter, voterID)
	}
	if _, ok := r.candidates[candidateID]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCandidate, candidateID)
	}
	if v.HasVoted {
		return fmt.Errorf("%w: %q", ErrAlreadyVoted, voterID)
	}
	return nil
}
