package election

import (
	"fmt"
	"sort"
)

// Registry holds the voter and candidate lookup tables and the number of
// votes each candidate received. It is not safe for concurrent use.
type Registry struct {
	voters     map[string]Voter
	candidates map[string]Candidate
	votes      map[string]int
}

func NewRegistry() *Registry {
	return &Registry{
		voters:     make(map[string]Voter),
		candidates: make(map[string]Candidate),
		votes:      make(map[string]int),
	}
}

// Replay rebuilds a Registry by applying txs in order.
func Replay(txs []Transaction) (*Registry, error) {
	r := NewRegistry()
	for i, tx := range txs {
		if err := r.Apply(tx); err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i, err)
		}
	}
	return r, nil
}

// Apply validates tx against the current tables and applies it. Genesis
// transactions are accepted and change nothing.
func (r *Registry) Apply(tx Transaction) error {
	switch tx.Type {
	case TxGenesis:
		return nil
	case TxAddVoter:
		id, err := stringField(tx.Payload, KeyVoterID)
		if err != nil {
			return err
		}
		name, err := stringField(tx.Payload, KeyName)
		if err != nil {
			return err
		}
		hasVoted, err := boolField(tx.Payload, KeyHasVoted)
		if err != nil {
			return err
		}
		if err := CheckVoterRegistration(r, id, name); err != nil {
			return err
		}
		r.voters[id] = Voter{VoterID: id, Name: name, HasVoted: hasVoted}
	case TxAddCandidate:
		id, err := stringField(tx.Payload, KeyCandidateID)
		if err != nil {
			return err
		}
		name, err := stringField(tx.Payload, KeyName)
		if err != nil {
			return err
		}
		if err := CheckCandidateRegistration(r, id, name); err != nil {
			return err
		}
		r.candidates[id] = Candidate{CandidateID: id, Name: name}
	case TxCastVote:
		voterID, err := stringField(tx.Payload, KeyVoterID)
		if err != nil {
			return err
		}
		candidateID, err := stringField(tx.Payload, KeyCandidateID)
		if err != nil {
			return err
		}
		if err := CheckVote(r, voterID, candidateID); err != nil {
			return err
		}
		v := r.voters[voterID]
		v.HasVoted = true
		r.voters[voterID] = v
		r.votes[candidateID]++
	default:
		return fmt.Errorf("%w: %q", ErrUnknownTransaction, tx.Type)
	}
	return nil
}

func (r *Registry) Voter(id string) (Voter, bool) {
	v, ok := r.voters[id]
	return v, ok
}

func (r *Registry) Candidate(id string) (Candidate, bool) {
	c, ok := r.candidates[id]
	return c, ok
}

// Voters returns all voters sorted by ID.
func (r *Registry) Voters() []Voter {
	out := make([]Voter, 0, len(r.voters))
	for _, v := range r.voters {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].VoterID < out[j].VoterID })
	return out
}

// Candidates returns all candidates sorted by ID.
func (r *Registry) Candidates() []Candidate {
	out := make([]Candidate, 0, len(r.candidates))
	for _, c := range r.candidates {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CandidateID < out[j].CandidateID })
	return out
}

// Tally returns the number of votes per candidate ID. Every registered
// candidate is present, with zero if nobody voted for them.
func (r *Registry) Tally() map[string]int {
	out := make(map[string]int, len(r.candidates))
	for id := range r.candidates {
		out[id] = r.votes[id]
	}
	return out
}

func stringField(p Payload, key string) (string, error) {
	s, ok := p[key].(string)
	if !ok {
		return "", fmt.Errorf("%w: %q is not a string", ErrMalformedPayload, key)
	}
	return s, nil
}

func boolField(p Payload, key string) (bool, error) {
	b, ok := p[key].(bool)
	if !ok {
		return false, fmt.Errorf("%w: %q is not a bool", ErrMalformedPayload, key)
	}
	return b, nil
}
